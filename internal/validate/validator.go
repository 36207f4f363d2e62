package validate

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/plan"
)

// Issue is one validation finding, tagged with the index of the raw spec it
// belongs to. Issues are returned as data, never as errors: the caller
// decides whether to proceed.
type Issue struct {
	Index   int    `json:"index"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// String renders the issue for direct display
func (i Issue) String() string {
	if i.Path != "" {
		return fmt.Sprintf("spec[%d] %s: %s", i.Index, i.Path, i.Message)
	}
	return fmt.Sprintf("spec[%d]: %s", i.Index, i.Message)
}

// Report is the outcome of validating a batch of raw specs. Normalized is
// fully populated even when OK is false so callers can inspect exactly what
// would have resulted; by convention they discard the batch on OK=false.
type Report struct {
	OK         bool                 `json:"ok"`
	Issues     []Issue              `json:"issues,omitempty"`
	Normalized []plan.ActionSpecExt `json:"normalized"`
}

// IssueSummary joins all issue strings for display
func (r Report) IssueSummary() string {
	lines := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		lines = append(lines, issue.String())
	}
	return strings.Join(lines, "\n")
}

// ActionSpecValidator turns untrusted raw action requests into normalized,
// annotated specs with freshly assigned identities
type ActionSpecValidator struct {
	paths     *PathValidator
	risks     *RiskAssessor
	preflight *PreflightInspector
}

// NewActionSpecValidator composes the three leaf inspectors
func NewActionSpecValidator(paths *PathValidator, risks *RiskAssessor, preflight *PreflightInspector) *ActionSpecValidator {
	return &ActionSpecValidator{
		paths:     paths,
		risks:     risks,
		preflight: preflight,
	}
}

// Validate normalizes a batch of raw specs. Every spec receives a fresh id;
// ids supplied by the caller are never trusted.
func (v *ActionSpecValidator) Validate(rawSpecs []plan.RawSpec) Report {
	report := Report{
		Normalized: make([]plan.ActionSpecExt, 0, len(rawSpecs)),
	}

	for index, raw := range rawSpecs {
		normalized := v.validateOne(index, raw, &report)
		report.Normalized = append(report.Normalized, normalized)
	}

	report.OK = len(report.Issues) == 0
	return report
}

// validateOne normalizes a single raw spec, appending issues to the report
func (v *ActionSpecValidator) validateOne(index int, raw plan.RawSpec, report *Report) plan.ActionSpecExt {
	spec := plan.ActionSpec{
		Path:        raw.Path,
		Content:     raw.Content,
		Force:       raw.Force,
		Description: raw.Description,
	}

	kind, err := domain.ParseActionKind(raw.Kind)
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Index:   index,
			Message: err.Error(),
		})
		spec.Kind = domain.ActionKind(raw.Kind)
	} else {
		spec.Kind = kind
	}

	pathIssues := 0
	if kind.RequiresPath() && strings.TrimSpace(raw.Path) == "" {
		report.Issues = append(report.Issues, Issue{
			Index:   index,
			Message: fmt.Sprintf("kind %q requires a path", kind),
		})
		pathIssues++
	}

	if raw.Path != "" {
		normalizedPath, issues := v.paths.Validate(raw.Path)
		for _, message := range issues {
			report.Issues = append(report.Issues, Issue{
				Index:   index,
				Path:    raw.Path,
				Message: message,
			})
		}
		if len(issues) == 0 {
			spec.Path = normalizedPath
		}
		pathIssues += len(issues)
	}

	risk, reason := v.risks.Explain(spec)

	ext := plan.ActionSpecExt{
		ID:        domain.NewSpecID(),
		Spec:      spec,
		Risk:      risk,
		Validated: pathIssues == 0,
		Preflight: v.preflight.Inspect(spec.Path, spec.Kind, spec.Content),
		Notes:     reason,
	}
	return ext
}
