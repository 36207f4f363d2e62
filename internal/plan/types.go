package plan

import (
	"time"

	"github.com/felixgeelhaar/greenlight/internal/domain"
)

// Plan represents a named bundle of rationale plus proposed actions
type Plan struct {
	ID        domain.PlanID `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Sources   []string      `json:"sources,omitempty"`
	Rationale string        `json:"rationale,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Version   int           `json:"version"`

	// Steps is informational display material from an optional step planner.
	// It never drives execution.
	Steps []Step `json:"steps,omitempty"`
}

// Step is a display-only planning step produced by a StepPlanner collaborator
type Step struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
}

// RawSpec is an untrusted action request as received from a planner or caller.
// Kind is a bare string here; the validator parses it against the closed kind set.
type RawSpec struct {
	Kind        string `json:"kind"`
	Path        string `json:"path,omitempty"`
	Content     string `json:"content,omitempty"`
	Force       bool   `json:"force,omitempty"`
	Description string `json:"description,omitempty"`
}

// ActionSpec is a single normalized proposed operation
type ActionSpec struct {
	Kind        domain.ActionKind `json:"kind"`
	Path        string            `json:"path,omitempty"`
	Content     string            `json:"content,omitempty"`
	Force       bool              `json:"force,omitempty"`
	Description string            `json:"description,omitempty"`
}

// Preflight is a point-in-time inspection of a target path's disk state
type Preflight struct {
	Exists         bool   `json:"exists"`
	WouldOverwrite bool   `json:"would_overwrite"`
	DiffSummary    string `json:"diff_summary,omitempty"`
}

// Equal reports whether two preflight snapshots describe the same disk state
func (p Preflight) Equal(other Preflight) bool {
	return p.Exists == other.Exists &&
		p.WouldOverwrite == other.WouldOverwrite &&
		p.DiffSummary == other.DiffSummary
}

// ActionSpecExt is a validated, annotated action spec. The ID is assigned at
// validation time and is stable for the life of the plan.
type ActionSpecExt struct {
	ID        domain.SpecID    `json:"id"`
	Spec      ActionSpec       `json:"spec"`
	Risk      domain.RiskLevel `json:"risk"`
	Validated bool             `json:"validated"`
	Preflight Preflight        `json:"preflight"`
	Notes     string           `json:"notes,omitempty"`
}

// Selection names the subset of a plan's specs approved for execution
type Selection struct {
	All bool            `json:"all"`
	IDs []domain.SpecID `json:"ids,omitempty"`
}

// SelectAll returns a selection covering every spec in the plan
func SelectAll() Selection {
	return Selection{All: true}
}

// SelectIDs returns a selection covering exactly the named specs
func SelectIDs(ids ...domain.SpecID) Selection {
	return Selection{IDs: ids}
}

// Includes reports whether the selection covers the given spec id
func (s Selection) Includes(id domain.SpecID) bool {
	if s.All {
		return true
	}
	for _, selected := range s.IDs {
		if selected == id {
			return true
		}
	}
	return false
}

// ApprovalRecord captures a single sign-off on a selection
type ApprovalRecord struct {
	Approver   string    `json:"approver"`
	ApprovedAt time.Time `json:"approved_at"`
	Selection  Selection `json:"selection"`
}

// DiffEntry pairs a spec with its non-empty preflight diff summary
type DiffEntry struct {
	SpecID  domain.SpecID `json:"spec_id"`
	Path    string        `json:"path"`
	Summary string        `json:"summary"`
}

// Preview is an informational summary of what a plan would touch.
// It is cached for display but never consulted by approval or execution.
type Preview struct {
	Files     []string    `json:"files"`
	Diffs     []DiffEntry `json:"diffs,omitempty"`
	RiskScore float64     `json:"risk_score"`
}

// State holds the mutable lifecycle state attached to a plan
type State struct {
	Status      domain.Status    `json:"status"`
	ActionSpecs []ActionSpecExt  `json:"action_specs,omitempty"`
	Selection   Selection        `json:"selection"`
	Approvals   []ApprovalRecord `json:"approvals,omitempty"`
	Preview     *Preview         `json:"preview,omitempty"`
}

// NewState returns the initial state for a freshly proposed plan
func NewState() State {
	return State{Status: domain.StatusProposed}
}

// SpecByID returns the spec with the given id, if present
func (s *State) SpecByID(id domain.SpecID) (ActionSpecExt, bool) {
	for _, spec := range s.ActionSpecs {
		if spec.ID == id {
			return spec, true
		}
	}
	return ActionSpecExt{}, false
}

// SpecIDs returns the ids of all specs in plan order
func (s *State) SpecIDs() []domain.SpecID {
	ids := make([]domain.SpecID, 0, len(s.ActionSpecs))
	for _, spec := range s.ActionSpecs {
		ids = append(ids, spec.ID)
	}
	return ids
}

// SelectedSpecs returns the selection-filtered specs in plan order
func (s *State) SelectedSpecs() []ActionSpecExt {
	var selected []ActionSpecExt
	for _, spec := range s.ActionSpecs {
		if s.Selection.Includes(spec.ID) {
			selected = append(selected, spec)
		}
	}
	return selected
}

// ActionOutcome records the result of executing a single action
type ActionOutcome struct {
	SpecID  domain.SpecID     `json:"spec_id"`
	Path    string            `json:"path,omitempty"`
	Kind    domain.ActionKind `json:"kind"`
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// ExecutionResult contains the per-action outcomes of one execute call
type ExecutionResult struct {
	OverallSuccess bool            `json:"overall_success"`
	Outcomes       []ActionOutcome `json:"outcomes"`
	StartedAt      time.Time       `json:"started_at"`
	FinishedAt     time.Time       `json:"finished_at"`
}

// Summary describes a plan in the store index
type Summary struct {
	ID        domain.PlanID `json:"id"`
	Title     string        `json:"title"`
	Status    domain.Status `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Tags      []string      `json:"tags,omitempty"`
}
