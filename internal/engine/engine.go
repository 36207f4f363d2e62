package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/errors"
	"github.com/felixgeelhaar/greenlight/internal/log"
	"github.com/felixgeelhaar/greenlight/internal/plan"
	"github.com/felixgeelhaar/greenlight/internal/store"
	"github.com/felixgeelhaar/greenlight/internal/validate"
)

// maxTitleLength caps the display title derived from plan content
const maxTitleLength = 80

// Config assembles an Engine from its storage and collaborators
type Config struct {
	Store     *store.Store
	Validator *validate.ActionSpecValidator
	Inspector *validate.PreflightInspector
	FileOps   FileOps

	// StepPlanner is optional; when nil, proposed plans carry no steps
	StepPlanner StepPlanner

	// Logger is optional; when nil, the process default is used
	Logger *log.Logger
}

// Engine is the plan lifecycle state machine. One mutex serializes every
// state-mutating call, including execution; a mutation is only visible to
// other callers once its persistence write has returned. Read-only queries
// go straight to the store's lock-free snapshot view.
type Engine struct {
	mu sync.Mutex

	store       *store.Store
	validator   *validate.ActionSpecValidator
	inspector   *validate.PreflightInspector
	fileOps     FileOps
	stepPlanner StepPlanner
	logger      *log.Logger
}

// New creates an engine from the given configuration
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, errors.New(errors.ErrCodeDirectoryFailed, "engine requires a store")
	}
	if cfg.Validator == nil || cfg.Inspector == nil {
		return nil, errors.New(errors.ErrCodeDirectoryFailed, "engine requires a validator and preflight inspector")
	}
	if cfg.FileOps == nil {
		return nil, errors.New(errors.ErrCodeDirectoryFailed, "engine requires a FileOps collaborator")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Engine{
		store:       cfg.Store,
		validator:   cfg.Validator,
		inspector:   cfg.Inspector,
		fileOps:     cfg.FileOps,
		stepPlanner: cfg.StepPlanner,
		logger:      logger,
	}, nil
}

// Propose creates a new plan with its initial state and makes it current.
// The optional step planner populates display steps; its failure is logged
// and ignored.
func (e *Engine) Propose(content string, sources []string, rationale string, tags []string) (domain.PlanID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := plan.Plan{
		ID:        domain.NewPlanID(),
		Title:     titleFromContent(content),
		Content:   content,
		Sources:   append([]string(nil), sources...),
		Rationale: rationale,
		Tags:      append([]string(nil), tags...),
		CreatedAt: time.Now().UTC(),
		Version:   1,
	}

	if e.stepPlanner != nil {
		steps, err := e.stepPlanner.PlanSteps(content)
		if err != nil {
			e.logger.WithPlan(p.ID.String()).WithError(err).Warn("step planner failed, proposing without steps")
		} else {
			p.Steps = steps
		}
	}

	state := plan.NewState()

	if err := e.store.Save(p, state); err != nil {
		return "", err
	}
	if err := e.store.SetCurrent(p.ID); err != nil {
		return "", err
	}

	e.logger.WithPlan(p.ID.String()).Info("plan proposed", "title", p.Title)
	return p.ID, nil
}

// SetActionSpecs validates a batch of raw action requests. When the report
// is ok, the normalized specs replace the plan's spec list and the plan
// advances to pending review; otherwise stored state is left untouched and
// the report is returned for the caller to fix and retry.
func (e *Engine) SetActionSpecs(planID domain.PlanID, rawSpecs []plan.RawSpec) (validate.Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, state, ok := e.store.Get(planID)
	if !ok {
		return validate.Report{}, errors.NewPlanNotFoundError(planID.String())
	}

	if !state.Status.CanTransition(domain.StatusPendingReview) {
		return validate.Report{}, errors.NewIllegalStateError(
			planID.String(), "set action specs",
			domain.StatusProposed.String()+" or "+domain.StatusPendingReview.String(),
			state.Status.String())
	}

	report := e.validator.Validate(rawSpecs)
	if !report.OK {
		e.logger.WithPlan(planID.String()).Warn("spec validation failed",
			"issues", len(report.Issues), "specs", len(rawSpecs))
		return report, nil
	}

	state.ActionSpecs = report.Normalized
	state.Selection = plan.Selection{}
	state.Preview = nil
	state.Status = domain.StatusPendingReview
	p.Version++

	if err := e.store.Save(p, state); err != nil {
		return validate.Report{}, err
	}

	e.logger.WithPlan(planID.String()).Info("action specs set", "specs", len(report.Normalized))
	return report, nil
}

// Preview computes and caches an informational summary of what the plan
// would touch. The cache is display-only: approval and execution never
// consult it.
func (e *Engine) Preview(planID domain.PlanID) (plan.Preview, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, state, ok := e.store.Get(planID)
	if !ok {
		return plan.Preview{}, errors.NewPlanNotFoundError(planID.String())
	}

	preview := buildPreview(state.ActionSpecs)
	cached := preview.Clone()
	state.Preview = &cached

	if err := e.store.Save(p, state); err != nil {
		return plan.Preview{}, err
	}

	return preview, nil
}

// RequestApproval records the selection a reviewer intends to approve and
// idempotently moves the plan to pending review. It fails when the selection
// names unknown spec ids.
func (e *Engine) RequestApproval(planID domain.PlanID, selection plan.Selection) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, state, ok := e.store.Get(planID)
	if !ok {
		return "", errors.NewPlanNotFoundError(planID.String())
	}

	if state.Status != domain.StatusPendingReview && !state.Status.CanTransition(domain.StatusPendingReview) {
		return "", errors.NewIllegalStateError(
			planID.String(), "request approval",
			domain.StatusPendingReview.String(), state.Status.String())
	}

	if err := checkSelection(planID, &state, selection); err != nil {
		return "", err
	}

	state.Selection = selection.Clone()
	state.Status = domain.StatusPendingReview

	if err := e.store.Save(p, state); err != nil {
		return "", err
	}

	requestID := uuid.NewString()
	e.logger.WithPlan(planID.String()).Info("approval requested", "request_id", requestID)
	return requestID, nil
}

// ApprovedSummary reports the result of an approval
type ApprovedSummary struct {
	PlanID        domain.PlanID `json:"plan_id"`
	Approver      string        `json:"approver"`
	ApprovedAt    time.Time     `json:"approved_at"`
	SelectedSpecs int           `json:"selected_specs"`
	Status        domain.Status `json:"status"`
}

// Approve appends an approval record and advances the plan to approved.
// The live selection is overwritten with this call's selection: only the
// latest approval governs execution, even though approval history accumulates.
func (e *Engine) Approve(planID domain.PlanID, approver string, selection plan.Selection) (ApprovedSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, state, ok := e.store.Get(planID)
	if !ok {
		return ApprovedSummary{}, errors.NewPlanNotFoundError(planID.String())
	}

	if !state.Status.CanTransition(domain.StatusApproved) {
		return ApprovedSummary{}, errors.NewIllegalStateError(
			planID.String(), "approve",
			domain.StatusPendingReview.String(), state.Status.String())
	}

	if err := checkSelection(planID, &state, selection); err != nil {
		return ApprovedSummary{}, err
	}

	record := plan.ApprovalRecord{
		Approver:   approver,
		ApprovedAt: time.Now().UTC(),
		Selection:  selection.Clone(),
	}
	state.Approvals = append(state.Approvals, record)
	state.Selection = selection.Clone()
	state.Status = domain.StatusApproved

	if err := e.store.Save(p, state); err != nil {
		return ApprovedSummary{}, err
	}

	summary := ApprovedSummary{
		PlanID:        planID,
		Approver:      approver,
		ApprovedAt:    record.ApprovedAt,
		SelectedSpecs: len(state.SelectedSpecs()),
		Status:        state.Status,
	}

	e.logger.WithPlan(planID.String()).Info("plan approved",
		"approver", approver, "selected", summary.SelectedSpecs)
	return summary, nil
}

// GetState returns a defensive snapshot of one plan. Lock-free.
func (e *Engine) GetState(planID domain.PlanID) (plan.Plan, plan.State, error) {
	p, state, ok := e.store.Get(planID)
	if !ok {
		return plan.Plan{}, plan.State{}, errors.NewPlanNotFoundError(planID.String())
	}
	return p, state, nil
}

// GetCurrent returns the current plan, if one is set. Lock-free.
func (e *Engine) GetCurrent() (plan.Plan, plan.State, error) {
	current, ok := e.store.Current()
	if !ok {
		return plan.Plan{}, plan.State{}, errors.NewPlanNotFoundError("(current)")
	}
	return e.GetState(current)
}

// List returns plan summaries, newest first. Lock-free.
func (e *Engine) List() []plan.Summary {
	return e.store.List()
}

// checkSelection verifies that every selected id belongs to the plan's
// current spec set
func checkSelection(planID domain.PlanID, state *plan.State, selection plan.Selection) error {
	if selection.All {
		return nil
	}

	var unknown []string
	for _, id := range selection.IDs {
		if _, ok := state.SpecByID(id); !ok {
			unknown = append(unknown, id.String())
		}
	}

	if len(unknown) > 0 {
		return errors.NewInvalidSelectionError(planID.String(), unknown)
	}
	return nil
}

// buildPreview derives the informational preview from the spec list
func buildPreview(specs []plan.ActionSpecExt) plan.Preview {
	preview := plan.Preview{Files: []string{}}

	seen := make(map[string]bool)
	weightSum := 0
	for _, spec := range specs {
		if spec.Spec.Path != "" && !seen[spec.Spec.Path] {
			seen[spec.Spec.Path] = true
			preview.Files = append(preview.Files, spec.Spec.Path)
		}
		if spec.Preflight.DiffSummary != "" {
			preview.Diffs = append(preview.Diffs, plan.DiffEntry{
				SpecID:  spec.ID,
				Path:    spec.Spec.Path,
				Summary: spec.Preflight.DiffSummary,
			})
		}
		weightSum += spec.Risk.Weight()
	}

	if len(specs) > 0 {
		score := float64(weightSum) / float64(len(specs)*domain.MaxRiskWeight)
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		preview.RiskScore = score
	}

	return preview
}

// titleFromContent derives a display title from the first line of content
func titleFromContent(content string) string {
	title := strings.TrimSpace(content)
	if idx := strings.IndexByte(title, '\n'); idx >= 0 {
		title = strings.TrimSpace(title[:idx])
	}
	title = strings.TrimLeft(title, "# ")
	if title == "" {
		title = "untitled plan"
	}
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength-3] + "..."
	}
	return title
}
