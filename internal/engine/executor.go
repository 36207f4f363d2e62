package engine

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/errors"
	"github.com/felixgeelhaar/greenlight/internal/plan"
)

// Execute runs the approved selection strictly sequentially, re-checking
// each spec's preflight immediately before mutating. Sequential execution is
// what makes the race check meaningful: an earlier action's effect must be
// observable to a later preflight on the same path.
//
// A failing individual action records a failed outcome and does not stop the
// batch. Only a preflight mismatch halts everything: the plan drops back to
// pending review, results accumulated in this call are discarded, and the
// call fails with a preflight-changed error.
func (e *Engine) Execute(planID domain.PlanID) (plan.ExecutionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, state, ok := e.store.Get(planID)
	if !ok {
		return plan.ExecutionResult{}, errors.NewPlanNotFoundError(planID.String())
	}

	if state.Status != domain.StatusApproved {
		return plan.ExecutionResult{}, errors.NewIllegalStateError(
			planID.String(), "execute",
			domain.StatusApproved.String(), state.Status.String())
	}

	state.Status = domain.StatusExecuting
	if err := e.store.Save(p, state); err != nil {
		return plan.ExecutionResult{}, err
	}

	logger := e.logger.WithPlan(planID.String())
	result := plan.ExecutionResult{StartedAt: time.Now().UTC()}
	overall := true

	for _, spec := range state.SelectedSpecs() {
		current := e.inspector.Inspect(spec.Spec.Path, spec.Spec.Kind, spec.Spec.Content)
		if !current.Equal(spec.Preflight) {
			// Lost-update race: the disk no longer matches what was approved.
			state.Status = domain.StatusPendingReview
			if err := e.store.Save(p, state); err != nil {
				return plan.ExecutionResult{}, err
			}

			logger.Warn("preflight changed since approval",
				"spec_id", spec.ID.String(), "path", spec.Spec.Path)
			return plan.ExecutionResult{}, errors.NewPreflightChangedError(
				planID.String(), spec.ID.String(), spec.Spec.Path)
		}

		outcome := e.runAction(planID, spec)
		if !outcome.Success {
			overall = false
			logger.Warn("action failed",
				"spec_id", spec.ID.String(), "kind", spec.Spec.Kind.String(), "error", outcome.Error)
		} else {
			logger.Debug("action completed",
				"spec_id", spec.ID.String(), "kind", spec.Spec.Kind.String(), "path", spec.Spec.Path)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.OverallSuccess = overall
	result.FinishedAt = time.Now().UTC()

	if overall {
		state.Status = domain.StatusCompleted
	} else {
		state.Status = domain.StatusAborted
	}
	if err := e.store.Save(p, state); err != nil {
		return plan.ExecutionResult{}, err
	}

	logger.Info("execution finished",
		"status", state.Status.String(), "actions", len(result.Outcomes))
	return result, nil
}

// runAction dispatches one spec to the FileOps collaborator by kind
func (e *Engine) runAction(planID domain.PlanID, spec plan.ActionSpecExt) plan.ActionOutcome {
	outcome := plan.ActionOutcome{
		SpecID: spec.ID,
		Path:   spec.Spec.Path,
		Kind:   spec.Spec.Kind,
	}

	switch spec.Spec.Kind {
	case domain.KindCreate, domain.KindWrite:
		if result := e.fileOps.Write(spec.Spec.Path, spec.Spec.Content); result.OK {
			outcome.Success = true
			outcome.Message = fmt.Sprintf("wrote %d bytes", len(spec.Spec.Content))
		} else {
			outcome.Error = result.Reason
		}

	case domain.KindMkdir:
		if result := e.fileOps.Mkdir(spec.Spec.Path); result.OK {
			outcome.Success = true
			outcome.Message = "directory created"
		} else {
			outcome.Error = result.Reason
		}

	case domain.KindRead:
		content, err := e.fileOps.Read(spec.Spec.Path)
		if err != nil {
			outcome.Error = err.Error()
		} else {
			outcome.Success = true
			outcome.Message = fmt.Sprintf("read %d bytes", len(content))
		}

	case domain.KindAnalyze:
		// Extension point: analysis passes run out of band, so the action
		// itself is a success marker.
		outcome.Success = true
		outcome.Message = "analysis acknowledged"

	case domain.KindRun:
		// Refused outright rather than sandboxed or time-limited.
		outcome.Error = errors.NewRunRefusedError(planID.String(), spec.ID.String()).Message

	default:
		outcome.Error = fmt.Sprintf("unknown action kind %q", spec.Spec.Kind)
	}

	return outcome
}
