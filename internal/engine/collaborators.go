package engine

import "github.com/felixgeelhaar/greenlight/internal/plan"

// Outcome is the result of a single FileOps call. Failures are expected and
// reported as data; they never abort a whole execution batch.
type Outcome struct {
	OK     bool
	Reason string
}

// Ok returns a successful outcome
func Ok() Outcome {
	return Outcome{OK: true}
}

// Failed returns a failed outcome with a display-ready reason
func Failed(reason string) Outcome {
	return Outcome{Reason: reason}
}

// FileOps is the collaborator that performs the actual byte-level filesystem
// work. Implementations own their backup policy; the engine only dispatches.
type FileOps interface {
	// Write writes content to a file, creating parent directories as needed
	Write(path, content string) Outcome

	// Mkdir creates a directory idempotently, creating parents
	Mkdir(path string) Outcome

	// Read returns a file's content, or an error if it does not exist
	Read(path string) (string, error)
}

// StepPlanner is an optional collaborator that drafts informational planning
// steps for display. Its failure is logged and ignored: steps never drive
// execution.
type StepPlanner interface {
	PlanSteps(goal string) ([]plan.Step, error)
}
