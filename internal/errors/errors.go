package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Path errors (PATH-001 to PATH-099)
	ErrCodePathTraversal ErrorCode = "PATH-001"
	ErrCodePathOutside   ErrorCode = "PATH-002"
	ErrCodePathEmpty     ErrorCode = "PATH-003"

	// Plan errors (PLAN-001 to PLAN-099)
	ErrCodePlanNotFound     ErrorCode = "PLAN-001"
	ErrCodePlanIllegalState ErrorCode = "PLAN-002"

	// Selection errors (SELECT-001 to SELECT-099)
	ErrCodeSelectionUnknownSpec ErrorCode = "SELECT-001"

	// Execution errors (EXEC-001 to EXEC-099)
	ErrCodePreflightChanged ErrorCode = "EXEC-001"
	ErrCodeRunRefused       ErrorCode = "EXEC-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"
)

// EngineError represents an enhanced error with code, plan context, and suggestions
type EngineError struct {
	Code        ErrorCode
	Message     string
	PlanID      string
	SpecID      string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *EngineError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.PlanID != "" {
		b.WriteString(fmt.Sprintf(" (plan %s", e.PlanID))
		if e.SpecID != "" {
			b.WriteString(fmt.Sprintf(", spec %s", e.SpecID))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// New creates a new EngineError
func New(code ErrorCode, message string) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new EngineError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithPlan attaches the owning plan ID to the error
func (e *EngineError) WithPlan(planID string) *EngineError {
	e.PlanID = planID
	return e
}

// WithSpec attaches the offending spec ID to the error
func (e *EngineError) WithSpec(specID string) *EngineError {
	e.SpecID = specID
	return e
}

// WithSuggestion adds a suggestion to the error
func (e *EngineError) WithSuggestion(suggestion string) *EngineError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *EngineError) WithSuggestions(suggestions ...string) *EngineError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// CodeOf extracts the ErrorCode from an error chain, or "" if none is present
func CodeOf(err error) ErrorCode {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Code
	}
	return ""
}

// IsNotFound reports whether the error is an unknown-plan lookup failure
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodePlanNotFound
}

// IsIllegalState reports whether the error is a rejected state transition
func IsIllegalState(err error) bool {
	return CodeOf(err) == ErrCodePlanIllegalState
}

// IsInvalidSelection reports whether the error is a selection referencing unknown specs
func IsInvalidSelection(err error) bool {
	return CodeOf(err) == ErrCodeSelectionUnknownSpec
}

// IsPreflightChanged reports whether the error is an execution-time race detection
func IsPreflightChanged(err error) bool {
	return CodeOf(err) == ErrCodePreflightChanged
}

// Common error constructors for frequently used errors

// NewPlanNotFoundError creates an unknown-plan lookup error
func NewPlanNotFoundError(planID string) *EngineError {
	return New(ErrCodePlanNotFound, fmt.Sprintf("plan not found: %s", planID)).
		WithPlan(planID).
		WithSuggestion("Run 'greenlight list' to see known plans").
		WithSuggestion("Check if the plan ID is correct")
}

// NewIllegalStateError creates a rejected-transition error naming required vs. actual status
func NewIllegalStateError(planID, operation, required, actual string) *EngineError {
	return New(ErrCodePlanIllegalState,
		fmt.Sprintf("%s requires status %q, but plan is %q", operation, required, actual)).
		WithPlan(planID).
		WithSuggestion("Run 'greenlight status' to inspect the plan lifecycle")
}

// NewInvalidSelectionError creates an error for a selection naming unknown spec ids
func NewInvalidSelectionError(planID string, unknown []string) *EngineError {
	return New(ErrCodeSelectionUnknownSpec,
		fmt.Sprintf("selection references unknown spec ids: %s", strings.Join(unknown, ", "))).
		WithPlan(planID).
		WithSuggestion("Run 'greenlight status' to list the plan's spec ids").
		WithSuggestion("Re-run validation if the spec set has changed")
}

// NewPreflightChangedError creates a lost-update race error for a spec whose
// on-disk state no longer matches its validation-time snapshot
func NewPreflightChangedError(planID, specID, path string) *EngineError {
	return New(ErrCodePreflightChanged,
		fmt.Sprintf("disk state changed since approval for %s", path)).
		WithPlan(planID).
		WithSpec(specID).
		WithSuggestion("Re-validate the plan with 'greenlight specs set' and request approval again").
		WithSuggestion("Review what changed on disk before re-approving")
}

// NewRunRefusedError creates the refusal error for the run action kind
func NewRunRefusedError(planID, specID string) *EngineError {
	return New(ErrCodeRunRefused, "run actions are not implemented: arbitrary command execution is refused").
		WithPlan(planID).
		WithSpec(specID).
		WithSuggestion("Express the change as create/write/mkdir actions instead")
}
