package domain

import "fmt"

// Status represents the lifecycle state of a plan
type Status string

const (
	// StatusProposed is the initial state of a freshly created plan
	StatusProposed Status = "proposed"
	// StatusPendingReview means the plan has validated specs awaiting approval
	StatusPendingReview Status = "pending_review"
	// StatusApproved means an approver has signed off on a selection
	StatusApproved Status = "approved"
	// StatusExecuting means the executor is running the approved selection
	StatusExecuting Status = "executing"
	// StatusCompleted means every executed action succeeded
	StatusCompleted Status = "completed"
	// StatusAborted means at least one executed action failed
	StatusAborted Status = "aborted"
)

// transitions is the legal state graph. EXECUTING -> PENDING_REVIEW is the
// re-entrant edge taken when a preflight race is detected mid-execution.
var transitions = map[Status][]Status{
	StatusProposed:      {StatusPendingReview},
	StatusPendingReview: {StatusPendingReview, StatusApproved},
	StatusApproved:      {StatusExecuting},
	StatusExecuting:     {StatusCompleted, StatusAborted, StatusPendingReview},
	StatusCompleted:     {},
	StatusAborted:       {},
}

// ParseStatus parses a string into a Status
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusProposed, StatusPendingReview, StatusApproved, StatusExecuting, StatusCompleted, StatusAborted:
		return Status(value), nil
	default:
		return "", fmt.Errorf("unknown status %q", value)
	}
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether moving from this status to the target is legal
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}
