package domain

import "testing"

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusProposed, StatusPendingReview, true},
		{StatusProposed, StatusApproved, false},
		{StatusProposed, StatusExecuting, false},
		{StatusPendingReview, StatusApproved, true},
		{StatusPendingReview, StatusPendingReview, true},
		{StatusPendingReview, StatusExecuting, false},
		{StatusApproved, StatusExecuting, true},
		{StatusApproved, StatusCompleted, false},
		{StatusExecuting, StatusCompleted, true},
		{StatusExecuting, StatusAborted, true},
		{StatusExecuting, StatusPendingReview, true},
		{StatusCompleted, StatusPendingReview, false},
		{StatusAborted, StatusPendingReview, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusAborted} {
		if !s.Terminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
	for _, s := range []Status{StatusProposed, StatusPendingReview, StatusApproved, StatusExecuting} {
		if s.Terminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("pending_review"); err != nil {
		t.Errorf("expected pending_review to parse, got %v", err)
	}
	if _, err := ParseStatus("limbo"); err == nil {
		t.Error("expected an error for an unknown status")
	}
}
