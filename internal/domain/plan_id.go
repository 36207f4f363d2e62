package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// PlanID represents a unique identifier for a plan.
// This is a value object backed by a UUIDv4 string.
type PlanID string

// NewPlanID generates a fresh random PlanID
func NewPlanID() PlanID {
	return PlanID(uuid.NewString())
}

// ParsePlanID validates a string as a PlanID
func ParsePlanID(value string) (PlanID, error) {
	if value == "" {
		return "", fmt.Errorf("plan ID cannot be empty")
	}
	if _, err := uuid.Parse(value); err != nil {
		return "", fmt.Errorf("plan ID %q is not a valid UUID: %w", value, err)
	}
	return PlanID(value), nil
}

// String returns the string representation
func (p PlanID) String() string {
	return string(p)
}

// Equals checks if this plan ID equals another
func (p PlanID) Equals(other PlanID) bool {
	return p == other
}
