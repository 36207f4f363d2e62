package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// SpecID represents a unique identifier for an action spec within a plan.
// IDs are assigned by the validator at normalization time and are never
// trusted from caller input.
type SpecID string

// NewSpecID generates a fresh random SpecID
func NewSpecID() SpecID {
	return SpecID(uuid.NewString())
}

// ParseSpecID validates a string as a SpecID
func ParseSpecID(value string) (SpecID, error) {
	if value == "" {
		return "", fmt.Errorf("spec ID cannot be empty")
	}
	if _, err := uuid.Parse(value); err != nil {
		return "", fmt.Errorf("spec ID %q is not a valid UUID: %w", value, err)
	}
	return SpecID(value), nil
}

// String returns the string representation
func (s SpecID) String() string {
	return string(s)
}
