package domain

import "fmt"

// RiskLevel classifies the blast radius of a single action
type RiskLevel string

const (
	// RiskLow covers actions confined to ordinary workspace files
	RiskLow RiskLevel = "low"
	// RiskMedium covers overwrites of existing, non-trivial files
	RiskMedium RiskLevel = "medium"
	// RiskHigh covers protected files, vendor/system directories, and command execution
	RiskHigh RiskLevel = "high"
)

// riskWeights are the scoring weights used for plan-level risk aggregation
var riskWeights = map[RiskLevel]int{
	RiskLow:    1,
	RiskMedium: 3,
	RiskHigh:   9,
}

// MaxRiskWeight is the weight of the highest risk level
const MaxRiskWeight = 9

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(value string) (RiskLevel, error) {
	switch RiskLevel(value) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskLevel(value), nil
	default:
		return "", fmt.Errorf("unknown risk level %q (valid: low, medium, high)", value)
	}
}

// String returns the string representation
func (r RiskLevel) String() string {
	return string(r)
}

// Weight returns the scoring weight for this risk level
func (r RiskLevel) Weight() int {
	if w, ok := riskWeights[r]; ok {
		return w
	}
	return riskWeights[RiskLow]
}

// Max returns the higher of two risk levels. Risk only ever escalates as
// more rules match, never de-escalates.
func (r RiskLevel) Max(other RiskLevel) RiskLevel {
	if other.Weight() > r.Weight() {
		return other
	}
	return r
}
