package query

import "strings"

// Operator combines required capability conditions.
type Operator string

// Capability operators.
const (
	// OperatorAND requires every listed capability.
	OperatorAND Operator = "AND"
	// OperatorOR requires the matched fraction to reach MinimumMatch.
	OperatorOR Operator = "OR"
	// OperatorNOT excludes servers exposing any listed capability.
	OperatorNOT Operator = "NOT"
)

// ParseOperator maps a raw string to an Operator, defaulting to OperatorAND.
func ParseOperator(s string) (Operator, bool) {
	switch Operator(strings.ToUpper(strings.TrimSpace(s))) {
	case OperatorAND, "":
		return OperatorAND, true
	case OperatorOR:
		return OperatorOR, true
	case OperatorNOT:
		return OperatorNOT, true
	default:
		return OperatorAND, false
	}
}

// Requirement is the normalized capability constraint set.
// Required, Preferred, and Excluded hold lowercase capability names.
type Requirement struct {
	Required     []string
	Preferred    []string
	Excluded     []string
	Operator     Operator
	MinimumMatch float64
}

// IsEmpty reports whether no capability constraints are present.
func (r Requirement) IsEmpty() bool {
	return len(r.Required) == 0 && len(r.Preferred) == 0 && len(r.Excluded) == 0
}

// DefaultRequirement returns the permissive capability requirement.
func DefaultRequirement() Requirement {
	return Requirement{Operator: OperatorAND, MinimumMatch: DefaultMinimumMatch}
}
