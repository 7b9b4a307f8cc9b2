package models

// TerminationReason distinguishes voluntary from involuntary exits. Only
// the severance formula is reason-sensitive.
type TerminationReason string

const (
	ReasonResignation TerminationReason = "resignation"
	ReasonTermination TerminationReason = "termination"
)

// ContributionResult is the outcome of an insurance contribution
// calculation. IsValid only reports whether the salary fell inside the
// bracket window; the amounts are computed either way and the caller
// decides whether out-of-range is actionable.
type ContributionResult struct {
	EmployeeContribution float64 `json:"employee_contribution"`
	EmployerContribution float64 `json:"employer_contribution"`
	TotalContribution    float64 `json:"total_contribution"`
	IsValid              bool    `json:"is_valid"`
}

// EntitlementLine is the per-benefit breakdown of a termination
// entitlement calculation.
type EntitlementLine struct {
	BenefitID        string  `json:"benefit_id"`
	BenefitName      string  `json:"benefit_name"`
	BaseAmount       float64 `json:"base_amount"`
	CalculatedAmount float64 `json:"calculated_amount"`
	Formula          string  `json:"formula"`
	ReasonSpecific   string  `json:"reason_specific"`
}

// EntitlementResult aggregates the termination entitlement outcome. The
// total is rounded once from the unrounded terms, independently of the
// per-line rounding.
type EntitlementResult struct {
	Items            []EntitlementLine `json:"items"`
	TotalEntitlement float64           `json:"total_entitlement"`
}
