package dto

import "github.com/noah-isme/payroll-admin-api/internal/models"

// ContributionRequest asks for an insurance contribution for one salary
// against one approved bracket.
type ContributionRequest struct {
	BracketID string   `json:"bracket_id" validate:"required"`
	Salary    *float64 `json:"salary" validate:"required"`
}

// ContributionResponse pairs the calculation outcome with the bracket it
// was computed from.
type ContributionResponse struct {
	BracketID   string                    `json:"bracket_id"`
	BracketName string                    `json:"bracket_name"`
	Salary      float64                   `json:"salary"`
	Result      models.ContributionResult `json:"result"`
}

// TerminationRequest asks for the aggregate termination entitlement.
// YearsOfService defaults to 1 and Reason to "resignation".
type TerminationRequest struct {
	LastSalary     *float64 `json:"last_salary" validate:"required"`
	YearsOfService *float64 `json:"years_of_service,omitempty"`
	Reason         string   `json:"reason,omitempty" validate:"omitempty,oneof=resignation termination"`
	BenefitIDs     []string `json:"benefit_ids,omitempty"`
}

// PayslipPreviewRequest asks which approved insurance bracket covers the
// salary and what the resulting deduction would be.
type PayslipPreviewRequest struct {
	Salary *float64 `json:"salary" validate:"required"`
}

// PayslipPreviewResponse reports the matched bracket and net pay after
// the employee-side deduction. Bracket fields are empty when no approved
// bracket covers the salary.
type PayslipPreviewResponse struct {
	Salary       float64                    `json:"salary"`
	BracketID    string                     `json:"bracket_id,omitempty"`
	BracketName  string                     `json:"bracket_name,omitempty"`
	Contribution *models.ContributionResult `json:"contribution,omitempty"`
	NetSalary    float64                    `json:"net_salary"`
}
