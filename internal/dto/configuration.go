package dto

// CreateConfigRequest carries the kind-agnostic creation payload. The
// kind-specific fields are pointers; the lifecycle service enforces which
// of them are required for the targeted kind.
type CreateConfigRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Description *string `json:"description,omitempty"`

	// TAX_RULE
	Rate *float64 `json:"rate,omitempty"`

	// INSURANCE_BRACKET
	MinSalary    *float64 `json:"min_salary,omitempty"`
	MaxSalary    *float64 `json:"max_salary,omitempty"`
	EmployeeRate *float64 `json:"employee_rate,omitempty"`
	EmployerRate *float64 `json:"employer_rate,omitempty"`

	// ALLOWANCE / SIGNING_BONUS
	Amount  *float64 `json:"amount,omitempty"`
	Taxable *bool    `json:"taxable,omitempty"`

	// TERMINATION_BENEFIT
	BaseAmount *float64 `json:"base_amount,omitempty"`
	Category   *string  `json:"category,omitempty"`

	// PAY_GRADE
	BaseSalary  *float64 `json:"base_salary,omitempty"`
	GrossSalary *float64 `json:"gross_salary,omitempty"`
}

// UpdateConfigRequest is the partial-update payload. Absent fields keep
// their stored values; range invariants are re-checked against the merge
// of new and stored values.
type UpdateConfigRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description *string `json:"description,omitempty"`

	Rate *float64 `json:"rate,omitempty"`

	MinSalary    *float64 `json:"min_salary,omitempty"`
	MaxSalary    *float64 `json:"max_salary,omitempty"`
	EmployeeRate *float64 `json:"employee_rate,omitempty"`
	EmployerRate *float64 `json:"employer_rate,omitempty"`

	Amount  *float64 `json:"amount,omitempty"`
	Taxable *bool    `json:"taxable,omitempty"`

	BaseAmount *float64 `json:"base_amount,omitempty"`
	Category   *string  `json:"category,omitempty"`

	BaseSalary  *float64 `json:"base_salary,omitempty"`
	GrossSalary *float64 `json:"gross_salary,omitempty"`
}

// DecisionRequest approves or rejects a DRAFT configuration item.
type DecisionRequest struct {
	ApproverEmployeeID string `json:"approver_employee_id" validate:"required"`
	Reason             string `json:"reason,omitempty"`
}

// ListConfigQuery captures list filters.
type ListConfigQuery struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
