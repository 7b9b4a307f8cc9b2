package models

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ApprovalStatus tracks where a configuration record sits in the
// governance workflow. DRAFT is the only mutable state; APPROVED and
// REJECTED are terminal.
type ApprovalStatus string

const (
	StatusDraft    ApprovalStatus = "DRAFT"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// ConfigKind discriminates the governed configuration entity kinds.
type ConfigKind string

const (
	KindTaxRule            ConfigKind = "TAX_RULE"
	KindInsuranceBracket   ConfigKind = "INSURANCE_BRACKET"
	KindAllowance          ConfigKind = "ALLOWANCE"
	KindPayType            ConfigKind = "PAY_TYPE"
	KindPayrollPolicy      ConfigKind = "PAYROLL_POLICY"
	KindSigningBonus       ConfigKind = "SIGNING_BONUS"
	KindTerminationBenefit ConfigKind = "TERMINATION_BENEFIT"
	KindPayGrade           ConfigKind = "PAY_GRADE"
)

var kindSlugs = map[string]ConfigKind{
	"tax-rules":            KindTaxRule,
	"insurance-brackets":   KindInsuranceBracket,
	"allowances":           KindAllowance,
	"pay-types":            KindPayType,
	"payroll-policies":     KindPayrollPolicy,
	"signing-bonuses":      KindSigningBonus,
	"termination-benefits": KindTerminationBenefit,
	"pay-grades":           KindPayGrade,
}

// ConfigKindFromSlug resolves the URL path segment to a kind.
func ConfigKindFromSlug(slug string) (ConfigKind, bool) {
	kind, ok := kindSlugs[strings.ToLower(strings.TrimSpace(slug))]
	return kind, ok
}

// ConfigItem is a governed payroll configuration record. Kind-specific
// numeric fields live in Attributes as JSONB.
type ConfigItem struct {
	ID              string         `db:"id" json:"id"`
	Kind            ConfigKind     `db:"kind" json:"kind"`
	Name            string         `db:"name" json:"name"`
	Status          ApprovalStatus `db:"status" json:"status"`
	Attributes      types.JSONText `db:"attributes" json:"attributes"`
	CreatedBy       string         `db:"created_by" json:"created_by"`
	ApprovedBy      *string        `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `db:"approved_at" json:"approved_at,omitempty"`
	RejectionReason *string        `db:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// IsDraft reports whether the item is still mutable.
func (c *ConfigItem) IsDraft() bool {
	return c != nil && c.Status == StatusDraft
}

// TaxRuleAttributes holds TAX_RULE fields. Rate is a percentage.
type TaxRuleAttributes struct {
	Rate        float64 `json:"rate"`
	Description string  `json:"description,omitempty"`
}

// InsuranceBracketAttributes holds INSURANCE_BRACKET fields. Rates are
// percentages in [0,100]; the salary window is inclusive on both ends.
type InsuranceBracketAttributes struct {
	MinSalary    float64 `json:"min_salary"`
	MaxSalary    float64 `json:"max_salary"`
	EmployeeRate float64 `json:"employee_rate"`
	EmployerRate float64 `json:"employer_rate"`
}

// AllowanceAttributes holds ALLOWANCE fields.
type AllowanceAttributes struct {
	Amount  float64 `json:"amount"`
	Taxable bool    `json:"taxable"`
}

// PayTypeAttributes holds PAY_TYPE fields.
type PayTypeAttributes struct {
	Description string `json:"description,omitempty"`
}

// PayrollPolicyAttributes holds PAYROLL_POLICY fields.
type PayrollPolicyAttributes struct {
	Description string `json:"description,omitempty"`
}

// SigningBonusAttributes holds SIGNING_BONUS fields.
type SigningBonusAttributes struct {
	Amount float64 `json:"amount"`
}

// BenefitCategory selects the termination entitlement formula. It is
// assigned when the benefit is created; when absent it is inferred from
// the benefit name (gratuity takes precedence over severance).
type BenefitCategory string

const (
	BenefitGratuity  BenefitCategory = "GRATUITY"
	BenefitSeverance BenefitCategory = "SEVERANCE"
	BenefitOther     BenefitCategory = "OTHER"
)

// InferBenefitCategory backfills the category from the benefit name.
func InferBenefitCategory(name string) BenefitCategory {
	lowered := strings.ToLower(name)
	switch {
	case strings.Contains(lowered, "gratuity"):
		return BenefitGratuity
	case strings.Contains(lowered, "severance"):
		return BenefitSeverance
	default:
		return BenefitOther
	}
}

// TerminationBenefitAttributes holds TERMINATION_BENEFIT fields.
// BaseAmount feeds the OTHER formula; gratuity and severance derive
// entirely from the employee's last salary.
type TerminationBenefitAttributes struct {
	BaseAmount float64         `json:"base_amount"`
	Category   BenefitCategory `json:"category"`
}

// PayGradeAttributes holds PAY_GRADE fields. Gross salary is base plus
// allowances and can never be below base.
type PayGradeAttributes struct {
	BaseSalary  float64 `json:"base_salary"`
	GrossSalary float64 `json:"gross_salary"`
}
