package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/noah-isme/payroll-admin-api/internal/dto"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

// kindSpec is the capability set a configuration kind plugs into the
// lifecycle manager: how its identifying field is called, how to build
// attributes from a creation payload, and how to merge a partial update
// into the stored attributes. Range invariants live inside build/merge so
// a partial update is always validated against the merged values.
type kindSpec struct {
	identityLabel string
	build         func(req dto.CreateConfigRequest) (interface{}, error)
	merge         func(stored json.RawMessage, req dto.UpdateConfigRequest) (interface{}, error)
}

var kindSpecs = map[models.ConfigKind]kindSpec{
	models.KindTaxRule: {
		identityLabel: "name",
		build: func(req dto.CreateConfigRequest) (interface{}, error) {
			rate, err := requiredFloat(req.Rate, "rate")
			if err != nil {
				return nil, err
			}
			attrs := models.TaxRuleAttributes{Rate: rate, Description: deref(req.Description)}
			return attrs, validateTaxRule(attrs)
		},
		merge: func(stored json.RawMessage, req dto.UpdateConfigRequest) (interface{}, error) {
			var attrs models.TaxRuleAttributes
			if err := json.Unmarshal(stored, &attrs); err != nil {
				return nil, fmt.Errorf("decode tax rule attributes: %w", err)
			}
			if req.Rate != nil {
				attrs.Rate = *req.Rate
			}
			if req.Description != nil {
				attrs.Description = *req.Description
			}
			return attrs, validateTaxRule(attrs)
		},
	},
	models.KindInsuranceBracket: {
		identityLabel: "name",
		build: func(req dto.CreateConfigRequest) (interface{}, error) {
			attrs := models.InsuranceBracketAttributes{}
			var err error
			if attrs.MinSalary, err = requiredFloat(req.MinSalary, "min_salary"); err != nil {
				return nil, err
			}
			if attrs.MaxSalary, err = requiredFloat(req.MaxSalary, "max_salary"); err != nil {
				return nil, err
			}
			if attrs.EmployeeRate, err = requiredFloat(req.EmployeeRate, "employee_rate"); err != nil {
				return nil, err
			}
			if attrs.EmployerRate, err = requiredFloat(req.EmployerRate, "employer_rate"); err != nil {
				return nil, err
			}
			return attrs, validateInsuranceBracket(attrs)
		},
		merge: func(stored json.RawMessage, req dto.UpdateConfigRequest) (interface{}, error) {
			var attrs models.InsuranceBracketAttributes
			if err := json.Unmarshal(stored, &attrs); err != nil {
				return nil, fmt.Errorf("decode insurance bracket attributes: %w", err)
			}
			if req.MinSalary != nil {
				attrs.MinSalary = *req.MinSalary
			}
			if req.MaxSalary != nil {
				attrs.MaxSalary = *req.MaxSalary
			}
			if req.EmployeeRate != nil {
				attrs.EmployeeRate = *req.EmployeeRate
			}
			if req.EmployerRate != nil {
				attrs.EmployerRate = *req.EmployerRate
			}
			return attrs, validateInsuranceBracket(attrs)
		},
	},
	models.KindAllowance: {
		identityLabel: "name",
		build: func(req dto.CreateConfigRequest) (interface{}, error) {
			amount, err := requiredFloat(req.Amount, "amount")
			if err != nil {
				return nil, err
			}
			attrs := models.AllowanceAttributes{Amount: amount, Taxable: deref(req.Taxable)}
			return attrs, nonNegative(attrs.Amount, "amount")
		},
		merge: func(stored json.RawMessage, req dto.UpdateConfigRequest) (interface{}, error) {
			var attrs models.AllowanceAttributes
			if err := json.Unmarshal(stored, &attrs); err != nil {
				return nil, fmt.Errorf("decode allowance attributes: %w", err)
			}
			if req.Amount != nil {
				attrs.Amount = *req.Amount
			}
			if req.Taxable != nil {
				attrs.Taxable = *req.Taxable
			}
			return attrs, nonNegative(attrs.Amount, "amount")
		},
	},
	models.KindPayType: {
		identityLabel: "type",
		build: func(req dto.CreateConfigRequest) (interface{}, error) {
			return models.PayTypeAttributes{Description: deref(req.Description)}, nil
		},
		merge: func(stored json.RawMessage, req dto.UpdateConfigRequest) (interface{}, error) {
			var attrs models.PayTypeAttributes
			if err := json.Unmarshal(stored, &attrs); err != nil {
				return nil, fmt.Errorf("decode pay type attributes: %w", err)
			}
			if req.Description != nil {
				attrs.Description = *req.Description
			}
			return attrs, nil
		},
	},
	models.KindPayrollPolicy: {
		identityLabel: "name",
		build: func(req dto.CreateConfigRequest) (interface{}, error) {
			return models.PayrollPolicyAttributes{Description: deref(req.Description)}, nil
		},
		merge: func(stored json.RawMessage, req dto.UpdateConfigRequest) (interface{}, error) {
			var attrs models.PayrollPolicyAttributes
			if err := json.Unmarshal(stored, &attrs); err != nil {
				return nil, fmt.Errorf("decode payroll policy attributes: %w", err)
			}
			if req.Description != nil {
				attrs.Description = *req.Description
			}
			return attrs, nil
		},
	},
	models.KindSigningBonus: {
		identityLabel: "name",
		build: func(req dto.CreateConfigRequest) (interface{}, error) {
			amount, err := requiredFloat(req.Amount, "amount")
			if err != nil {
				return nil, err
			}
			return models.SigningBonusAttributes{Amount: amount}, nonNegative(amount, "amount")
		},
		merge: func(stored json.RawMessage, req dto.UpdateConfigRequest) (interface{}, error) {
			var attrs models.SigningBonusAttributes
			if err := json.Unmarshal(stored, &attrs); err != nil {
				return nil, fmt.Errorf("decode signing bonus attributes: %w", err)
			}
			if req.Amount != nil {
				attrs.Amount = *req.Amount
			}
			return attrs, nonNegative(attrs.Amount, "amount")
		},
	},
	models.KindTerminationBenefit: {
		identityLabel: "name",
		build: func(req dto.CreateConfigRequest) (interface{}, error) {
			baseAmount, err := requiredFloat(req.BaseAmount, "base_amount")
			if err != nil {
				return nil, err
			}
			category, err := resolveBenefitCategory(req.Category, req.Name)
			if err != nil {
				return nil, err
			}
			attrs := models.TerminationBenefitAttributes{BaseAmount: baseAmount, Category: category}
			return attrs, nonNegative(baseAmount, "base_amount")
		},
		merge: func(stored json.RawMessage, req dto.UpdateConfigRequest) (interface{}, error) {
			var attrs models.TerminationBenefitAttributes
			if err := json.Unmarshal(stored, &attrs); err != nil {
				return nil, fmt.Errorf("decode termination benefit attributes: %w", err)
			}
			if req.BaseAmount != nil {
				attrs.BaseAmount = *req.BaseAmount
			}
			if req.Category != nil {
				category, err := resolveBenefitCategory(req.Category, deref(req.Name))
				if err != nil {
					return nil, err
				}
				attrs.Category = category
			}
			return attrs, nonNegative(attrs.BaseAmount, "base_amount")
		},
	},
	models.KindPayGrade: {
		identityLabel: "grade",
		build: func(req dto.CreateConfigRequest) (interface{}, error) {
			attrs := models.PayGradeAttributes{}
			var err error
			if attrs.BaseSalary, err = requiredFloat(req.BaseSalary, "base_salary"); err != nil {
				return nil, err
			}
			if attrs.GrossSalary, err = requiredFloat(req.GrossSalary, "gross_salary"); err != nil {
				return nil, err
			}
			return attrs, validatePayGrade(attrs)
		},
		merge: func(stored json.RawMessage, req dto.UpdateConfigRequest) (interface{}, error) {
			var attrs models.PayGradeAttributes
			if err := json.Unmarshal(stored, &attrs); err != nil {
				return nil, fmt.Errorf("decode pay grade attributes: %w", err)
			}
			if req.BaseSalary != nil {
				attrs.BaseSalary = *req.BaseSalary
			}
			if req.GrossSalary != nil {
				attrs.GrossSalary = *req.GrossSalary
			}
			return attrs, validatePayGrade(attrs)
		},
	},
}

func validateTaxRule(attrs models.TaxRuleAttributes) error {
	return percentage(attrs.Rate, "rate")
}

func validateInsuranceBracket(attrs models.InsuranceBracketAttributes) error {
	if err := nonNegative(attrs.MinSalary, "min_salary"); err != nil {
		return err
	}
	if attrs.MinSalary >= attrs.MaxSalary {
		return appErrors.Clone(appErrors.ErrInvalidRange, "min_salary must be strictly below max_salary")
	}
	if err := percentage(attrs.EmployeeRate, "employee_rate"); err != nil {
		return err
	}
	return percentage(attrs.EmployerRate, "employer_rate")
}

func validatePayGrade(attrs models.PayGradeAttributes) error {
	if err := nonNegative(attrs.BaseSalary, "base_salary"); err != nil {
		return err
	}
	// gross = base + allowances, so equality is allowed
	if attrs.GrossSalary < attrs.BaseSalary {
		return appErrors.Clone(appErrors.ErrInvalidRange, "gross_salary cannot be below base_salary")
	}
	return nil
}

func resolveBenefitCategory(raw *string, name string) (models.BenefitCategory, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return models.InferBenefitCategory(name), nil
	}
	category := models.BenefitCategory(strings.ToUpper(strings.TrimSpace(*raw)))
	switch category {
	case models.BenefitGratuity, models.BenefitSeverance, models.BenefitOther:
		return category, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown benefit category %q", *raw))
	}
}

func requiredFloat(value *float64, field string) (float64, error) {
	if value == nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is required", field))
	}
	return *value, nil
}

func percentage(value float64, field string) error {
	if value < 0 || value > 100 {
		return appErrors.Clone(appErrors.ErrInvalidRange, fmt.Sprintf("%s must be between 0 and 100", field))
	}
	return nil
}

func nonNegative(value float64, field string) error {
	if value < 0 {
		return appErrors.Clone(appErrors.ErrInvalidRange, fmt.Sprintf("%s cannot be negative", field))
	}
	return nil
}

func deref[T any](value *T) T {
	if value == nil {
		var zero T
		return zero
	}
	return *value
}
