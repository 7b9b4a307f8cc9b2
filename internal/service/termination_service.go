package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/payroll-admin-api/internal/dto"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

const severanceMonthsCap = 12

var severancePremium = decimal.NewFromFloat(1.5)

// CalculateTerminationEntitlements is a pure aggregation over approved
// termination benefit configuration. Per-item amounts are rounded
// half-up at the cent for display; the grand total is rounded once from
// the unrounded terms so pre-rounded items are never summed.
func CalculateTerminationEntitlements(benefits []models.ConfigItem, lastSalary, years float64, reason models.TerminationReason) (models.EntitlementResult, error) {
	salaryD := decimal.NewFromFloat(lastSalary)
	yearsD := decimal.NewFromFloat(years)

	result := models.EntitlementResult{Items: make([]models.EntitlementLine, 0, len(benefits))}
	total := decimal.Zero

	for i := range benefits {
		benefit := &benefits[i]
		var attrs models.TerminationBenefitAttributes
		if err := json.Unmarshal(benefit.Attributes, &attrs); err != nil {
			return models.EntitlementResult{}, fmt.Errorf("decode benefit %s attributes: %w", benefit.ID, err)
		}
		category := attrs.Category
		if category == "" {
			category = models.InferBenefitCategory(benefit.Name)
		}

		var amount decimal.Decimal
		var formula string
		reasonSpecific := string(reason)

		switch category {
		case models.BenefitGratuity:
			amount = salaryD.Mul(decimal.NewFromFloat(0.5)).Mul(yearsD)
			formula = fmt.Sprintf("%.2f x 0.5 x %g years", lastSalary, years)
		case models.BenefitSeverance:
			months := years
			if months > severanceMonthsCap {
				months = severanceMonthsCap
			}
			amount = salaryD.Mul(decimal.NewFromFloat(months))
			formula = fmt.Sprintf("%.2f x %g months (capped at %d)", lastSalary, months, severanceMonthsCap)
			if reason == models.ReasonTermination {
				amount = amount.Mul(severancePremium)
				formula += " x 1.5"
				reasonSpecific = "termination premium x1.5"
			}
		default:
			amount = decimal.NewFromFloat(attrs.BaseAmount).Mul(yearsD)
			formula = fmt.Sprintf("%.2f x %g years", attrs.BaseAmount, years)
		}

		result.Items = append(result.Items, models.EntitlementLine{
			BenefitID:        benefit.ID,
			BenefitName:      benefit.Name,
			BaseAmount:       attrs.BaseAmount,
			CalculatedAmount: amount.Round(2).InexactFloat64(),
			Formula:          formula,
			ReasonSpecific:   reasonSpecific,
		})
		total = total.Add(amount)
	}

	result.TotalEntitlement = total.Round(2).InexactFloat64()
	return result, nil
}

// TerminationService aggregates termination entitlements from approved
// benefit configuration.
type TerminationService struct {
	configs   approvedConfigReader
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTerminationService constructs a TerminationService.
func NewTerminationService(configs approvedConfigReader, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *TerminationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TerminationService{configs: configs, metrics: metrics, validator: validate, logger: logger}
}

// Calculate computes the aggregate entitlement for one employee context.
// Only APPROVED benefits ever contribute; a benefitIds filter restricts
// the approved set, and a filter id that does not exist at all is a
// NotFound while a non-approved id is silently excluded.
func (s *TerminationService) Calculate(ctx context.Context, req dto.TerminationRequest) (*models.EntitlementResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid termination payload")
	}

	lastSalary := *req.LastSalary
	if lastSalary < 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, "last salary cannot be negative")
	}
	years := 1.0
	if req.YearsOfService != nil {
		years = *req.YearsOfService
	}
	if years < 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, "years of service cannot be negative")
	}
	reason := models.ReasonResignation
	if req.Reason != "" {
		reason = models.TerminationReason(req.Reason)
	}

	approved, err := s.configs.ListApproved(ctx, models.KindTerminationBenefit)
	if err != nil {
		return nil, err
	}

	if len(req.BenefitIDs) > 0 {
		wanted := make(map[string]struct{}, len(req.BenefitIDs))
		for _, id := range req.BenefitIDs {
			// Existence check across all statuses; approval filtering
			// happens below against the approved snapshot.
			if _, err := s.configs.Get(ctx, models.KindTerminationBenefit, id); err != nil {
				return nil, err
			}
			wanted[id] = struct{}{}
		}
		filtered := approved[:0]
		for _, item := range approved {
			if _, ok := wanted[item.ID]; ok {
				filtered = append(filtered, item)
			}
		}
		approved = filtered
	}

	result, err := CalculateTerminationEntitlements(approved, lastSalary, years, reason)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to calculate entitlements")
	}

	s.metrics.RecordCalculation("termination_entitlements")
	return &result, nil
}
