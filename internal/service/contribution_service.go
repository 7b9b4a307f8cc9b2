package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/payroll-admin-api/internal/dto"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

// approvedConfigReader is the lifecycle manager's read path. The
// calculation engine consumes approved configuration through it and
// nothing else.
type approvedConfigReader interface {
	Get(ctx context.Context, kind models.ConfigKind, id string) (*models.ConfigItem, error)
	ListApproved(ctx context.Context, kind models.ConfigKind) ([]models.ConfigItem, error)
}

var oneHundred = decimal.NewFromInt(100)

// CalculateInsuranceContribution is a pure function over one bracket and
// one salary. It never fails on an out-of-range salary; the window check
// is reported through IsValid and the caller decides whether that is
// actionable. Amounts are rounded half-up at the cent.
func CalculateInsuranceContribution(bracket models.InsuranceBracketAttributes, salary float64) models.ContributionResult {
	salaryD := decimal.NewFromFloat(salary)
	employee := salaryD.Mul(decimal.NewFromFloat(bracket.EmployeeRate)).Div(oneHundred)
	employer := salaryD.Mul(decimal.NewFromFloat(bracket.EmployerRate)).Div(oneHundred)
	total := employee.Add(employer)

	return models.ContributionResult{
		EmployeeContribution: employee.Round(2).InexactFloat64(),
		EmployerContribution: employer.Round(2).InexactFloat64(),
		TotalContribution:    total.Round(2).InexactFloat64(),
		IsValid:              salary >= bracket.MinSalary && salary <= bracket.MaxSalary,
	}
}

// ContributionService computes insurance contributions from approved
// bracket configuration.
type ContributionService struct {
	configs   approvedConfigReader
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContributionService constructs a ContributionService.
func NewContributionService(configs approvedConfigReader, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ContributionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContributionService{configs: configs, metrics: metrics, validator: validate, logger: logger}
}

// Calculate computes the contribution for one salary against one
// approved bracket.
func (s *ContributionService) Calculate(ctx context.Context, req dto.ContributionRequest) (*dto.ContributionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contribution payload")
	}
	salary := *req.Salary
	if salary < 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, "salary cannot be negative")
	}

	item, err := s.configs.Get(ctx, models.KindInsuranceBracket, req.BracketID)
	if err != nil {
		return nil, err
	}
	if item.Status != models.StatusApproved {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "insurance bracket is not approved")
	}

	var bracket models.InsuranceBracketAttributes
	if err := json.Unmarshal(item.Attributes, &bracket); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode bracket attributes")
	}

	result := CalculateInsuranceContribution(bracket, salary)
	s.metrics.RecordCalculation("insurance_contribution")

	return &dto.ContributionResponse{
		BracketID:   item.ID,
		BracketName: item.Name,
		Salary:      salary,
		Result:      result,
	}, nil
}

// PreviewPayslip locates the approved bracket covering the salary and
// reports the resulting employee-side deduction. A salary no approved
// bracket covers is not an error; the preview simply carries no
// contribution.
func (s *ContributionService) PreviewPayslip(ctx context.Context, req dto.PayslipPreviewRequest) (*dto.PayslipPreviewResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preview payload")
	}
	salary := *req.Salary
	if salary < 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, "salary cannot be negative")
	}

	items, err := s.configs.ListApproved(ctx, models.KindInsuranceBracket)
	if err != nil {
		return nil, err
	}

	preview := &dto.PayslipPreviewResponse{Salary: salary, NetSalary: salary}
	for i := range items {
		var bracket models.InsuranceBracketAttributes
		if err := json.Unmarshal(items[i].Attributes, &bracket); err != nil {
			s.logger.Warn("skipping undecodable bracket", zap.String("id", items[i].ID), zap.Error(err))
			continue
		}
		if salary < bracket.MinSalary || salary > bracket.MaxSalary {
			continue
		}
		result := CalculateInsuranceContribution(bracket, salary)
		preview.BracketID = items[i].ID
		preview.BracketName = items[i].Name
		preview.Contribution = &result
		preview.NetSalary = decimal.NewFromFloat(salary).
			Sub(decimal.NewFromFloat(result.EmployeeContribution)).
			Round(2).InexactFloat64()
		break
	}

	s.metrics.RecordCalculation("payslip_preview")
	return preview, nil
}
