package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/payroll-admin-api/internal/dto"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

type approvedReaderStub struct {
	items map[string]models.ConfigItem
}

func (s approvedReaderStub) Get(ctx context.Context, kind models.ConfigKind, id string) (*models.ConfigItem, error) {
	item, ok := s.items[id]
	if !ok || item.Kind != kind {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "not found")
	}
	return &item, nil
}

func (s approvedReaderStub) ListApproved(ctx context.Context, kind models.ConfigKind) ([]models.ConfigItem, error) {
	var result []models.ConfigItem
	for _, item := range s.items {
		if item.Kind == kind && item.Status == models.StatusApproved {
			result = append(result, item)
		}
	}
	return result, nil
}

func configItem(t *testing.T, kind models.ConfigKind, name string, status models.ApprovalStatus, attrs interface{}) models.ConfigItem {
	t.Helper()
	encoded, err := json.Marshal(attrs)
	require.NoError(t, err)
	return models.ConfigItem{
		ID:         uuid.NewString(),
		Kind:       kind,
		Name:       name,
		Status:     status,
		Attributes: encoded,
		CreatedBy:  uuid.NewString(),
	}
}

func standardBracket(t *testing.T, status models.ApprovalStatus) models.ConfigItem {
	return configItem(t, models.KindInsuranceBracket, "Standard Bracket", status, models.InsuranceBracketAttributes{
		MinSalary:    5000,
		MaxSalary:    15000,
		EmployeeRate: 11,
		EmployerRate: 18.75,
	})
}

func TestCalculateInsuranceContribution(t *testing.T) {
	bracket := models.InsuranceBracketAttributes{
		MinSalary: 5000, MaxSalary: 15000, EmployeeRate: 11, EmployerRate: 18.75,
	}

	tests := []struct {
		name         string
		salary       float64
		wantEmployee float64
		wantEmployer float64
		wantTotal    float64
		wantValid    bool
	}{
		{name: "inside window", salary: 10000, wantEmployee: 1100, wantEmployer: 1875, wantTotal: 2975, wantValid: true},
		{name: "above window still computes", salary: 20000, wantEmployee: 2200, wantEmployer: 3750, wantTotal: 5950, wantValid: false},
		{name: "below window still computes", salary: 1000, wantEmployee: 110, wantEmployer: 187.5, wantTotal: 297.5, wantValid: false},
		{name: "lower bound inclusive", salary: 5000, wantEmployee: 550, wantEmployer: 937.5, wantTotal: 1487.5, wantValid: true},
		{name: "upper bound inclusive", salary: 15000, wantEmployee: 1650, wantEmployer: 2812.5, wantTotal: 4462.5, wantValid: true},
		{name: "rounds half up at cent", salary: 10000.45, wantEmployee: 1100.05, wantEmployer: 1875.08, wantTotal: 2975.13, wantValid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := CalculateInsuranceContribution(bracket, tc.salary)
			assert.Equal(t, tc.wantEmployee, result.EmployeeContribution)
			assert.Equal(t, tc.wantEmployer, result.EmployerContribution)
			assert.Equal(t, tc.wantTotal, result.TotalContribution)
			assert.Equal(t, tc.wantValid, result.IsValid)
		})
	}
}

func TestContributionServiceCalculate(t *testing.T) {
	bracket := standardBracket(t, models.StatusApproved)
	svc := NewContributionService(approvedReaderStub{items: map[string]models.ConfigItem{bracket.ID: bracket}}, nil, nil, nil)

	resp, err := svc.Calculate(context.Background(), dto.ContributionRequest{BracketID: bracket.ID, Salary: floatPtr(10000)})
	require.NoError(t, err)
	assert.Equal(t, bracket.ID, resp.BracketID)
	assert.Equal(t, "Standard Bracket", resp.BracketName)
	assert.Equal(t, 1100.0, resp.Result.EmployeeContribution)
	assert.Equal(t, 1875.0, resp.Result.EmployerContribution)
	assert.True(t, resp.Result.IsValid)
}

func TestContributionServiceRejectsDraftBracket(t *testing.T) {
	bracket := standardBracket(t, models.StatusDraft)
	svc := NewContributionService(approvedReaderStub{items: map[string]models.ConfigItem{bracket.ID: bracket}}, nil, nil, nil)

	_, err := svc.Calculate(context.Background(), dto.ContributionRequest{BracketID: bracket.ID, Salary: floatPtr(10000)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestContributionServiceUnknownBracket(t *testing.T) {
	svc := NewContributionService(approvedReaderStub{}, nil, nil, nil)
	_, err := svc.Calculate(context.Background(), dto.ContributionRequest{BracketID: uuid.NewString(), Salary: floatPtr(10000)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestContributionServiceNegativeSalary(t *testing.T) {
	bracket := standardBracket(t, models.StatusApproved)
	svc := NewContributionService(approvedReaderStub{items: map[string]models.ConfigItem{bracket.ID: bracket}}, nil, nil, nil)

	_, err := svc.Calculate(context.Background(), dto.ContributionRequest{BracketID: bracket.ID, Salary: floatPtr(-1)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidInput.Code, appErrors.FromError(err).Code)
}

func TestPayslipPreviewMatchesCoveringBracket(t *testing.T) {
	bracket := standardBracket(t, models.StatusApproved)
	svc := NewContributionService(approvedReaderStub{items: map[string]models.ConfigItem{bracket.ID: bracket}}, nil, nil, nil)

	preview, err := svc.PreviewPayslip(context.Background(), dto.PayslipPreviewRequest{Salary: floatPtr(10000)})
	require.NoError(t, err)
	assert.Equal(t, bracket.ID, preview.BracketID)
	require.NotNil(t, preview.Contribution)
	assert.Equal(t, 1100.0, preview.Contribution.EmployeeContribution)
	assert.Equal(t, 8900.0, preview.NetSalary)
}

func TestPayslipPreviewNoCoveringBracket(t *testing.T) {
	bracket := standardBracket(t, models.StatusApproved)
	svc := NewContributionService(approvedReaderStub{items: map[string]models.ConfigItem{bracket.ID: bracket}}, nil, nil, nil)

	preview, err := svc.PreviewPayslip(context.Background(), dto.PayslipPreviewRequest{Salary: floatPtr(50000)})
	require.NoError(t, err)
	assert.Empty(t, preview.BracketID)
	assert.Nil(t, preview.Contribution)
	assert.Equal(t, 50000.0, preview.NetSalary)
}
