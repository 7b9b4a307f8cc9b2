package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/payroll-admin-api/internal/dto"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

type contributionMock struct {
	resp       *dto.ContributionResponse
	previewErr error
	err        error
}

func (m *contributionMock) Calculate(ctx context.Context, req dto.ContributionRequest) (*dto.ContributionResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *contributionMock) PreviewPayslip(ctx context.Context, req dto.PayslipPreviewRequest) (*dto.PayslipPreviewResponse, error) {
	if m.previewErr != nil {
		return nil, m.previewErr
	}
	return &dto.PayslipPreviewResponse{Salary: *req.Salary, NetSalary: *req.Salary}, nil
}

type terminationMock struct {
	resp *models.EntitlementResult
	err  error
}

func (m *terminationMock) Calculate(ctx context.Context, req dto.TerminationRequest) (*models.EntitlementResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func TestCalculationHandlerInsuranceContribution(t *testing.T) {
	salary := 10000.0
	handler := NewCalculationHandler(&contributionMock{resp: &dto.ContributionResponse{
		BracketID: "cfg-1",
		Salary:    salary,
		Result:    models.ContributionResult{EmployeeContribution: 1100, EmployerContribution: 1875, TotalContribution: 2975, IsValid: true},
	}}, &terminationMock{})

	c, w := testContext(t, http.MethodPost, "/calculations/insurance-contribution", dto.ContributionRequest{BracketID: "cfg-1", Salary: &salary})
	handler.InsuranceContribution(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.ContributionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 2975.0, envelope.Data.Result.TotalContribution)
	assert.True(t, envelope.Data.Result.IsValid)
}

func TestCalculationHandlerContributionErrorStatus(t *testing.T) {
	salary := 10000.0
	handler := NewCalculationHandler(&contributionMock{err: appErrors.Clone(appErrors.ErrInvalidState, "insurance bracket is not approved")}, &terminationMock{})

	c, w := testContext(t, http.MethodPost, "/calculations/insurance-contribution", dto.ContributionRequest{BracketID: "cfg-1", Salary: &salary})
	handler.InsuranceContribution(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCalculationHandlerTerminationEntitlements(t *testing.T) {
	salary := 6000.0
	years := 4.0
	handler := NewCalculationHandler(&contributionMock{}, &terminationMock{resp: &models.EntitlementResult{
		Items:            []models.EntitlementLine{{BenefitID: "cfg-2", CalculatedAmount: 12000}},
		TotalEntitlement: 12000,
	}})

	c, w := testContext(t, http.MethodPost, "/calculations/termination-entitlements", dto.TerminationRequest{LastSalary: &salary, YearsOfService: &years})
	handler.TerminationEntitlements(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.EntitlementResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 12000.0, envelope.Data.TotalEntitlement)
}

func TestCalculationHandlerInvalidBody(t *testing.T) {
	handler := NewCalculationHandler(&contributionMock{}, &terminationMock{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/calculations/termination-entitlements", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.TerminationEntitlements(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
