package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/payroll-admin-api/internal/dto"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
	"github.com/noah-isme/payroll-admin-api/pkg/response"
)

type contributionCalculator interface {
	Calculate(ctx context.Context, req dto.ContributionRequest) (*dto.ContributionResponse, error)
	PreviewPayslip(ctx context.Context, req dto.PayslipPreviewRequest) (*dto.PayslipPreviewResponse, error)
}

type terminationCalculator interface {
	Calculate(ctx context.Context, req dto.TerminationRequest) (*models.EntitlementResult, error)
}

// CalculationHandler serves the deterministic payroll calculators.
type CalculationHandler struct {
	contributions contributionCalculator
	terminations  terminationCalculator
}

// NewCalculationHandler builds a new handler.
func NewCalculationHandler(contributions contributionCalculator, terminations terminationCalculator) *CalculationHandler {
	return &CalculationHandler{contributions: contributions, terminations: terminations}
}

// InsuranceContribution godoc
// @Summary Calculate insurance contributions for a salary against a bracket
// @Tags Calculations
// @Accept json
// @Produce json
// @Param payload body dto.ContributionRequest true "Calculation input"
// @Success 200 {object} response.Envelope
// @Router /calculations/insurance-contribution [post]
func (h *CalculationHandler) InsuranceContribution(c *gin.Context) {
	var req dto.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid calculation payload"))
		return
	}
	result, err := h.contributions.Calculate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// TerminationEntitlements godoc
// @Summary Calculate termination entitlements from approved benefits
// @Tags Calculations
// @Accept json
// @Produce json
// @Param payload body dto.TerminationRequest true "Calculation input"
// @Success 200 {object} response.Envelope
// @Router /calculations/termination-entitlements [post]
func (h *CalculationHandler) TerminationEntitlements(c *gin.Context) {
	var req dto.TerminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid calculation payload"))
		return
	}
	result, err := h.terminations.Calculate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// PayslipPreview godoc
// @Summary Preview net pay using the first approved bracket covering the salary
// @Tags Calculations
// @Accept json
// @Produce json
// @Param payload body dto.PayslipPreviewRequest true "Preview input"
// @Success 200 {object} response.Envelope
// @Router /calculations/payslip-preview [post]
func (h *CalculationHandler) PayslipPreview(c *gin.Context) {
	var req dto.PayslipPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preview payload"))
		return
	}
	result, err := h.contributions.PreviewPayslip(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
