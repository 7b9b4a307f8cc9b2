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

type settingsService interface {
	Get(ctx context.Context) (*models.CompanySettings, error)
	Update(ctx context.Context, req dto.UpdateCompanySettingsRequest, actor *models.JWTClaims) (*models.CompanySettings, error)
	Approve(ctx context.Context, req dto.DecisionRequest, actor *models.JWTClaims) (*models.CompanySettings, error)
	Reject(ctx context.Context, req dto.DecisionRequest, actor *models.JWTClaims) (*models.CompanySettings, error)
}

// SettingsHandler exposes the singleton company settings record.
type SettingsHandler struct {
	service settingsService
}

// NewSettingsHandler builds a new handler.
func NewSettingsHandler(service settingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get godoc
// @Summary Get company settings, materializing defaults on first read
// @Tags Company Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /company-settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Update godoc
// @Summary Update company settings while DRAFT
// @Tags Company Settings
// @Accept json
// @Produce json
// @Param payload body dto.UpdateCompanySettingsRequest true "Partial settings payload"
// @Success 200 {object} response.Envelope
// @Router /company-settings [patch]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateCompanySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	settings, err := h.service.Update(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Approve godoc
// @Summary Approve the DRAFT company settings
// @Tags Company Settings
// @Accept json
// @Produce json
// @Param payload body dto.DecisionRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /company-settings/approve [post]
func (h *SettingsHandler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

// Reject godoc
// @Summary Reject the DRAFT company settings
// @Tags Company Settings
// @Accept json
// @Produce json
// @Param payload body dto.DecisionRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /company-settings/reject [post]
func (h *SettingsHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

func (h *SettingsHandler) decide(c *gin.Context, op func(context.Context, dto.DecisionRequest, *models.JWTClaims) (*models.CompanySettings, error)) {
	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}
	settings, err := op(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}
