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

type lifecycleService interface {
	Create(ctx context.Context, kind models.ConfigKind, req dto.CreateConfigRequest, actor *models.JWTClaims) (*models.ConfigItem, error)
	Get(ctx context.Context, kind models.ConfigKind, id string) (*models.ConfigItem, error)
	List(ctx context.Context, kind models.ConfigKind, query dto.ListConfigQuery) ([]models.ConfigItem, *models.Pagination, error)
	Update(ctx context.Context, kind models.ConfigKind, id string, req dto.UpdateConfigRequest, actor *models.JWTClaims) (*models.ConfigItem, error)
	Approve(ctx context.Context, kind models.ConfigKind, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*models.ConfigItem, error)
	Reject(ctx context.Context, kind models.ConfigKind, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*models.ConfigItem, error)
	Delete(ctx context.Context, kind models.ConfigKind, id string, actor *models.JWTClaims) error
}

// ConfigurationHandler exposes the governance endpoints for every
// configuration kind through one kind-parameterized route family.
type ConfigurationHandler struct {
	service lifecycleService
}

// NewConfigurationHandler builds a new handler.
func NewConfigurationHandler(service lifecycleService) *ConfigurationHandler {
	return &ConfigurationHandler{service: service}
}

func kindFromPath(c *gin.Context) (models.ConfigKind, bool) {
	kind, ok := models.ConfigKindFromSlug(c.Param("kind"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown configuration kind"))
		return "", false
	}
	return kind, true
}

// Create godoc
// @Summary Create a configuration item as DRAFT
// @Tags Payroll Configuration
// @Accept json
// @Produce json
// @Param kind path string true "Configuration kind slug"
// @Param payload body dto.CreateConfigRequest true "Configuration payload"
// @Success 201 {object} response.Envelope
// @Router /payroll-config/{kind} [post]
func (h *ConfigurationHandler) Create(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	var req dto.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid configuration payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), kind, req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// List godoc
// @Summary List configuration items of a kind
// @Tags Payroll Configuration
// @Produce json
// @Param kind path string true "Configuration kind slug"
// @Param status query string false "Status filter"
// @Success 200 {object} response.Envelope
// @Router /payroll-config/{kind} [get]
func (h *ConfigurationHandler) List(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	var query dto.ListConfigQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list query"))
		return
	}
	items, pagination, err := h.service.List(c.Request.Context(), kind, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get a configuration item
// @Tags Payroll Configuration
// @Produce json
// @Param kind path string true "Configuration kind slug"
// @Param id path string true "Item id"
// @Success 200 {object} response.Envelope
// @Router /payroll-config/{kind}/{id} [get]
func (h *ConfigurationHandler) Get(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Update godoc
// @Summary Update a DRAFT configuration item
// @Tags Payroll Configuration
// @Accept json
// @Produce json
// @Param kind path string true "Configuration kind slug"
// @Param id path string true "Item id"
// @Param payload body dto.UpdateConfigRequest true "Partial payload"
// @Success 200 {object} response.Envelope
// @Router /payroll-config/{kind}/{id} [patch]
func (h *ConfigurationHandler) Update(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid configuration payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), kind, c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Approve godoc
// @Summary Approve a DRAFT configuration item
// @Tags Payroll Configuration
// @Accept json
// @Produce json
// @Param kind path string true "Configuration kind slug"
// @Param id path string true "Item id"
// @Param payload body dto.DecisionRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /payroll-config/{kind}/{id}/approve [post]
func (h *ConfigurationHandler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

// Reject godoc
// @Summary Reject a DRAFT configuration item
// @Tags Payroll Configuration
// @Accept json
// @Produce json
// @Param kind path string true "Configuration kind slug"
// @Param id path string true "Item id"
// @Param payload body dto.DecisionRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /payroll-config/{kind}/{id}/reject [post]
func (h *ConfigurationHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

func (h *ConfigurationHandler) decide(c *gin.Context, op func(context.Context, models.ConfigKind, string, dto.DecisionRequest, *models.JWTClaims) (*models.ConfigItem, error)) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}
	item, err := op(c.Request.Context(), kind, c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete a DRAFT configuration item
// @Tags Payroll Configuration
// @Param kind path string true "Configuration kind slug"
// @Param id path string true "Item id"
// @Success 204
// @Router /payroll-config/{kind}/{id} [delete]
func (h *ConfigurationHandler) Delete(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), kind, c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
