package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
	"github.com/noah-isme/payroll-admin-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	service authService
}

// NewAuthHandler builds a new handler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Authenticate an employee and issue an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()
	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Me godoc
// @Summary Return the authenticated employee's claims
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, models.EmployeeInfo{
		ID:       claims.EmployeeID,
		Email:    claims.Email,
		FullName: claims.FullName,
		Role:     claims.Role,
	}, nil)
}
