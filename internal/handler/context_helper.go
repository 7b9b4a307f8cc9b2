package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/payroll-admin-api/internal/middleware"
	"github.com/noah-isme/payroll-admin-api/internal/models"
)

// claimsFromContext returns the authenticated employee's claims as
// stored by the JWT middleware, or nil when the request is anonymous
// or the stored value has an unexpected type.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, ok := c.Get(middleware.ContextEmployeeKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}
