package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/payroll-admin-api/internal/models"
)

func performRBAC(t *testing.T, claims *models.JWTClaims, allowed ...models.EmployeeRole) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/payroll-config/tax-rules", nil)
	c.Request = req
	if claims != nil {
		c.Set(ContextEmployeeKey, claims)
	}

	handled := false
	RBAC(allowed...)(c)
	if !c.IsAborted() {
		handled = true
		c.Status(http.StatusOK)
	}
	if handled {
		assert.Equal(t, http.StatusOK, w.Code)
	}
	return w
}

func TestRBACAllowsListedRole(t *testing.T) {
	w := performRBAC(t, &models.JWTClaims{EmployeeID: "emp-1", Role: models.RoleHRManager}, models.RoleAdmin, models.RoleHRManager)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRBACForbidsOtherRoles(t *testing.T) {
	w := performRBAC(t, &models.JWTClaims{EmployeeID: "emp-1", Role: models.RoleEmployee}, models.RoleAdmin, models.RoleHRManager)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRBACRequiresClaims(t *testing.T) {
	w := performRBAC(t, nil, models.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
