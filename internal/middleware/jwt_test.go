package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

type validatorStub struct {
	claims *models.JWTClaims
}

func (v validatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good-token" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return v.claims, nil
}

func performJWT(t *testing.T, header string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/company-settings", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c.Request = req
	JWT(validatorStub{claims: &models.JWTClaims{EmployeeID: "emp-1", Role: models.RoleAdmin}})(c)
	return c, w
}

func TestJWTStoresClaims(t *testing.T) {
	c, _ := performJWT(t, "Bearer good-token")
	require.False(t, c.IsAborted())
	value, exists := c.Get(ContextEmployeeKey)
	require.True(t, exists)
	claims := value.(*models.JWTClaims)
	assert.Equal(t, "emp-1", claims.EmployeeID)
}

func TestJWTMissingHeader(t *testing.T) {
	c, w := performJWT(t, "")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMalformedHeader(t *testing.T) {
	c, w := performJWT(t, "Token good-token")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTInvalidToken(t *testing.T) {
	c, w := performJWT(t, "Bearer bad-token")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
