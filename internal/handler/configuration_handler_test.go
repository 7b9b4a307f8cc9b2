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
	"github.com/noah-isme/payroll-admin-api/internal/middleware"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

type lifecycleServiceMock struct {
	createResp *models.ConfigItem
	createErr  error
	getResp    *models.ConfigItem
	getErr     error
	approveErr error
	deleteErr  error

	lastKind models.ConfigKind
}

func (m *lifecycleServiceMock) Create(ctx context.Context, kind models.ConfigKind, req dto.CreateConfigRequest, actor *models.JWTClaims) (*models.ConfigItem, error) {
	m.lastKind = kind
	return m.createResp, m.createErr
}

func (m *lifecycleServiceMock) Get(ctx context.Context, kind models.ConfigKind, id string) (*models.ConfigItem, error) {
	m.lastKind = kind
	return m.getResp, m.getErr
}

func (m *lifecycleServiceMock) List(ctx context.Context, kind models.ConfigKind, query dto.ListConfigQuery) ([]models.ConfigItem, *models.Pagination, error) {
	m.lastKind = kind
	return []models.ConfigItem{}, &models.Pagination{Page: 1, PageSize: 50}, nil
}

func (m *lifecycleServiceMock) Update(ctx context.Context, kind models.ConfigKind, id string, req dto.UpdateConfigRequest, actor *models.JWTClaims) (*models.ConfigItem, error) {
	m.lastKind = kind
	return m.getResp, m.getErr
}

func (m *lifecycleServiceMock) Approve(ctx context.Context, kind models.ConfigKind, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*models.ConfigItem, error) {
	m.lastKind = kind
	if m.approveErr != nil {
		return nil, m.approveErr
	}
	return m.getResp, nil
}

func (m *lifecycleServiceMock) Reject(ctx context.Context, kind models.ConfigKind, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*models.ConfigItem, error) {
	m.lastKind = kind
	return m.getResp, nil
}

func (m *lifecycleServiceMock) Delete(ctx context.Context, kind models.ConfigKind, id string, actor *models.JWTClaims) error {
	m.lastKind = kind
	return m.deleteErr
}

func testContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextEmployeeKey, &models.JWTClaims{EmployeeID: "emp-1", Role: models.RoleAdmin})
	return c, w
}

func TestConfigurationHandlerCreateResolvesKind(t *testing.T) {
	mock := &lifecycleServiceMock{createResp: &models.ConfigItem{ID: "cfg-1", Kind: models.KindTaxRule, Status: models.StatusDraft}}
	handler := NewConfigurationHandler(mock)

	rate := 15.0
	c, w := testContext(t, http.MethodPost, "/payroll-config/tax-rules", dto.CreateConfigRequest{Name: "VAT", Rate: &rate})
	c.Params = gin.Params{{Key: "kind", Value: "tax-rules"}}

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.KindTaxRule, mock.lastKind)
}

func TestConfigurationHandlerUnknownKindSlug(t *testing.T) {
	handler := NewConfigurationHandler(&lifecycleServiceMock{})

	c, w := testContext(t, http.MethodGet, "/payroll-config/holiday-calendars", nil)
	c.Params = gin.Params{{Key: "kind", Value: "holiday-calendars"}}

	handler.List(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfigurationHandlerCreateInvalidBody(t *testing.T) {
	handler := NewConfigurationHandler(&lifecycleServiceMock{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/payroll-config/tax-rules", bytes.NewReader([]byte(`not-json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "kind", Value: "tax-rules"}}

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfigurationHandlerApprovePropagatesStatus(t *testing.T) {
	mock := &lifecycleServiceMock{approveErr: appErrors.ErrSelfApproval}
	handler := NewConfigurationHandler(mock)

	c, w := testContext(t, http.MethodPost, "/payroll-config/insurance-brackets/cfg-1/approve", dto.DecisionRequest{ApproverEmployeeID: "emp-1"})
	c.Params = gin.Params{{Key: "kind", Value: "insurance-brackets"}, {Key: "id", Value: "cfg-1"}}

	handler.Approve(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, appErrors.ErrSelfApproval.Code, envelope.Error.Code)
}

func TestConfigurationHandlerDeleteNoContent(t *testing.T) {
	handler := NewConfigurationHandler(&lifecycleServiceMock{})

	c, w := testContext(t, http.MethodDelete, "/payroll-config/allowances/cfg-1", nil)
	c.Params = gin.Params{{Key: "kind", Value: "allowances"}, {Key: "id", Value: "cfg-1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
}
