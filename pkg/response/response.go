package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
	"github.com/noah-isme/payroll-admin-api/pkg/middleware/requestid"
)

// Envelope is the response contract shared by every endpoint. The
// request id rides along on errors so clients can quote it in support
// requests.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
	RequestID  string                 `json:"request_id,omitempty"`
}

// JSON sends a success envelope with optional pagination metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination, meta ...map[string]interface{}) {
	env := Envelope{Data: data, Pagination: pagination}
	if len(meta) > 0 && meta[0] != nil {
		env.Meta = meta[0]
	}
	write(c, status, env)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data, nil)
}

// Error renders err through the domain error taxonomy.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	write(c, appErr.Status, Envelope{Error: appErr, RequestID: requestid.Value(c)})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Payroll data is sensitive, so responses are never cacheable.
func write(c *gin.Context, status int, env Envelope) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, env)
}
