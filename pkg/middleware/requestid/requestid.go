package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Header carries the request id on both requests and responses.
	Header     = "X-Request-ID"
	contextKey = "request_id"
)

// Middleware tags every request with an id, honoring one supplied by
// the caller so ids stay stable across proxies. The id is echoed on
// the response and carried into logs and error envelopes.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(Header)
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.NewString()
		}

		c.Set(contextKey, reqID)
		c.Writer.Header().Set(Header, reqID)

		c.Next()
	}
}

// Value returns the request id stored in the Gin context, or "".
func Value(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
