package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowHeaders = "Authorization, Content-Type, X-Requested-With, X-Request-ID"
	allowMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	maxAge       = "600"
)

// New builds an allow-list CORS middleware. An empty list means every
// origin is accepted, which is only sensible in development.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[normalize(origin)] = struct{}{}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Vary", "Origin")

		origin := c.GetHeader("Origin")
		switch {
		case origin != "":
			if _, ok := allowed[normalize(origin)]; ok || allowAll {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		case allowAll:
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Max-Age", maxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func normalize(origin string) string {
	return strings.ToLower(strings.TrimRight(origin, "/"))
}
