package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/payroll-admin-api/internal/service"
)

// Metrics observes every request on the shared metrics service. Paths
// are recorded by route template, so /payroll-config/:kind/:id stays a
// single series no matter how many configurations exist; requests that
// matched no route collapse into one label to bound cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
