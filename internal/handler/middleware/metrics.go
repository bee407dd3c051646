package middleware

import (
	"time"

	"fairway-booking/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records per-route counters and latency. The route
// template (":id" instead of the concrete value) keeps label cardinality
// bounded.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
