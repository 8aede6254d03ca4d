package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kindredgraph/kindred/internal/metrics"
)

// PrometheusMiddleware records HTTP request duration and count. The WebSocket
// upgrade is counted but not timed, since its duration is the session length.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())

		path := c.FullPath() // route pattern, not actual path (avoids cardinality explosion)
		if path == "" {
			path = "unknown"
		}

		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if strings.HasSuffix(path, "/ws") {
			return
		}

		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func isProbe(path string) bool {
	return strings.HasSuffix(path, "/health") || strings.HasSuffix(path, "/ready")
}
