package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"volunteer-api/internal/metrics"
)

// Metrics returns a middleware that records HTTP metrics. Paths listed in
// skipPaths (probes, the scrape endpoint itself) are not recorded.
func Metrics(m *metrics.Metrics, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		duration := time.Since(start)
		m.RecordHTTPRequest(
			c.Request.Method,
			c.FullPath(), // Route pattern, not the actual path
			c.Writer.Status(),
			duration,
		)
	}
}
