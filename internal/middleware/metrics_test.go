package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"volunteer-api/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	r := gin.New()
	r.Use(Metrics(m, "/health", "/metrics"))
	r.GET("/health", func(c *gin.Context) { c.Status(200) })
	r.GET("/news/:newsId", func(c *gin.Context) { c.Status(200) })

	t.Run("skip paths are not recorded", func(t *testing.T) {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, 0, testutil.CollectAndCount(m.HTTPRequestsTotal))
	})

	t.Run("other requests are recorded under the route pattern", func(t *testing.T) {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/news/abc", nil))
		assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestsTotal))
		assert.Equal(t, float64(1),
			testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/news/:newsId", "2xx")))
	})
}
