package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	before := counterValue(t, bookingTransitions.WithLabelValues("WAITING", "APPROVED"))
	IncBookingTransition("WAITING", "APPROVED")
	after := counterValue(t, bookingTransitions.WithLabelValues("WAITING", "APPROVED"))
	assert.Equal(t, before+1, after)

	assert.NotPanics(t, IncRateLimited)
}

func TestGinMiddlewareUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Register()

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/v1/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", Handler())

	counter := httpRequests.WithLabelValues("/v1/items/:id", http.MethodGet, "200")
	before := counterValue(t, counter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/items/9c1f0a4e-2b7d-4c55-8a51-0f3d2e1b6a77", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before+1, counterValue(t, counter))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shareit_http_requests_total")
}
