package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveRequest("GET", "/series/{id}", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/series/{id}", 200, 7*time.Millisecond)
	m.ObserveRequest("POST", "/series", 401, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/series/{id}", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/series", "401")))
}

func TestObserveStorage(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveStorage("create_series", nil, time.Millisecond)
	m.ObserveStorage("create_series", errors.New("fk violation"), time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StorageOperationsTotal.WithLabelValues("create_series", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StorageOperationsTotal.WithLabelValues("create_series", "error")))
}

func TestObserveAuth(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveAuth("guest")
	m.ObserveAuth("guest")
	m.ObserveAuth("authenticated")
	m.ObserveAuth("rejected")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.AuthResolutionsTotal.WithLabelValues("guest")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuthResolutionsTotal.WithLabelValues("rejected")))
}

func TestHTTPMiddleware(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	handler := m.HTTPMiddleware(func(r *http.Request) string { return "/fixed" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/whatever/123", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/fixed", "418")))
}

func TestMetricsHandler_Exposition(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveAuth("guest")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "showbase_auth_resolutions_total"))
}
