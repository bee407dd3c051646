//go:build unit

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fairway-booking/internal/infra/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics(t *testing.T) {
	t.Run("booking counters appear in the exposition", func(t *testing.T) {
		m := metrics.New()
		m.BookingCreated("INDOOR")
		m.BookingCreated("INDOOR")
		m.BookingCreated("ACCOMPANIED")
		m.BookingCancelled()
		m.BookingConflict()

		body := scrape(t, m)
		assert.Contains(t, body, `fairway_bookings_created_total{type="INDOOR"} 2`)
		assert.Contains(t, body, `fairway_bookings_created_total{type="ACCOMPANIED"} 1`)
		assert.Contains(t, body, "fairway_bookings_cancelled_total 1")
		assert.Contains(t, body, "fairway_booking_conflicts_total 1")
	})

	t.Run("http observations are labelled", func(t *testing.T) {
		m := metrics.New()
		m.ObserveHTTP(http.MethodGet, "/api/bookings/indoor", http.StatusOK, 25*time.Millisecond)

		body := scrape(t, m)
		assert.Contains(t, body, `fairway_http_requests_total{method="GET",path="/api/bookings/indoor",status="200"} 1`)
		assert.Contains(t, body, "fairway_http_request_duration_seconds_bucket")
	})

	t.Run("cache counters", func(t *testing.T) {
		m := metrics.New()
		m.CacheHit()
		m.CacheMiss()
		m.CacheMiss()

		body := scrape(t, m)
		assert.Contains(t, body, "fairway_cache_hits_total 1")
		assert.Contains(t, body, "fairway_cache_misses_total 2")
	})

	t.Run("reset zeroes everything but keeps the metrics registered", func(t *testing.T) {
		m := metrics.New()
		m.BookingCreated("INDOOR")
		m.BookingCancelled()
		m.CacheHit()
		m.ObserveHTTP(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

		m.Reset()

		body := scrape(t, m)
		assert.NotContains(t, body, `type="INDOOR"`)
		assert.Contains(t, body, "fairway_bookings_cancelled_total 0")
		assert.Contains(t, body, "fairway_cache_hits_total 0")

		// Counting still works after the swap.
		m.BookingCancelled()
		body = scrape(t, m)
		assert.Contains(t, body, "fairway_bookings_cancelled_total 1")
	})
}
