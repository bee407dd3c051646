package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build isolated instances and
// the reset endpoint never clears collectors registered by libraries.
type Metrics struct {
	mu       sync.RWMutex
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	bookingsCreated   *prometheus.CounterVec
	bookingsCancelled prometheus.Counter
	bookingConflicts  prometheus.Counter

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fairway",
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, path and status.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fairway",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and path.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		bookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fairway",
				Name:      "bookings_created_total",
				Help:      "Bookings created by type.",
			},
			[]string{"type"},
		),
		bookingsCancelled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fairway",
				Name:      "bookings_cancelled_total",
				Help:      "Bookings cancelled.",
			},
		),
		bookingConflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fairway",
				Name:      "booking_conflicts_total",
				Help:      "Booking attempts rejected because a slot was taken.",
			},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fairway",
				Name:      "cache_hits_total",
				Help:      "Cache lookups served without a database round trip.",
			},
		),
		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fairway",
				Name:      "cache_misses_total",
				Help:      "Cache lookups that fell through to the database.",
			},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.bookingsCreated,
		m.bookingsCancelled,
		m.bookingConflicts,
		m.cacheHits,
		m.cacheMisses,
	)
	return m
}

func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) BookingCreated(bookingType string) {
	m.bookingsCreated.WithLabelValues(bookingType).Inc()
}

func (m *Metrics) BookingCancelled() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.bookingsCancelled.Inc()
}

func (m *Metrics) BookingConflict() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.bookingConflicts.Inc()
}

func (m *Metrics) CacheHit() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.cacheMisses.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Reset zeroes every counter and histogram without unregistering them.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.httpRequests.Reset()
	m.httpDuration.Reset()
	m.bookingsCreated.Reset()

	// Plain counters cannot be zeroed in place; swap in fresh ones.
	m.registry.Unregister(m.bookingsCancelled)
	m.registry.Unregister(m.bookingConflicts)
	m.registry.Unregister(m.cacheHits)
	m.registry.Unregister(m.cacheMisses)

	m.bookingsCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairway", Name: "bookings_cancelled_total", Help: "Bookings cancelled.",
	})
	m.bookingConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairway", Name: "booking_conflicts_total", Help: "Booking attempts rejected because a slot was taken.",
	})
	m.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairway", Name: "cache_hits_total", Help: "Cache lookups served without a database round trip.",
	})
	m.cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairway", Name: "cache_misses_total", Help: "Cache lookups that fell through to the database.",
	})
	m.registry.MustRegister(m.bookingsCancelled, m.bookingConflicts, m.cacheHits, m.cacheMisses)
}
