package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Calculation metrics
	CalculationsTotal prometheus.Counter

	// Holiday provider metrics
	HolidayResults  *prometheus.CounterVec
	FetchAttempts   *prometheus.CounterVec
	BreakerState    prometheus.Gauge
	CacheAgeSeconds prometheus.Gauge
	FallbackServed  prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests int64
	TotalErrors   int64
	TotalDuration float64 // sum of all request durations
	RequestCount  int64   // count for averaging
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "businesstime_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "businesstime_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "businesstime_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "businesstime_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000},
			},
			[]string{"method", "path"},
		),

		// Calculation metrics
		CalculationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "businesstime_calculations_total",
				Help: "Total number of business-time calculations",
			},
		),

		// Holiday provider metrics
		HolidayResults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "businesstime_holiday_results_total",
				Help: "Holiday lookups by data source and provider status",
			},
			[]string{"source", "status"},
		),
		FetchAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "businesstime_holiday_fetch_attempts_total",
				Help: "Individual holiday source fetch attempts by outcome",
			},
			[]string{"outcome"},
		),
		BreakerState: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "businesstime_holiday_breaker_state",
				Help: "Holiday source circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
		),
		CacheAgeSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "businesstime_holiday_cache_age_seconds",
				Help: "Age of the cached holiday data in seconds",
			},
		),
		FallbackServed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "businesstime_holiday_fallback_served_total",
				Help: "Responses served from the embedded fallback dataset",
			},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "businesstime_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordCalculation increments the calculation counter
func (m *Metrics) RecordCalculation() {
	m.CalculationsTotal.Inc()
}

// RecordHolidayResult records the source and status of a holiday lookup
func (m *Metrics) RecordHolidayResult(source, status string) {
	m.HolidayResults.WithLabelValues(source, status).Inc()
}

// RecordFetchAttempt records one holiday source fetch attempt
func (m *Metrics) RecordFetchAttempt(outcome string) {
	m.FetchAttempts.WithLabelValues(outcome).Inc()
}

// SetBreakerState sets the circuit breaker state gauge
func (m *Metrics) SetBreakerState(state float64) {
	m.BreakerState.Set(state)
}

// SetCacheAge sets the holiday cache age gauge
func (m *Metrics) SetCacheAge(age time.Duration) {
	m.CacheAgeSeconds.Set(age.Seconds())
}

// RecordFallbackServed increments the fallback dataset counter
func (m *Metrics) RecordFallbackServed() {
	m.FallbackServed.Inc()
}

// Snapshot returns current aggregate values for the JSON health endpoint
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
