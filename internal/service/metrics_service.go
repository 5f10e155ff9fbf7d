package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsSnapshot is a lightweight JSON view of the collected metrics.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	StoreOperations          uint64    `json:"store_operations"`
	StoreFailures            uint64    `json:"store_failures"`
	Computations             uint64    `json:"computations"`
	ScaleCacheHits           uint64    `json:"scale_cache_hits"`
	ScaleCacheMisses         uint64    `json:"scale_cache_misses"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	storeFailures   *prometheus.CounterVec
	computations    *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	scaleCache      *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	storeOpCount         uint64
	storeFailureCount    uint64
	computationCount     uint64
	cacheHitCount        uint64
	cacheMissCount       uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "session_store_duration_seconds",
		Help:    "Latency of session store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	storeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "session_store_failures_total",
		Help: "Session store operations that returned an error",
	}, []string{"operation"})

	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gpa_computations_total",
		Help: "GPA and CGPA computations served",
	}, []string{"kind"})

	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "calculator_sessions_active",
		Help: "Live calculator sessions at the last count",
	})

	scaleCache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grade_scale_cache_lookups_total",
		Help: "Catalogue grade scale cache lookups by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, storeFailures, computations, activeSessions, scaleCache, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeDuration:   storeDuration,
		storeFailures:   storeFailures,
		computations:    computations,
		activeSessions:  activeSessions,
		scaleCache:      scaleCache,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveStoreOperation records session store latency and failures.
func (m *MetricsService) ObserveStoreOperation(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())
	atomic.AddUint64(&m.storeOpCount, 1)
	if err != nil {
		m.storeFailures.WithLabelValues(operation).Inc()
		atomic.AddUint64(&m.storeFailureCount, 1)
	}
}

// RecordComputation counts a GPA ("gpa") or CGPA ("cgpa") computation.
func (m *MetricsService) RecordComputation(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.computations.WithLabelValues(kind).Add(float64(n))
	atomic.AddUint64(&m.computationCount, uint64(n))
}

// SetActiveSessions publishes the live session count.
func (m *MetricsService) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

// RecordScaleCacheLookup counts a catalogue scale cache hit or miss.
func (m *MetricsService) RecordScaleCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.scaleCache.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
		return
	}
	m.scaleCache.WithLabelValues("miss").Inc()
	atomic.AddUint64(&m.cacheMissCount, 1)
}

// Snapshot returns aggregated metrics suitable for a JSON endpoint.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		StoreOperations:          atomic.LoadUint64(&m.storeOpCount),
		StoreFailures:            atomic.LoadUint64(&m.storeFailureCount),
		Computations:             atomic.LoadUint64(&m.computationCount),
		ScaleCacheHits:           atomic.LoadUint64(&m.cacheHitCount),
		ScaleCacheMisses:         atomic.LoadUint64(&m.cacheMissCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
