// Package metrics provides Prometheus metrics for the iplstats service.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	constLabels      prometheus.Labels
	registry         prometheus.Registerer
	gatherer         *prometheus.Registry

	// Reports
	reportLatency  *prometheus.HistogramVec
	reportRequests *prometheus.CounterVec
	reportErrors   *prometheus.CounterVec

	// Read-through cache
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheEvictions prometheus.Counter
	cacheEntries   prometheus.Gauge

	// Dataset snapshot
	datasetMatches      prometheus.Gauge
	datasetDeliveries   prometheus.Gauge
	datasetLoadDuration prometheus.Histogram
	datasetLoadedUnix   prometheus.Gauge

	// Storage and import
	storeQueryLatency *prometheus.HistogramVec
	importRows        *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var current atomic.Pointer[Manager] //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	Configure()
}

// Configure replaces the process-wide collectors with ones built from opts
// on a fresh registry, which keeps the default Go collectors out of
// /healthz. Call it before the health handler is built.
func Configure(opts ...Option) {
	reg := prometheus.NewRegistry()
	m := NewManager(append(opts[:len(opts):len(opts)], WithPrometheusRegistry(reg))...)
	m.gatherer = reg
	current.Store(m)
}

func global() *Manager { return current.Load() }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "iplstats",
		subsystem:        "analytics",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	if buckets == nil {
		buckets = m.histogramBuckets
	}
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.reportLatency = auto.NewHistogramVec(
		m.histogram("report_latency_milliseconds", "Report computation latency in milliseconds", nil),
		[]string{"report"},
	)
	m.reportRequests = auto.NewCounterVec(
		m.counter("report_requests_total", "Total number of report computations requested"),
		[]string{"report"},
	)
	m.reportErrors = auto.NewCounterVec(
		m.counter("report_errors_total", "Report failures by kind (not_found, bad_request, internal)"),
		[]string{"report", "kind"},
	)

	m.cacheHits = auto.NewCounterVec(
		m.counter("cache_hits_total", "Report cache hits"),
		[]string{"report"},
	)
	m.cacheMisses = auto.NewCounterVec(
		m.counter("cache_misses_total", "Report cache misses"),
		[]string{"report"},
	)
	m.cacheEvictions = auto.NewCounter(m.counter("cache_evictions_total", "Report cache entries evicted by size bound or TTL"))
	m.cacheEntries = auto.NewGauge(m.gauge("cache_entries", "Current number of cached report results"))

	m.datasetMatches = auto.NewGauge(m.gauge("dataset_matches", "Matches in the loaded snapshot"))
	m.datasetDeliveries = auto.NewGauge(m.gauge("dataset_deliveries", "Deliveries in the loaded snapshot"))
	m.datasetLoadDuration = auto.NewHistogram(m.histogram("dataset_load_duration_milliseconds", "Time to load and index the dataset snapshot",
		[]float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}))
	m.datasetLoadedUnix = auto.NewGauge(m.gauge("dataset_loaded_unix", "Unix timestamp of the last successful snapshot load"))

	m.storeQueryLatency = auto.NewHistogramVec(
		m.histogram("store_query_latency_milliseconds", "Store operation latency in milliseconds", nil),
		[]string{"backend", "op"},
	)
	m.importRows = auto.NewCounterVec(
		m.counter("import_rows_total", "Rows read during import by dataset and outcome"),
		[]string{"dataset", "outcome"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counter("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogram("http_request_duration_milliseconds", "HTTP request duration in milliseconds", nil),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counter("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counter("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogram("error_latency_milliseconds", "Latency of operations that resulted in errors", nil),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gauge("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gauge("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Report metrics.

// RecordReport records one report computation and its latency.
func RecordReport(report string, latencyMs float64) {
	if !global().enabled {
		return
	}
	global().reportRequests.WithLabelValues(report).Inc()
	global().reportLatency.WithLabelValues(report).Observe(latencyMs)
}

// RecordReportError records a failed report by error kind.
func RecordReportError(report, kind string) {
	if !global().enabled {
		return
	}
	global().reportErrors.WithLabelValues(report, kind).Inc()
}

// Cache metrics.

// RecordCacheHit increments the cache hit counter for report.
func RecordCacheHit(report string) {
	if !global().enabled {
		return
	}
	global().cacheHits.WithLabelValues(report).Inc()
}

// RecordCacheMiss increments the cache miss counter for report.
func RecordCacheMiss(report string) {
	if !global().enabled {
		return
	}
	global().cacheMisses.WithLabelValues(report).Inc()
}

// RecordCacheEviction counts an evicted cache entry.
func RecordCacheEviction() {
	if !global().enabled {
		return
	}
	global().cacheEvictions.Inc()
}

// UpdateCacheEntries sets the current cache size.
func UpdateCacheEntries(n int) {
	if !global().enabled {
		return
	}
	global().cacheEntries.Set(float64(n))
}

// Dataset metrics.

// RecordDatasetLoad records a snapshot load.
func RecordDatasetLoad(matches, deliveries int, durationMs float64) {
	if !global().enabled {
		return
	}
	global().datasetMatches.Set(float64(matches))
	global().datasetDeliveries.Set(float64(deliveries))
	global().datasetLoadDuration.Observe(durationMs)
	global().datasetLoadedUnix.Set(float64(time.Now().Unix()))
}

// Store metrics.

// RecordStoreQuery records the latency of a store operation.
func RecordStoreQuery(backend, op string, latencyMs float64) {
	if !global().enabled {
		return
	}
	global().storeQueryLatency.WithLabelValues(backend, op).Observe(latencyMs)
}

// RecordImportRows adds n rows to the import counter.
func RecordImportRows(dataset, outcome string, n int) {
	if !global().enabled || n <= 0 {
		return
	}
	global().importRows.WithLabelValues(dataset, outcome).Add(float64(n))
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !global().enabled {
		return
	}
	global().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !global().enabled {
		return
	}
	global().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !global().enabled {
		return
	}
	global().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !global().enabled {
		return
	}
	global().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !global().enabled {
		return
	}
	global().errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	global().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	global().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	global().systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval is how often background gauges should be refreshed.
func RefreshInterval() time.Duration {
	return global().refreshInterval
}

// GetRegistry returns the registry behind the process-wide collectors.
func GetRegistry() *prometheus.Registry {
	return global().gatherer
}
