// Package metrics provides Prometheus metrics for the responsibility
// performance service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Engine metrics.
	metricComputations    *prometheus.CounterVec
	normalizationFailures *prometheus.CounterVec
	recurrenceRejections  prometheus.Counter
	sortRequests          *prometheus.CounterVec
	unitResolutions       *prometheus.CounterVec
	duplicateSubmissions  prometheus.Counter
	recordsCreated        prometheus.Counter

	// Operational gauges.
	catalogSize prometheus.Gauge
	recordCount prometheus.Gauge

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager with its own registry, kept off the default registry so
// Go runtime collectors don't leak into the scrape.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tally",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initCollectors()
	return m
}

func (m *Manager) initCollectors() {
	factory := func(name, help string) prometheus.Opts {
		return prometheus.Opts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
	}

	m.metricComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts(factory("metric_computations_total", "Metric computations by resulting band.")),
		[]string{"band"},
	)
	m.normalizationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts(factory("normalization_failures_total", "Raw values rejected by the normalizer, by failure kind.")),
		[]string{"kind"},
	)
	m.recurrenceRejections = prometheus.NewCounter(
		prometheus.CounterOpts(factory("recurrence_rejections_total", "Recurrence specs rejected by validation.")),
	)
	m.sortRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts(factory("sort_requests_total", "Sort requests by key and direction.")),
		[]string{"key", "direction"},
	)
	m.unitResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts(factory("unit_resolutions_total", "Free-text unit resolutions by outcome.")),
		[]string{"outcome"},
	)
	m.duplicateSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts(factory("duplicate_submissions_total", "Record submissions acknowledged as duplicates.")),
	)
	m.recordsCreated = prometheus.NewCounter(
		prometheus.CounterOpts(factory("records_created_total", "Responsibility records created.")),
	)
	m.catalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts(factory("catalog_size", "Number of units in the performance catalog.")),
	)
	m.recordCount = prometheus.NewGauge(
		prometheus.GaugeOpts(factory("record_count", "Responsibility records currently stored.")),
	)
	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts(factory("http_requests_total", "HTTP requests by endpoint, method and status.")),
		[]string{"endpoint", "method", "status"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method"},
	)

	m.registry.MustRegister(
		m.metricComputations,
		m.normalizationFailures,
		m.recurrenceRejections,
		m.sortRequests,
		m.unitResolutions,
		m.duplicateSubmissions,
		m.recordsCreated,
		m.catalogSize,
		m.recordCount,
		m.httpRequests,
		m.httpRequestDuration,
	)
}

// Handler exposes the scrape endpoint for the global registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(globalManager.registry, promhttp.HandlerOpts{})
}

// Package-level recording helpers delegating to the global manager.

func RecordMetricComputation(band string) {
	if globalManager.enabled {
		globalManager.metricComputations.WithLabelValues(band).Inc()
	}
}

func RecordNormalizationFailure(kind string) {
	if globalManager.enabled {
		globalManager.normalizationFailures.WithLabelValues(kind).Inc()
	}
}

func RecordRecurrenceRejection() {
	if globalManager.enabled {
		globalManager.recurrenceRejections.Inc()
	}
}

func RecordSortRequest(key, direction string) {
	if globalManager.enabled {
		globalManager.sortRequests.WithLabelValues(key, direction).Inc()
	}
}

func RecordUnitResolution(outcome string) {
	if globalManager.enabled {
		globalManager.unitResolutions.WithLabelValues(outcome).Inc()
	}
}

func RecordDuplicateSubmission() {
	if globalManager.enabled {
		globalManager.duplicateSubmissions.Inc()
	}
}

func RecordRecordCreated() {
	if globalManager.enabled {
		globalManager.recordsCreated.Inc()
	}
}

func UpdateCatalogSize(n int) {
	if globalManager.enabled {
		globalManager.catalogSize.Set(float64(n))
	}
}

func UpdateRecordCount(n int) {
	if globalManager.enabled {
		globalManager.recordCount.Set(float64(n))
	}
}

func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
	}
}
