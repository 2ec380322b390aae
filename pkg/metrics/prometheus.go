// Package metrics provides Prometheus metrics for the vitals classification service.
package metrics

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unknownLabel bounds label cardinality for out-of-enum inputs.
const unknownLabel = "unknown"

// DefaultLatencyBucketsMS are the request duration buckets, in milliseconds.
var DefaultLatencyBucketsMS = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}

// Manager owns every collector and the registry they live on.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Classification metrics
	scoreClassifications     *prometheus.CounterVec
	biomarkerClassifications *prometheus.CounterVec
	trendVerdicts            *prometheus.CounterVec
	polarityDefaults         prometheus.Counter
	panelSize                prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var global atomic.Pointer[Manager]

func init() { //nolint:gochecknoinits // package-level recorders need a manager before Init
	global.Store(NewManager())
}

// Init replaces the global manager, e.g. to apply a configured namespace.
// Collectors recorded before Init are discarded with the old registry.
func Init(opts ...Option) *Manager {
	m := NewManager(opts...)
	global.Store(m)
	return m
}

// NewManager creates a manager on its own registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vitals",
		subsystem:        "classifier",
		histogramBuckets: DefaultLatencyBucketsMS,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scoreClassifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_classifications_total",
		Help:      "Aggregate scores classified, by band",
	}, []string{"band"})

	m.biomarkerClassifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "biomarker_classifications_total",
		Help:      "Biomarker readings classified, by status",
	}, []string{"status"})

	m.trendVerdicts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trend_verdicts_total",
		Help:      "Trend labels emitted (Improving, Worsening, Stable)",
	}, []string{"label"})

	m.polarityDefaults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "polarity_default_total",
		Help:      "Readings whose id was absent from the polarity table and defaulted to higher-is-better",
	})

	m.panelSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "panel_size_readings",
		Help:      "Number of readings per classified panel",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of errors by endpoint",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// Registry returns the registry this manager registers on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// RecordScoreClassification counts a classified score.
func RecordScoreClassification(band string) {
	global.Load().scoreClassifications.WithLabelValues(band).Inc()
}

// RecordBiomarkerClassification counts a classified reading. known=false
// collapses the status label to "unknown".
func RecordBiomarkerClassification(status string, known bool) {
	if !known {
		status = unknownLabel
	}
	global.Load().biomarkerClassifications.WithLabelValues(status).Inc()
}

// RecordTrendVerdict counts an emitted trend label.
func RecordTrendVerdict(label string) {
	global.Load().trendVerdicts.WithLabelValues(label).Inc()
}

// RecordPolarityDefault counts a reading that fell back to higher-is-better.
func RecordPolarityDefault() {
	global.Load().polarityDefaults.Inc()
}

// RecordPanelSize observes the size of a classified panel.
func RecordPanelSize(n int) {
	global.Load().panelSize.Observe(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	global.Load().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	global.Load().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	global.Load().errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	global.Load().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	global.Load().systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry of the global manager.
func GetRegistry() *prometheus.Registry {
	return global.Load().registry
}

// CounterValue sums every series of the named metric family on the global
// registry. It is meant for tests and the stats endpoint.
func CounterValue(name string) (float64, error) {
	families, err := GetRegistry().Gather()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrGather, err)
	}
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
		}
	}
	return total, nil
}
