package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clusterkit/rendezvous/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric registration is deferred until first use so collectors can be
// constructed freely (e.g., in tests) without polluting a registry.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	assignTotal      *prometheus.CounterVec
	assignDuration   *prometheus.HistogramVec
	assignNodes      *prometheus.HistogramVec
	analysisDuration prometheus.Histogram
	analysisSamples  prometheus.Histogram
	validationErrors *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "rendezvous" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "rendezvous"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.assignTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assigner",
			Name:      "assignments_total",
			Help:      "Total key assignments by mode.",
		}, []string{"mode"})

		p.assignDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "assigner",
			Name:      "assign_duration_seconds",
			Help:      "Observed single-assignment durations in seconds by mode.",
			Buckets:   []float64{1e-7, 5e-7, 1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 1e-3},
		}, []string{"mode"})

		p.assignNodes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "assigner",
			Name:      "node_set_size",
			Help:      "Node set sizes evaluated per assignment by mode.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		}, []string{"mode"})

		p.analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "analyzer",
			Name:      "analysis_duration_seconds",
			Help:      "Observed distribution-analysis durations in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		})

		p.analysisSamples = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "analyzer",
			Name:      "analysis_samples",
			Help:      "Sample batch sizes per analysis.",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
		})

		p.validationErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assigner",
			Name:      "validation_errors_total",
			Help:      "Rejected calls by validation error kind.",
		}, []string{"kind"})

		p.reg.MustRegister(
			p.assignTotal,
			p.assignDuration,
			p.assignNodes,
			p.analysisDuration,
			p.analysisSamples,
			p.validationErrors,
		)
	})
}

// RecordAssignment records a completed assignment by mode.
func (p *PrometheusCollector) RecordAssignment(weighted bool, nodes int, duration float64) {
	p.ensureRegistered()

	mode := modeLabel(weighted)
	p.assignTotal.WithLabelValues(mode).Inc()
	p.assignDuration.WithLabelValues(mode).Observe(duration)
	p.assignNodes.WithLabelValues(mode).Observe(float64(nodes))
}

// RecordAnalysis records a completed distribution analysis.
func (p *PrometheusCollector) RecordAnalysis(samples int, duration float64) {
	p.ensureRegistered()

	p.analysisDuration.Observe(duration)
	p.analysisSamples.Observe(float64(samples))
}

// RecordValidationError records a rejected call by error kind.
func (p *PrometheusCollector) RecordValidationError(kind string) {
	p.ensureRegistered()

	p.validationErrors.WithLabelValues(kind).Inc()
}

func modeLabel(weighted bool) string {
	if weighted {
		return "weighted"
	}

	return "unweighted"
}
