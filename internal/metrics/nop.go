package metrics

import "github.com/clusterkit/rendezvous/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used. This is the default collector for assigners and
// analyzers constructed without WithMetrics.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordAssignment discards the assignment metric.
func (n *NopMetrics) RecordAssignment(_ /* weighted */ bool, _ /* nodes */ int, _ /* duration */ float64) {
	// No-op
}

// RecordAnalysis discards the analysis metric.
func (n *NopMetrics) RecordAnalysis(_ /* samples */ int, _ /* duration */ float64) {
	// No-op
}

// RecordValidationError discards the validation error metric.
func (n *NopMetrics) RecordValidationError(_ /* kind */ string) {
	// No-op
}
