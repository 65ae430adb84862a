package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations must be non-blocking and thread-safe: assignment is safe to
// invoke concurrently and the analyzer calls into the collector from worker
// goroutines.
type MetricsCollector interface {
	// RecordAssignment records a completed assignment.
	//
	// Parameters:
	//   - weighted: true for weighted assignment, false for unweighted
	//   - nodes: Size of the node set evaluated
	//   - duration: Time taken in seconds
	RecordAssignment(weighted bool, nodes int, duration float64)

	// RecordAnalysis records a completed distribution analysis.
	//
	// Parameters:
	//   - samples: Number of sample keys processed
	//   - duration: Time taken in seconds
	RecordAnalysis(samples int, duration float64)

	// RecordValidationError records a rejected call by error kind
	// ("node_set" or "weight").
	RecordValidationError(kind string)
}
