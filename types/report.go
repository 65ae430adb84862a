package types

import (
	"fmt"
	"strings"
)

// NodeDistribution holds the per-node tally of a distribution analysis.
type NodeDistribution struct {
	// NodeID identifies the node.
	NodeID string `json:"node_id"`

	// Observed is the number of sample keys assigned to the node.
	Observed int64 `json:"observed"`

	// Expected is the weight-proportional expectation:
	// totalSamples * weight / sum(weights).
	Expected float64 `json:"expected"`

	// DeviationPct is 100 * (Observed - Expected) / Expected,
	// or 0 when Expected is 0.
	DeviationPct float64 `json:"deviation_pct"`
}

// DistributionReport summarizes how a sample batch was spread across a node
// set. It is a plain value owned by the caller; the analyzer keeps no state
// between calls.
type DistributionReport struct {
	// TotalSamples is the number of keys in the analyzed batch.
	TotalSamples int64 `json:"total_samples"`

	// Weighted records whether the weighted assigner produced the tally.
	Weighted bool `json:"weighted"`

	// Nodes holds the per-node tallies, sorted by NodeID.
	Nodes []NodeDistribution `json:"nodes"`

	// Min and Max are the nodes with the lowest and highest observed counts.
	// Ties resolve to the lexicographically smallest NodeID.
	Min NodeDistribution `json:"min"`
	Max NodeDistribution `json:"max"`
}

// Observed returns the observed count for a node id, or 0 if the node does
// not appear in the report.
func (r DistributionReport) Observed(nodeID string) int64 {
	for _, nd := range r.Nodes {
		if nd.NodeID == nodeID {
			return nd.Observed
		}
	}

	return 0
}

// Share returns the observed fraction of samples assigned to a node id,
// in [0, 1]. Returns 0 when the report holds no samples.
func (r DistributionReport) Share(nodeID string) float64 {
	if r.TotalSamples == 0 {
		return 0
	}

	return float64(r.Observed(nodeID)) / float64(r.TotalSamples)
}

// String renders the report as a human-readable table, one node per line.
func (r DistributionReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "samples=%d weighted=%v\n", r.TotalSamples, r.Weighted)
	for _, nd := range r.Nodes {
		fmt.Fprintf(&b, "%-20s observed=%-8d expected=%-10.1f deviation=%+.2f%%\n",
			nd.NodeID, nd.Observed, nd.Expected, nd.DeviationPct)
	}
	fmt.Fprintf(&b, "min=%s(%d) max=%s(%d) spread=%+.2f%%/%+.2f%%\n",
		r.Min.NodeID, r.Min.Observed, r.Max.NodeID, r.Max.Observed,
		r.Min.DeviationPct, r.Max.DeviationPct)

	return b.String()
}
