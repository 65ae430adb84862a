package rendezvous

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/clusterkit/rendezvous/types"
)

// Analyzer drives an Assigner over a batch of sample keys and reports how the
// assignments spread across the node set.
//
// The analyzer holds no state between calls; each call returns a fresh
// DistributionReport owned by the caller. Analysis is embarrassingly parallel
// across the batch and is sharded over goroutines (see WithParallelism), with
// per-node counters merged by simple summation.
type Analyzer struct {
	assigner    *Assigner
	parallelism int
	logger      types.Logger
	metrics     types.MetricsCollector
}

// NewAnalyzer creates an Analyzer.
//
// Parameters:
//   - opts: Optional configuration (WithAnalyzerAssigner, WithParallelism,
//     WithAnalyzerLogger, WithAnalyzerMetrics)
//
// Returns:
//   - *Analyzer: Initialized analyzer ready for use
//
// Example:
//
//	analyzer := rendezvous.NewAnalyzer(
//	    rendezvous.WithAnalyzerAssigner(rendezvous.New(rendezvous.WithScoreFunc(score.XXH3(0)))),
//	    rendezvous.WithParallelism(8),
//	)
//	report, err := analyzer.Analyze(nodes, samples, true)
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	an := &Analyzer{
		parallelism: defaultParallelism(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(an)
		}
	}

	an.normalizeConfig()

	return an
}

// Analyze assigns every key in the batch and tallies the winners.
//
// For each node the report carries the observed count, the
// weight-proportional expectation totalSamples * weight / sum(weights), and
// the percentage deviation between the two. An empty batch is a well-defined
// degenerate case: the report carries zero counts and no error.
//
// When weighted is false, node weights do not influence assignment but still
// shape the expectation; a node with zero weight counts as weight 1.0 there,
// mirroring the default applied by types.NewNode.
//
// Parameters:
//   - nodes: Snapshot of cluster membership
//   - samples: Batch of sample keys (need not be unique)
//   - weighted: Select AssignWeighted semantics instead of Assign
//
// Returns:
//   - types.DistributionReport: Per-node tallies plus min/max aggregates
//   - error: types.ErrInvalidNodeSet or types.ErrInvalidWeight, propagated
//     from the underlying assigner's validation
func (an *Analyzer) Analyze(nodes types.NodeSet, samples types.SampleBatch, weighted bool) (types.DistributionReport, error) {
	start := time.Now()

	if err := nodes.Validate(); err != nil {
		an.metrics.RecordValidationError("node_set")

		return types.DistributionReport{}, err
	}
	if weighted {
		if err := nodes.ValidateWeights(); err != nil {
			an.metrics.RecordValidationError("weight")

			return types.DistributionReport{}, err
		}
	}

	// One striped counter per node, created before the shard goroutines start
	// so the map itself is never written concurrently.
	counters := make(map[string]*xsync.Counter, len(nodes))
	for _, n := range nodes {
		counters[n.ID] = xsync.NewCounter()
	}

	an.tally(nodes, samples, weighted, counters)

	report := buildReport(nodes, int64(len(samples)), weighted, counters)

	duration := time.Since(start)
	an.metrics.RecordAnalysis(len(samples), duration.Seconds())
	an.logger.Debug(
		"distribution analysis complete",
		"samples", len(samples),
		"nodes", len(nodes),
		"weighted", weighted,
		"duration", duration,
		"min_deviation_pct", report.Min.DeviationPct,
		"max_deviation_pct", report.Max.DeviationPct,
	)

	return report, nil
}

// tally shards the batch across goroutines and counts winners per node.
func (an *Analyzer) tally(nodes types.NodeSet, samples types.SampleBatch, weighted bool, counters map[string]*xsync.Counter) {
	shards := an.parallelism
	if shards > len(samples) {
		shards = len(samples)
	}

	if shards <= 1 {
		an.tallyChunk(nodes, samples, weighted, counters)

		return
	}

	chunk := (len(samples) + shards - 1) / shards

	var wg sync.WaitGroup
	for offset := 0; offset < len(samples); offset += chunk {
		end := min(offset+chunk, len(samples))

		wg.Add(1)
		go func(batch types.SampleBatch) {
			defer wg.Done()
			an.tallyChunk(nodes, batch, weighted, counters)
		}(samples[offset:end])
	}
	wg.Wait()
}

// tallyChunk counts winners for one contiguous slice of the batch.
//
// The node set was validated by Analyze, so the selection helpers are called
// directly to avoid re-validating per key.
func (an *Analyzer) tallyChunk(nodes types.NodeSet, samples types.SampleBatch, weighted bool, counters map[string]*xsync.Counter) {
	for _, key := range samples {
		var winner string
		if weighted {
			winner, _ = an.assigner.selectWeighted(key, nodes)
		} else {
			winner, _ = an.assigner.selectUnweighted(key, nodes)
		}
		counters[winner].Inc()
	}
}

// buildReport derives the per-node expectations and min/max aggregates.
func buildReport(nodes types.NodeSet, total int64, weighted bool, counters map[string]*xsync.Counter) types.DistributionReport {
	totalWeight := 0.0
	for _, n := range nodes {
		totalWeight += effectiveWeight(n.Weight)
	}

	dists := make([]types.NodeDistribution, 0, len(nodes))
	for _, n := range nodes {
		observed := counters[n.ID].Value()

		expected := 0.0
		if totalWeight > 0 {
			expected = float64(total) * effectiveWeight(n.Weight) / totalWeight
		}

		deviation := 0.0
		if expected > 0 {
			deviation = 100 * (float64(observed) - expected) / expected
		}

		dists = append(dists, types.NodeDistribution{
			NodeID:       n.ID,
			Observed:     observed,
			Expected:     expected,
			DeviationPct: deviation,
		})
	}

	slices.SortFunc(dists, func(a, b types.NodeDistribution) int {
		return strings.Compare(a.NodeID, b.NodeID)
	})

	// dists is sorted, so keeping the first extremum resolves count ties to
	// the lexicographically smallest node id.
	minDist, maxDist := dists[0], dists[0]
	for _, d := range dists[1:] {
		if d.Observed < minDist.Observed {
			minDist = d
		}
		if d.Observed > maxDist.Observed {
			maxDist = d
		}
	}

	return types.DistributionReport{
		TotalSamples: total,
		Weighted:     weighted,
		Nodes:        dists,
		Min:          minDist,
		Max:          maxDist,
	}
}

// effectiveWeight substitutes the default weight for zero, matching
// types.NewNode. Negative weights never reach here in weighted mode; in
// unweighted mode they only affect the reported expectation.
func effectiveWeight(w float64) float64 {
	if w > 0 {
		return w
	}

	return types.DefaultWeight
}

// defaultAnalyzer backs the package-level convenience function.
var defaultAnalyzer = NewAnalyzer()

// Analyze runs a distribution analysis with a default analyzer and assigner.
// See Analyzer.Analyze.
func Analyze(nodes types.NodeSet, samples types.SampleBatch, weighted bool) (types.DistributionReport, error) {
	return defaultAnalyzer.Analyze(nodes, samples, weighted)
}
