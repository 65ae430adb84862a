package rendezvous

import (
	"runtime"

	"github.com/clusterkit/rendezvous/internal/logging"
	"github.com/clusterkit/rendezvous/internal/metrics"
	"github.com/clusterkit/rendezvous/score"
	"github.com/clusterkit/rendezvous/types"
)

// Option configures an Assigner.
type Option func(*Assigner)

// WithScoreFunc sets the score function used to rank nodes.
//
// The default is score.SHA256(). Any function satisfying the
// types.ScoreFunc contract may be supplied; injecting a constant function is
// a convenient way to exercise tie-break behavior in tests.
//
// Parameters:
//   - fn: Score function (ignored if nil)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	assigner := rendezvous.New(rendezvous.WithScoreFunc(score.XXH3(42)))
func WithScoreFunc(fn types.ScoreFunc) Option {
	return func(a *Assigner) {
		a.scoreFunc = fn
	}
}

// WithLogger sets the logger used for diagnostics.
//
// Parameters:
//   - logger: Logger implementation (ignored if nil)
//
// Returns:
//   - Option: Functional option for New
func WithLogger(logger types.Logger) Option {
	return func(a *Assigner) {
		a.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - collector: MetricsCollector implementation (ignored if nil)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "myapp")
//	assigner := rendezvous.New(rendezvous.WithMetrics(collector))
func WithMetrics(collector types.MetricsCollector) Option {
	return func(a *Assigner) {
		a.metrics = collector
	}
}

func (a *Assigner) normalizeConfig() {
	if a.scoreFunc == nil {
		a.scoreFunc = score.SHA256()
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}
	if a.metrics == nil {
		a.metrics = metrics.NewNop()
	}
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithAnalyzerAssigner sets the assigner driven by the analyzer.
//
// The default is an assigner built with New() and default options.
//
// Parameters:
//   - assigner: Assigner to evaluate (ignored if nil)
//
// Returns:
//   - AnalyzerOption: Functional option for NewAnalyzer
func WithAnalyzerAssigner(assigner *Assigner) AnalyzerOption {
	return func(an *Analyzer) {
		if assigner != nil {
			an.assigner = assigner
		}
	}
}

// WithParallelism sets the number of goroutines used to tally a sample batch.
//
// The batch is sharded into contiguous chunks, one per goroutine, and per-node
// counters are merged without any ordering requirement. Results are identical
// to sequential processing. Values below 1 are clamped to 1.
//
// The default is runtime.GOMAXPROCS(0).
//
// Parameters:
//   - n: Number of tally goroutines
//
// Returns:
//   - AnalyzerOption: Functional option for NewAnalyzer
func WithParallelism(n int) AnalyzerOption {
	return func(an *Analyzer) {
		an.parallelism = n
	}
}

// WithAnalyzerLogger sets the logger used for analysis diagnostics.
func WithAnalyzerLogger(logger types.Logger) AnalyzerOption {
	return func(an *Analyzer) {
		if logger != nil {
			an.logger = logger
		}
	}
}

// WithAnalyzerMetrics sets a metrics collector for analysis operations.
func WithAnalyzerMetrics(collector types.MetricsCollector) AnalyzerOption {
	return func(an *Analyzer) {
		if collector != nil {
			an.metrics = collector
		}
	}
}

func (an *Analyzer) normalizeConfig() {
	if an.logger == nil {
		an.logger = logging.NewNop()
	}
	if an.metrics == nil {
		an.metrics = metrics.NewNop()
	}
	if an.assigner == nil {
		an.assigner = New()
	}
	if an.parallelism < 1 {
		an.logger.Warn("parallelism must be positive; clamping to 1", "provided", an.parallelism, "using", 1)
		an.parallelism = 1
	}
}

func defaultParallelism() int {
	return runtime.GOMAXPROCS(0)
}
