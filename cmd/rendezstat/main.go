// Command rendezstat runs a rendezvous-hashing distribution analysis for an
// ad-hoc node set and sample size, and prints the resulting report.
//
// Usage:
//
//	rendezstat [-config config.yaml] [-nodes 4] [-samples 100000] [-weighted] [-score sha256] [-v]
//
// Flags override values loaded from the config file. With no arguments it
// reproduces the classic smoke test: 100000 keys "0".."99999" spread over
// four equal-weight nodes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/clusterkit/rendezvous"
	"github.com/clusterkit/rendezvous/internal/logging"
	"github.com/clusterkit/rendezvous/score"
	"github.com/clusterkit/rendezvous/types"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	nodeCount := flag.Int("nodes", 0, "Number of generated equal-weight nodes (overrides config)")
	sampleCount := flag.Int("samples", -1, "Number of generated sample keys (overrides config)")
	weighted := flag.Bool("weighted", false, "Use weighted assignment")
	scoreName := flag.String("score", "", "Score function: sha256, xxh3, or murmur3 (overrides config)")
	seed := flag.Uint64("seed", 0, "Seed for the xxh3 score function")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := logging.NewSlog(slog.New(handler))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	applyFlags(cfg, *nodeCount, *sampleCount, *weighted, *scoreName, *seed)
	if err := cfg.validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	scoreFunc, err := scoreFuncFor(cfg.Score)
	if err != nil {
		logger.Fatal("invalid score function", "error", err)
	}

	opts := []rendezvous.AnalyzerOption{
		rendezvous.WithAnalyzerAssigner(rendezvous.New(rendezvous.WithScoreFunc(scoreFunc))),
		rendezvous.WithAnalyzerLogger(logger),
	}
	if cfg.Parallelism > 0 {
		opts = append(opts, rendezvous.WithParallelism(cfg.Parallelism))
	}
	analyzer := rendezvous.NewAnalyzer(opts...)

	nodes := cfg.NodeSet()
	samples := cfg.SampleBatch()
	logger.Info("analyzing distribution",
		"nodes", len(nodes),
		"samples", len(samples),
		"weighted", cfg.Weighted,
		"score", cfg.Score.Function,
	)

	report, err := analyzer.Analyze(nodes, samples, cfg.Weighted)
	if err != nil {
		logger.Fatal("analysis failed", "error", err)
	}

	fmt.Print(report)
}

func loadConfig(path string) (*Config, error) {
	if path == "" {
		return defaultConfig(), nil
	}

	return LoadConfig(path)
}

// applyFlags overlays command-line overrides onto the loaded configuration.
// Parallelism is config-only; 0 keeps the analyzer default.
func applyFlags(cfg *Config, nodeCount, sampleCount int, weighted bool, scoreName string, seed uint64) {
	if nodeCount > 0 {
		cfg.Nodes = nil
		cfg.NodeCount = nodeCount
	}
	if sampleCount >= 0 {
		cfg.Samples.Count = sampleCount
	}
	if weighted {
		cfg.Weighted = true
	}
	if scoreName != "" {
		cfg.Score.Function = scoreName
	}
	if seed != 0 {
		cfg.Score.Seed = seed
	}
}

func scoreFuncFor(cfg ScoreConfig) (types.ScoreFunc, error) {
	switch cfg.Function {
	case "sha256":
		return score.SHA256(), nil
	case "xxh3":
		return score.XXH3(cfg.Seed), nil
	case "murmur3":
		return score.Murmur3(), nil
	default:
		return nil, fmt.Errorf("unknown score function %q", cfg.Function)
	}
}
