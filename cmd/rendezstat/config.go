package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clusterkit/rendezvous/types"
)

// Config is the root configuration structure for rendezstat.
type Config struct {
	// Nodes is the node set to analyze. When empty, NodeCount generated
	// nodes ("Node1".."NodeN") with weight 1.0 are used instead.
	Nodes []types.Node `yaml:"nodes"`

	// NodeCount generates equal-weight nodes when Nodes is empty (default: 4).
	NodeCount int `yaml:"node_count"`

	Samples  SamplesConfig `yaml:"samples"`
	Score    ScoreConfig   `yaml:"score"`
	Weighted bool          `yaml:"weighted"`

	// Parallelism is the number of tally goroutines (0 = one per CPU).
	Parallelism int `yaml:"parallelism"`
}

// SamplesConfig configures the generated sample batch.
type SamplesConfig struct {
	// Count is the number of sample keys (default: 100000).
	Count int `yaml:"count"`

	// Prefix is prepended to each generated key ("" produces "0", "1", ...).
	Prefix string `yaml:"prefix"`
}

// ScoreConfig selects the score function.
type ScoreConfig struct {
	// Function is one of "sha256", "xxh3", "murmur3" (default: "sha256").
	Function string `yaml:"function"`

	// Seed applies to the xxh3 function only.
	Seed uint64 `yaml:"seed"`
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		NodeCount: 4,
		Samples:   SamplesConfig{Count: 100000},
		Score:     ScoreConfig{Function: "sha256"},
	}
}

func (c *Config) validate() error {
	if len(c.Nodes) == 0 && c.NodeCount < 1 {
		return fmt.Errorf("node_count must be positive, got %d", c.NodeCount)
	}
	if c.Samples.Count < 0 {
		return fmt.Errorf("samples.count must be non-negative, got %d", c.Samples.Count)
	}

	switch c.Score.Function {
	case "sha256", "xxh3", "murmur3":
	default:
		return fmt.Errorf("unknown score function %q (expected sha256, xxh3, or murmur3)", c.Score.Function)
	}

	return nil
}

// NodeSet returns the configured node set, generating equal-weight nodes when
// none are listed explicitly.
func (c *Config) NodeSet() types.NodeSet {
	if len(c.Nodes) > 0 {
		nodes := make(types.NodeSet, len(c.Nodes))
		copy(nodes, c.Nodes)

		return nodes
	}

	nodes := make(types.NodeSet, 0, c.NodeCount)
	for i := 1; i <= c.NodeCount; i++ {
		nodes = append(nodes, types.NewNode(fmt.Sprintf("Node%d", i)))
	}

	return nodes
}

// SampleBatch returns the generated sample keys "<prefix>0".."<prefix>N-1".
func (c *Config) SampleBatch() types.SampleBatch {
	samples := make(types.SampleBatch, 0, c.Samples.Count)
	for i := range c.Samples.Count {
		samples = append(samples, fmt.Sprintf("%s%d", c.Samples.Prefix, i))
	}

	return samples
}
