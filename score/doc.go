// Package score provides built-in ScoreFunc implementations.
//
// A ScoreFunc maps a (key, node) pair to a deterministic, uniformly
// distributed value in [0, 1). The package includes three implementations:
//
//   - SHA256: 256-bit cryptographic digest, the default (recommended when
//     reproducibility across heterogeneous deployments matters most)
//   - XXH3: fast non-cryptographic 64-bit hash with seed support
//   - Murmur3: non-cryptographic 128-bit hash
//
// # Selection Guide
//
// SHA256:
//   - Stable everywhere, no tuning knobs
//   - Slowest of the three (still microseconds per call)
//
// XXH3:
//   - Use in hot paths with large node sets
//   - Seed parameter lets test suites pin a hash universe
//
// Murmur3:
//   - Comparable speed to XXH3, no seed
//
// None of the implementations provide preimage resistance; the assigner only
// needs statistical dispersion. Custom functions can be supplied to the
// assigner via rendezvous.WithScoreFunc as long as they satisfy the
// types.ScoreFunc contract.
package score
