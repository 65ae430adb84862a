package types

// ScoreFunc produces a deterministic score for a (key, node) pair.
//
// The contract:
//   - Total: defined for every pair of strings, no error, no side effects.
//   - Deterministic: same inputs yield the same output across processes
//     and runs.
//   - Uniform: with one argument fixed and the other varying, outputs behave
//     like a uniform random variable over [0, 1).
//   - Range: the returned value is always in [0, 1).
//
// The score package provides implementations satisfying this contract.
// Custom functions may be injected for testing (e.g., forcing ties) or to
// swap in a different digest.
type ScoreFunc func(key, nodeID string) float64
