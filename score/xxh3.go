package score

import (
	"github.com/zeebo/xxh3"

	"github.com/clusterkit/rendezvous/types"
)

// XXH3 returns a score function backed by the XXH3 64-bit hash.
//
// The node id is hashed with the supplied seed and the result seeds the hash
// of the key, folding both inputs into a single 64-bit value without building
// an intermediate concatenated string. This is zero-allocation and stable
// across processes for a given seed.
//
// Parameters:
//   - seed: Hash seed (use 0 for the default universe, non-zero to pin an
//     alternate one, e.g. in test suites)
//
// Returns:
//   - types.ScoreFunc: Deterministic score function, uniform over [0, 1)
func XXH3(seed uint64) types.ScoreFunc {
	return func(key, nodeID string) float64 {
		h := xxh3.HashStringSeed(nodeID, seed)

		return normalize(xxh3.HashStringSeed(key, h))
	}
}
