package score

import (
	"github.com/spaolacci/murmur3"

	"github.com/clusterkit/rendezvous/types"
)

// Murmur3 returns a score function backed by the Murmur3 64-bit hash.
//
// Key and node id are written to the hash in sequence, so the result is the
// digest of their concatenation.
//
// Returns:
//   - types.ScoreFunc: Deterministic score function, uniform over [0, 1)
func Murmur3() types.ScoreFunc {
	return func(key, nodeID string) float64 {
		h := murmur3.New64()
		_, _ = h.Write([]byte(key))
		_, _ = h.Write([]byte(nodeID))

		return normalize(h.Sum64())
	}
}
