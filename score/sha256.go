package score

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/clusterkit/rendezvous/types"
)

// SHA256 returns the default score function.
//
// It digests key‖nodeID with SHA-256 and normalizes the first eight bytes of
// the digest into [0, 1). The full 256-bit digest is computed for its mixing
// quality; the fixed-width prefix keeps the comparison cheap without
// big-integer arithmetic.
//
// Returns:
//   - types.ScoreFunc: Deterministic score function, uniform over [0, 1)
//
// Example:
//
//	assigner := rendezvous.New(rendezvous.WithScoreFunc(score.SHA256()))
func SHA256() types.ScoreFunc {
	return func(key, nodeID string) float64 {
		h := sha256.New()
		h.Write([]byte(key))
		h.Write([]byte(nodeID))

		var sum [sha256.Size]byte
		digest := h.Sum(sum[:0])

		return normalize(binary.BigEndian.Uint64(digest[:8]))
	}
}
