package rendezvous

import (
	"math"
	"time"

	"github.com/clusterkit/rendezvous/types"
)

// minRawScore replaces a raw score of exactly 0 before the logarithm in the
// weighted transform. 0x1p-53 is the smallest value the built-in score
// functions can produce above zero.
const minRawScore = 0x1p-53

// Assigner maps keys to nodes using Highest-Random-Weight (rendezvous)
// hashing.
//
// For every candidate node the assigner computes a deterministic score of the
// (key, node) pair and selects the maximum. Because each node's score depends
// only on the key and that node's identity, membership changes disturb the
// mapping minimally: removing a node only remaps the keys it owned, and
// adding a node only attracts keys whose score for the new node beats their
// previous maximum.
//
// An Assigner is immutable after construction and safe for concurrent use.
type Assigner struct {
	scoreFunc types.ScoreFunc
	logger    types.Logger
	metrics   types.MetricsCollector
}

// New creates an Assigner.
//
// Parameters:
//   - opts: Optional configuration (WithScoreFunc, WithLogger, WithMetrics)
//
// Returns:
//   - *Assigner: Initialized assigner ready for use
//
// Example:
//
//	assigner := rendezvous.New(
//	    rendezvous.WithScoreFunc(score.XXH3(0)),
//	)
//	result, err := assigner.Assign("user:42", nodes)
func New(opts ...Option) *Assigner {
	a := &Assigner{}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	a.normalizeConfig()

	return a
}

// Assign selects the owning node for a key, ignoring node weights.
//
// Every node in the set is scored against the key and the highest score wins.
// If two nodes produce bit-identical scores, the lexicographically smallest
// node id wins, so the result is a total order and independent of the set's
// iteration order.
//
// Parameters:
//   - key: Key to assign
//   - nodes: Snapshot of cluster membership (must be non-empty, unique ids)
//
// Returns:
//   - types.AssignmentResult: Winning node id and its score
//   - error: types.ErrInvalidNodeSet if the set is empty, has a blank id, or
//     has duplicate ids
func (a *Assigner) Assign(key string, nodes types.NodeSet) (types.AssignmentResult, error) {
	start := time.Now()

	if err := nodes.Validate(); err != nil {
		a.metrics.RecordValidationError("node_set")
		a.logger.Debug("assignment rejected", "key", key, "error", err)

		return types.AssignmentResult{}, err
	}

	nodeID, s := a.selectUnweighted(key, nodes)
	a.metrics.RecordAssignment(false, len(nodes), time.Since(start).Seconds())

	return types.AssignmentResult{Key: key, NodeID: nodeID, Score: s}, nil
}

// AssignWeighted selects the owning node for a key, biased by node weights.
//
// Each node's raw score u is transformed to weight / -ln(u), the standard
// weighted-rendezvous transform: over many keys the probability of node i
// winning converges to weight_i / sum(weights), while the minimal-disruption
// property of Assign is preserved. The tie-break rule is identical to Assign.
//
// Parameters:
//   - key: Key to assign
//   - nodes: Snapshot of cluster membership (must be non-empty, unique ids,
//     strictly positive weights)
//
// Returns:
//   - types.AssignmentResult: Winning node id and its weighted score
//   - error: types.ErrInvalidNodeSet for a structurally invalid set,
//     types.ErrInvalidWeight if any weight is zero or negative
func (a *Assigner) AssignWeighted(key string, nodes types.NodeSet) (types.AssignmentResult, error) {
	start := time.Now()

	if err := nodes.Validate(); err != nil {
		a.metrics.RecordValidationError("node_set")
		a.logger.Debug("assignment rejected", "key", key, "error", err)

		return types.AssignmentResult{}, err
	}
	if err := nodes.ValidateWeights(); err != nil {
		a.metrics.RecordValidationError("weight")
		a.logger.Debug("assignment rejected", "key", key, "error", err)

		return types.AssignmentResult{}, err
	}

	nodeID, s := a.selectWeighted(key, nodes)
	a.metrics.RecordAssignment(true, len(nodes), time.Since(start).Seconds())

	return types.AssignmentResult{Key: key, NodeID: nodeID, Score: s}, nil
}

// selectUnweighted runs the rendezvous loop on a pre-validated set.
func (a *Assigner) selectUnweighted(key string, nodes types.NodeSet) (string, float64) {
	bestID := ""
	bestScore := math.Inf(-1)

	for _, n := range nodes {
		s := a.scoreFunc(key, n.ID)
		if s > bestScore || (s == bestScore && n.ID < bestID) {
			bestScore = s
			bestID = n.ID
		}
	}

	return bestID, bestScore
}

// selectWeighted runs the weighted rendezvous loop on a pre-validated set.
func (a *Assigner) selectWeighted(key string, nodes types.NodeSet) (string, float64) {
	bestID := ""
	bestScore := math.Inf(-1)

	for _, n := range nodes {
		s := weightedScore(n.Weight, a.scoreFunc(key, n.ID))
		if s > bestScore || (s == bestScore && n.ID < bestID) {
			bestScore = s
			bestID = n.ID
		}
	}

	return bestID, bestScore
}

// weightedScore applies the weighted-rendezvous transform to a raw score.
//
// A raw score of exactly 0 is remapped to minRawScore so the logarithm stays
// finite. The remap is deterministic, preserving reproducibility.
func weightedScore(weight, u float64) float64 {
	if u <= 0 {
		u = minRawScore
	}

	return weight / -math.Log(u)
}

// defaultAssigner backs the package-level convenience functions.
var defaultAssigner = New()

// Assign selects the owning node for a key using a default SHA-256-scored
// assigner. See Assigner.Assign.
func Assign(key string, nodes types.NodeSet) (types.AssignmentResult, error) {
	return defaultAssigner.Assign(key, nodes)
}

// AssignWeighted selects the owning node for a key, biased by node weights,
// using a default SHA-256-scored assigner. See Assigner.AssignWeighted.
func AssignWeighted(key string, nodes types.NodeSet) (types.AssignmentResult, error) {
	return defaultAssigner.AssignWeighted(key, nodes)
}
