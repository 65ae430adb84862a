package rendezvous

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clusterkit/rendezvous/score"
	"github.com/clusterkit/rendezvous/types"
)

func testNodes(ids ...string) types.NodeSet {
	nodes := make(types.NodeSet, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, types.NewNode(id))
	}

	return nodes
}

func TestAssigner_Assign(t *testing.T) {
	assigner := New()
	nodes := testNodes("node-0", "node-1", "node-2", "node-3")

	t.Run("returns member of the node set", func(t *testing.T) {
		for i := range 100 {
			key := fmt.Sprintf("key-%d", i)

			result, err := assigner.Assign(key, nodes)
			require.NoError(t, err)
			require.Equal(t, key, result.Key)
			require.Contains(t, nodes.IDs(), result.NodeID)
			require.GreaterOrEqual(t, result.Score, 0.0)
			require.Less(t, result.Score, 1.0)
		}
	})

	t.Run("repeated calls are identical", func(t *testing.T) {
		for _, key := range []string{"user:42", "another-key", "xyz", ""} {
			first, err := assigner.Assign(key, nodes)
			require.NoError(t, err)

			for range 5 {
				again, err := assigner.Assign(key, nodes)
				require.NoError(t, err)
				require.Equal(t, first, again, "key %q not deterministic", key)
			}
		}
	})

	t.Run("independent of node order", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))

		for i := range 50 {
			key := fmt.Sprintf("key-%d", i)

			want, err := assigner.Assign(key, nodes)
			require.NoError(t, err)

			shuffled := nodes.Clone()
			rng.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})

			got, err := assigner.Assign(key, shuffled)
			require.NoError(t, err)
			require.Equal(t, want, got, "key %q changed winner after permutation", key)
		}
	})
}

func TestAssigner_Assign_Validation(t *testing.T) {
	assigner := New()

	t.Run("empty node set", func(t *testing.T) {
		_, err := assigner.Assign("key", types.NodeSet{})
		require.ErrorIs(t, err, types.ErrInvalidNodeSet)

		_, err = assigner.Assign("key", nil)
		require.ErrorIs(t, err, types.ErrInvalidNodeSet)
	})

	t.Run("duplicate node ids", func(t *testing.T) {
		_, err := assigner.Assign("key", testNodes("A", "B", "A"))
		require.ErrorIs(t, err, types.ErrInvalidNodeSet)
	})

	t.Run("empty node id", func(t *testing.T) {
		_, err := assigner.Assign("key", types.NodeSet{{ID: "", Weight: 1}})
		require.ErrorIs(t, err, types.ErrInvalidNodeSet)
	})
}

func TestAssigner_MinimalDisruption_Removal(t *testing.T) {
	assigner := New()
	nodes := testNodes("node-0", "node-1", "node-2", "node-3", "node-4")

	// Removing a node must only remap the keys that node owned.
	for i := range 500 {
		key := fmt.Sprintf("key-%d", i)

		before, err := assigner.Assign(key, nodes)
		require.NoError(t, err)

		for _, removed := range nodes {
			if removed.ID == before.NodeID {
				continue
			}

			remaining := make(types.NodeSet, 0, len(nodes)-1)
			for _, n := range nodes {
				if n.ID != removed.ID {
					remaining = append(remaining, n)
				}
			}

			after, err := assigner.Assign(key, remaining)
			require.NoError(t, err)
			require.Equal(t, before.NodeID, after.NodeID,
				"key %q moved after removing non-winner %q", key, removed.ID)
		}
	}
}

func TestAssigner_MinimalDisruption_Addition(t *testing.T) {
	assigner := New()
	nodes := testNodes("node-0", "node-1", "node-2")
	added := types.NewNode("node-3")
	grown := append(nodes.Clone(), added)

	moved := 0
	total := 2000
	for i := range total {
		key := fmt.Sprintf("key-%d", i)

		before, err := assigner.Assign(key, nodes)
		require.NoError(t, err)

		after, err := assigner.Assign(key, grown)
		require.NoError(t, err)

		// Keys may only move to the new node, never between existing nodes.
		if after.NodeID != before.NodeID {
			require.Equal(t, added.ID, after.NodeID,
				"key %q moved to existing node %q instead of the new node", key, after.NodeID)
			moved++
		}
	}

	// In expectation 1/4 of keys move to the new node; allow a generous band.
	require.Greater(t, moved, total/8, "suspiciously few keys moved to the new node")
	require.Less(t, moved, total/2, "suspiciously many keys moved to the new node")
}

func TestAssigner_AssignWeighted(t *testing.T) {
	assigner := New()
	nodes := types.NodeSet{
		{ID: "small", Weight: 1},
		{ID: "medium", Weight: 2},
		{ID: "large", Weight: 4},
	}

	t.Run("deterministic and member of set", func(t *testing.T) {
		for i := range 100 {
			key := fmt.Sprintf("key-%d", i)

			first, err := assigner.AssignWeighted(key, nodes)
			require.NoError(t, err)
			require.Contains(t, nodes.IDs(), first.NodeID)
			require.Greater(t, first.Score, 0.0)

			again, err := assigner.AssignWeighted(key, nodes)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	})

	t.Run("independent of node order", func(t *testing.T) {
		reversed := types.NodeSet{nodes[2], nodes[1], nodes[0]}

		for i := range 50 {
			key := fmt.Sprintf("key-%d", i)

			want, err := assigner.AssignWeighted(key, nodes)
			require.NoError(t, err)

			got, err := assigner.AssignWeighted(key, reversed)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("preserves minimal disruption on removal", func(t *testing.T) {
		for i := range 200 {
			key := fmt.Sprintf("key-%d", i)

			before, err := assigner.AssignWeighted(key, nodes)
			require.NoError(t, err)

			for _, removed := range nodes {
				if removed.ID == before.NodeID {
					continue
				}

				remaining := make(types.NodeSet, 0, len(nodes)-1)
				for _, n := range nodes {
					if n.ID != removed.ID {
						remaining = append(remaining, n)
					}
				}

				after, err := assigner.AssignWeighted(key, remaining)
				require.NoError(t, err)
				require.Equal(t, before.NodeID, after.NodeID)
			}
		}
	})
}

func TestAssigner_AssignWeighted_Validation(t *testing.T) {
	assigner := New()

	t.Run("empty node set", func(t *testing.T) {
		_, err := assigner.AssignWeighted("key", nil)
		require.ErrorIs(t, err, types.ErrInvalidNodeSet)
	})

	t.Run("zero weight", func(t *testing.T) {
		_, err := assigner.AssignWeighted("key", types.NodeSet{{ID: "A", Weight: 0}})
		require.ErrorIs(t, err, types.ErrInvalidWeight)
	})

	t.Run("negative weight", func(t *testing.T) {
		nodes := types.NodeSet{{ID: "A", Weight: 1}, {ID: "B", Weight: -0.5}}
		_, err := assigner.AssignWeighted("key", nodes)
		require.ErrorIs(t, err, types.ErrInvalidWeight)
	})

	t.Run("structural check runs before weight check", func(t *testing.T) {
		nodes := types.NodeSet{{ID: "A", Weight: 0}, {ID: "A", Weight: 0}}
		_, err := assigner.AssignWeighted("key", nodes)
		require.ErrorIs(t, err, types.ErrInvalidNodeSet)
	})
}

func TestAssigner_TieBreak(t *testing.T) {
	// A constant score function forces every node to tie; the winner must be
	// the lexicographically smallest id regardless of iteration order.
	constant := func(_, _ string) float64 { return 0.5 }
	assigner := New(WithScoreFunc(constant))

	t.Run("unweighted picks smallest id", func(t *testing.T) {
		for _, nodes := range []types.NodeSet{
			testNodes("C", "A", "B"),
			testNodes("B", "C", "A"),
			testNodes("A", "B", "C"),
		} {
			result, err := assigner.Assign("any-key", nodes)
			require.NoError(t, err)
			require.Equal(t, "A", result.NodeID)
			require.Equal(t, 0.5, result.Score)
		}
	})

	t.Run("weighted picks smallest id on equal weights", func(t *testing.T) {
		result, err := assigner.AssignWeighted("any-key", testNodes("C", "B", "A"))
		require.NoError(t, err)
		require.Equal(t, "A", result.NodeID)
	})

	t.Run("weighted prefers heavier node on equal raw scores", func(t *testing.T) {
		nodes := types.NodeSet{
			{ID: "A", Weight: 1},
			{ID: "Z", Weight: 3},
		}

		result, err := assigner.AssignWeighted("any-key", nodes)
		require.NoError(t, err)
		require.Equal(t, "Z", result.NodeID)
	})
}

func TestWeightedScore_ZeroRemap(t *testing.T) {
	// A raw score of exactly 0 must not produce Inf or NaN.
	s := weightedScore(2.0, 0)
	require.False(t, math.IsInf(s, 0))
	require.False(t, math.IsNaN(s))
	require.Greater(t, s, 0.0)
	require.Equal(t, weightedScore(2.0, minRawScore), s)
}

func TestAssigner_CustomScoreFunc(t *testing.T) {
	// xxh3 with distinct seeds produces distinct hash universes, while a
	// fixed seed stays internally consistent.
	a1 := New(WithScoreFunc(score.XXH3(1)))
	a2 := New(WithScoreFunc(score.XXH3(1)))
	a3 := New(WithScoreFunc(score.XXH3(2)))
	nodes := testNodes("node-0", "node-1", "node-2", "node-3", "node-4")

	differs := false
	for i := range 100 {
		key := fmt.Sprintf("key-%d", i)

		r1, err := a1.Assign(key, nodes)
		require.NoError(t, err)

		r2, err := a2.Assign(key, nodes)
		require.NoError(t, err)
		require.Equal(t, r1, r2)

		r3, err := a3.Assign(key, nodes)
		require.NoError(t, err)
		if r3.NodeID != r1.NodeID {
			differs = true
		}
	}

	require.True(t, differs, "different seeds should produce different assignments for some keys")
}

func TestPackageLevelAssign(t *testing.T) {
	nodes := testNodes("node-0", "node-1")

	result, err := Assign("key", nodes)
	require.NoError(t, err)
	require.Contains(t, nodes.IDs(), result.NodeID)

	viaAssigner, err := New().Assign("key", nodes)
	require.NoError(t, err)
	require.Equal(t, viaAssigner, result)

	weighted, err := AssignWeighted("key", nodes)
	require.NoError(t, err)
	require.Contains(t, nodes.IDs(), weighted.NodeID)
}
