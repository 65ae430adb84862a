package types

import "fmt"

// DefaultWeight is the weight applied by NewNode and used as the fallback
// when a zero weight must be normalized for expectation calculations.
const DefaultWeight = 1.0

// Node represents a single member of the cluster eligible to own keys.
//
// A node is an immutable value record. Identity is carried entirely by ID;
// two nodes with the same ID are the same node regardless of weight.
type Node struct {
	// ID uniquely identifies the node within a NodeSet. Must be non-empty.
	ID string `json:"id" yaml:"id"`

	// Weight is the relative capacity of the node (default: 1.0).
	// Used by weighted assignment; must be strictly positive there.
	Weight float64 `json:"weight" yaml:"weight"`
}

// NewNode creates a node with the default weight of 1.0.
//
// Parameters:
//   - id: Unique node identifier (e.g., "node-0")
//
// Returns:
//   - Node: Node value with Weight set to DefaultWeight
func NewNode(id string) Node {
	return Node{ID: id, Weight: DefaultWeight}
}

// NodeSet is a snapshot of cluster membership.
//
// A NodeSet is passed by value to every assignment call; callers supply a
// fresh snapshot per call, so concurrent membership changes never affect an
// in-flight computation. Order within the set carries no meaning: assignment
// results are independent of iteration order.
type NodeSet []Node

// Validate checks the structural invariants of the set.
//
// A valid set is non-empty, every node has a non-empty ID, and all IDs are
// unique. Weights are not checked here; see ValidateWeights.
//
// Returns:
//   - error: ErrInvalidNodeSet (wrapped with detail) if invalid, nil otherwise
func (ns NodeSet) Validate() error {
	if len(ns) == 0 {
		return fmt.Errorf("%w: empty node set", ErrInvalidNodeSet)
	}

	seen := make(map[string]struct{}, len(ns))
	for _, n := range ns {
		if n.ID == "" {
			return fmt.Errorf("%w: node with empty id", ErrInvalidNodeSet)
		}
		if _, ok := seen[n.ID]; ok {
			return fmt.Errorf("%w: duplicate node id %q", ErrInvalidNodeSet, n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	return nil
}

// ValidateWeights checks that every node carries a strictly positive weight.
//
// Returns:
//   - error: ErrInvalidWeight (wrapped with the offending node) if any weight
//     is zero or negative, nil otherwise
func (ns NodeSet) ValidateWeights() error {
	for _, n := range ns {
		if n.Weight <= 0 {
			return fmt.Errorf("%w: node %q has weight %v", ErrInvalidWeight, n.ID, n.Weight)
		}
	}

	return nil
}

// TotalWeight returns the sum of all node weights in the set.
func (ns NodeSet) TotalWeight() float64 {
	total := 0.0
	for _, n := range ns {
		total += n.Weight
	}

	return total
}

// IDs returns the node identifiers in set order.
func (ns NodeSet) IDs() []string {
	ids := make([]string, len(ns))
	for i, n := range ns {
		ids[i] = n.ID
	}

	return ids
}

// Clone returns an independent copy of the set.
//
// Useful when a caller wants to freeze a snapshot before handing the set to
// concurrent assignment calls.
func (ns NodeSet) Clone() NodeSet {
	return append(NodeSet(nil), ns...)
}

// AssignmentResult reports the winning node for a key.
//
// Score is the value that won the rendezvous comparison: the raw score for
// unweighted assignment, the weight-adjusted score for weighted assignment.
// It is exposed for observability and testing.
type AssignmentResult struct {
	Key    string  `json:"key"`
	NodeID string  `json:"node_id"`
	Score  float64 `json:"score"`
}

// SampleBatch is an ordered sequence of sample keys used for distribution
// analysis. Keys need not be unique.
type SampleBatch []string
