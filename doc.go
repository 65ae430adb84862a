// Package rendezvous provides deterministic key-to-node assignment using
// Highest-Random-Weight (rendezvous) hashing, with optional per-node weights
// and a distribution analyzer for validating load spread.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import (
//	    "github.com/clusterkit/rendezvous"
//	    "github.com/clusterkit/rendezvous/types"
//	)
//
//	nodes := types.NodeSet{
//	    types.NewNode("node-0"),
//	    types.NewNode("node-1"),
//	    types.NewNode("node-2"),
//	}
//
//	result, err := rendezvous.Assign("user:42", nodes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.NodeID)
//
// # Key Features
//
//   - Deterministic: the same key and node set always produce the same
//     winner, across processes and runs, independent of node order
//   - Minimal disruption: removing a node only remaps the keys it owned;
//     adding a node only pulls an expected 1/n fraction of keys, and only
//     to the new node
//   - Weighted assignment: per-node capacities bias long-run selection
//     probability to weight_i / sum(weights) without replica tricks
//   - Pluggable scoring: SHA-256 by default, XXH3 and Murmur3 variants in
//     the score package, or inject your own
//   - Distribution analysis: tally a sample batch and report per-node
//     deviation from the weight-proportional expectation
//
// All operations are pure with respect to their inputs. A NodeSet is treated
// as an immutable snapshot once passed in, so assigners and analyzers are safe
// for concurrent use.
package rendezvous
