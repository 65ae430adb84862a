package types

import "errors"

// Sentinel errors for the rendezvous library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). Components wrap them with context using
// fmt.Errorf("%w: detail", err) so callers can match the kind while still
// seeing what was wrong.
var (
	// ErrInvalidNodeSet is returned when a node set is empty, contains a node
	// with an empty id, or contains duplicate ids.
	ErrInvalidNodeSet = errors.New("invalid node set")

	// ErrInvalidWeight is returned when weighted assignment is given a node
	// with a zero or negative weight.
	ErrInvalidWeight = errors.New("invalid node weight")
)
