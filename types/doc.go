// Package types defines the shared value types, interfaces, and sentinel
// errors used across the rendezvous library.
//
// Types are kept in a separate package so that both the root package and the
// pluggable score implementations can depend on them without import cycles.
package types
