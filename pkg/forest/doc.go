// Package forest consolidates flat collections of typed relationship facts
// into hierarchical forests.
//
// Given arbitrary "X relates to Y" edges over opaque content-tree nodes, Build
// answers the question "what hierarchy results?" under a configurable policy
// set: a relation allow-list with an optional primary relation, a pluggable
// parent/child resolver, and level/label assignment functions.
//
// # Structural vs bookkeeping edges
//
// When an allow-list is configured, only edges carrying its first (primary)
// relation shape the tree. Edges carrying other listed relations never move
// nodes around, but their relations are recorded on the target node's
// Relations list, which the text renderer uses for relationship-grouped
// output. Unlisted relations are dropped entirely before any bookkeeping.
//
// # Consistency
//
// Conflicting parent assignments resolve last-write-wins. Cycles in the
// structural parent chain are detected and reported as *CycleError; Build
// never loops or recurses unboundedly on cyclic input.
//
// # Concurrency
//
// Build is a pure function of its inputs. A completed Forest is read-only
// and safe to share across goroutines without synchronization.
package forest
