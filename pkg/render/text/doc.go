// Package text renders forests as readable, filterable, relationship-grouped
// plain text.
//
// Two modes exist. With no tracked relations the forest renders once,
// pre-order depth-first, with conventional branch and continuation markers
// and top-level roots separated by a blank line. With tracked relations the
// forest renders once per relation into blank-line-separated sections, each
// headed by the relation name and pre-filtered to the nodes that carry (or
// have a descendant carrying) that relation on an incoming edge.
//
// Injected Emit/Follow predicates support pruning and transparent
// passthrough: a node excluded from emission but still followed contributes
// no line and no indent level, its children rendering directly beneath the
// last emitted ancestor.
package text
