// Package pkg provides the core libraries of the treeline toolkit.
//
// # Overview
//
// Treeline consolidates flat collections of typed relationship facts between
// content-tree nodes into hierarchical forests and renders them as readable,
// filterable, relationship-grouped output. The pkg directory is organized
// into four areas:
//
//  1. [rel] - The edge model: nodes, relations, edges, and the JSON
//     interchange document.
//  2. [forest] - The hierarchy builder: flat edges in, immutable forest out.
//  3. [render] - Output formats: indented text trees ([render/text]) and
//     node-link diagrams ([render/nodelink]).
//  4. [cache], [store] - Infrastructure: content-addressed result caching
//     and named snapshot persistence.
//
// # Architecture
//
// The typical data flow:
//
//	Edge document (JSON)
//	         ↓
//	    [rel] package (decode, resolve node identities)
//	         ↓
//	    [forest] package (filter, resolve, materialize)
//	         ↓
//	    [render/text] or [render/nodelink]
//	         ↓
//	    Text / DOT / SVG output
//
// # Quick Start
//
// Build a forest from edges and render it:
//
//	edges := []rel.Edge{
//	    {Rel: "contains", From: child, To: parent},
//	}
//	f, err := forest.Build(edges, forest.Config{
//	    Relations: []rel.Relation{"contains"},
//	})
//	if err != nil {
//	    // cyclic input
//	}
//	out := text.Render(f, text.Options{Relations: f.Relations})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/forest/...   # Specific package
//	go test -run Example       # Examples only
//
// [rel]: https://pkg.go.dev/github.com/akshaykmanoj/treeline/pkg/rel
// [forest]: https://pkg.go.dev/github.com/akshaykmanoj/treeline/pkg/forest
// [render]: https://pkg.go.dev/github.com/akshaykmanoj/treeline/pkg/render
// [render/text]: https://pkg.go.dev/github.com/akshaykmanoj/treeline/pkg/render/text
// [render/nodelink]: https://pkg.go.dev/github.com/akshaykmanoj/treeline/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/akshaykmanoj/treeline/pkg/cache
// [store]: https://pkg.go.dev/github.com/akshaykmanoj/treeline/pkg/store
package pkg
