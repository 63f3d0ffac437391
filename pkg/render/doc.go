// Package render groups the output formats for hierarchical forests.
//
// # Text Trees
//
// The [text] subpackage prints a forest as an indented UTF-8 tree using
// box-drawing branch markers. With tracked relations the output is grouped
// into one section per relation; label, follow, and emit callbacks filter
// and restyle the output without mutating the forest.
//
//	out := text.Render(f, text.Options{Relations: f.Relations})
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the structural forest as a traditional
// directed graph diagram. Forests convert to Graphviz DOT, which renders to
// SVG in process:
//
//	dot := nodelink.ToDOT(f, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [text]: https://pkg.go.dev/github.com/akshaykmanoj/treeline/pkg/render/text
// [nodelink]: https://pkg.go.dev/github.com/akshaykmanoj/treeline/pkg/render/nodelink
package render
