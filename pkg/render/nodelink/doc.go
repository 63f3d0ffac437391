// Package nodelink renders forests as traditional node-link diagrams.
//
// It is an alternative to the text renderer for cases where a graphical
// directed-graph view of the structural hierarchy is preferred. [ToDOT]
// produces Graphviz DOT source mirroring the forest exactly; [RenderSVG]
// rasterizes it in process via [github.com/goccy/go-graphviz].
//
//	dot := nodelink.ToDOT(f, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
package nodelink
