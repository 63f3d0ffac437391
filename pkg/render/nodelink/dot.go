package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/akshaykmanoj/treeline/pkg/forest"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed labels structural edges with the relation they carry and
	// annotates nodes with their incoming-relation sets.
	Detailed bool
}

// ToDOT converts a forest to Graphviz DOT format for node-link visualization.
// Each tree position becomes its own DOT node (a node placed twice in the
// forest appears twice), so the diagram mirrors the structural forest exactly.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(f *forest.Forest, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph forest {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	ids := make(map[*forest.TreeNode]string)
	next := 0
	f.Walk(func(n *forest.TreeNode) bool {
		ids[n] = fmt.Sprintf("n%d", next)
		next++
		fmt.Fprintf(&buf, "  %s [label=%q];\n", ids[n], fmtLabel(n, opts.Detailed))
		return true
	})

	buf.WriteString("\n")
	f.Walk(func(n *forest.TreeNode) bool {
		for _, c := range n.Children {
			if opts.Detailed && c.Edge != nil {
				fmt.Fprintf(&buf, "  %s -> %s [label=%q];\n", ids[n], ids[c], string(c.Edge.Rel))
			} else {
				fmt.Fprintf(&buf, "  %s -> %s;\n", ids[n], ids[c])
			}
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *forest.TreeNode, detailed bool) string {
	if !detailed || len(n.Relations) == 0 {
		return n.Label
	}
	parts := make([]string, len(n.Relations))
	for i, r := range n.Relations {
		parts[i] = string(r)
	}
	return n.Label + "\n" + strings.Join(parts, ", ")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the viewBox starts at the
// origin and explicit pixel dimensions are present.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
