package text

import (
	"strings"

	"github.com/akshaykmanoj/treeline/pkg/forest"
	"github.com/akshaykmanoj/treeline/pkg/rel"
)

// Branch vocabulary. Every marker occupies three cells so sibling columns
// line up regardless of depth.
const (
	markerBranch = "├─ "
	markerLast   = "└─ "
	contPipe     = "│  "
	contBlank    = "   "

	sectionIndent = "  "
)

// LabelFunc produces the printed label for a tree node. ancestors runs from
// root to parent and includes transparent nodes; relation is the tracked
// relation of the current section, or empty in flat mode.
type LabelFunc func(n *forest.TreeNode, ancestors []*forest.TreeNode, relation rel.Relation) string

// PredicateFunc gates rendering behavior per node. Arguments as in LabelFunc.
type PredicateFunc func(n *forest.TreeNode, ancestors []*forest.TreeNode, relation rel.Relation) bool

// Options configures Render. The zero value renders the whole forest flat
// with stored labels.
type Options struct {
	// Relations are the tracked relations. Empty renders the forest once in
	// flat mode; non-empty renders one section per relation, in order.
	Relations []rel.Relation

	// Label overrides the printed label. Defaults to the node's stored label.
	Label LabelFunc

	// Follow controls recursion into a node's children. Defaults to true.
	Follow PredicateFunc

	// Emit controls whether the node's own line prints. Defaults to true.
	// A node with Emit false but Follow true is transparent: its children
	// splice into its sibling position under the last emitted ancestor's
	// prefix, without an extra indent level.
	Emit PredicateFunc
}

// Render formats a forest as plain UTF-8 text. It is a pure function of its
// inputs: per-call reachability memoization is the only state, never shared
// or persisted. Panics raised by injected callbacks propagate to the caller.
//
// In sectioned mode a relation's section is omitted entirely - heading
// included - when no node reachable for that relation emits a line.
func Render(f *forest.Forest, opts Options) string {
	r := &renderer{opts: opts, reach: make(map[reachKey]bool)}
	if r.opts.Label == nil {
		r.opts.Label = storedLabel
	}
	if r.opts.Follow == nil {
		r.opts.Follow = always
	}
	if r.opts.Emit == nil {
		r.opts.Emit = always
	}

	if len(opts.Relations) == 0 {
		return r.renderFlat(f)
	}
	return r.renderSections(f)
}

func storedLabel(n *forest.TreeNode, _ []*forest.TreeNode, _ rel.Relation) string {
	return n.Label
}

func always(*forest.TreeNode, []*forest.TreeNode, rel.Relation) bool { return true }

type reachKey struct {
	node     *forest.TreeNode
	relation rel.Relation
}

type renderer struct {
	opts  Options
	reach map[reachKey]bool
}

// item is a node that survived emission filtering, carrying the ancestor
// chain it was reached through (which may include transparent nodes).
type item struct {
	node      *forest.TreeNode
	ancestors []*forest.TreeNode
	follow    bool
}

func (r *renderer) renderFlat(f *forest.Forest) string {
	var b strings.Builder
	for i, it := range r.visible(f.Roots, nil, "", false) {
		if i > 0 {
			b.WriteString("\n")
		}
		r.renderNode(&b, it, "", "", "", false)
	}
	return b.String()
}

func (r *renderer) renderSections(f *forest.Forest) string {
	var b strings.Builder
	first := true
	for _, relation := range r.opts.Relations {
		items := r.visible(f.Roots, nil, relation, true)
		if len(items) == 0 {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false

		b.WriteString(string(relation) + ":\n")
		for _, it := range items {
			r.renderNode(&b, it, sectionIndent, sectionIndent, relation, true)
		}
	}
	return b.String()
}

// visible filters and splices a child list into the items actually printed
// at one tree level. In sectioned mode, children are pre-filtered to those
// relevant to the relation before any "last child" decision is made.
// Transparent nodes are replaced by their own visible children in place.
func (r *renderer) visible(children []*forest.TreeNode, ancestors []*forest.TreeNode, relation rel.Relation, filtered bool) []item {
	var out []item
	for _, c := range children {
		if filtered && !r.reachable(c, relation) {
			continue
		}
		emit := r.opts.Emit(c, ancestors, relation)
		follow := r.opts.Follow(c, ancestors, relation)
		switch {
		case emit:
			out = append(out, item{node: c, ancestors: ancestors, follow: follow})
		case follow:
			out = append(out, r.visible(c.Children, extend(ancestors, c), relation, filtered)...)
		}
	}
	return out
}

func (r *renderer) renderNode(b *strings.Builder, it item, selfPrefix, childPrefix string, relation rel.Relation, filtered bool) {
	b.WriteString(selfPrefix)
	b.WriteString(r.opts.Label(it.node, it.ancestors, relation))
	b.WriteString("\n")

	if !it.follow {
		return
	}
	kids := r.visible(it.node.Children, extend(it.ancestors, it.node), relation, filtered)
	for i, kid := range kids {
		if i == len(kids)-1 {
			r.renderNode(b, kid, childPrefix+markerLast, childPrefix+contBlank, relation, filtered)
		} else {
			r.renderNode(b, kid, childPrefix+markerBranch, childPrefix+contPipe, relation, filtered)
		}
	}
}

// reachable reports whether n or any descendant carries relation on an
// incoming edge. Results are memoized per (node, relation) for the duration
// of a single Render call.
func (r *renderer) reachable(n *forest.TreeNode, relation rel.Relation) bool {
	key := reachKey{node: n, relation: relation}
	if v, ok := r.reach[key]; ok {
		return v
	}
	v := n.HasRelation(relation)
	if !v {
		for _, c := range n.Children {
			if r.reachable(c, relation) {
				v = true
				break
			}
		}
	}
	r.reach[key] = v
	return v
}

// extend copies the ancestor chain before appending, so sibling items never
// alias each other's backing arrays.
func extend(ancestors []*forest.TreeNode, n *forest.TreeNode) []*forest.TreeNode {
	out := make([]*forest.TreeNode, len(ancestors), len(ancestors)+1)
	copy(out, ancestors)
	return append(out, n)
}
