package forest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/akshaykmanoj/treeline/pkg/rel"
)

// ErrCycle is returned (wrapped in a *CycleError) by [Build] when a
// structural parent chain revisits a node. Cyclic input is reported, never
// recursed into.
var ErrCycle = errors.New("hierarchy contains a cycle")

// CycleError reports a structural cycle found during forest construction.
// It wraps ErrCycle for errors.Is checks.
type CycleError struct {
	// Node is a node proven to lie on the cycle.
	Node rel.Node
	// Path is the parent chain that closed the cycle, starting and ending
	// at Node.
	Path []rel.Node
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("hierarchy contains a cycle through %d node(s)", len(e.Path))
}

// Unwrap returns ErrCycle for errors.Is compatibility.
func (e *CycleError) Unwrap() error { return ErrCycle }

// ResolveFunc decides which endpoint of an edge acts as parent and which as
// child. Returning ok == false excludes the edge from all further processing.
type ResolveFunc func(e rel.Edge) (parent, child rel.Node, ok bool)

// LevelFunc computes a node's tree level. parent is nil for roots.
type LevelFunc func(n rel.Node, parent *TreeNode) int

// LabelFunc produces a node's display label.
type LabelFunc func(n rel.Node) string

// Config controls forest construction. The zero value is usable: every
// relation participates structurally, edges point child→parent, levels count
// from zero, and labels come from the default heuristic.
type Config struct {
	// Relations is an optional allow-list. When empty, all relations
	// participate structurally and there is no primary. When non-empty, the
	// first entry is the primary relation - only primary edges shape the
	// tree; the remaining listed relations are retained for per-node
	// bookkeeping; relations absent from the list are dropped before any
	// bookkeeping and are invisible downstream. The silent drop is an
	// intentional default, not a diagnostic gap.
	Relations []rel.Relation

	// Resolve maps an edge to its (parent, child) pair.
	// Defaults to DefaultResolve.
	Resolve ResolveFunc

	// Level overrides level assignment. Defaults to DefaultLevel.
	Level LevelFunc

	// Label overrides label assignment. Defaults to DefaultLabel.
	Label LabelFunc
}

// DefaultResolve treats edge.From as the child and edge.To as the parent.
func DefaultResolve(e rel.Edge) (parent, child rel.Node, ok bool) {
	return e.To, e.From, true
}

// DefaultLevel assigns 0 to roots and parent.Level+1 otherwise.
func DefaultLevel(_ rel.Node, parent *TreeNode) int {
	if parent == nil {
		return 0
	}
	return parent.Level + 1
}

// DefaultLabel inspects the node's kind tag: heading-like nodes become
// "heading:#<depth> <text>", paragraph-like nodes "paragraph:<text>", and
// everything else falls back to a structural dump of the node.
func DefaultLabel(n rel.Node) string {
	var kind, text string
	if k, ok := n.(rel.Kinded); ok {
		kind = k.NodeKind()
	}
	if t, ok := n.(rel.Texter); ok {
		text = t.NodeText()
	}
	switch kind {
	case rel.KindHeading:
		depth := 0
		if d, ok := n.(rel.Depther); ok {
			depth = d.NodeDepth()
		}
		return fmt.Sprintf("heading:#%d %s", depth, text)
	case rel.KindParagraph:
		return "paragraph:" + text
	default:
		return fmt.Sprintf("%#v", n)
	}
}

// builder holds the per-build bookkeeping, keyed by interned node handles.
// Each distinct node value gets a stable integer handle at first sight.
type builder struct {
	cfg     Config
	resolve ResolveFunc
	level   LevelFunc
	label   LabelFunc

	handles map[rel.Node]int
	nodes   []rel.Node

	participants []int // discovery order of resolved-edge endpoints
	seen         map[int]bool

	parentOf map[int]int
	children map[int][]childEntry
	dedup    map[dedupKey]bool

	relsOf  map[int][]rel.Relation
	relSeen map[relKey]bool

	used     []rel.Relation
	usedSeen map[rel.Relation]bool

	structural bool
}

type childEntry struct {
	child int
	edge  rel.Edge
}

// dedupKey identifies an edge by value, so a duplicated fact in the input
// records once while two distinct facts reaching the same child both record.
type dedupKey struct {
	parent, child int
	edge          rel.Edge
}

type relKey struct {
	node int
	r    rel.Relation
}

// Build consolidates an edge collection into an immutable forest under the
// given configuration. The input may be empty or contain duplicates. A
// collection yielding no resolved structural edges produces an empty forest.
//
// Conflicting hierarchy facts resolve last-write-wins: when successive
// structural edges assign a child different parents, the last edge processed
// decides, and the child materializes only under that parent.
//
// Returns a *CycleError (wrapping ErrCycle) when a structural parent chain
// revisits a node.
func Build(edges []rel.Edge, cfg Config) (*Forest, error) {
	b := &builder{
		cfg:      cfg,
		resolve:  cfg.Resolve,
		level:    cfg.Level,
		label:    cfg.Label,
		handles:  make(map[rel.Node]int),
		seen:     make(map[int]bool),
		parentOf: make(map[int]int),
		children: make(map[int][]childEntry),
		dedup:    make(map[dedupKey]bool),
		relsOf:   make(map[int][]rel.Relation),
		relSeen:  make(map[relKey]bool),
		usedSeen: make(map[rel.Relation]bool),
	}
	if b.resolve == nil {
		b.resolve = DefaultResolve
	}
	if b.level == nil {
		b.level = DefaultLevel
	}
	if b.label == nil {
		b.label = DefaultLabel
	}

	b.consume(edges)

	if !b.structural {
		return &Forest{Edges: slices.Clone(edges)}, nil
	}

	roots, err := b.materialize()
	if err != nil {
		return nil, err
	}

	return &Forest{
		Relations: b.used,
		Edges:     slices.Clone(edges),
		Roots:     roots,
	}, nil
}

// intern assigns a stable handle to a node at first sight and records it as
// a participant in discovery order.
func (b *builder) intern(n rel.Node) int {
	if h, ok := b.handles[n]; ok {
		return h
	}
	h := len(b.nodes)
	b.handles[n] = h
	b.nodes = append(b.nodes, n)
	b.participants = append(b.participants, h)
	return h
}

// consume runs the filter/resolve/record passes over the edge collection.
func (b *builder) consume(edges []rel.Edge) {
	var allowed map[rel.Relation]bool
	var primary rel.Relation
	if len(b.cfg.Relations) > 0 {
		primary = b.cfg.Relations[0]
		allowed = make(map[rel.Relation]bool, len(b.cfg.Relations))
		for _, r := range b.cfg.Relations {
			allowed[r] = true
		}
	}

	for _, e := range edges {
		if allowed != nil && !allowed[e.Rel] {
			continue
		}
		parent, child, ok := b.resolve(e)
		if !ok {
			continue
		}
		ph := b.intern(parent)
		ch := b.intern(child)

		if !b.usedSeen[e.Rel] {
			b.usedSeen[e.Rel] = true
			b.used = append(b.used, e.Rel)
		}

		// Incoming-relation bookkeeping happens for every resolved edge,
		// structural or not.
		rk := relKey{node: ch, r: e.Rel}
		if !b.relSeen[rk] {
			b.relSeen[rk] = true
			b.relsOf[ch] = append(b.relsOf[ch], e.Rel)
		}

		if primary != "" && e.Rel != primary {
			continue
		}
		b.structural = true

		dk := dedupKey{parent: ph, child: ch, edge: e}
		if !b.dedup[dk] {
			b.dedup[dk] = true
			b.children[ph] = append(b.children[ph], childEntry{child: ch, edge: e})
		}
		b.parentOf[ch] = ph
	}
}

// materialize builds TreeNodes depth-first with an explicit stack, parent
// before children, guarding each root traversal with an on-path marker set.
func (b *builder) materialize() ([]*TreeNode, error) {
	visited := make(map[int]bool, len(b.participants))
	var roots []*TreeNode

	for _, h := range b.participants {
		if _, hasParent := b.parentOf[h]; hasParent {
			continue
		}
		root, err := b.traverse(h, visited)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}

	// A cyclic component has every member parented, so no root traversal
	// reaches it. Any participant left unvisited sits on or below a cycle.
	if len(visited) < len(b.participants) {
		for _, h := range b.participants {
			if !visited[h] {
				return nil, b.cycleError(h)
			}
		}
	}

	return roots, nil
}

type frame struct {
	handle int
	edge   *rel.Edge
	parent *TreeNode
	exit   bool
}

// traverse materializes the subtree rooted at h. The on-path marker set is
// reset for each root.
func (b *builder) traverse(h int, visited map[int]bool) (*TreeNode, error) {
	onPath := make(map[int]bool)

	var root *TreeNode
	stack := []frame{{handle: h}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			onPath[f.handle] = false
			continue
		}
		if onPath[f.handle] {
			return nil, b.cycleError(f.handle)
		}
		onPath[f.handle] = true
		visited[f.handle] = true
		stack = append(stack, frame{handle: f.handle, exit: true})

		node := b.nodes[f.handle]
		tn := &TreeNode{
			Node:      node,
			Edge:      f.edge,
			Relations: b.relsOf[f.handle],
			Label:     b.label(node),
			Level:     b.level(node, f.parent),
		}
		if f.parent == nil {
			root = tn
		} else {
			f.parent.Children = append(f.parent.Children, tn)
		}

		// Push children in reverse so they materialize in discovery order.
		// Entries whose child was since reassigned to another parent are
		// skipped: last write won.
		entries := b.children[f.handle]
		for i := len(entries) - 1; i >= 0; i-- {
			entry := entries[i]
			if b.parentOf[entry.child] != f.handle {
				continue
			}
			edge := entry.edge
			stack = append(stack, frame{handle: entry.child, edge: &edge, parent: tn})
		}
	}

	return root, nil
}

// cycleError walks the parent chain from h until it revisits a node and
// reports the closed loop.
func (b *builder) cycleError(h int) error {
	index := make(map[int]int)
	var chain []int
	cur := h
	for {
		if at, ok := index[cur]; ok {
			loop := chain[at:]
			path := make([]rel.Node, 0, len(loop)+1)
			for _, n := range loop {
				path = append(path, b.nodes[n])
			}
			path = append(path, b.nodes[cur])
			return &CycleError{Node: b.nodes[cur], Path: path}
		}
		index[cur] = len(chain)
		chain = append(chain, cur)
		next, ok := b.parentOf[cur]
		if !ok {
			// Chain reached a root without looping; h itself was the loop.
			return &CycleError{Node: b.nodes[h], Path: []rel.Node{b.nodes[h]}}
		}
		cur = next
	}
}
