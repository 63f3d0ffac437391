package forest

import (
	"github.com/akshaykmanoj/treeline/pkg/rel"
)

// TreeNode is a materialized position in the structural forest.
//
// A node holds at most one position per incoming structural edge: the same
// underlying rel.Node reached through two distinct edges appears as two
// TreeNodes under the same parent, each carrying its own incoming edge.
type TreeNode struct {
	// Node is the underlying content-tree element.
	Node rel.Node

	// Edge is the structural edge that placed this node under its parent.
	// Nil for roots.
	Edge *rel.Edge

	// Relations lists the relations carried by the node's incoming edges,
	// structural or not, deduplicated in first-seen order.
	Relations []rel.Relation

	// Label is the display label produced by the build's label policy.
	Label string

	// Level is the tree depth produced by the build's level policy.
	// With the default policy, roots are 0 and each child is parent+1.
	Level int

	// Children are ordered by edge discovery order.
	Children []*TreeNode
}

// HasRelation reports whether r appears among the node's incoming relations.
func (n *TreeNode) HasRelation(r rel.Relation) bool {
	for _, have := range n.Relations {
		if have == r {
			return true
		}
	}
	return false
}

// Forest is the immutable product of Build. It is never mutated after
// construction and is safe to share across goroutines without locking.
type Forest struct {
	// Relations lists the relations used by resolved edges, first-seen order.
	// Empty when the build produced no structural edges.
	Relations []rel.Relation

	// Edges is the original edge collection the forest was built from.
	Edges []rel.Edge

	// Roots are the parentless nodes in stable discovery order.
	Roots []*TreeNode
}

// Walk visits every tree node pre-order, parents before children.
// Returning false from fn skips the node's subtree.
func (f *Forest) Walk(fn func(n *TreeNode) bool) {
	stack := make([]*TreeNode, len(f.Roots))
	for i := range f.Roots {
		stack[len(f.Roots)-1-i] = f.Roots[i]
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// NodeCount returns the number of tree positions in the forest.
// A node placed twice (via two distinct edges) counts twice.
func (f *Forest) NodeCount() int {
	count := 0
	f.Walk(func(*TreeNode) bool {
		count++
		return true
	})
	return count
}
