// Package rel defines the relationship model shared by the hierarchy builder
// and the renderers: opaque content-tree nodes, relation labels, and directed
// edge facts connecting them.
//
// Nodes are owned by an external content tree. Treeline never inspects them
// beyond identity comparison and the small optional interfaces below, which
// feed the default labeling heuristic. Edge discovery is an external concern:
// whatever mechanism produces edges must reuse stable node values, so that
// repeated appearances of "the same" node compare equal.
package rel

// Node is an opaque content-tree element used purely as an identity key.
// Node values must be comparable; two edges referring to the same underlying
// element must carry equal Node values (pointers satisfy this naturally).
type Node any

// Relation names the semantic meaning of an edge, e.g. "contains" or
// "references". The set of relations is closed and caller-defined.
type Relation string

// Edge is a directed relationship fact between two nodes. Which endpoint acts
// as parent and which as child is decided by a resolver policy at build time,
// not by the edge itself.
type Edge struct {
	Rel  Relation
	From Node
	To   Node
}

// Node kinds recognized by the default label heuristic.
const (
	KindHeading   = "heading"
	KindParagraph = "paragraph"
)

// Kinded exposes a node's kind tag. Nodes that don't implement it fall back
// to a structural dump in the default label heuristic.
type Kinded interface {
	NodeKind() string
}

// Texter exposes a node's extractable text content.
type Texter interface {
	NodeText() string
}

// Depther exposes a heading-like node's depth (1 for a top-level heading).
type Depther interface {
	NodeDepth() int
}
