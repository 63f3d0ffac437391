package rel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is the canonical interchange format for edge collections.
// It is consumed by the CLI, hashed for caching, and stored as snapshots.
//
// Node ids are document-scoped strings; decoding resolves every edge endpoint
// to the single shared *DocNode carrying that id, so node identity semantics
// hold across all edges of the document.
type Document struct {
	Nodes []*DocNode `json:"nodes" bson:"nodes"`
	Edges []DocEdge  `json:"edges" bson:"edges"`
}

// DocNode is a node payload inside a Document. It implements the optional
// Kinded, Texter, and Depther interfaces, so the default label heuristic
// applies to decoded documents without further configuration.
type DocNode struct {
	ID    string `json:"id" bson:"id"`
	Kind  string `json:"kind,omitempty" bson:"kind,omitempty"`
	Depth int    `json:"depth,omitempty" bson:"depth,omitempty"`
	Text  string `json:"text,omitempty" bson:"text,omitempty"`
}

// NodeKind returns the node's kind tag.
func (n *DocNode) NodeKind() string { return n.Kind }

// NodeText returns the node's extractable text.
func (n *DocNode) NodeText() string { return n.Text }

// NodeDepth returns the heading depth for heading-like nodes.
func (n *DocNode) NodeDepth() int { return n.Depth }

// DocEdge is a directed fact between two node ids within a Document.
type DocEdge struct {
	Rel  string `json:"rel" bson:"rel"`
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Resolve converts the document's edges into Edge values whose endpoints are
// the document's shared *DocNode instances. An edge referencing an unknown
// node id is an error; duplicate node ids are an error as well.
func (d *Document) Resolve() ([]Edge, error) {
	byID := make(map[string]*DocNode, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node with empty id")
		}
		if _, exists := byID[n.ID]; exists {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		byID[n.ID] = n
	}

	edges := make([]Edge, 0, len(d.Edges))
	for _, e := range d.Edges {
		from, ok := byID[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %s→%s: unknown node id %q", e.From, e.To, e.From)
		}
		to, ok := byID[e.To]
		if !ok {
			return nil, fmt.Errorf("edge %s→%s: unknown node id %q", e.From, e.To, e.To)
		}
		edges = append(edges, Edge{Rel: Relation(e.Rel), From: from, To: to})
	}
	return edges, nil
}

// MarshalDocument encodes a document as indented JSON.
func MarshalDocument(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes a document as indented JSON to w.
func WriteDocument(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDocument decodes a JSON document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &d, nil
}

// ReadDocumentFile reads and decodes a JSON document file.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}
