package forest

import (
	"errors"
	"testing"

	"github.com/akshaykmanoj/treeline/pkg/rel"
)

// edge builds a structural fact "child under parent" using the default
// resolution (From is the child, To is the parent).
func edge(r rel.Relation, child, parent string) rel.Edge {
	return rel.Edge{Rel: r, From: child, To: parent}
}

// name extracts the string node behind a tree position.
func name(n *TreeNode) string {
	s, _ := n.Node.(string)
	return s
}

// childNames lists a node's children in order.
func childNames(n *TreeNode) []string {
	out := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, name(c))
	}
	return out
}

func rootNames(f *Forest) []string {
	out := make([]string, 0, len(f.Roots))
	for _, r := range f.Roots {
		out = append(out, name(r))
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		edges     []rel.Edge
		cfg       Config
		wantRoots []string
		wantCount int
		check     func(t *testing.T, f *Forest)
	}{
		{
			name:      "Empty",
			edges:     nil,
			wantRoots: nil,
			wantCount: 0,
		},
		{
			name: "Chain",
			edges: []rel.Edge{
				edge("contains", "B", "A"),
				edge("contains", "C", "B"),
			},
			wantRoots: []string{"A"},
			wantCount: 3,
			check: func(t *testing.T, f *Forest) {
				a := f.Roots[0]
				if got := childNames(a); !equalStrings(got, []string{"B"}) {
					t.Errorf("children of A = %v, want [B]", got)
				}
				b := a.Children[0]
				if got := childNames(b); !equalStrings(got, []string{"C"}) {
					t.Errorf("children of B = %v, want [C]", got)
				}
				if b.Children[0].Level != 2 {
					t.Errorf("level of C = %d, want 2", b.Children[0].Level)
				}
			},
		},
		{
			name: "TwoRoots",
			edges: []rel.Edge{
				edge("contains", "B", "A"),
				edge("contains", "D", "C"),
			},
			wantRoots: []string{"A", "C"},
			wantCount: 4,
		},
		{
			name: "ChildOrderFollowsDiscovery",
			edges: []rel.Edge{
				edge("contains", "C", "A"),
				edge("contains", "B", "A"),
			},
			wantRoots: []string{"A"},
			wantCount: 3,
			check: func(t *testing.T, f *Forest) {
				if got := childNames(f.Roots[0]); !equalStrings(got, []string{"C", "B"}) {
					t.Errorf("children = %v, want [C B]", got)
				}
			},
		},
		{
			name: "DuplicateEdgeRecordsOnce",
			edges: []rel.Edge{
				edge("contains", "B", "A"),
				edge("contains", "B", "A"),
			},
			wantRoots: []string{"A"},
			wantCount: 2,
		},
		{
			name: "DistinctRelationsPlaceSeparately",
			edges: []rel.Edge{
				edge("contains", "B", "A"),
				edge("references", "B", "A"),
			},
			wantRoots: []string{"A"},
			wantCount: 3,
			check: func(t *testing.T, f *Forest) {
				kids := f.Roots[0].Children
				if len(kids) != 2 {
					t.Fatalf("positions for B = %d, want 2", len(kids))
				}
				if kids[0].Edge.Rel != "contains" || kids[1].Edge.Rel != "references" {
					t.Errorf("incoming edges = %v, %v", kids[0].Edge.Rel, kids[1].Edge.Rel)
				}
			},
		},
		{
			name: "LastWriteWins",
			edges: []rel.Edge{
				edge("contains", "C", "A"),
				edge("contains", "C", "B"),
				edge("contains", "A", "R"),
				edge("contains", "B", "R"),
			},
			wantRoots: []string{"R"},
			wantCount: 4,
			check: func(t *testing.T, f *Forest) {
				var under []string
				f.Walk(func(n *TreeNode) bool {
					if name(n) == "C" && n.Edge != nil {
						under = append(under, n.Edge.To.(string))
					}
					return true
				})
				if !equalStrings(under, []string{"B"}) {
					t.Errorf("C placed under %v, want only B", under)
				}
			},
		},
		{
			name: "AllowListPrimaryShapesTree",
			edges: []rel.Edge{
				edge("r1", "B", "A"),
				edge("r2", "A", "C"),
			},
			cfg:       Config{Relations: []rel.Relation{"r1", "r2"}},
			wantRoots: []string{"A", "C"},
			wantCount: 3,
			check: func(t *testing.T, f *Forest) {
				a := f.Roots[0]
				if got := childNames(a); !equalStrings(got, []string{"B"}) {
					t.Errorf("children of A = %v, want [B]", got)
				}
				if !a.HasRelation("r2") {
					t.Error("A should carry incoming relation r2")
				}
				if !a.Children[0].HasRelation("r1") {
					t.Error("B should carry incoming relation r1")
				}
			},
		},
		{
			name: "UnlistedRelationDroppedSilently",
			edges: []rel.Edge{
				edge("r1", "B", "A"),
				edge("other", "D", "A"),
			},
			cfg:       Config{Relations: []rel.Relation{"r1"}},
			wantRoots: []string{"A"},
			wantCount: 2,
			check: func(t *testing.T, f *Forest) {
				f.Walk(func(n *TreeNode) bool {
					if name(n) == "D" {
						t.Error("dropped-relation participant D materialized")
					}
					return true
				})
			},
		},
		{
			name: "NoStructuralEdgesYieldsEmptyForest",
			edges: []rel.Edge{
				edge("r2", "B", "A"),
			},
			cfg:       Config{Relations: []rel.Relation{"r1", "r2"}},
			wantRoots: nil,
			wantCount: 0,
			check: func(t *testing.T, f *Forest) {
				if len(f.Edges) != 1 {
					t.Errorf("edges retained = %d, want 1", len(f.Edges))
				}
				if len(f.Relations) != 0 {
					t.Errorf("relations = %v, want empty", f.Relations)
				}
			},
		},
		{
			name: "CustomResolveSwapsDirection",
			edges: []rel.Edge{
				{Rel: "contains", From: "A", To: "B"},
			},
			cfg: Config{
				Resolve: func(e rel.Edge) (rel.Node, rel.Node, bool) {
					return e.From, e.To, true
				},
			},
			wantRoots: []string{"A"},
			wantCount: 2,
		},
		{
			name: "ResolveCanExcludeEdges",
			edges: []rel.Edge{
				edge("contains", "B", "A"),
				edge("contains", "C", "B"),
			},
			cfg: Config{
				Resolve: func(e rel.Edge) (rel.Node, rel.Node, bool) {
					if e.From == "C" {
						return nil, nil, false
					}
					return e.To, e.From, true
				},
			},
			wantRoots: []string{"A"},
			wantCount: 2,
		},
		{
			name: "CustomLevelAndLabel",
			edges: []rel.Edge{
				edge("contains", "B", "A"),
			},
			cfg: Config{
				Level: func(_ rel.Node, parent *TreeNode) int {
					if parent == nil {
						return 10
					}
					return parent.Level + 2
				},
				Label: func(n rel.Node) string { return "node " + n.(string) },
			},
			wantRoots: []string{"A"},
			wantCount: 2,
			check: func(t *testing.T, f *Forest) {
				a := f.Roots[0]
				if a.Level != 10 || a.Children[0].Level != 12 {
					t.Errorf("levels = %d, %d, want 10, 12", a.Level, a.Children[0].Level)
				}
				if a.Label != "node A" {
					t.Errorf("label = %q, want %q", a.Label, "node A")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Build(tt.edges, tt.cfg)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := rootNames(f); !equalStrings(got, tt.wantRoots) {
				t.Errorf("roots = %v, want %v", got, tt.wantRoots)
			}
			if got := f.NodeCount(); got != tt.wantCount {
				t.Errorf("node count = %d, want %d", got, tt.wantCount)
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}

func TestBuildCycle(t *testing.T) {
	tests := []struct {
		name  string
		edges []rel.Edge
	}{
		{
			name: "TwoNodeLoop",
			edges: []rel.Edge{
				edge("contains", "A", "B"),
				edge("contains", "B", "A"),
			},
		},
		{
			name: "SelfLoop",
			edges: []rel.Edge{
				edge("contains", "A", "A"),
			},
		},
		{
			name: "LoopBelowValidTree",
			edges: []rel.Edge{
				edge("contains", "B", "A"),
				edge("contains", "C", "D"),
				edge("contains", "D", "C"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.edges, Config{})
			if err == nil {
				t.Fatal("Build: expected cycle error, got nil")
			}
			if !errors.Is(err, ErrCycle) {
				t.Errorf("errors.Is(err, ErrCycle) = false for %v", err)
			}
			var ce *CycleError
			if !errors.As(err, &ce) {
				t.Fatalf("error is %T, want *CycleError", err)
			}
			if len(ce.Path) == 0 {
				t.Error("cycle path is empty")
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	edges := []rel.Edge{
		edge("contains", "B", "A"),
		edge("contains", "C", "A"),
		edge("contains", "D", "B"),
		edge("references", "D", "C"),
		edge("contains", "F", "E"),
	}

	first, err := Build(edges, Config{Relations: []rel.Relation{"contains", "references"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Build(edges, Config{Relations: []rel.Relation{"contains", "references"}})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if !sameShape(first.Roots, again.Roots) {
			t.Fatal("repeated builds produced different forests")
		}
	}
}

func sameShape(a, b []*TreeNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Node != b[i].Node || a[i].Label != b[i].Label || a[i].Level != b[i].Level {
			return false
		}
		if !sameShape(a[i].Children, b[i].Children) {
			return false
		}
	}
	return true
}

func TestDefaultLabel(t *testing.T) {
	tests := []struct {
		name string
		node rel.Node
		want string
	}{
		{
			name: "Heading",
			node: &rel.DocNode{ID: "h", Kind: rel.KindHeading, Depth: 2, Text: "Overview"},
			want: "heading:#2 Overview",
		},
		{
			name: "Paragraph",
			node: &rel.DocNode{ID: "p", Kind: rel.KindParagraph, Text: "Some prose."},
			want: "paragraph:Some prose.",
		},
		{
			name: "UnknownKindFallsBack",
			node: &rel.DocNode{ID: "x", Kind: "figure", Text: "fig"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultLabel(tt.node)
			if tt.want != "" && got != tt.want {
				t.Errorf("DefaultLabel = %q, want %q", got, tt.want)
			}
			if tt.want == "" && got == "" {
				t.Error("DefaultLabel returned empty fallback")
			}
		})
	}
}
