package text

import (
	"strings"
	"testing"

	"github.com/akshaykmanoj/treeline/pkg/forest"
	"github.com/akshaykmanoj/treeline/pkg/rel"
)

// build is a test helper producing a forest from child-under-parent facts.
func build(t *testing.T, relations []rel.Relation, facts ...[3]string) *forest.Forest {
	t.Helper()
	edges := make([]rel.Edge, 0, len(facts))
	for _, f := range facts {
		edges = append(edges, rel.Edge{Rel: rel.Relation(f[0]), From: f[1], To: f[2]})
	}
	f, err := forest.Build(edges, forest.Config{
		Relations: relations,
		Label:     func(n rel.Node) string { return n.(string) },
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return f
}

func TestRenderFlat(t *testing.T) {
	tests := []struct {
		name  string
		facts [][3]string
		want  string
	}{
		{
			name: "Chain",
			facts: [][3]string{
				{"contains", "B", "A"},
				{"contains", "C", "B"},
			},
			want: "A\n" +
				"└─ B\n" +
				"   └─ C\n",
		},
		{
			name: "Siblings",
			facts: [][3]string{
				{"contains", "B", "A"},
				{"contains", "C", "A"},
			},
			want: "A\n" +
				"├─ B\n" +
				"└─ C\n",
		},
		{
			name: "ContinuationPipes",
			facts: [][3]string{
				{"contains", "B", "A"},
				{"contains", "D", "B"},
				{"contains", "C", "A"},
			},
			want: "A\n" +
				"├─ B\n" +
				"│  └─ D\n" +
				"└─ C\n",
		},
		{
			name: "RootsSeparatedByBlankLine",
			facts: [][3]string{
				{"contains", "B", "A"},
				{"contains", "D", "C"},
			},
			want: "A\n" +
				"└─ B\n" +
				"\n" +
				"C\n" +
				"└─ D\n",
		},
		{
			name:  "Empty",
			facts: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := build(t, nil, tt.facts...)
			got := Render(f, Options{})
			if got != tt.want {
				t.Errorf("Render:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderSections(t *testing.T) {
	// B sits under A via r1; the r2 edge records C as a bookkeeping child of
	// A, so C stands alone as a parentless root carrying r2.
	f := build(t, []rel.Relation{"r1", "r2"},
		[3]string{"r1", "B", "A"},
		[3]string{"r2", "C", "A"},
	)

	got := Render(f, Options{Relations: []rel.Relation{"r1", "r2"}})
	want := "r1:\n" +
		"  A\n" +
		"  └─ B\n" +
		"\n" +
		"r2:\n" +
		"  C\n"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderSectionOmittedWhenEmpty(t *testing.T) {
	f := build(t, []rel.Relation{"r1", "r2"},
		[3]string{"r1", "B", "A"},
	)

	got := Render(f, Options{Relations: []rel.Relation{"r1", "r2"}})
	want := "r1:\n" +
		"  A\n" +
		"  └─ B\n"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "r2:") {
		t.Error("empty section r2 should be omitted entirely")
	}
}

func TestRenderSectionFiltersSubtrees(t *testing.T) {
	// Only the D branch carries r2; the C branch must not print in the r2
	// section, and D becomes the last (and only) child under B.
	f := build(t, []rel.Relation{"r1", "r2"},
		[3]string{"r1", "B", "A"},
		[3]string{"r1", "C", "A"},
		[3]string{"r1", "D", "B"},
		[3]string{"r2", "D", "B"},
	)

	got := Render(f, Options{Relations: []rel.Relation{"r2"}})
	want := "r2:\n" +
		"  A\n" +
		"  └─ B\n" +
		"     └─ D\n"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderCustomLabel(t *testing.T) {
	f := build(t, nil, [3]string{"contains", "B", "A"})

	got := Render(f, Options{
		Label: func(n *forest.TreeNode, ancestors []*forest.TreeNode, _ rel.Relation) string {
			return strings.Repeat(">", len(ancestors)) + n.Node.(string)
		},
	})
	want := "A\n" +
		"└─ >B\n"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderFollowPrunes(t *testing.T) {
	f := build(t, nil,
		[3]string{"contains", "B", "A"},
		[3]string{"contains", "C", "B"},
	)

	got := Render(f, Options{
		Follow: func(n *forest.TreeNode, _ []*forest.TreeNode, _ rel.Relation) bool {
			return n.Node.(string) != "B"
		},
	})
	want := "A\n" +
		"└─ B\n"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTransparentNodeSplicesChildren(t *testing.T) {
	// B is followed but not emitted, so C and D surface as A's direct
	// children alongside E without an extra indent level.
	f := build(t, nil,
		[3]string{"contains", "B", "A"},
		[3]string{"contains", "C", "B"},
		[3]string{"contains", "D", "B"},
		[3]string{"contains", "E", "A"},
	)

	got := Render(f, Options{
		Emit: func(n *forest.TreeNode, _ []*forest.TreeNode, _ rel.Relation) bool {
			return n.Node.(string) != "B"
		},
	})
	want := "A\n" +
		"├─ C\n" +
		"├─ D\n" +
		"└─ E\n"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderHiddenSubtree(t *testing.T) {
	// Emit false with Follow false removes the node and everything below it.
	f := build(t, nil,
		[3]string{"contains", "B", "A"},
		[3]string{"contains", "C", "B"},
		[3]string{"contains", "D", "A"},
	)

	hide := func(n *forest.TreeNode, _ []*forest.TreeNode, _ rel.Relation) bool {
		return n.Node.(string) != "B"
	}
	got := Render(f, Options{Emit: hide, Follow: hide})
	want := "A\n" +
		"└─ D\n"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderAncestorsIncludeTransparent(t *testing.T) {
	f := build(t, nil,
		[3]string{"contains", "B", "A"},
		[3]string{"contains", "C", "B"},
	)

	var seen []string
	Render(f, Options{
		Emit: func(n *forest.TreeNode, _ []*forest.TreeNode, _ rel.Relation) bool {
			return n.Node.(string) != "B"
		},
		Label: func(n *forest.TreeNode, ancestors []*forest.TreeNode, _ rel.Relation) string {
			if n.Node.(string) == "C" {
				for _, a := range ancestors {
					seen = append(seen, a.Node.(string))
				}
			}
			return n.Node.(string)
		},
	})
	if len(seen) != 2 || seen[0] != "A" || seen[1] != "B" {
		t.Errorf("ancestors of C = %v, want [A B]", seen)
	}
}

func TestRenderPure(t *testing.T) {
	f := build(t, []rel.Relation{"r1", "r2"},
		[3]string{"r1", "B", "A"},
		[3]string{"r2", "C", "B"},
	)
	opts := Options{Relations: []rel.Relation{"r1", "r2"}}

	first := Render(f, opts)
	for i := 0; i < 5; i++ {
		if got := Render(f, opts); got != first {
			t.Fatal("repeated Render calls produced different output")
		}
	}
}

func TestColorizePreservesStructure(t *testing.T) {
	f := build(t, nil,
		[3]string{"contains", "B", "A"},
		[3]string{"contains", "C", "B"},
	)

	plain := Render(f, Options{})
	colored := Render(f, Options{Label: Colorize(storedLabel)})

	if colored == plain {
		t.Skip("no color profile available in test environment")
	}
	if gotLines, wantLines := strings.Count(colored, "\n"), strings.Count(plain, "\n"); gotLines != wantLines {
		t.Errorf("line count = %d, want %d", gotLines, wantLines)
	}
}
