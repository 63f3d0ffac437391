package store

import (
	"context"
	"errors"
	"testing"

	"github.com/akshaykmanoj/treeline/pkg/rel"
)

func testDoc(text string) *rel.Document {
	return &rel.Document{
		Nodes: []*rel.DocNode{
			{ID: "a", Kind: rel.KindHeading, Depth: 1, Text: text},
			{ID: "b", Kind: rel.KindParagraph, Text: "body"},
		},
		Edges: []rel.DocEdge{{Rel: "contains", From: "b", To: "a"}},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveAndLoad", func(t *testing.T) {
		s := NewMemoryStore()
		defer s.Close(ctx)

		if err := s.Save(ctx, "run1", testDoc("Intro")); err != nil {
			t.Fatalf("Save: %v", err)
		}

		snap, err := s.Load(ctx, "run1")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if snap.Name != "run1" {
			t.Errorf("name = %q, want run1", snap.Name)
		}
		if snap.SavedAt.IsZero() {
			t.Error("SavedAt is zero")
		}
		if len(snap.Doc.Nodes) != 2 || snap.Doc.Nodes[0].Text != "Intro" {
			t.Errorf("document payload lost: %+v", snap.Doc)
		}
	})

	t.Run("LoadMissing", func(t *testing.T) {
		s := NewMemoryStore()
		defer s.Close(ctx)

		if _, err := s.Load(ctx, "absent"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load error = %v, want ErrNotFound", err)
		}
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		s := NewMemoryStore()
		defer s.Close(ctx)

		if err := s.Save(ctx, "run1", testDoc("first")); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := s.Save(ctx, "run1", testDoc("second")); err != nil {
			t.Fatalf("Save: %v", err)
		}

		snap, err := s.Load(ctx, "run1")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if snap.Doc.Nodes[0].Text != "second" {
			t.Errorf("text = %q, want second", snap.Doc.Nodes[0].Text)
		}

		list, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("snapshots = %d, want 1", len(list))
		}
	})

	t.Run("ListSortedByName", func(t *testing.T) {
		s := NewMemoryStore()
		defer s.Close(ctx)

		for _, name := range []string{"charlie", "alpha", "bravo"} {
			if err := s.Save(ctx, name, testDoc(name)); err != nil {
				t.Fatalf("Save %s: %v", name, err)
			}
		}

		list, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		want := []string{"alpha", "bravo", "charlie"}
		if len(list) != len(want) {
			t.Fatalf("snapshots = %d, want %d", len(list), len(want))
		}
		for i, w := range want {
			if list[i].Name != w {
				t.Errorf("list[%d] = %q, want %q", i, list[i].Name, w)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := NewMemoryStore()
		defer s.Close(ctx)

		if err := s.Save(ctx, "run1", testDoc("x")); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := s.Delete(ctx, "run1"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Load(ctx, "run1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load after delete = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		s := NewMemoryStore()
		defer s.Close(ctx)

		if err := s.Delete(ctx, "absent"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete error = %v, want ErrNotFound", err)
		}
	})
}
