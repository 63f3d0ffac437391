package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/akshaykmanoj/treeline/pkg/rel"
)

// MemoryStore keeps snapshots in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]Snapshot)}
}

// Save stores or replaces the named snapshot.
func (s *MemoryStore) Save(_ context.Context, name string, doc *rel.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[name] = Snapshot{Name: name, SavedAt: time.Now().UTC(), Doc: doc}
	return nil
}

// Load returns the named snapshot or ErrNotFound.
func (s *MemoryStore) Load(_ context.Context, name string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &snap, nil
}

// List returns all snapshots sorted by name.
func (s *MemoryStore) List(_ context.Context) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Snapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the named snapshot or returns ErrNotFound.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snaps[name]; !ok {
		return ErrNotFound
	}
	delete(s.snaps, name)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
