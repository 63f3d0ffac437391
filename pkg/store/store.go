// Package store persists named edge-document snapshots.
//
// A snapshot is an edge document saved under a caller-chosen name, so a
// discovery run can be rebuilt and re-rendered later without re-running
// discovery. Two backends exist: MongoStore for durable, shared storage and
// MemoryStore for tests and in-process use.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/akshaykmanoj/treeline/pkg/rel"
)

// ErrNotFound is returned by Load and Delete when no snapshot has the
// requested name.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a named, timestamped edge document.
type Snapshot struct {
	Name    string        `bson:"name" json:"name"`
	SavedAt time.Time     `bson:"saved_at" json:"saved_at"`
	Doc     *rel.Document `bson:"doc" json:"doc"`
}

// Store persists snapshots by name. Save overwrites an existing snapshot
// with the same name.
type Store interface {
	Save(ctx context.Context, name string, doc *rel.Document) error
	Load(ctx context.Context, name string) (*Snapshot, error)
	List(ctx context.Context) ([]Snapshot, error)
	Delete(ctx context.Context, name string) error
	Close(ctx context.Context) error
}
