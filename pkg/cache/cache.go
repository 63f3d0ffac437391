// Package cache provides content-addressed caching of treeline results.
//
// Building and rendering are deterministic, so a result is fully identified
// by the SHA-256 of the source edge document plus a fingerprint of the
// options in effect. The Cache interface abstracts the backend: FileCache
// for CLI usage, RedisCache for shared deployments, NullCache to disable
// caching entirely.
package cache

import (
	"context"
	"time"

	"github.com/akshaykmanoj/treeline/pkg/rel"
)

// Cache stores opaque result bytes under content-derived keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (zero means no expiry).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys from document content and option fingerprints.
type Keyer interface {
	// ForestKey identifies a built forest.
	ForestKey(docHash string, relations []rel.Relation) string

	// RenderKey identifies rendered output.
	RenderKey(docHash string, fingerprint string) string
}

// DefaultKeyer produces namespaced SHA-256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ForestKey returns a "forest:"-prefixed key covering the document hash and
// the relation allow-list in order.
func (DefaultKeyer) ForestKey(docHash string, relations []rel.Relation) string {
	return hashKey("forest", docHash, relations)
}

// RenderKey returns a "render:"-prefixed key covering the document hash and
// the render option fingerprint.
func (DefaultKeyer) RenderKey(docHash string, fingerprint string) string {
	return hashKey("render", docHash, fingerprint)
}
