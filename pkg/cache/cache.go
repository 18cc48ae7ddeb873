// Package cache provides byte-level caching for validated documents and
// their transformed shapes.
//
// Validation and transformation are deterministic: the same candidate always
// yields the same verdict and the same target-shaped output. That makes both
// safe to cache by content hash. The pipeline caches transform outputs keyed
// by (document hash, target); the HTTP API and CLI share the same backends.
//
// Backends:
//   - file: cache entries as files under a directory (CLI usage)
//   - redis: shared cache for multi-instance deployments
//   - null: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the document pipeline.
type Keyer interface {
	// DocumentKey generates a key for a canonical document by content hash.
	DocumentKey(hash string) string

	// ShapeKey generates a key for one transformed shape of a document.
	ShapeKey(hash, target string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// DocumentKey generates a key for a canonical document.
func (k *DefaultKeyer) DocumentKey(hash string) string {
	return "doc:" + hash
}

// ShapeKey generates a key for a transformed shape. The target participates
// in the hash so shapes of the same document never collide.
func (k *DefaultKeyer) ShapeKey(hash, target string) string {
	return hashKey("shape", hash, target)
}
