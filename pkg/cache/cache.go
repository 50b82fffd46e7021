// Package cache stores rendered diagram artifacts.
//
// Rasterizing DOT through Graphviz is the slowest step of a render, and the
// same DOT source always produces the same SVG or PNG. The pipeline keys
// artifacts by a hash of the DOT text and the output format, so an edit that
// leaves the diagram unchanged (a doc string, say) is served from cache.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the preview server
//   - [NullCache]: never stores anything, used by --no-cache and tests
//
// # Keys
//
// A [Keyer] builds cache keys. [ScopedKeyer] prefixes another keyer so that
// several profiles or server instances can share one Redis without
// colliding.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rasterized diagrams are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rasterized diagram.
	ArtifactKey(dotHash, format string) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer without a prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<hash>" over the DOT hash and format.
func (DefaultKeyer) ArtifactKey(dotHash, format string) string {
	return hashKey("artifact", dotHash, format)
}
