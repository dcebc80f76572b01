// Package cache stores intermediate and final pipeline results.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: shared cache for `seqgram serve` and CI runners
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are derived by a [Keyer] from content hashes plus every option that
// influences the cached value, so a change to spacing or glyphs never
// returns a stale diagram:
//
//	inputHash := cache.Hash(input)
//	key := keyer.LayoutKey(inputHash, cfg)
//
// [ScopedKeyer] prefixes keys so that several tenants can share a backend.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/seqgram/pkg/seq/layout"
)

// Default TTLs per entry kind. Entries are content addressed, so TTLs only
// bound storage.
const (
	TTLGeometry = 7 * 24 * time.Hour
	TTLOutput   = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeGeometry = "geometry"
	KeyTypeOutput   = "output"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// OutputKeyOpts holds the render options that change serialized output.
type OutputKeyOpts struct {
	Format string `json:"format"`
	ASCII  bool   `json:"ascii"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies the geometry computed for an input under cfg.
	LayoutKey(inputHash string, cfg layout.Config) string

	// OutputKey identifies the serialized output rendered from a geometry.
	OutputKey(geometryHash string, opts OutputKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, cfg layout.Config) string {
	return hashKey(KeyTypeGeometry, inputHash, cfg)
}

// OutputKey implements Keyer.
func (DefaultKeyer) OutputKey(geometryHash string, opts OutputKeyOpts) string {
	return hashKey(KeyTypeOutput, geometryHash, opts)
}
