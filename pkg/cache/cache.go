// Package cache provides pluggable byte caching for rendered artifacts.
//
// Ladder generation itself is random and therefore never cached, but layout
// and rendering are pure functions of a ladder and its render options.
// Re-rendering the same stored draw in the same format is a cache hit.
//
// Backends:
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Default TTLs per artifact class.
const (
	// TTLArtifact is how long rendered outputs stay cached. Renders are
	// deterministic, so this is purely a storage bound.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLShare is how long rendered share QR images stay cached.
	TTLShare = 24 * time.Hour
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that distinguish cached artifacts
// of the same ladder.
type ArtifactKeyOpts struct {
	Format    string
	Style     string
	Width     float64
	Height    float64
	Highlight int
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey keys a rendered artifact by ladder content hash and
	// render options.
	ArtifactKey(ladderHash string, opts ArtifactKeyOpts) string

	// ShareKey keys a rendered share QR image by code and pixel size.
	ShareKey(code string, size int) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(ladderHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", ladderHash, opts)
}

// ShareKey implements Keyer.
func (k *DefaultKeyer) ShareKey(code string, size int) string {
	return hashKey("share", code, size)
}
