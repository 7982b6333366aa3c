// Package cache provides caching abstractions for encoded graph blobs
// and HTTP responses.
//
// The package defines the Cache interface along with several
// implementations:
//   - FileCache: persistent filesystem-based cache
//   - RedisCache: shared cache backed by a Redis server
//   - NullCache: no-op cache for disabling caching
//
// Keys are produced by a Keyer so that callers never concatenate key
// strings by hand. The DefaultKeyer hashes the inputs that shape a
// cached value; ScopedKeyer adds a namespace prefix on top for
// multi-tenant deployments.
package cache

import (
	"context"
	"time"
)

// =============================================================================
// TTL Policy
// =============================================================================

const (
	// TTLBlob is how long encoded graph blobs stay cached. Blobs are
	// cheap to rebuild, so a day keeps interactive workflows fast
	// without letting stale artifacts pile up.
	TTLBlob = 24 * time.Hour

	// TTLHTTP is the default lifetime for cached HTTP responses.
	TTLHTTP = 1 * time.Hour
)

// =============================================================================
// Cache Interface
// =============================================================================

// Cache is a byte-oriented key/value store with per-entry expiration.
//
// Implementations must be safe for concurrent use. A miss is reported
// through the boolean return, not an error; errors are reserved for
// backend failures.
type Cache interface {
	// Get retrieves the value stored under key. The boolean reports
	// whether the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means the entry never
	// expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// =============================================================================
// Key Generation
// =============================================================================

// BlobKeyOpts are the pipeline options that influence an encoded blob
// and therefore must be part of its cache key. Two runs with the same
// input text and the same BlobKeyOpts produce byte-identical blobs.
type BlobKeyOpts struct {
	GraphID  uint64 `json:"graph_id"`
	SourceID uint64 `json:"source_id"`
	Version  uint64 `json:"version"`
	Annotate bool   `json:"annotate"`
}

// Keyer generates cache keys. Implementations decide the namespace
// layout, which lets deployments partition a shared backend.
type Keyer interface {
	// BlobKey generates a key for an encoded graph blob from the hash
	// of the input text and the options that shaped the build.
	BlobKey(textHash string, opts BlobKeyOpts) string

	// HTTPKey generates a key for a cached HTTP response.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BlobKey generates a key for an encoded graph blob.
func (k *DefaultKeyer) BlobKey(textHash string, opts BlobKeyOpts) string {
	return hashKey("blob", textHash, opts)
}

// HTTPKey generates a key for a cached HTTP response.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}
