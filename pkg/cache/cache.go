// Package cache stores computed layouts and rendered artifacts between runs.
//
// # Backends
//
// All backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [NullCache]: stores nothing (--no-cache)
//   - [RedisCache]: shared cache for several servers
//   - [MongoCache]: document store with a TTL index on expiry
//
// [Open] picks a backend by name, as configured in the [cache] section of
// the config file.
//
// # Keys
//
// A [Keyer] derives deterministic keys from content hashes and options, so a
// changed dataset or changed layout options never hit a stale entry:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(doc.Hash(), cache.LayoutKeyOpts{SpacingX: 200})
//
// Wrap a keyer with [NewScopedKeyer] to namespace a shared backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default time-to-live per entry kind.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
