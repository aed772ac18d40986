package cache

import (
	"context"

	"github.com/matzehuels/questgraph/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Open creates the named backend. dir is used by the file backend, url by
// the remote ones. An empty backend name selects the file cache.
func Open(ctx context.Context, backend, url, dir string) (Cache, error) {
	switch backend {
	case "", BackendFile:
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "open file cache %s", dir)
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	case BackendRedis, BackendMongo:
		if url == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "cache backend %q requires a url", backend)
		}
		var (
			c   Cache
			err error
		)
		if backend == BackendRedis {
			c, err = NewRedisCache(ctx, url)
		} else {
			c, err = NewMongoCache(ctx, url)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "open %s cache", backend)
		}
		return c, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", backend)
	}
}
