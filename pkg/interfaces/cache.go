package interfaces

import (
	"context"
	"time"
)

// CacheProvider is the generic cache contract host applications can supply to
// back repository-level caching. The link cache does not use this interface;
// it keeps its own bounded in-process store.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
