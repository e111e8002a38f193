package ports

import (
	"context"
	"time"
)

// ContentCache is a small JSON value cache fronting the "get active" reads.
// Cache failures are advisory: services log and fall through to storage.
type ContentCache interface {
	// Get unmarshals the cached value into v and reports whether it was present.
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
