package ports

import "context"

// FileStore is the narrow object-storage contract the core depends on. The
// core only holds returned keys; it never touches storage paths directly.
type FileStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (data []byte, contentType string, err error)
	Remove(ctx context.Context, key string) error
}
