package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KV is the per-install key-value namespace the app state is written to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
