package cartstore

import (
	"context"
	"errors"
)

// KV stores one serialized cart per key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("cart snapshot not found")
