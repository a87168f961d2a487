package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no value exists under a key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a plain string key/value store. It backs the anonymous-identity
// cart and wishlist blobs, which are serialized whole under a fixed key per
// device.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
