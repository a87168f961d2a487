package cart

import (
	"context"
	"database/sql"

	"storefront-be/internal/identity"
	"storefront-be/internal/kv"
)

// Storage is the persistence strategy behind a cart Store. The anonymous
// implementation keeps the whole cart as one blob in a device-scoped
// key/value store; the authenticated one keeps rows in postgres keyed by
// (user_id, product_id).
type Storage interface {
	Load(ctx context.Context) ([]Line, error)
	// Put inserts the line or overwrites the stored quantity when a line
	// for the same product already exists.
	Put(ctx context.Context, line Line) error
	// Remove deletes the line for a product. Removing an absent line is a
	// no-op, not an error.
	Remove(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}

// Selector picks the storage backend for an identity. It is consulted at
// store construction and again on every identity change.
type Selector struct {
	db    *sql.DB
	blobs kv.Store
}

func NewSelector(db *sql.DB, blobs kv.Store) *Selector {
	return &Selector{db: db, blobs: blobs}
}

func (s *Selector) For(id identity.Identity) Storage {
	if id.Anonymous() {
		return newLocalStorage(s.blobs, id.DeviceID)
	}
	return newRemoteStorage(s.db, *id.UserID)
}
