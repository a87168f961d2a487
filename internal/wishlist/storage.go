package wishlist

import (
	"context"
	"database/sql"

	"storefront-be/internal/identity"
	"storefront-be/internal/kv"
)

// Storage is the persistence strategy behind a wishlist Store, mirroring the
// cart adapter minus quantities. Add must reject a duplicate product with
// ErrAlreadyInWishlist; the remote backend derives that from the table's
// unique constraint, the local one from a scan of the blob.
type Storage interface {
	Load(ctx context.Context) ([]Entry, error)
	Add(ctx context.Context, entry Entry) error
	// Remove deletes the entry for a product. Removing an absent entry is
	// a no-op.
	Remove(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}

// Selector picks the storage backend for an identity.
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
