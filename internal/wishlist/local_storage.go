package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-be/internal/kv"
)

const localKeyPrefix = "wishlist_items:"

// localStorage serializes the whole wishlist as a JSON blob under a fixed
// key scoped by device id.
type localStorage struct {
	blobs kv.Store
	key   string
}

func newLocalStorage(blobs kv.Store, deviceID string) *localStorage {
	return &localStorage{blobs: blobs, key: localKeyPrefix + deviceID}
}

func (s *localStorage) Load(ctx context.Context) ([]Entry, error) {
	raw, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoad, err)
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoad, err)
	}
	return entries, nil
}

func (s *localStorage) Add(ctx context.Context, entry Entry) error {
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.ProductID == entry.ProductID {
			return ErrAlreadyInWishlist
		}
	}

	return s.save(ctx, append(entries, entry))
}

func (s *localStorage) Remove(ctx context.Context, productID string) error {
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}

	if len(kept) == 0 {
		return s.Clear(ctx)
	}
	return s.save(ctx, kept)
}

func (s *localStorage) Clear(ctx context.Context) error {
	if err := s.blobs.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClear, err)
	}
	return nil
}

func (s *localStorage) save(ctx context.Context, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSave, err)
	}
	if err := s.blobs.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSave, err)
	}
	return nil
}
