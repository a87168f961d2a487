package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-be/internal/kv"
)

const localKeyPrefix = "cart_items:"

// localStorage serializes the whole cart as a JSON blob under a fixed key
// scoped by device id. Every mutation is a read-modify-write of the blob.
type localStorage struct {
	blobs kv.Store
	key   string
}

func newLocalStorage(blobs kv.Store, deviceID string) *localStorage {
	return &localStorage{blobs: blobs, key: localKeyPrefix + deviceID}
}

func (s *localStorage) Load(ctx context.Context) ([]Line, error) {
	raw, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}
	return lines, nil
}

func (s *localStorage) Put(ctx context.Context, line Line) error {
	lines, err := s.Load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i] = line
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, line)
	}

	return s.save(ctx, lines)
}

func (s *localStorage) Remove(ctx context.Context, productID string) error {
	lines, err := s.Load(ctx)
	if err != nil {
		return err
	}

	kept := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}

	if len(kept) == 0 {
		return s.Clear(ctx)
	}
	return s.save(ctx, kept)
}

func (s *localStorage) Clear(ctx context.Context) error {
	if err := s.blobs.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return nil
}

func (s *localStorage) save(ctx context.Context, lines []Line) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	if err := s.blobs.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return nil
}
