package wishlist

import (
	"context"
	"errors"
	"sync"

	"storefront-be/internal/identity"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Store holds the wishlist for one session. Like the cart store it writes
// through the storage strategy first and only then updates its in-memory
// view.
type Store struct {
	mu       sync.Mutex
	selector *Selector
	storage  Storage
	id       identity.Identity
	entries  []Entry
}

func NewStore(ctx context.Context, selector *Selector, id identity.Identity) (*Store, error) {
	s := &Store{
		selector: selector,
		storage:  selector.For(id),
		id:       id,
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) reload(ctx context.Context) error {
	entries, err := s.storage.Load(ctx)
	if err != nil {
		return err
	}
	s.entries = entries
	return nil
}

// Add saves the entry. A product already on the wishlist yields
// ErrAlreadyInWishlist and leaves the wishlist unchanged.
func (s *Store) Add(ctx context.Context, entry Entry) error {
	if entry.ProductID == "" {
		return ErrMissingProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contains(entry.ProductID) {
		return ErrAlreadyInWishlist
	}

	if err := s.storage.Add(ctx, entry); err != nil {
		return err
	}

	s.entries = append(s.entries, entry)

	logger.FromCtx(ctx).Debug("wishlist item added",
		zap.String("product_id", entry.ProductID),
	)
	return nil
}

// Remove deletes the entry for productID; absent entries are a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.entries {
		if e.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	if err := s.storage.Remove(ctx, productID); err != nil {
		return err
	}

	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return nil
}

// Clear removes every entry for the current identity.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		return err
	}

	s.entries = nil
	return nil
}

// Contains reports whether productID is on the wishlist.
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(productID)
}

func (s *Store) contains(productID string) bool {
	for _, e := range s.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// Count is the number of saved products.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Items returns a snapshot of the wishlist entries.
func (s *Store) Items() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// SetIdentity re-selects the storage backend and reloads. On sign-in the
// device wishlist is merged into the account one; duplicates are skipped.
func (s *Store) SetIdentity(ctx context.Context, id identity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromCtx(ctx).With(zap.String("method", "SetIdentity"))

	next := s.selector.For(id)

	if s.id.Anonymous() && !id.Anonymous() && len(s.entries) > 0 {
		for _, e := range s.entries {
			err := next.Add(ctx, e)
			if errors.Is(err, ErrAlreadyInWishlist) {
				continue
			}
			if err != nil {
				log.Error("failed to merge device wishlist into account", zap.Error(err))
				return err
			}
		}
		if err := s.storage.Clear(ctx); err != nil {
			log.Warn("failed to clear device wishlist after merge", zap.Error(err))
		}
	}

	prev := s.storage
	s.storage, s.id = next, id
	if err := s.reload(ctx); err != nil {
		s.storage = prev
		return err
	}
	return nil
}
