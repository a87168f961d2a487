package cart

import (
	"context"
	"sync"

	"storefront-be/internal/identity"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Store holds the cart for one session. It is constructed explicitly with
// the identity it serves and hands every write to the storage strategy
// before touching its in-memory view, so a failed write leaves the view
// exactly as the user last saw it.
type Store struct {
	mu       sync.Mutex
	selector *Selector
	storage  Storage
	id       identity.Identity
	lines    []Line
}

// NewStore builds a store for the given identity and loads its lines from
// the backend that identity maps to.
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
	lines, err := s.storage.Load(ctx)
	if err != nil {
		return err
	}
	s.lines = lines
	return nil
}

// Add puts qty units of item in the cart, incrementing the existing line
// when the product is already present.
func (s *Store) Add(ctx context.Context, item Item, qty int) error {
	if item.ProductID == "" {
		return ErrMissingProduct
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line := Line{Item: item, Quantity: qty}
	idx := s.index(item.ProductID)
	if idx >= 0 {
		line = s.lines[idx]
		line.Quantity += qty
	}

	if err := s.storage.Put(ctx, line); err != nil {
		return err
	}

	if idx >= 0 {
		s.lines[idx] = line
	} else {
		s.lines = append(s.lines, line)
	}

	logger.FromCtx(ctx).Debug("cart item added",
		zap.String("product_id", item.ProductID),
		zap.Int("quantity", line.Quantity),
	)
	return nil
}

// Remove deletes the line for productID. Removing a product that is not in
// the cart is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, productID)
}

func (s *Store) remove(ctx context.Context, productID string) error {
	idx := s.index(productID)
	if idx < 0 {
		return nil
	}

	if err := s.storage.Remove(ctx, productID); err != nil {
		return err
	}

	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	return nil
}

// Update overwrites the stored quantity for productID. A quantity of zero
// or less routes to Remove.
func (s *Store) Update(ctx context.Context, productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		return s.remove(ctx, productID)
	}

	idx := s.index(productID)
	if idx < 0 {
		return nil
	}

	line := s.lines[idx]
	line.Quantity = qty

	if err := s.storage.Put(ctx, line); err != nil {
		return err
	}

	s.lines[idx] = line
	return nil
}

// Clear removes every line for the current identity.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		return err
	}

	s.lines = nil
	return nil
}

// SetIdentity re-selects the storage backend for a new identity and reloads.
// When an anonymous session signs in, the device cart is merged into the
// account cart (quantities added) and the device blob is cleared.
func (s *Store) SetIdentity(ctx context.Context, id identity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromCtx(ctx).With(zap.String("method", "SetIdentity"))

	next := s.selector.For(id)

	if s.id.Anonymous() && !id.Anonymous() && len(s.lines) > 0 {
		if err := mergeInto(ctx, next, s.lines); err != nil {
			log.Error("failed to merge device cart into account", zap.Error(err))
			return err
		}
		if err := s.storage.Clear(ctx); err != nil {
			log.Warn("failed to clear device cart after merge", zap.Error(err))
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

// mergeInto adds the given lines to whatever target already holds, summing
// quantities per product.
func mergeInto(ctx context.Context, target Storage, lines []Line) error {
	existing, err := target.Load(ctx)
	if err != nil {
		return err
	}

	byProduct := make(map[string]Line, len(existing))
	for _, l := range existing {
		byProduct[l.ProductID] = l
	}

	for _, l := range lines {
		if have, ok := byProduct[l.ProductID]; ok {
			have.Quantity += l.Quantity
			l = have
		}
		if err := target.Put(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// Items returns a snapshot of the cart lines.
func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the sum of price times quantity over all lines, in minor units.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

// Count is the sum of quantities over all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

func (s *Store) index(productID string) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
