package wishlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

// remoteStorage keeps wishlist entries as rows in postgres with a unique
// (user_id, product_id) index enforcing the set semantics.
type remoteStorage struct {
	db     *sql.DB
	userID uuid.UUID
}

func newRemoteStorage(db *sql.DB, userID uuid.UUID) *remoteStorage {
	return &remoteStorage{db: db, userID: userID}
}

func (s *remoteStorage) Load(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, product_name, product_price, product_image
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at
	`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoad, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ProductID, &e.ProductName, &e.ProductPrice, &e.ProductImage); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedLoad, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoad, err)
	}

	return entries, nil
}

func (s *remoteStorage) Add(ctx context.Context, entry Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (user_id, product_id, product_name, product_price, product_image)
		VALUES ($1, $2, $3, $4, $5)
	`, s.userID, entry.ProductID, entry.ProductName, entry.ProductPrice, entry.ProductImage)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return ErrAlreadyInWishlist
		}
		logger.FromCtx(ctx).Error("failed to insert wishlist item",
			zap.String("user_id", s.userID.String()),
			zap.String("product_id", entry.ProductID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrFailedSave, err)
	}

	return nil
}

func (s *remoteStorage) Remove(ctx context.Context, productID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM wishlist_items
		WHERE user_id = $1 AND product_id = $2
	`, s.userID, productID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedRemove, err)
	}
	return nil
}

func (s *remoteStorage) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM wishlist_items
		WHERE user_id = $1
	`, s.userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClear, err)
	}
	return nil
}
