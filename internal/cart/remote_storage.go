package cart

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// remoteStorage keeps cart lines as rows in postgres, one per
// (user_id, product_id). Put relies on the table's unique constraint for
// upsert semantics.
type remoteStorage struct {
	db     *sql.DB
	userID uuid.UUID
}

func newRemoteStorage(db *sql.DB, userID uuid.UUID) *remoteStorage {
	return &remoteStorage{db: db, userID: userID}
}

func (s *remoteStorage) Load(ctx context.Context) ([]Line, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, product_name, product_price, product_image, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at
	`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ProductID,
			&l.ProductName,
			&l.ProductPrice,
			&l.ProductImage,
			&l.Quantity,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}

	return lines, nil
}

func (s *remoteStorage) Put(ctx context.Context, line Line) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "storage"),
		zap.String("method", "Put"),
		zap.String("user_id", s.userID.String()),
		zap.String("product_id", line.ProductID),
	)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, product_name, product_price, product_image, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
	`, s.userID, line.ProductID, line.ProductName, line.ProductPrice, line.ProductImage, line.Quantity)
	if err != nil {
		log.Error("failed to upsert cart item", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}

	return nil
}

func (s *remoteStorage) Remove(ctx context.Context, productID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, s.userID, productID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedRemove, err)
	}
	return nil
}

func (s *remoteStorage) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1
	`, s.userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return nil
}
