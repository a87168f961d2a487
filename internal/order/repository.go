package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// ListForOwner returns orders visible to a customer, matched by user id
	// or by the email the order was placed with.
	ListForOwner(ctx context.Context, userID *uuid.UUID, email string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	SetPaid(ctx context.Context, id uuid.UUID, paymentReference string) error
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, user_id, product_id, product_name, product_price, quantity,
	total_amount, customer_email, customer_name, shipping_address,
	status, payment_reference, created_at`

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("product_id", o.ProductID),
	)

	var address []byte
	if o.ShippingAddress != nil {
		var err error
		address, err = json.Marshal(o.ShippingAddress)
		if err != nil {
			return fmt.Errorf("marshal shipping address: %w", err)
		}
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, user_id, product_id, product_name, product_price, quantity,
			total_amount, customer_email, customer_name, shipping_address, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`,
		o.ID, o.UserID, o.ProductID, o.ProductName, o.ProductPrice, o.Quantity,
		o.TotalAmount, o.CustomerEmail, nullString(o.CustomerName), address, o.Status,
	).Scan(&o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.Int64("total_amount", o.TotalAmount),
	)
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) ListForOwner(ctx context.Context, userID *uuid.UUID, email string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE user_id = $1 OR customer_email = $2
		ORDER BY created_at DESC
	`, userID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) SetPaid(ctx context.Context, id uuid.UUID, paymentReference string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, payment_reference = $2
		WHERE id = $3
	`, StatusPaid, paymentReference, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(SUM(total_amount) FILTER (WHERE status NOT IN ('pending', 'cancelled')), 0)
		FROM orders
	`).Scan(&s.TotalOrders, &s.PendingOrders, &s.CompletedOrders, &s.Revenue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o            Order
		userID       uuid.NullUUID
		customerName sql.NullString
		paymentRef   sql.NullString
		address      []byte
		rawStatus    string
	)

	err := row.Scan(
		&o.ID, &userID, &o.ProductID, &o.ProductName, &o.ProductPrice,
		&o.Quantity, &o.TotalAmount, &o.CustomerEmail, &customerName,
		&address, &rawStatus, &paymentRef, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		o.UserID = &userID.UUID
	}
	o.CustomerName = customerName.String
	o.PaymentReference = paymentRef.String

	if len(address) > 0 {
		var sa ShippingAddress
		if err := json.Unmarshal(address, &sa); err != nil {
			return nil, fmt.Errorf("unmarshal shipping address: %w", err)
		}
		o.ShippingAddress = &sa
	}

	o.Status, err = ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func collectOrders(rows *sql.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
