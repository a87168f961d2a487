package order

import (
	"context"
	"fmt"

	"storefront-be/internal/identity"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateParams is the order creation payload. Quantity defaults to 1 when
// left at zero.
type CreateParams struct {
	ProductID       string           `json:"product_id"`
	ProductName     string           `json:"product_name"`
	ProductPrice    int64            `json:"product_price"`
	Quantity        int              `json:"quantity"`
	CustomerEmail   string           `json:"customer_email"`
	CustomerName    string           `json:"customer_name,omitempty"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
}

type Service interface {
	Create(ctx context.Context, id identity.Identity, params CreateParams) (*Order, error)
	Get(ctx context.Context, id identity.Identity, orderID uuid.UUID) (*Order, error)
	ListForIdentity(ctx context.Context, id identity.Identity) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next Status) (*Order, error)
	MarkPaid(ctx context.Context, orderID uuid.UUID, paymentReference string) (*Order, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (*Order, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create validates the payload, snapshots the price into total_amount and
// inserts the order as pending. Anonymous checkouts carry no user id; the
// order stays reachable through its customer email.
func (s *service) Create(ctx context.Context, id identity.Identity, params CreateParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("product_id", params.ProductID),
	)

	if err := validateCreate(params); err != nil {
		log.Warn("order rejected", zap.Error(err))
		return nil, err
	}

	qty := params.Quantity
	if qty == 0 {
		qty = 1
	}

	o := &Order{
		ID:              uuid.New(),
		UserID:          id.UserID,
		ProductID:       params.ProductID,
		ProductName:     params.ProductName,
		ProductPrice:    params.ProductPrice,
		Quantity:        qty,
		TotalAmount:     params.ProductPrice * int64(qty),
		CustomerEmail:   params.CustomerEmail,
		CustomerName:    params.CustomerName,
		ShippingAddress: params.ShippingAddress,
		Status:          StatusPending,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.Int64("total_amount", o.TotalAmount),
	)
	return o, nil
}

func validateCreate(params CreateParams) error {
	switch {
	case params.ProductID == "":
		return fmt.Errorf("%w: product_id", ErrMissingField)
	case params.ProductName == "":
		return fmt.Errorf("%w: product_name", ErrMissingField)
	case params.ProductPrice <= 0:
		return fmt.Errorf("%w: product_price", ErrMissingField)
	case params.Quantity < 0:
		return fmt.Errorf("%w: quantity", ErrMissingField)
	case params.CustomerEmail == "":
		return fmt.Errorf("%w: customer_email", ErrMissingField)
	}
	return nil
}

// Get returns the order when the identity owns it (by user id or customer
// email) or is an admin. Guest orders carry no owner at all; for those the
// unguessable order id is the access token, which is what the tracking link
// handed out after checkout relies on.
func (s *service) Get(ctx context.Context, id identity.Identity, orderID uuid.UUID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.UserID == nil || id.Admin() || owns(id, o) {
		return o, nil
	}
	return nil, ErrForbidden
}

func owns(id identity.Identity, o *Order) bool {
	if id.UserID != nil && o.UserID != nil && *id.UserID == *o.UserID {
		return true
	}
	return id.Email != "" && id.Email == o.CustomerEmail
}

func (s *service) ListForIdentity(ctx context.Context, id identity.Identity) ([]*Order, error) {
	return s.repo.ListForOwner(ctx, id.UserID, id.Email)
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus applies a single admin transition. The status machine is
// enforced here, so an out-of-sequence write never reaches storage.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", orderID.String()),
		zap.String("next_status", string(next)),
	)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(next) {
		log.Warn("transition rejected", zap.String("current_status", string(o.Status)))
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}

	o.Status = next
	log.Info("order status updated")
	return o, nil
}

// MarkPaid records a successful payment. Paying an already-paid order is a
// no-op so a retried payment callback cannot corrupt the status.
func (s *service) MarkPaid(ctx context.Context, orderID uuid.UUID, paymentReference string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status == StatusPaid {
		logger.FromCtx(ctx).Info("order already paid",
			zap.String("order_id", orderID.String()),
		)
		return o, nil
	}

	if o.Status != StatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, StatusPaid)
	}

	if err := s.repo.SetPaid(ctx, orderID, paymentReference); err != nil {
		return nil, err
	}

	o.Status = StatusPaid
	o.PaymentReference = paymentReference
	return o, nil
}

// Cancel moves the order to cancelled; completed and already-cancelled
// orders are rejected.
func (s *service) Cancel(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	return s.UpdateStatus(ctx, orderID, StatusCancelled)
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
