package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrChargeDeclined is the explicit payment-failure outcome. It is distinct
// from a transport error: the processor answered and said no, and the order
// must be left in pending.
var ErrChargeDeclined = errors.New("payment declined")

type ChargeRequest struct {
	OrderID       uuid.UUID `json:"order_id"`
	Amount        int64     `json:"amount"`
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name,omitempty"`
	ProductName   string    `json:"product_name"`
}

type ChargeResult struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
}

// Gateway processes payments for orders. Implementations: the sandbox
// (simulated, used when no provider is configured) and the HTTP provider.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
