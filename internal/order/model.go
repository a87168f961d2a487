package order

import (
	"time"

	"github.com/google/uuid"
)

// ShippingAddress is the optional structured address attached at checkout.
type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// Order is a single-product purchase record. Everything except Status and
// PaymentReference is immutable after creation; the price and total are
// snapshots taken at creation time and never re-derived from the catalog.
type Order struct {
	ID               uuid.UUID        `json:"id"`
	UserID           *uuid.UUID       `json:"user_id,omitempty"`
	ProductID        string           `json:"product_id"`
	ProductName      string           `json:"product_name"`
	ProductPrice     int64            `json:"product_price"`
	Quantity         int              `json:"quantity"`
	TotalAmount      int64            `json:"total_amount"`
	CustomerEmail    string           `json:"customer_email"`
	CustomerName     string           `json:"customer_name,omitempty"`
	ShippingAddress  *ShippingAddress `json:"shipping_address,omitempty"`
	Status           Status           `json:"status"`
	PaymentReference string           `json:"payment_reference,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Stats are the admin console counters.
type Stats struct {
	TotalOrders     int   `json:"total_orders"`
	PendingOrders   int   `json:"pending_orders"`
	CompletedOrders int   `json:"completed_orders"`
	Revenue         int64 `json:"revenue"`
}
