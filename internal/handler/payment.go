package handler

import (
	"errors"
	"net/http"

	"storefront-be/internal/order"
	"storefront-be/internal/payment"

	"github.com/google/uuid"
)

type PaymentHandler struct {
	orders  order.Service
	gateway payment.Gateway
}

func NewPaymentHandler(orders order.Service, gateway payment.Gateway) *PaymentHandler {
	return &PaymentHandler{orders: orders, gateway: gateway}
}

type paymentRequestDTO struct {
	OrderID       uuid.UUID `json:"order_id"`
	Amount        int64     `json:"amount"`
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name,omitempty"`
	ProductName   string    `json:"product_name"`
}

type paymentResponseDTO struct {
	Success     bool      `json:"success"`
	PaymentID   string    `json:"payment_id,omitempty"`
	OrderID     uuid.UUID `json:"order_id"`
	RedirectURL string    `json:"redirect_url,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Create charges an order. A declined charge answers 400 with success=false
// and leaves the order pending; only an accepted charge moves it to paid.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req paymentRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.OrderID == uuid.Nil || req.Amount <= 0 || req.CustomerEmail == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "order_id, amount and customer_email are required")
		return
	}

	result, err := h.gateway.Charge(r.Context(), payment.ChargeRequest{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		ProductName:   req.ProductName,
	})
	if errors.Is(err, payment.ErrChargeDeclined) {
		respondJSON(w, http.StatusBadRequest, paymentResponseDTO{
			Success: false,
			OrderID: req.OrderID,
			Error:   "Payment failed. Please try again.",
		})
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, "gateway_error", "payment gateway unavailable")
		return
	}

	o, err := h.orders.MarkPaid(r.Context(), req.OrderID, result.Reference)
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	case errors.Is(err, order.ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_state", "order cannot be paid in its current state")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal", "failed to update order status")
		return
	}

	respondJSON(w, http.StatusOK, paymentResponseDTO{
		Success:     true,
		PaymentID:   o.PaymentReference,
		OrderID:     o.ID,
		RedirectURL: result.RedirectURL,
	})
}
