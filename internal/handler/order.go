package handler

import (
	"errors"
	"net/http"

	"storefront-be/internal/identity"
	"storefront-be/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderResponseDTO struct {
	Success bool         `json:"success"`
	OrderID uuid.UUID    `json:"order_id"`
	Order   *order.Order `json:"order"`
}

type orderDetailDTO struct {
	*order.Order
	Progress float64 `json:"progress"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params order.CreateParams
	if !decodeBody(w, r, &params) {
		return
	}

	id, _ := identity.FromContext(r.Context())
	o, err := h.orders.Create(r.Context(), id, params)
	if errors.Is(err, order.ErrMissingField) {
		respondError(w, http.StatusBadRequest, "missing_fields", err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to create order")
		return
	}

	respondJSON(w, http.StatusOK, createOrderResponseDTO{
		Success: true,
		OrderID: o.ID,
		Order:   o,
	})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	orders, err := h.orders.ListForIdentity(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load orders")
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	id, _ := identity.FromContext(r.Context())
	o, err := h.orders.Get(r.Context(), id, orderID)
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, order.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", "cannot access others' orders")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal", "failed to load order")
	default:
		respondJSON(w, http.StatusOK, orderDetailDTO{
			Order:    o,
			Progress: o.Status.Progress(),
		})
	}
}
