package handler

import (
	"errors"
	"net/http"

	"storefront-be/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdminHandler struct {
	orders order.Service
}

func NewAdminHandler(orders order.Service) *AdminHandler {
	return &AdminHandler{orders: orders}
}

type updateStatusDTO struct {
	Status string `json:"status"`
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load orders")
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	var req updateStatusDTO
	if !decodeBody(w, r, &req) {
		return
	}

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "unknown_status", "unknown order status")
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), orderID, next)
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, order.ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_transition", err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal", "failed to update order status")
	default:
		respondJSON(w, http.StatusOK, o)
	}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load order stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
