package handler

import (
	"errors"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/identity"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	selector *cart.Selector
}

func NewCartHandler(selector *cart.Selector) *CartHandler {
	return &CartHandler{selector: selector}
}

type addToCartDTO struct {
	cart.Item
	Quantity int `json:"quantity"`
}

type updateQuantityDTO struct {
	Quantity int `json:"quantity"`
}

type cartResponseDTO struct {
	Items []cart.Line `json:"items"`
	Total int64       `json:"total"`
	Count int         `json:"count"`
}

func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	id, _ := identity.FromContext(r.Context())
	store, err := cart.NewStore(r.Context(), h.selector, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to load cart")
		return nil, false
	}
	return store, true
}

func (h *CartHandler) respondCart(w http.ResponseWriter, status int, store *cart.Store) {
	items := store.Items()
	if items == nil {
		items = []cart.Line{}
	}
	respondJSON(w, status, cartResponseDTO{
		Items: items,
		Total: store.Total(),
		Count: store.Count(),
	})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	h.respondCart(w, http.StatusOK, store)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addToCartDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	store, ok := h.store(w, r)
	if !ok {
		return
	}

	err := store.Add(r.Context(), req.Item, req.Quantity)
	switch {
	case err == nil:
		h.respondCart(w, http.StatusOK, store)
	case errors.Is(err, cart.ErrMissingProduct):
		respondError(w, http.StatusBadRequest, "missing_product", "product_id is required")
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
	default:
		respondError(w, http.StatusBadGateway, "persistence_failed", "failed to add item to cart")
	}
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityDTO
	if !decodeBody(w, r, &req) {
		return
	}

	store, ok := h.store(w, r)
	if !ok {
		return
	}

	if err := store.Update(r.Context(), chi.URLParam(r, "productID"), req.Quantity); err != nil {
		respondError(w, http.StatusBadGateway, "persistence_failed", "failed to update item quantity")
		return
	}
	h.respondCart(w, http.StatusOK, store)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	if err := store.Remove(r.Context(), chi.URLParam(r, "productID")); err != nil {
		respondError(w, http.StatusBadGateway, "persistence_failed", "failed to remove item from cart")
		return
	}
	h.respondCart(w, http.StatusOK, store)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	if err := store.Clear(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "persistence_failed", "failed to clear cart")
		return
	}
	h.respondCart(w, http.StatusOK, store)
}
