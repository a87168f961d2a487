package handler

import (
	"errors"
	"net/http"

	"storefront-be/internal/identity"
	"storefront-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
)

type WishlistHandler struct {
	selector *wishlist.Selector
}

func NewWishlistHandler(selector *wishlist.Selector) *WishlistHandler {
	return &WishlistHandler{selector: selector}
}

type wishlistResponseDTO struct {
	Items []wishlist.Entry `json:"items"`
	Count int              `json:"count"`
}

func (h *WishlistHandler) store(w http.ResponseWriter, r *http.Request) (*wishlist.Store, bool) {
	id, _ := identity.FromContext(r.Context())
	store, err := wishlist.NewStore(r.Context(), h.selector, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "wishlist_unavailable", "failed to load wishlist")
		return nil, false
	}
	return store, true
}

func (h *WishlistHandler) respondWishlist(w http.ResponseWriter, status int, store *wishlist.Store) {
	items := store.Items()
	if items == nil {
		items = []wishlist.Entry{}
	}
	respondJSON(w, status, wishlistResponseDTO{Items: items, Count: store.Count()})
}

func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	h.respondWishlist(w, http.StatusOK, store)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req wishlist.Entry
	if !decodeBody(w, r, &req) {
		return
	}

	store, ok := h.store(w, r)
	if !ok {
		return
	}

	err := store.Add(r.Context(), req)
	switch {
	case err == nil:
		h.respondWishlist(w, http.StatusCreated, store)
	case errors.Is(err, wishlist.ErrAlreadyInWishlist):
		// Set semantics: a duplicate is a distinct outcome, not a failure.
		respondError(w, http.StatusConflict, "already_in_wishlist", "this item is already in your wishlist")
	case errors.Is(err, wishlist.ErrMissingProduct):
		respondError(w, http.StatusBadRequest, "missing_product", "product_id is required")
	default:
		respondError(w, http.StatusBadGateway, "persistence_failed", "failed to add item to wishlist")
	}
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	if err := store.Remove(r.Context(), chi.URLParam(r, "productID")); err != nil {
		respondError(w, http.StatusBadGateway, "persistence_failed", "failed to remove item from wishlist")
		return
	}
	h.respondWishlist(w, http.StatusOK, store)
}
