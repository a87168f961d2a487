package handler

import (
	"context"
	"errors"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/identity"
	"storefront-be/internal/logger"
	"storefront-be/internal/user"
	"storefront-be/internal/wishlist"

	"go.uber.org/zap"
)

type AuthHandler struct {
	users     user.Service
	carts     *cart.Selector
	wishlists *wishlist.Selector
}

func NewAuthHandler(users user.Service, carts *cart.Selector, wishlists *wishlist.Selector) *AuthHandler {
	return &AuthHandler{users: users, carts: carts, wishlists: wishlists}
}

type credentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponseDTO struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_credentials", "email and password are required")
		return
	}

	token, u, err := h.users.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, user.ErrEmailExists) {
		respondError(w, http.StatusConflict, "email_exists", "email already registered")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}

	h.adoptDeviceState(r, identity.ForUser(u.ID, u.Email, string(u.Role)))

	respondJSON(w, http.StatusCreated, authResponseDTO{Token: token, User: u})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsDTO
	if !decodeBody(w, r, &req) {
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}

	h.adoptDeviceState(r, identity.ForUser(u.ID, u.Email, string(u.Role)))

	respondJSON(w, http.StatusOK, authResponseDTO{Token: token, User: u})
}

// adoptDeviceState merges the device cart and wishlist into the freshly
// signed-in account. A merge failure is logged but never fails the login;
// the device blobs stay put for a later retry.
func (h *AuthHandler) adoptDeviceState(r *http.Request, signedIn identity.Identity) {
	deviceID := r.Header.Get("X-Device-ID")
	if deviceID == "" {
		return
	}

	ctx := r.Context()
	log := logger.FromCtx(ctx).With(zap.String("device_id", deviceID))
	device := identity.ForDevice(deviceID)

	if err := h.mergeCart(ctx, device, signedIn); err != nil {
		log.Warn("failed to merge device cart on sign-in", zap.Error(err))
	}
	if err := h.mergeWishlist(ctx, device, signedIn); err != nil {
		log.Warn("failed to merge device wishlist on sign-in", zap.Error(err))
	}
}

func (h *AuthHandler) mergeCart(ctx context.Context, device, signedIn identity.Identity) error {
	store, err := cart.NewStore(ctx, h.carts, device)
	if err != nil {
		return err
	}
	return store.SetIdentity(ctx, signedIn)
}

func (h *AuthHandler) mergeWishlist(ctx context.Context, device, signedIn identity.Identity) error {
	store, err := wishlist.NewStore(ctx, h.wishlists, device)
	if err != nil {
		return err
	}
	return store.SetIdentity(ctx, signedIn)
}
