package handler

import (
	"database/sql"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/user"
	"storefront-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	DB        *sql.DB
	Users     user.Service
	Carts     *cart.Selector
	Wishlists *wishlist.Selector
	Orders    order.Service
	Gateway   payment.Gateway
}

func NewRouter(deps Deps) http.Handler {
	auth := NewAuthHandler(deps.Users, deps.Carts, deps.Wishlists)
	carts := NewCartHandler(deps.Carts)
	wishlists := NewWishlistHandler(deps.Wishlists)
	orders := NewOrderHandler(deps.Orders)
	payments := NewPaymentHandler(deps.Orders, deps.Gateway)
	admin := NewAdminHandler(deps.Orders)
	health := NewHealthHandler(deps.DB)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Identify)

	r.Get("/healthz", health.Check)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimitStrict)
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", carts.Get)
				r.Post("/", carts.Add)
				r.Delete("/", carts.Clear)
				r.Patch("/{productID}", carts.UpdateQuantity)
				r.Delete("/{productID}", carts.Remove)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlists.Get)
				r.Post("/", wishlists.Add)
				r.Delete("/{productID}", wishlists.Remove)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orders.Create)
				r.With(middleware.RequireAuth).Get("/", orders.List)
				r.Get("/{orderID}", orders.Get)
			})
		})

		r.With(middleware.RateLimitStrict).Post("/payments", payments.Create)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RateLimit)
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)
			r.Get("/orders", admin.ListOrders)
			r.Patch("/orders/{orderID}/status", admin.UpdateStatus)
			r.Get("/orders/stats", admin.Stats)
		})
	})

	return r
}
