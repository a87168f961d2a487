package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/handler"
	"storefront-be/internal/kv"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/user"
	"storefront-be/internal/wishlist"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database, err := db.Open(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	blobs := newBlobStore(cfg, log)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	router := handler.NewRouter(handler.Deps{
		DB:        database,
		Users:     userSvc,
		Carts:     cart.NewSelector(database, blobs),
		Wishlists: wishlist.NewSelector(database, blobs),
		Orders:    orderSvc,
		Gateway:   newGateway(cfg, log),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("🚀 server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newBlobStore picks where anonymous carts and wishlists live. Redis when
// configured, otherwise a process-local map.
func newBlobStore(cfg *config.Config, log *zap.Logger) kv.Store {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, anonymous carts held in memory")
		return kv.NewMemory()
	}

	store, err := kv.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	return store
}

// newGateway picks the payment backend. Without an API key the sandbox
// simulates charges, which is what local development runs on.
func newGateway(cfg *config.Config, log *zap.Logger) payment.Gateway {
	if cfg.PaymentAPIKey == "" {
		log.Info("PAYMENT_API_KEY not set, using sandbox gateway",
			zap.Float64("success_rate", cfg.PaymentSuccessRate))
		return payment.NewSandbox(cfg.PaymentSuccessRate)
	}
	return payment.NewProvider(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
}
