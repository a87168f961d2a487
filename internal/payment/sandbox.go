package payment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Sandbox simulates a payment processor. Charges succeed with the
// configured rate and get a reference of the form pay_<unix>_<suffix>.
type Sandbox struct {
	successRate float64
	mu          sync.Mutex // rand.Rand is not safe for concurrent use
	rng         *rand.Rand
	now         func() time.Time
}

func NewSandbox(successRate float64) *Sandbox {
	return &Sandbox{
		successRate: successRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
}

const referenceAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func (s *Sandbox) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "sandbox"),
		zap.String("order_id", req.OrderID.String()),
		zap.Int64("amount", req.Amount),
	)

	s.mu.Lock()
	declined := s.rng.Float64() >= s.successRate
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = referenceAlphabet[s.rng.Intn(len(referenceAlphabet))]
	}
	s.mu.Unlock()

	if declined {
		log.Info("sandbox charge declined")
		return nil, ErrChargeDeclined
	}

	result := &ChargeResult{
		Reference:   fmt.Sprintf("pay_%d_%s", s.now().UnixMilli(), suffix),
		RedirectURL: "/order-tracking/" + req.OrderID.String(),
	}

	log.Info("sandbox charge accepted", zap.String("reference", result.Reference))
	return result, nil
}
