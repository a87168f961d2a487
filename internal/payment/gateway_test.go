package payment

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chargeReq() ChargeRequest {
	return ChargeRequest{
		OrderID:       uuid.New(),
		Amount:        3000,
		CustomerEmail: "buyer@shop.test",
		ProductName:   "Walnut Desk",
	}
}

func TestSandbox_Charge(t *testing.T) {
	ctx := context.Background()

	t.Run("AlwaysSucceeds", func(t *testing.T) {
		gw := NewSandbox(1.0)
		req := chargeReq()

		res, err := gw.Charge(ctx, req)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Reference, "pay_"))
		assert.Equal(t, "/order-tracking/"+req.OrderID.String(), res.RedirectURL)
	})

	t.Run("AlwaysDeclines", func(t *testing.T) {
		gw := NewSandbox(0)

		_, err := gw.Charge(ctx, chargeReq())
		assert.ErrorIs(t, err, ErrChargeDeclined)
	})

	t.Run("ReferenceFormat", func(t *testing.T) {
		gw := NewSandbox(1.0)
		gw.rng = rand.New(rand.NewSource(1))
		gw.now = func() time.Time { return time.UnixMilli(1700000000000) }

		res, err := gw.Charge(ctx, chargeReq())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Reference, "pay_1700000000000_"))
		assert.Len(t, res.Reference, len("pay_1700000000000_")+9)
	})
}

// Charges come in from concurrent handler goroutines; the shared rng must
// hold up under the race detector.
func TestSandbox_ConcurrentCharges(t *testing.T) {
	gw := NewSandbox(0.5)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				res, err := gw.Charge(context.Background(), chargeReq())
				if err == nil {
					assert.True(t, strings.HasPrefix(res.Reference, "pay_"))
				} else {
					assert.ErrorIs(t, err, ErrChargeDeclined)
				}
			}
		}()
	}
	wg.Wait()
}

func TestProvider_Charge(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/charges", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var req ChargeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(3000), req.Amount)

			json.NewEncoder(w).Encode(providerChargeResponse{
				Status:      "ACCEPTED",
				Reference:   "pay_prov_1",
				RedirectURL: "/order-tracking/" + req.OrderID.String(),
			})
		}))
		defer srv.Close()

		gw := NewProvider(srv.URL, "sk_test")
		res, err := gw.Charge(ctx, chargeReq())
		require.NoError(t, err)
		assert.Equal(t, "pay_prov_1", res.Reference)
	})

	t.Run("Declined", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(providerChargeResponse{Status: "DECLINED"})
		}))
		defer srv.Close()

		gw := NewProvider(srv.URL, "sk_test")
		_, err := gw.Charge(ctx, chargeReq())
		assert.ErrorIs(t, err, ErrChargeDeclined)
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		gw := NewProvider(srv.URL, "sk_test")
		_, err := gw.Charge(ctx, chargeReq())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrChargeDeclined)
	})
}
