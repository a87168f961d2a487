package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartEndpoints(t *testing.T) {
	env := newTestEnv(t)
	headers := deviceHeaders("dev-cart-1")

	addBody := map[string]any{
		"product_id":    "p1",
		"product_name":  "Walnut Desk",
		"product_price": 19900,
		"quantity":      2,
	}

	t.Run("AddAndGet", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cart", addBody, headers)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeInto[cartResponseDTO](t, rec)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.Equal(t, int64(39800), resp.Total)

		rec = env.do(t, http.MethodGet, "/api/cart", nil, headers)
		require.Equal(t, http.StatusOK, rec.Code)
		resp = decodeInto[cartResponseDTO](t, rec)
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("AddSameProductAccumulates", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cart", addBody, headers)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeInto[cartResponseDTO](t, rec)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 4, resp.Items[0].Quantity)
	})

	t.Run("MissingProductID", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cart", map[string]any{"quantity": 1}, headers)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_product", decodeInto[ErrorResponse](t, rec).Code)
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		body := map[string]any{"product_id": "p2", "quantity": -3}
		rec := env.do(t, http.MethodPost, "/api/cart", body, headers)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_quantity", decodeInto[ErrorResponse](t, rec).Code)
	})

	t.Run("UpdateQuantity", func(t *testing.T) {
		body := map[string]any{"quantity": 1}
		rec := env.do(t, http.MethodPatch, "/api/cart/p1", body, headers)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, decodeInto[cartResponseDTO](t, rec).Count)
	})

	t.Run("UpdateToZeroRemoves", func(t *testing.T) {
		body := map[string]any{"quantity": 0}
		rec := env.do(t, http.MethodPatch, "/api/cart/p1", body, headers)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeInto[cartResponseDTO](t, rec).Items)
	})

	t.Run("Clear", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cart", addBody, headers)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/cart", nil, headers)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeInto[cartResponseDTO](t, rec)
		assert.Empty(t, resp.Items)
		assert.Zero(t, resp.Total)
	})
}

func TestCartIsolatedPerDevice(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]any{"product_id": "p1", "product_name": "Lamp", "product_price": 4500}
	rec := env.do(t, http.MethodPost, "/api/cart", body, deviceHeaders("dev-a"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", nil, deviceHeaders("dev-b"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeInto[cartResponseDTO](t, rec).Items)
}

func TestCartMintsDeviceID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/cart", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Device-ID"))
}
