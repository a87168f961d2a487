package handler

import (
	"net/http"
	"testing"

	"storefront-be/internal/order"
	"storefront-be/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	headers := deviceHeaders("dev-order-1")

	body := map[string]any{
		"product_id":     "p1",
		"product_name":   "Walnut Desk",
		"product_price":  19900,
		"quantity":       2,
		"customer_email": "guest@example.com",
	}

	t.Run("Success", func(t *testing.T) {
		created := &order.Order{
			ID:            uuid.New(),
			ProductID:     "p1",
			Quantity:      2,
			TotalAmount:   39800,
			CustomerEmail: "guest@example.com",
			Status:        order.StatusPending,
		}
		env.orders.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p order.CreateParams) bool {
			return p.ProductID == "p1" && p.Quantity == 2
		})).Return(created, nil).Once()

		rec := env.do(t, http.MethodPost, "/api/orders", body, headers)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeInto[createOrderResponseDTO](t, rec)
		assert.True(t, resp.Success)
		assert.Equal(t, created.ID, resp.OrderID)
		env.orders.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		env.orders.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, order.ErrMissingField).Once()

		rec := env.do(t, http.MethodPost, "/api/orders", map[string]any{}, headers)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_fields", decodeInto[ErrorResponse](t, rec).Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/orders", "not-json", headers)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetOrder(t *testing.T) {
	env := newTestEnv(t)
	headers := deviceHeaders("dev-order-2")
	orderID := uuid.New()

	t.Run("WithProgress", func(t *testing.T) {
		env.orders.On("Get", mock.Anything, mock.Anything, orderID).
			Return(&order.Order{ID: orderID, Status: order.StatusShipped}, nil).Once()

		rec := env.do(t, http.MethodGet, "/api/orders/"+orderID.String(), nil, headers)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeInto[map[string]any](t, rec)
		assert.InDelta(t, 66.67, resp["progress"], 0.01)
	})

	t.Run("NotFound", func(t *testing.T) {
		env.orders.On("Get", mock.Anything, mock.Anything, orderID).
			Return(nil, order.ErrOrderNotFound).Once()

		rec := env.do(t, http.MethodGet, "/api/orders/"+orderID.String(), nil, headers)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Forbidden", func(t *testing.T) {
		env.orders.On("Get", mock.Anything, mock.Anything, orderID).
			Return(nil, order.ErrForbidden).Once()

		rec := env.do(t, http.MethodGet, "/api/orders/"+orderID.String(), nil, headers)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/orders/not-a-uuid", nil, headers)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)

	t.Run("AnonymousRejected", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/orders", nil, deviceHeaders("dev-order-3"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		env.orders.On("ListForIdentity", mock.Anything, mock.Anything).
			Return([]*order.Order(nil), nil).Once()

		headers := bearerHeaders(t, uuid.New(), user.RoleUser, "a@b.com")
		rec := env.do(t, http.MethodGet, "/api/orders", nil, headers)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})
}
