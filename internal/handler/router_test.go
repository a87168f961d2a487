package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"storefront-be/internal/cart"
	"storefront-be/internal/identity"
	"storefront-be/internal/kv"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/user"
	"storefront-be/internal/wishlist"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, email, password string) (string, user.User, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (string, user.User, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) Create(ctx context.Context, id identity.Identity, params order.CreateParams) (*order.Order, error) {
	args := m.Called(ctx, id, params)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) Get(ctx context.Context, id identity.Identity, orderID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, orderID)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) ListForIdentity(ctx context.Context, id identity.Identity) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, next order.Status) (*order.Order, error) {
	args := m.Called(ctx, orderID, next)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) MarkPaid(ctx context.Context, orderID uuid.UUID, paymentReference string) (*order.Order, error) {
	args := m.Called(ctx, orderID, paymentReference)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) Stats(ctx context.Context) (*order.Stats, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.(*order.Stats), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	args := m.Called(ctx, req)
	if o := args.Get(0); o != nil {
		return o.(*payment.ChargeResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type testEnv struct {
	router  http.Handler
	users   *mockUserService
	orders  *mockOrderService
	gateway *mockGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	blobs := kv.NewMemory()
	env := &testEnv{
		users:   &mockUserService{},
		orders:  &mockOrderService{},
		gateway: &mockGateway{},
	}
	env.router = NewRouter(Deps{
		Users:     env.users,
		Carts:     cart.NewSelector(nil, blobs),
		Wishlists: wishlist.NewSelector(nil, blobs),
		Orders:    env.orders,
		Gateway:   env.gateway,
	})
	return env
}

var nextAddr atomic.Int64

// do sends a request through the full middleware chain. Each test run gets a
// fresh client IP so the rate limiter never bleeds between tests.
func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = fmt.Sprintf("203.0.113.%d:1234", nextAddr.Add(1)%250)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func deviceHeaders(deviceID string) map[string]string {
	return map[string]string{"X-Device-ID": deviceID}
}

func bearerHeaders(t *testing.T, uid uuid.UUID, role user.Role, email string) map[string]string {
	t.Helper()
	token, err := user.GenerateJWT(uid, role, email)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}
