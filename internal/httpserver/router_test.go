package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/idempotency"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/pkg/db"
)

type testServer struct {
	e     *echo.Echo
	auth  *service.AuthService
	ready error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gdb, err := db.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	r := repo.New(gdb)

	ts := &testServer{e: echo.New()}
	ts.auth = &service.AuthService{
		Repo:          r,
		AccessSecret:  []byte("access"),
		RefreshSecret: []byte("refresh"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}
	Register(ts.e, &Deps{
		Auth:     &AuthHTTP{Svc: ts.auth},
		Catalog:  &CatalogHTTP{Svc: &service.CatalogService{Repo: r, Events: events.Nop{}, Producer: "test"}},
		Cart:     &CartHTTP{Svc: &service.CartService{Repo: r}},
		Orders:   &OrderHTTP{Svc: &service.OrderService{Repo: r, Events: events.Nop{}, Idempotency: idempotency.NewMemory()}},
		Wishlist: &WishlistHTTP{Svc: &service.WishlistService{Repo: r}},
		Account:  &AccountHTTP{Svc: &service.AccountService{Repo: r}},
		JWTSecret: ts.auth.AccessSecret,
		Ready:     func(context.Context) error { return ts.ready },
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// login registers username and returns its access token.
func (ts *testServer) login(t *testing.T, username string, admin bool) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": username, "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	if admin {
		require.NoError(t, ts.auth.PromoteAdmin(context.Background(), username))
	}
	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)["access"].(string)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/health/ready", "", nil).Code)

	ts.ready = errors.New("db down")
	assert.Equal(t, http.StatusServiceUnavailable, ts.do(t, http.MethodGet, "/health/ready", "", nil).Code)
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "amy"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode[map[string]map[string]string](t, rec)["errors"]
	assert.Contains(t, errs, "password")

	ts.login(t, "amy", false)
	rec = ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "amy", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "amy", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "amy", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	tokens := decode[map[string]any](t, rec)
	refresh := tokens["refresh"].(string)
	assert.Equal(t, false, tokens["is_admin"])

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, rec.Code)
	rotated := decode[map[string]any](t, rec)["refresh"].(string)

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(t, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{"refresh": "garbage"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(t, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{"refresh": rotated})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogWritesRequireAdmin(t *testing.T) {
	ts := newTestServer(t)
	userTok := ts.login(t, "user1", false)
	adminTok := ts.login(t, "boss", true)
	body := map[string]any{"title": "Desk Lamp", "price": "100", "discount_percentage": 20}

	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodPost, "/api/v1/products", "", body).Code)
	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodPost, "/api/v1/products", userTok, body).Code)

	rec := ts.do(t, http.MethodPost, "/api/v1/products", adminTok, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[map[string]any](t, rec)
	assert.Equal(t, "80", p["price"])
	assert.Equal(t, "100", p["compare_at_price"])
	assert.Equal(t, "64", p["sale_price"])
	assert.Equal(t, "Out of Stock", p["stock_status"])
	id := p["id"].(string)

	rec = ts.do(t, http.MethodPatch, "/api/v1/products/"+id, adminTok, map[string]any{"stock": 50})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "In Stock", decode[map[string]any](t, rec)["stock_status"])

	rec = ts.do(t, http.MethodPost, "/api/v1/products", adminTok, map[string]any{"title": "Bad", "price": "10", "cost_price": "20"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]map[string]string](t, rec)["errors"], "cost_price")

	rec = ts.do(t, http.MethodGet, "/api/v1/products?ordering=-price", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string]any](t, rec)
	assert.Len(t, list["data"], 1)
	assert.EqualValues(t, 1, list["meta"].(map[string]any)["total"])

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/v1/products?ordering=stock", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/v1/products?min_price=abc", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/v1/products/not-a-uuid", "", nil).Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/products/search?q=lamp", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string]any](t, rec)["data"], 1)

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/api/v1/products/"+id, adminTok, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/v1/products/"+id, "", nil).Code)
}

func TestShoppingFlow(t *testing.T) {
	ts := newTestServer(t)
	adminTok := ts.login(t, "boss", true)
	tok := ts.login(t, "shopper", false)

	create := func(title, price string) string {
		rec := ts.do(t, http.MethodPost, "/api/v1/products", adminTok, map[string]any{"title": title, "price": price, "stock": 20})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return decode[map[string]any](t, rec)["id"].(string)
	}
	a := create("A", "10")
	b := create("B", "5")

	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/api/v1/cart", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/api/v1/cart/items", tok,
		map[string]any{"product_id": "6f1c1d2e-3b4a-4c5d-8e9f-0a1b2c3d4e5f"}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/v1/cart/items", tok,
		map[string]any{"product_id": a, "quantity": 0}).Code)

	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/v1/cart/items", tok, map[string]any{"product_id": a, "quantity": 2}).Code)
	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/v1/cart/items", tok, map[string]any{"product_id": b}).Code)

	rec := ts.do(t, http.MethodGet, "/api/v1/cart", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[map[string]any](t, rec)
	assert.Equal(t, "25", cart["total"])
	assert.EqualValues(t, 3, cart["item_count"])

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/v1/wishlist/products", tok, map[string]any{"product_id": a}).Code)
	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodPost, "/api/v1/me/recently-viewed", tok, map[string]any{"product_id": b}).Code)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/v1/orders", tok, map[string]any{}).Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/orders", tok, map[string]any{"shipping_address": "1 Main St"}, HeaderIdempotencyKey, "k1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[map[string]any](t, rec)
	assert.Equal(t, "25", order["total_amount"])
	assert.Equal(t, "pending", order["status"])
	assert.Len(t, order["items"], 2)
	orderID := order["id"].(string)

	rec = ts.do(t, http.MethodPost, "/api/v1/orders", tok, map[string]any{"shipping_address": "1 Main St"}, HeaderIdempotencyKey, "k1")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, orderID, decode[map[string]any](t, rec)["id"])

	rec = ts.do(t, http.MethodGet, "/api/v1/cart", tok, nil)
	assert.Equal(t, "0", decode[map[string]any](t, rec)["total"])

	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", tok, map[string]any{"status": "shipped"}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", adminTok, map[string]any{"status": "lost"}).Code)
	rec = ts.do(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", adminTok, map[string]any{"status": "shipped"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shipped", decode[map[string]any](t, rec)["status"])

	other := ts.login(t, "other", false)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/v1/orders/"+orderID, other, nil).Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "shopper", me["username"])
	assert.Len(t, me["recently_viewed"], 1)

	rec = ts.do(t, http.MethodPost, "/api/v1/me/cards", tok, map[string]any{"cardholder_name": "S", "card_number": "4111111111111111"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]map[string]string](t, rec)["errors"], "card_number")
}
