package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"donut-store/internal/cart"
	"donut-store/internal/middleware"
	"donut-store/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSession = "11111111-2222-3333-4444-555555555555"

func cartRouter(store cart.Store, products *MockProductService, ledger *cart.Ledger) http.Handler {
	h := NewCartHandler(store, products, ledger, zerolog.Nop())

	r := chi.NewRouter()
	r.Use(middleware.CartSession)
	r.Get("/api/cart", h.Get)
	r.Delete("/api/cart", h.Clear)
	r.Post("/api/cart/items", h.AddItem)
	r.Put("/api/cart/items/{id}", h.UpdateItem)
	r.Delete("/api/cart/items/{id}", h.RemoveItem)
	return r
}

func sessionRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set("X-Session-ID", testSession)
	return req
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func glazedProduct() *model.Product {
	return &model.Product{
		ID:        "donut-glazed",
		Name:      "Classic Glazed",
		Price:     15000,
		Available: true,
		Stock:     100,
	}
}

func TestCartHandler_Get_EmptyCart(t *testing.T) {
	router := cartRouter(cart.NewMemoryStore(), new(MockProductService), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodGet, "/api/cart", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Total)
}

func TestCartHandler_AddItem_SnapshotsCataloguePrice(t *testing.T) {
	products := new(MockProductService)
	products.On("GetByID", mock.Anything, "donut-glazed").Return(glazedProduct(), nil)

	router := cartRouter(cart.NewMemoryStore(), products, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodPost, "/api/cart/items",
		`{"productId": "donut-glazed", "quantity": 2}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(15000), resp.Items[0].Price, "price must come from the catalogue")
	assert.Equal(t, int64(30000), resp.Total)
}

func TestCartHandler_AddItem_InvalidQuantity(t *testing.T) {
	products := new(MockProductService)
	router := cartRouter(cart.NewMemoryStore(), products, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodPost, "/api/cart/items",
		`{"productId": "donut-glazed", "quantity": 0}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCartHandler_AddItem_UnknownProduct(t *testing.T) {
	products := new(MockProductService)
	products.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	router := cartRouter(cart.NewMemoryStore(), products, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodPost, "/api/cart/items",
		`{"productId": "missing", "quantity": 1}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_AddItem_UnavailableProduct(t *testing.T) {
	unavailable := glazedProduct()
	unavailable.Available = false

	products := new(MockProductService)
	products.On("GetByID", mock.Anything, "donut-glazed").Return(unavailable, nil)

	router := cartRouter(cart.NewMemoryStore(), products, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodPost, "/api/cart/items",
		`{"productId": "donut-glazed", "quantity": 1}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_UpdateItem_ZeroQuantityRemoves(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store, model.CartItem{ID: "donut-glazed", Price: 15000, Quantity: 2})

	router := cartRouter(store, new(MockProductService), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodPut, "/api/cart/items/donut-glazed",
		`{"quantity": 0}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	assert.Empty(t, resp.Items)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store,
		model.CartItem{ID: "donut-glazed", Price: 15000, Quantity: 2},
		model.CartItem{ID: "donut-frosted", Price: 18000, Quantity: 1},
	)

	router := cartRouter(store, new(MockProductService), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodDelete, "/api/cart/items/donut-glazed", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "donut-frosted", resp.Items[0].ID)
}

func TestCartHandler_Clear(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store, model.CartItem{ID: "donut-glazed", Price: 15000, Quantity: 2})

	router := cartRouter(store, new(MockProductService), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodDelete, "/api/cart", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	assert.Empty(t, resp.Items)

	got, err := store.Get(context.Background(), testSession)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestCartHandler_AddItem_LedgerRejectsOverdraw(t *testing.T) {
	lowStock := glazedProduct()
	lowStock.Stock = 1

	products := new(MockProductService)
	products.On("GetByID", mock.Anything, "donut-glazed").Return(lowStock, nil)

	stock := &stubStockStore{err: model.ErrInsufficientStock}
	ledger := cart.NewLedger(stock, zerolog.Nop())

	store := cart.NewMemoryStore()
	router := cartRouter(store, products, ledger)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodPost, "/api/cart/items",
		`{"productId": "donut-glazed", "quantity": 5}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeInsufficientStock, resp.Error)

	// The rejected add must not leave a line in the cart.
	got, err := store.Get(context.Background(), testSession)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func seedCart(t *testing.T, store cart.Store, items ...model.CartItem) {
	t.Helper()

	c := cart.Cart{}
	var err error
	for _, item := range items {
		c, err = c.Add(item)
		require.NoError(t, err)
	}
	require.NoError(t, store.Save(context.Background(), testSession, c))
}

// stubStockStore returns a fixed error (or nil) for every adjustment.
type stubStockStore struct {
	err error
}

func (s *stubStockStore) AdjustStock(ctx context.Context, productID string, delta int) error {
	return s.err
}
