package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/domain"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/cart/domain"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/cart/event"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/cart/service"
	apperrors "github.com/Mrfarooqui038501/SalesChatBot/pkg/errors"
	pkgkafka "github.com/Mrfarooqui038501/SalesChatBot/pkg/kafka"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/middleware"
)

// ============================================================================
// Mocks
// ============================================================================

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockProductGetter struct {
	mock.Mock
}

func (m *mockProductGetter) GetProduct(ctx context.Context, id string) (*catalogdomain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogdomain.Product), args.Error(1)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCartHandler(repo *mockCartRepository, products *mockProductGetter) *CartHandler {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	producer := event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
	svc := service.NewCartService(repo, products, producer, logger)
	return NewCartHandler(svc, logger)
}

// setupCartRouter mounts the cart routes behind the auth middleware with a
// stub token validator, matching the production layout.
func setupCartRouter(handler *CartHandler) *chi.Mux {
	validate := func(token string) (*middleware.Claims, error) {
		if token == "good-token" {
			return &middleware.Claims{UserID: "u-1"}, nil
		}
		return nil, apperrors.Unauthorized("Invalid token")
	}

	r := chi.NewRouter()
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.Auth(validate))
		handler.Routes(r)
	})
	return r
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sampleProduct() *catalogdomain.Product {
	return &catalogdomain.Product{ID: "p-1", Name: "Gaming Laptop", Price: 1299.99, Category: "Electronics", InStock: true}
}

func decodeCartResponse(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ============================================================================
// Auth
// ============================================================================

func TestCartRoutes_RequireAuth(t *testing.T) {
	router := setupCartRouter(testCartHandler(new(mockCartRepository), new(mockProductGetter)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No authorization header provided")
}

func TestCartRoutes_RejectBadToken(t *testing.T) {
	router := setupCartRouter(testCartHandler(new(mockCartRepository), new(mockProductGetter)))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

// ============================================================================
// GET /api/cart
// ============================================================================

func TestGetCart_EmptyForNewUser(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "u-1").Return(nil, apperrors.NotFound("cart", "u-1"))

	router := setupCartRouter(testCartHandler(repo, new(mockProductGetter)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
	assert.Contains(t, rec.Body.String(), `"totalAmount":0`)
}

// ============================================================================
// POST /api/cart/add
// ============================================================================

func TestAddItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	products := new(mockProductGetter)
	products.On("GetProduct", mock.Anything, "p-1").Return(sampleProduct(), nil)
	repo.On("Get", mock.Anything, "u-1").Return(nil, apperrors.NotFound("cart", "u-1"))
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	router := setupCartRouter(testCartHandler(repo, products))
	body, _ := json.Marshal(map[string]any{"productId": "p-1", "quantity": 2})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart/add", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCartResponse(t, rec)
	assert.Equal(t, "Item added to cart successfully", resp.Message)
	require.NotNil(t, resp.Cart)
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 2, resp.Cart.Items[0].Quantity)
	repo.AssertExpectations(t)
}

func TestAddItem_QuantityDefaultsToOne(t *testing.T) {
	repo := new(mockCartRepository)
	products := new(mockProductGetter)
	products.On("GetProduct", mock.Anything, "p-1").Return(sampleProduct(), nil)
	repo.On("Get", mock.Anything, "u-1").Return(nil, apperrors.NotFound("cart", "u-1"))
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	router := setupCartRouter(testCartHandler(repo, products))
	body, _ := json.Marshal(map[string]any{"productId": "p-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart/add", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCartResponse(t, rec)
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 1, resp.Cart.Items[0].Quantity)
}

func TestAddItem_UnknownProductIs404(t *testing.T) {
	repo := new(mockCartRepository)
	products := new(mockProductGetter)
	products.On("GetProduct", mock.Anything, "missing").
		Return(nil, apperrors.NotFoundMsg("Product not found"))

	router := setupCartRouter(testCartHandler(repo, products))
	body, _ := json.Marshal(map[string]any{"productId": "missing"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart/add", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product not found")
}

func TestAddItem_MissingProductIDIs400(t *testing.T) {
	router := setupCartRouter(testCartHandler(new(mockCartRepository), new(mockProductGetter)))

	body, _ := json.Marshal(map[string]any{"quantity": 1})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart/add", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// PUT /api/cart/update
// ============================================================================

func TestUpdateItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	existing := domain.NewCart("u-1")
	existing.Items = []domain.CartItem{{ProductID: "p-1", Name: "Gaming Laptop", Price: 1299.99, Quantity: 1}}
	existing.Recalculate()
	repo.On("Get", mock.Anything, "u-1").Return(existing, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	router := setupCartRouter(testCartHandler(repo, new(mockProductGetter)))
	body, _ := json.Marshal(map[string]any{"productId": "p-1", "quantity": 3})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/cart/update", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCartResponse(t, rec)
	assert.Equal(t, "Cart item updated successfully", resp.Message)
	assert.Equal(t, 3, resp.Cart.Items[0].Quantity)
}

func TestUpdateItem_ItemNotInCartIs404(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "u-1").Return(domain.NewCart("u-1"), nil)

	router := setupCartRouter(testCartHandler(repo, new(mockProductGetter)))
	body, _ := json.Marshal(map[string]any{"productId": "p-9", "quantity": 2})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/cart/update", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Item not found in cart")
}

// ============================================================================
// DELETE /api/cart/remove/{productId} and /api/cart/clear
// ============================================================================

func TestRemoveItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	existing := domain.NewCart("u-1")
	existing.Items = []domain.CartItem{{ProductID: "p-1", Name: "Gaming Laptop", Price: 1299.99, Quantity: 1}}
	existing.Recalculate()
	repo.On("Get", mock.Anything, "u-1").Return(existing, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	router := setupCartRouter(testCartHandler(repo, new(mockProductGetter)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/cart/remove/p-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCartResponse(t, rec)
	assert.Equal(t, "Item removed from cart successfully", resp.Message)
	assert.Empty(t, resp.Cart.Items)
}

func TestClearCart_Success(t *testing.T) {
	repo := new(mockCartRepository)
	existing := domain.NewCart("u-1")
	existing.Items = []domain.CartItem{{ProductID: "p-1", Name: "Gaming Laptop", Price: 1299.99, Quantity: 2}}
	existing.Recalculate()
	repo.On("Get", mock.Anything, "u-1").Return(existing, nil)
	repo.On("Delete", mock.Anything, "u-1").Return(nil)

	router := setupCartRouter(testCartHandler(repo, new(mockProductGetter)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/cart/clear", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCartResponse(t, rec)
	assert.Equal(t, "Cart cleared successfully", resp.Message)
	assert.Empty(t, resp.Cart.Items)
	repo.AssertExpectations(t)
}

func TestClearCart_MissingCartIs404(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "u-1").Return(nil, apperrors.NotFound("cart", "u-1"))

	router := setupCartRouter(testCartHandler(repo, new(mockProductGetter)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/cart/clear", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart not found")
}
