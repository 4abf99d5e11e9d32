package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
	"github.com/Roselynepj1/Flowerpower/pkg/health"
	"github.com/Roselynepj1/Flowerpower/pkg/httputil"
	"github.com/Roselynepj1/Flowerpower/pkg/middleware"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/render"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/service"
)

// ============================================================================
// Mocks
// ============================================================================

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockCatalog) FetchProduct(ctx context.Context, id int) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockCheckoutRepository struct {
	mock.Mock
}

func (m *mockCheckoutRepository) GetItems(ctx context.Context, shopperID string) ([]domain.CheckoutLineItem, error) {
	args := m.Called(ctx, shopperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CheckoutLineItem), args.Error(1)
}

func (m *mockCheckoutRepository) SaveItems(ctx context.Context, shopperID string, items []domain.CheckoutLineItem) error {
	args := m.Called(ctx, shopperID, items)
	return args.Error(0)
}

func (m *mockCheckoutRepository) Clear(ctx context.Context, shopperID string) error {
	args := m.Called(ctx, shopperID)
	return args.Error(0)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishCheckoutUpdated(ctx context.Context, shopperID string, items []domain.CheckoutLineItem) error {
	args := m.Called(ctx, shopperID, items)
	return args.Error(0)
}

func (m *mockEvents) PublishCheckoutCleared(ctx context.Context, shopperID string) error {
	args := m.Called(ctx, shopperID)
	return args.Error(0)
}

// ============================================================================
// Helpers
// ============================================================================

const testShopper = "6f1c2a9e-3b4d-4c5e-8f70-1a2b3c4d5e6f"

type testDeps struct {
	catalog *mockCatalog
	repo    *mockCheckoutRepository
	events  *mockEvents
}

func setupRouter(t *testing.T) (http.Handler, *testDeps) {
	t.Helper()

	deps := &testDeps{
		catalog: &mockCatalog{},
		repo:    &mockCheckoutRepository{},
		events:  &mockEvents{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewStorefrontService(deps.catalog, deps.repo, deps.events, logger)

	pages, err := render.LoadTemplates("")
	require.NoError(t, err)

	router := NewRouter(svc, pages, health.NewHandler(serviceName), logger, RouterOptions{
		CORS:    middleware.DefaultCORSConfig(),
		Shopper: middleware.DefaultShopperConfig(),
	})
	return router, deps
}

func product(id int, name, cents string, inStock bool) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          name,
		AverageRating: "4.0",
		Prices: domain.Prices{
			Price: cents, RegularPrice: cents, CurrencyCode: "USD", CurrencySymbol: "$", CurrencyMinorUnit: 2,
		},
		IsInStock: inStock,
	}
}

func testCatalog() []domain.Product {
	return []domain.Product{
		product(1, "Blue Rain Jacket", "1000", true),
		product(2, "Storm Parka", "2500", true),
		product(3, "Kids Poncho", "500", false),
		product(4, "Mountain Shell", "4000", true),
		product(5, "Rain Trousers", "2500", false),
		product(6, "Wind Breaker", "3000", true),
		product(7, "Trail Vest", "1500", true),
		product(8, "City Trench", "9000", true),
	}
}

type envelope struct {
	Data  json.RawMessage         `json:"data"`
	Error *httputil.ErrorResponse `json:"error"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	require.NoError(t, json.Unmarshal(resp.Data, dst))
}

func productIDs(products []domain.Product) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func newRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(middleware.ShopperIDHeader, testShopper)
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ============================================================================
// Product API
// ============================================================================

func TestListProducts_FiltersAndSorts(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products?price_from=15&in_stock=true&sort_by=highlow", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	decodeData(t, rec, &products)
	assert.Equal(t, []int{8, 4, 6, 2, 7}, productIDs(products))
}

func TestListProducts_SearchWildcards(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products?search="+url.QueryEscape("rain"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	decodeData(t, rec, &products)
	assert.Equal(t, []int{1, 5}, productIDs(products))
}

func TestListProducts_EmptyResultIsArray(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products?price_from=1000", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.JSONEq(t, `[]`, string(resp.Data))
}

func TestListProducts_MalformedQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"price_from", "price_from=cheap"},
		{"price_to", "price_to=1,5"},
		{"in_stock", "in_stock=yes"},
		{"on_sale", "on_sale=maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := setupRouter(t)

			rec := serve(router, newRequest(http.MethodGet, "/api/v1/products?"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeResponse(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.name)
			deps.catalog.AssertNotCalled(t, "FetchCatalog", mock.Anything)
		})
	}
}

func TestListProducts_ExponentPriceRejected(t *testing.T) {
	router, deps := setupRouter(t)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products?price_from=1e-50000000", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	deps.catalog.AssertNotCalled(t, "FetchCatalog", mock.Anything)
}

func TestCatalogPage_ExponentPriceIgnored(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{}, nil)

	rec := serve(router, newRequest(http.MethodGet, "/products?price_to=1e10000000", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "e10000000")
	for _, p := range testCatalog() {
		assert.Contains(t, body, fmt.Sprintf(`data-product-id="%d"`, p.ID))
	}
}

func TestListProducts_UpstreamFailure(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).
		Return(nil, apperrors.FetchFailed("store api", errors.New("connection refused")))

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "refused")
}

func TestPopularProducts(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products/popular", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	decodeData(t, rec, &products)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, productIDs(products))
}

func TestSlideshowProducts(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products/slideshow", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	decodeData(t, rec, &products)
	assert.Equal(t, []int{8, 7, 6}, productIDs(products))
}

func TestGetProduct(t *testing.T) {
	router, deps := setupRouter(t)
	p := product(4, "Mountain Shell", "4000", true)
	deps.catalog.On("FetchProduct", mock.Anything, 4).Return(&p, nil)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products/4", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Product
	decodeData(t, rec, &got)
	assert.Equal(t, "Mountain Shell", got.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchProduct", mock.Anything, 99).Return(nil, apperrors.NotFound("product", "99"))

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestGetProduct_InvalidID(t *testing.T) {
	router, deps := setupRouter(t)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/products/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	deps.catalog.AssertNotCalled(t, "FetchProduct", mock.Anything, mock.Anything)
}

// ============================================================================
// Checkout API
// ============================================================================

func TestAddItem(t *testing.T) {
	router, deps := setupRouter(t)
	p := product(1, "Blue Rain Jacket", "1000", true)
	deps.catalog.On("FetchProduct", mock.Anything, 1).Return(&p, nil)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return(nil, nil)
	deps.repo.On("SaveItems", mock.Anything, testShopper, mock.Anything).Return(nil)
	deps.events.On("PublishCheckoutUpdated", mock.Anything, testShopper, mock.Anything).Return(nil)

	req := newRequest(http.MethodPost, "/api/v1/checkout/items", strings.NewReader(`{"id":1,"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got checkoutItemsResponse
	decodeData(t, rec, &got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.ItemCount)
	assert.Equal(t, "20", got.Total.String())
	deps.events.AssertExpectations(t)
}

func TestAddItem_ValidationError(t *testing.T) {
	router, deps := setupRouter(t)

	req := newRequest(http.MethodPost, "/api/v1/checkout/items", strings.NewReader(`{"id":1,"quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "quantity")
	deps.catalog.AssertNotCalled(t, "FetchProduct", mock.Anything, mock.Anything)
}

func TestAddItem_UnsupportedMediaType(t *testing.T) {
	router, _ := setupRouter(t)

	req := newRequest(http.MethodPost, "/api/v1/checkout/items", strings.NewReader(`id=1`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(router, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRemoveItem_NotInCheckout(t *testing.T) {
	router, deps := setupRouter(t)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{}, nil)

	rec := serve(router, newRequest(http.MethodDelete, "/api/v1/checkout/items/3", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	deps.repo.AssertNotCalled(t, "SaveItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestClearCheckout(t *testing.T) {
	router, deps := setupRouter(t)
	deps.repo.On("Clear", mock.Anything, testShopper).Return(nil)
	deps.events.On("PublishCheckoutCleared", mock.Anything, testShopper).Return(nil)

	rec := serve(router, newRequest(http.MethodDelete, "/api/v1/checkout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	deps.repo.AssertExpectations(t)
}

func TestGetCheckout_SkipsUnknownProducts(t *testing.T) {
	router, deps := setupRouter(t)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{
		{ProductID: 2, Quantity: 1},
		{ProductID: 42, Quantity: 3},
	}, nil)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/checkout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Checkout
	decodeData(t, rec, &got)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, 2, got.Rows[0].Product.ID)
	assert.Equal(t, testShopper, got.ShopperID)
}

func TestBadge(t *testing.T) {
	router, deps := setupRouter(t)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{
		{ProductID: 2, Quantity: 1},
		{ProductID: 4, Quantity: 3},
	}, nil)

	rec := serve(router, newRequest(http.MethodGet, "/api/v1/checkout/badge", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]int
	decodeData(t, rec, &got)
	assert.Equal(t, 4, got["item_count"])
}

func TestShopperCookieIssued(t *testing.T) {
	router, deps := setupRouter(t)
	deps.repo.On("GetItems", mock.Anything, mock.Anything).Return([]domain.CheckoutLineItem{}, nil)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/checkout/badge", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "shopper_id", cookies[0].Name)
	deps.repo.AssertCalled(t, "GetItems", mock.Anything, cookies[0].Value)
}

// ============================================================================
// Pages
// ============================================================================

func TestHomePage(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{{ProductID: 1, Quantity: 2}}, nil)

	rec := serve(router, newRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	body := rec.Body.String()
	assert.Contains(t, body, `data-product-id="6"`)
	assert.Contains(t, body, "City Trench")
	assert.Contains(t, body, `<span id="cartBadge" class="badge">2</span>`)
}

func TestCatalogPage_AppliesAndEchoesFilters(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{}, nil)

	rec := serve(router, newRequest(http.MethodGet, "/products?search=rain&in_stock=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Blue Rain Jacket")
	assert.NotContains(t, body, "Rain Trousers")
	assert.Contains(t, body, `value="rain"`)
}

func TestCatalogPage_IgnoresMalformedFilters(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).Return(testCatalog(), nil)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{}, nil)

	rec := serve(router, newRequest(http.MethodGet, "/products?price_from=abc&in_stock=perhaps", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, p := range testCatalog() {
		assert.Contains(t, body, fmt.Sprintf(`data-product-id="%d"`, p.ID))
	}
}

func TestCatalogPage_UpstreamFailureShowsEmptyState(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchCatalog", mock.Anything).
		Return(nil, apperrors.FetchFailed("store api", errors.New("timeout")))
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{}, nil)

	rec := serve(router, newRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="no-products"`)
}

func TestProductPage_NotFound(t *testing.T) {
	router, deps := setupRouter(t)
	deps.catalog.On("FetchProduct", mock.Anything, 77).Return(nil, apperrors.NotFound("product", "77"))
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{}, nil)

	rec := serve(router, newRequest(http.MethodGet, "/products/77", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestCheckoutPage_Empty(t *testing.T) {
	router, deps := setupRouter(t)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{}, nil)

	rec := serve(router, newRequest(http.MethodGet, "/checkout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="no-checkout-products"`)
	deps.catalog.AssertNotCalled(t, "FetchCatalog", mock.Anything)
}

func TestAddItemForm_RedirectsToCheckout(t *testing.T) {
	router, deps := setupRouter(t)
	p := product(7, "Trail Vest", "1500", true)
	deps.catalog.On("FetchProduct", mock.Anything, 7).Return(&p, nil)
	deps.repo.On("GetItems", mock.Anything, testShopper).Return([]domain.CheckoutLineItem{}, nil)
	deps.repo.On("SaveItems", mock.Anything, testShopper, mock.MatchedBy(func(items []domain.CheckoutLineItem) bool {
		return len(items) == 1 && items[0].ProductID == 7 && items[0].Quantity == 1
	})).Return(nil)
	deps.events.On("PublishCheckoutUpdated", mock.Anything, testShopper, mock.Anything).Return(nil)

	req := newRequest(http.MethodPost, "/checkout/items", strings.NewReader("id=7"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(router, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))
	deps.repo.AssertExpectations(t)
}

func TestClearForm_RedirectsToCheckout(t *testing.T) {
	router, deps := setupRouter(t)
	deps.repo.On("Clear", mock.Anything, testShopper).Return(nil)
	deps.events.On("PublishCheckoutCleared", mock.Anything, testShopper).Return(errors.New("broker down"))

	rec := serve(router, newRequest(http.MethodPost, "/checkout/clear", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))
}

func TestHealthLive(t *testing.T) {
	router, _ := setupRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
