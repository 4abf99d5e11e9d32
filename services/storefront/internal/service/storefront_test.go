package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
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

type testDeps struct {
	catalog *mockCatalog
	repo    *mockCheckoutRepository
	events  *mockEvents
}

func newTestService() (*StorefrontService, *testDeps) {
	deps := &testDeps{
		catalog: &mockCatalog{},
		repo:    &mockCheckoutRepository{},
		events:  &mockEvents{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStorefrontService(deps.catalog, deps.repo, deps.events, logger), deps
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

// testCatalog returns eight products with ids 1..8.
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
