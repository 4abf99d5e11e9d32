package service

import (
	"context"
	"log/slog"

	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/repository"
)

// CatalogFetcher loads products from the store. Implementations must not
// cache: every call reflects the upstream at that moment.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) ([]domain.Product, error)
	FetchProduct(ctx context.Context, id int) (*domain.Product, error)
}

// EventPublisher announces checkout changes.
type EventPublisher interface {
	PublishCheckoutUpdated(ctx context.Context, shopperID string, items []domain.CheckoutLineItem) error
	PublishCheckoutCleared(ctx context.Context, shopperID string) error
}

// StorefrontService implements the storefront views and checkout operations.
type StorefrontService struct {
	catalog CatalogFetcher
	repo    repository.CheckoutRepository
	events  EventPublisher
	logger  *slog.Logger
}

// NewStorefrontService creates a new storefront service.
func NewStorefrontService(
	catalog CatalogFetcher,
	repo repository.CheckoutRepository,
	events EventPublisher,
	logger *slog.Logger,
) *StorefrontService {
	return &StorefrontService{
		catalog: catalog,
		repo:    repo,
		events:  events,
		logger:  logger,
	}
}
