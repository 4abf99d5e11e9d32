package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
	"github.com/Roselynepj1/Flowerpower/pkg/logger"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/catalog"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

// ListProducts returns the catalog filtered and ordered by criteria.
func (s *StorefrontService) ListProducts(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Product, error) {
	products, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	s.noteSortKey(ctx, criteria.SortBy)
	return catalog.FilterAndSort(products, criteria), nil
}

// noteSortKey logs a sort key that leaves the catalog in upstream order.
func (s *StorefrontService) noteSortKey(ctx context.Context, key domain.SortKey) {
	if key == "" || key.Known() {
		return
	}
	logger.WithContext(ctx, s.logger).DebugContext(ctx, "unknown sort key, keeping catalog order",
		slog.String("sort_by", string(key)),
	)
}

// PopularProducts returns the popular shelf.
func (s *StorefrontService) PopularProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("popular products: %w", err)
	}
	return catalog.Popular(products), nil
}

// SlideshowProducts returns the slideshow products in display order.
func (s *StorefrontService) SlideshowProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("slideshow products: %w", err)
	}
	return catalog.Slideshow(products), nil
}

// GetProduct returns a single product.
func (s *StorefrontService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("product id must be a positive integer")
	}
	product, err := s.catalog.FetchProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// GetCheckout joins the shopper's line items to the current catalog. Items
// whose product no longer exists are left out.
func (s *StorefrontService) GetCheckout(ctx context.Context, shopperID string) (*domain.Checkout, error) {
	items, err := s.items(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return domain.NewCheckout(shopperID, nil), nil
	}

	products, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("get checkout: %w", err)
	}
	return domain.NewCheckout(shopperID, catalog.CheckoutRows(products, items)), nil
}
