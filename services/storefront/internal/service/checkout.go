package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
	"github.com/Roselynepj1/Flowerpower/pkg/logger"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

// Checkout upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity of a single product.
	MaxQuantityPerItem = 100
	// MaxItemsPerCheckout is the maximum number of distinct products.
	MaxItemsPerCheckout = 50
)

// AddItemInput holds the parameters for adding a product to the checkout.
type AddItemInput struct {
	ProductID int `json:"id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gte=1,lte=100"`
}

// AddItem adds quantity units of a product to the shopper's checkout. The
// product is looked up upstream and the line total is its current price
// times the resulting quantity. Adding a product already present merges
// the quantities.
func (s *StorefrontService) AddItem(ctx context.Context, shopperID string, input AddItemInput) ([]domain.CheckoutLineItem, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}
	if input.ProductID <= 0 {
		return nil, apperrors.InvalidInput("product id must be a positive integer")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	product, err := s.catalog.FetchProduct(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	if !product.IsInStock {
		return nil, apperrors.InvalidInput(fmt.Sprintf("product %d is out of stock", product.ID))
	}
	price, ok := product.Price()
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("product %d has no price", product.ID))
	}

	items, err := s.items(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	if i := domain.FindItemIndex(items, input.ProductID); i >= 0 {
		qty := items[i].Quantity + input.Quantity
		if qty > MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
		}
		items[i].Quantity = qty
		items[i].Total = lineTotal(price, qty)
	} else {
		if len(items) >= MaxItemsPerCheckout {
			return nil, apperrors.InvalidInput(fmt.Sprintf("checkout must not contain more than %d products", MaxItemsPerCheckout))
		}
		items = append(items, domain.CheckoutLineItem{
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Total:     lineTotal(price, input.Quantity),
		})
	}

	if err := s.repo.SaveItems(ctx, shopperID, items); err != nil {
		return nil, fmt.Errorf("save checkout: %w", err)
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "checkout item added",
		slog.Int("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)
	s.publishUpdated(ctx, shopperID, items)

	return items, nil
}

// RemoveItem removes a product from the shopper's checkout.
func (s *StorefrontService) RemoveItem(ctx context.Context, shopperID string, productID int) ([]domain.CheckoutLineItem, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	items, err := s.items(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	i := domain.FindItemIndex(items, productID)
	if i < 0 {
		return nil, apperrors.NotFound("checkout item", strconv.Itoa(productID))
	}
	items = append(items[:i], items[i+1:]...)

	if err := s.repo.SaveItems(ctx, shopperID, items); err != nil {
		return nil, fmt.Errorf("save checkout: %w", err)
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "checkout item removed",
		slog.Int("product_id", productID),
	)
	s.publishUpdated(ctx, shopperID, items)

	return items, nil
}

// ClearCheckout removes every item from the shopper's checkout.
func (s *StorefrontService) ClearCheckout(ctx context.Context, shopperID string) error {
	if shopperID == "" {
		return apperrors.InvalidInput("shopper id is required")
	}

	if err := s.repo.Clear(ctx, shopperID); err != nil {
		return fmt.Errorf("clear checkout: %w", err)
	}

	if err := s.events.PublishCheckoutCleared(ctx, shopperID); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish checkout.cleared event",
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Badge returns the number of units in the shopper's checkout.
func (s *StorefrontService) Badge(ctx context.Context, shopperID string) (int, error) {
	items, err := s.items(ctx, shopperID)
	if err != nil {
		return 0, err
	}
	return domain.ItemCount(items), nil
}

func (s *StorefrontService) items(ctx context.Context, shopperID string) ([]domain.CheckoutLineItem, error) {
	if shopperID == "" {
		return []domain.CheckoutLineItem{}, nil
	}
	items, err := s.repo.GetItems(ctx, shopperID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.CheckoutLineItem{}, nil
		}
		return nil, fmt.Errorf("load checkout: %w", err)
	}
	return items, nil
}

func (s *StorefrontService) publishUpdated(ctx context.Context, shopperID string, items []domain.CheckoutLineItem) {
	if err := s.events.PublishCheckoutUpdated(ctx, shopperID, items); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish checkout.updated event",
			slog.String("error", err.Error()),
		)
	}
}

func lineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}
