package repository

import (
	"context"

	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

// CheckoutRepository defines the persistence operations for checkout line items.
type CheckoutRepository interface {
	// GetItems returns the shopper's line items in the order they were added.
	// A shopper with nothing stored gets an empty slice, not an error.
	GetItems(ctx context.Context, shopperID string) ([]domain.CheckoutLineItem, error)

	// SaveItems replaces all line items of the shopper.
	SaveItems(ctx context.Context, shopperID string, items []domain.CheckoutLineItem) error

	// Clear removes every line item of the shopper.
	Clear(ctx context.Context, shopperID string) error
}
