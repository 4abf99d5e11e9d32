package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Roselynepj1/Flowerpower/pkg/database"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

const (
	selectItems = `SELECT product_id, quantity, total::text
		FROM checkout_items
		WHERE shopper_id = $1
		ORDER BY position`
	deleteItems = `DELETE FROM checkout_items WHERE shopper_id = $1`
	insertItem  = `INSERT INTO checkout_items (shopper_id, position, product_id, quantity, total, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`
)

// CheckoutRepository implements repository.CheckoutRepository using PostgreSQL.
type CheckoutRepository struct {
	db database.DBTX
}

// NewCheckoutRepository creates a new PostgreSQL-backed checkout repository.
func NewCheckoutRepository(db database.DBTX) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

// GetItems loads the shopper's line items ordered by position.
func (r *CheckoutRepository) GetItems(ctx context.Context, shopperID string) (items []domain.CheckoutLineItem, err error) {
	ctx, done := database.TraceQuery(ctx, "postgresql", "GetCheckoutItems", selectItems)
	defer func() { done(err) }()

	rows, err := r.db.Query(ctx, selectItems, shopperID)
	if err != nil {
		return nil, fmt.Errorf("query checkout items: %w", err)
	}
	defer rows.Close()

	items = []domain.CheckoutLineItem{}
	for rows.Next() {
		var (
			item  domain.CheckoutLineItem
			total string
		)
		if err := rows.Scan(&item.ProductID, &item.Quantity, &total); err != nil {
			return nil, fmt.Errorf("scan checkout item: %w", err)
		}
		if item.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse checkout total %q: %w", total, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkout items: %w", err)
	}
	return items, nil
}

// SaveItems replaces the shopper's rows inside one transaction.
func (r *CheckoutRepository) SaveItems(ctx context.Context, shopperID string, items []domain.CheckoutLineItem) (err error) {
	ctx, done := database.TraceQuery(ctx, "postgresql", "SaveCheckoutItems", insertItem)
	defer func() { done(err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin checkout tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, deleteItems, shopperID); err != nil {
		return fmt.Errorf("delete checkout items: %w", err)
	}
	for i, item := range items {
		if _, err = tx.Exec(ctx, insertItem, shopperID, i, item.ProductID, item.Quantity, item.Total.String()); err != nil {
			return fmt.Errorf("insert checkout item %d: %w", item.ProductID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit checkout tx: %w", err)
	}
	return nil
}

// Clear deletes all rows of the shopper.
func (r *CheckoutRepository) Clear(ctx context.Context, shopperID string) (err error) {
	ctx, done := database.TraceQuery(ctx, "postgresql", "ClearCheckoutItems", deleteItems)
	defer func() { done(err) }()

	if _, err = r.db.Exec(ctx, deleteItems, shopperID); err != nil {
		return fmt.Errorf("clear checkout items: %w", err)
	}
	return nil
}
