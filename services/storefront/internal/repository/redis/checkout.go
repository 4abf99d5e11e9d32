package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Roselynepj1/Flowerpower/pkg/database"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

const keyPrefix = "storefront:checkout:"

// CheckoutRepository implements repository.CheckoutRepository using Redis.
// Each shopper's items are one JSON document that expires after ttl of
// inactivity.
type CheckoutRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCheckoutRepository creates a new Redis-backed checkout repository.
func NewCheckoutRepository(client *redis.Client, ttl time.Duration) *CheckoutRepository {
	return &CheckoutRepository{
		client: client,
		ttl:    ttl,
	}
}

// GetItems loads the shopper's line items from Redis.
func (r *CheckoutRepository) GetItems(ctx context.Context, shopperID string) (items []domain.CheckoutLineItem, err error) {
	key := keyPrefix + shopperID
	ctx, done := database.TraceQuery(ctx, "redis", "GET", "GET "+keyPrefix+"*")
	defer func() { done(err) }()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.CheckoutLineItem{}, nil
		}
		return nil, fmt.Errorf("redis get checkout: %w", err)
	}

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal checkout: %w", err)
	}
	if items == nil {
		items = []domain.CheckoutLineItem{}
	}
	return items, nil
}

// SaveItems writes the shopper's line items and refreshes the TTL. Saving an
// empty list deletes the key.
func (r *CheckoutRepository) SaveItems(ctx context.Context, shopperID string, items []domain.CheckoutLineItem) (err error) {
	if len(items) == 0 {
		return r.Clear(ctx, shopperID)
	}

	key := keyPrefix + shopperID
	ctx, done := database.TraceQuery(ctx, "redis", "SET", "SET "+keyPrefix+"*")
	defer func() { done(err) }()

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal checkout: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set checkout: %w", err)
	}
	return nil
}

// Clear removes the shopper's line items from Redis.
func (r *CheckoutRepository) Clear(ctx context.Context, shopperID string) (err error) {
	key := keyPrefix + shopperID
	ctx, done := database.TraceQuery(ctx, "redis", "DEL", "DEL "+keyPrefix+"*")
	defer func() { done(err) }()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del checkout: %w", err)
	}
	return nil
}
