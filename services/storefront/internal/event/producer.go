package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	pkgkafka "github.com/Roselynepj1/Flowerpower/pkg/kafka"
	"github.com/Roselynepj1/Flowerpower/pkg/logger"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

// Kafka topics for checkout events.
var (
	TopicCheckoutUpdated = pkgkafka.Topic("checkout", "updated")
	TopicCheckoutCleared = pkgkafka.Topic("checkout", "cleared")
)

// Aggregate type constant.
const AggregateTypeCheckout = "checkout"

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront-service"

// CheckoutUpdatedData is the payload for a checkout.updated event.
type CheckoutUpdatedData struct {
	ShopperID string             `json:"shopper_id"`
	Items     []CheckoutItemData `json:"items"`
	ItemCount int                `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
}

// CheckoutItemData is the item payload within checkout events.
type CheckoutItemData struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// CheckoutClearedData is the payload for a checkout.cleared event.
type CheckoutClearedData struct {
	ShopperID string `json:"shopper_id"`
}

// Publisher writes an event to a topic. *pkgkafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes checkout events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCheckoutUpdated publishes a checkout.updated event carrying the
// shopper's full item list.
func (p *Producer) PublishCheckoutUpdated(ctx context.Context, shopperID string, items []domain.CheckoutLineItem) error {
	payload := make([]CheckoutItemData, len(items))
	for i, item := range items {
		payload[i] = CheckoutItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Total:     item.Total,
		}
	}

	data := CheckoutUpdatedData{
		ShopperID: shopperID,
		Items:     payload,
		ItemCount: domain.ItemCount(items),
		Total:     domain.TotalAmount(items),
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutUpdated, shopperID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.updated event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicCheckoutUpdated, event); err != nil {
		return fmt.Errorf("publish checkout.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.updated event",
		slog.String("shopper_id", shopperID),
		slog.Int("item_count", data.ItemCount),
	)

	return nil
}

// PublishCheckoutCleared publishes a checkout.cleared event.
func (p *Producer) PublishCheckoutCleared(ctx context.Context, shopperID string) error {
	data := CheckoutClearedData{ShopperID: shopperID}

	event, err := pkgkafka.NewEvent(TopicCheckoutCleared, shopperID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.cleared event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicCheckoutCleared, event); err != nil {
		return fmt.Errorf("publish checkout.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.cleared event",
		slog.String("shopper_id", shopperID),
	)

	return nil
}
