package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	pkgkafka "github.com/utafrali/catalog-indexer/pkg/kafka"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/indexing"
	"github.com/utafrali/catalog-indexer/internal/pipeline"
	"github.com/utafrali/catalog-indexer/internal/service"
)

// Kafka topics for catalog change events consumed by the indexer. Create
// and update events carry the full entity snapshot so the consumer never
// reads back through the persistence layer.
const (
	TopicProductUpserted  = "catalog.product.upserted"
	TopicProductDeleted   = "catalog.product.deleted"
	TopicCategoryUpserted = "catalog.category.upserted"
	TopicCategoryDeleted  = "catalog.category.deleted"
	TopicCustomerUpserted = "catalog.customer.upserted"
	TopicCustomerDeleted  = "catalog.customer.deleted"
)

// Topics returns every topic the consumer subscribes to.
func Topics() []string {
	return []string{
		TopicProductUpserted,
		TopicProductDeleted,
		TopicCategoryUpserted,
		TopicCategoryDeleted,
		TopicCustomerUpserted,
		TopicCustomerDeleted,
	}
}

// deletedData is the payload of every *.deleted event.
type deletedData struct {
	UID int64 `json:"uid"`
}

// Consumer handles catalog change events and keeps the index current.
type Consumer struct {
	indexer *service.IndexerService
	logger  *slog.Logger
}

// NewConsumer creates a new event consumer for the indexer.
func NewConsumer(indexer *service.IndexerService, logger *slog.Logger) *Consumer {
	return &Consumer{indexer: indexer, logger: logger}
}

// Handle processes one Kafka event based on its type.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicProductUpserted:
		return c.handleProductUpserted(ctx, event)
	case TopicProductDeleted:
		return c.handleDeleted(ctx, event, indexing.TypeProduct)
	case TopicCategoryUpserted:
		return c.handleCategoryUpserted(ctx, event)
	case TopicCategoryDeleted:
		return c.handleDeleted(ctx, event, indexing.TypeCategory)
	case TopicCustomerUpserted:
		return c.handleCustomerUpserted(ctx, event)
	case TopicCustomerDeleted:
		return c.handleDeleted(ctx, event, indexing.TypeCustomer)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// handleProductUpserted rebuilds the product document and its sku documents.
func (c *Consumer) handleProductUpserted(ctx context.Context, event *pkgkafka.Event) error {
	var product domain.Product
	if err := json.Unmarshal(event.Data, &product); err != nil {
		return fmt.Errorf("unmarshal product event data: %w", err)
	}

	if err := c.indexer.IndexEntity(ctx, pipeline.Entity{Product: &product}); err != nil {
		return fmt.Errorf("index product from event: %w", err)
	}

	c.logger.InfoContext(ctx, "indexed product from event",
		slog.String("product_code", product.Code),
		slog.Int("sku_count", len(product.SKUs)),
	)
	return nil
}

// handleCategoryUpserted rebuilds the category document.
func (c *Consumer) handleCategoryUpserted(ctx context.Context, event *pkgkafka.Event) error {
	var category domain.Category
	if err := json.Unmarshal(event.Data, &category); err != nil {
		return fmt.Errorf("unmarshal category event data: %w", err)
	}

	if err := c.indexer.IndexEntity(ctx, pipeline.Entity{Category: &category}); err != nil {
		return fmt.Errorf("index category from event: %w", err)
	}

	c.logger.InfoContext(ctx, "indexed category from event",
		slog.String("category_code", category.Code),
	)
	return nil
}

// handleCustomerUpserted rebuilds the customer document.
func (c *Consumer) handleCustomerUpserted(ctx context.Context, event *pkgkafka.Event) error {
	var customer domain.Customer
	if err := json.Unmarshal(event.Data, &customer); err != nil {
		return fmt.Errorf("unmarshal customer event data: %w", err)
	}

	if err := c.indexer.IndexEntity(ctx, pipeline.Entity{Customer: &customer}); err != nil {
		return fmt.Errorf("index customer from event: %w", err)
	}

	c.logger.InfoContext(ctx, "indexed customer from event",
		slog.Int64("customer_uid", customer.UID),
	)
	return nil
}

// handleDeleted removes an entity's document from the index.
func (c *Consumer) handleDeleted(ctx context.Context, event *pkgkafka.Event, entityType string) error {
	var data deletedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal deleted event data: %w", err)
	}

	if err := c.indexer.DeleteEntity(ctx, entityType, data.UID); err != nil {
		return fmt.Errorf("delete document from event: %w", err)
	}
	return nil
}
