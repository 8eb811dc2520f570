// Package catalog reads the catalog platform's admin export API. It backs
// the production profile of the indexer: the export snapshot feeds both the
// engine's lookup interfaces and the entity stream of full reindex passes.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/pkg/httpclient"
)

// PriceRecord is one exported lowest-price row.
type PriceRecord struct {
	ProductCode   string       `json:"product_code"`
	PriceListGUID string       `json:"price_list_guid"`
	Amount        domain.Money `json:"amount"`
}

// Client fetches export datasets from the catalog platform over HTTP. Calls
// go through a retrying client wrapped in a circuit breaker so a flapping
// catalog service cannot stall every indexing pass.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
}

// NewClient creates an export client against the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	base := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("catalog-export"), logger)
	return &Client{http: cb, baseURL: baseURL}
}

// envelope mirrors the standard response wrapper of the catalog admin API.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// fetchList GETs an export endpoint and decodes its data array.
func fetchList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	resp, err := c.http.Get(ctx, c.baseURL+path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}

	var out []T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode %s data: %w", path, err)
	}
	return out, nil
}

// Stores returns every store known to the platform.
func (c *Client) Stores(ctx context.Context) ([]domain.Store, error) {
	return fetchList[domain.Store](ctx, c, "/api/v1/export/stores")
}

// PriceListAssignments returns every price list assignment.
func (c *Client) PriceListAssignments(ctx context.Context) ([]domain.PriceListAssignment, error) {
	return fetchList[domain.PriceListAssignment](ctx, c, "/api/v1/export/price-list-assignments")
}

// Categories returns every category across all catalogs.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	return fetchList[domain.Category](ctx, c, "/api/v1/export/categories")
}

// Brands returns every brand.
func (c *Client) Brands(ctx context.Context) ([]domain.Brand, error) {
	return fetchList[domain.Brand](ctx, c, "/api/v1/export/brands")
}

// Prices returns every promoted lowest-price row.
func (c *Client) Prices(ctx context.Context) ([]PriceRecord, error) {
	return fetchList[PriceRecord](ctx, c, "/api/v1/export/prices")
}

// Products returns every product with its skus and constituents resolved.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	return fetchList[domain.Product](ctx, c, "/api/v1/export/products")
}

// Rules returns every promotion rule.
func (c *Client) Rules(ctx context.Context) ([]domain.Rule, error) {
	return fetchList[domain.Rule](ctx, c, "/api/v1/export/rules")
}

// StaffUsers returns every back-office user.
func (c *Client) StaffUsers(ctx context.Context) ([]domain.StaffUser, error) {
	return fetchList[domain.StaffUser](ctx, c, "/api/v1/export/staff-users")
}

// Customers returns every registered customer.
func (c *Client) Customers(ctx context.Context) ([]domain.Customer, error) {
	return fetchList[domain.Customer](ctx, c, "/api/v1/export/customers")
}

// ShippingServiceLevels returns every shipping service level.
func (c *Client) ShippingServiceLevels(ctx context.Context) ([]domain.ShippingServiceLevel, error) {
	return fetchList[domain.ShippingServiceLevel](ctx, c, "/api/v1/export/shipping-service-levels")
}
