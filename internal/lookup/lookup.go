// Package lookup defines the read-side collaborator interfaces the document
// assembly engine depends on. Implementations must be safe for concurrent use:
// entities are indexed in parallel and every lookup may be hit from multiple
// build tasks at once.
package lookup

import (
	"context"

	"github.com/utafrali/catalog-indexer/internal/domain"
)

// CategoryLookup resolves categories and their ancestors.
type CategoryLookup interface {
	// FindByUID returns the category with the given UID, or nil when it
	// does not exist.
	FindByUID(ctx context.Context, uid int64) (*domain.Category, error)

	// FindParent returns the parent of the given category, or nil when the
	// category is a root.
	FindParent(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

// StoreLister lists stores known to the commerce suite.
type StoreLister interface {
	// ListCompleteStores returns every fully-configured store.
	ListCompleteStores(ctx context.Context) ([]domain.Store, error)

	// ListStoresWithCatalogs returns the stores selling from any of the
	// given catalogs.
	ListStoresWithCatalogs(ctx context.Context, catalogCodes []string) ([]domain.Store, error)
}

// PriceListAssignmentLister lists price list assignments per catalog.
type PriceListAssignmentLister interface {
	// ListByCatalog returns the assignments for a catalog, optionally
	// restricted to currently active ones.
	ListByCatalog(ctx context.Context, catalogCode string, activeOnly bool) ([]domain.PriceListAssignment, error)
}

// PriceDataSource is a batch price source scoped to one entity and a fixed
// store set. It exists so that resolving prices for every (store, price list)
// pair of one document costs a single query path instead of N+1 point reads.
type PriceDataSource interface {
	// LowestPrice returns the entity's lowest price under the given
	// assignment, or nil when the price list carries no price for it.
	LowestPrice(ctx context.Context, productCode string, assignment domain.PriceListAssignment) (*domain.Price, error)
}

// PriceDataSourceFactory builds a batch price data source for one entity.
// The assembler calls this exactly once per document build.
type PriceDataSourceFactory interface {
	ForEntity(ctx context.Context, productCode string, stores []domain.Store) (PriceDataSource, error)
}

// PriceLookup resolves the promoted lowest price for an entity in a store
// under one price list assignment, reading through the batch data source.
type PriceLookup interface {
	ProductPrice(ctx context.Context, productCode string, assignment domain.PriceListAssignment, store domain.Store, source PriceDataSource) (*domain.Price, error)
}

// BrandLookup resolves brands by code.
type BrandLookup interface {
	// FindByCode returns the brand with the given code, or nil when the
	// code is unknown. A missing brand is not an error.
	FindByCode(ctx context.Context, code string) (*domain.Brand, error)
}
