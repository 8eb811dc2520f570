// Package memory provides in-memory implementations of the lookup
// interfaces. They back the development profile and the engine tests.
// All implementations are safe for concurrent use.
package memory

import (
	"context"
	"sync"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/lookup"
)

// CategoryLookup is an in-memory category store keyed by UID.
type CategoryLookup struct {
	mu         sync.RWMutex
	categories map[int64]domain.Category
}

// NewCategoryLookup creates an empty in-memory category lookup.
func NewCategoryLookup() *CategoryLookup {
	return &CategoryLookup{categories: make(map[int64]domain.Category)}
}

// Add registers categories so they can be found by UID and by parent walks.
func (l *CategoryLookup) Add(categories ...domain.Category) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range categories {
		l.categories[c.UID] = c
	}
}

// FindByUID returns the category with the given UID, or nil.
func (l *CategoryLookup) FindByUID(_ context.Context, uid int64) (*domain.Category, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if c, ok := l.categories[uid]; ok {
		return &c, nil
	}
	return nil, nil
}

// FindParent returns the parent of the given category, or nil at a root.
func (l *CategoryLookup) FindParent(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil || category.IsRoot() {
		return nil, nil
	}
	return l.FindByUID(ctx, category.ParentUID)
}

// StoreLister is an in-memory store list.
type StoreLister struct {
	mu     sync.RWMutex
	stores []domain.Store
}

// NewStoreLister creates a store lister with the given stores.
func NewStoreLister(stores ...domain.Store) *StoreLister {
	return &StoreLister{stores: stores}
}

// Add appends stores to the list.
func (l *StoreLister) Add(stores ...domain.Store) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stores = append(l.stores, stores...)
}

// ListCompleteStores returns every enabled store.
func (l *StoreLister) ListCompleteStores(_ context.Context) ([]domain.Store, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Store, 0, len(l.stores))
	for _, s := range l.stores {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListStoresWithCatalogs returns the stores selling from the given catalogs.
func (l *StoreLister) ListStoresWithCatalogs(_ context.Context, catalogCodes []string) ([]domain.Store, error) {
	wanted := make(map[string]struct{}, len(catalogCodes))
	for _, code := range catalogCodes {
		wanted[code] = struct{}{}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Store
	for _, s := range l.stores {
		if _, ok := wanted[s.CatalogCode]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// AssignmentLister is an in-memory price list assignment registry keyed by
// catalog code.
type AssignmentLister struct {
	mu          sync.RWMutex
	assignments map[string][]domain.PriceListAssignment
}

// NewAssignmentLister creates an empty assignment lister.
func NewAssignmentLister() *AssignmentLister {
	return &AssignmentLister{assignments: make(map[string][]domain.PriceListAssignment)}
}

// Add registers assignments under their catalog code.
func (l *AssignmentLister) Add(assignments ...domain.PriceListAssignment) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range assignments {
		l.assignments[a.CatalogCode] = append(l.assignments[a.CatalogCode], a)
	}
}

// ListByCatalog returns the assignments for the given catalog.
func (l *AssignmentLister) ListByCatalog(_ context.Context, catalogCode string, _ bool) ([]domain.PriceListAssignment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.PriceListAssignment(nil), l.assignments[catalogCode]...), nil
}

// priceKey identifies a price by product code and price list GUID.
type priceKey struct {
	productCode   string
	priceListGUID string
}

// PriceStore is an in-memory lowest-price registry. It implements
// PriceDataSourceFactory, PriceDataSource, and PriceLookup in one type, and
// records how many data sources were constructed so tests can assert the
// batch-construction invariant.
type PriceStore struct {
	mu          sync.RWMutex
	prices      map[priceKey]domain.Price
	sourceCount int
}

// NewPriceStore creates an empty price store.
func NewPriceStore() *PriceStore {
	return &PriceStore{prices: make(map[priceKey]domain.Price)}
}

// SetLowestPrice registers the lowest price for a product under a price list.
func (s *PriceStore) SetLowestPrice(productCode, priceListGUID string, amount domain.Money) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[priceKey{productCode, priceListGUID}] = domain.Price{
		PriceListGUID: priceListGUID,
		Amount:        amount,
	}
}

// SourceCount returns how many batch data sources have been constructed.
func (s *PriceStore) SourceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceCount
}

// ForEntity returns the store itself as a batch data source.
func (s *PriceStore) ForEntity(_ context.Context, _ string, _ []domain.Store) (lookup.PriceDataSource, error) {
	s.mu.Lock()
	s.sourceCount++
	s.mu.Unlock()
	return s, nil
}

// LowestPrice returns the registered lowest price, or nil.
func (s *PriceStore) LowestPrice(_ context.Context, productCode string, assignment domain.PriceListAssignment) (*domain.Price, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.prices[priceKey{productCode, assignment.PriceListGUID}]; ok {
		return &p, nil
	}
	return nil, nil
}

// ProductPrice reads the price through the batch data source.
func (s *PriceStore) ProductPrice(ctx context.Context, productCode string, assignment domain.PriceListAssignment, _ domain.Store, source lookup.PriceDataSource) (*domain.Price, error) {
	return source.LowestPrice(ctx, productCode, assignment)
}

// BrandLookup is an in-memory brand registry keyed by code.
type BrandLookup struct {
	mu     sync.RWMutex
	brands map[string]domain.Brand
}

// NewBrandLookup creates an empty brand lookup.
func NewBrandLookup() *BrandLookup {
	return &BrandLookup{brands: make(map[string]domain.Brand)}
}

// Add registers brands by code.
func (l *BrandLookup) Add(brands ...domain.Brand) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range brands {
		l.brands[b.Code] = b
	}
}

// FindByCode returns the brand with the given code, or nil.
func (l *BrandLookup) FindByCode(_ context.Context, code string) (*domain.Brand, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if b, ok := l.brands[code]; ok {
		return &b, nil
	}
	return nil, nil
}
