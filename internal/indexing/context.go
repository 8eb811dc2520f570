package indexing

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/lookup"
)

// Pass holds the caches shared by every document build of one indexing pass:
// the resolved store list, price list assignments per store, and supported
// locales per catalog. All caches are value-keyed (store code, catalog code)
// rather than keyed by live objects. A Pass is built once at the start of a
// pass, is safe for concurrent reads from parallel build tasks, and is
// discarded when the pass ends. Nothing in it outlives the pass.
type Pass struct {
	stores             []domain.Store
	assignmentsByStore map[string][]domain.PriceListAssignment

	mu               sync.RWMutex
	localesByCatalog map[string][]language.Tag
}

// NewPass resolves the store list and each store's price list assignments
// up front, so that per-document price assembly never issues per-store
// listing queries.
func NewPass(ctx context.Context, stores lookup.StoreLister, assignments lookup.PriceListAssignmentLister) (*Pass, error) {
	storeList, err := stores.ListCompleteStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	byStore := make(map[string][]domain.PriceListAssignment, len(storeList))
	byCatalog := make(map[string][]domain.PriceListAssignment)
	for _, store := range storeList {
		catalogAssignments, ok := byCatalog[store.CatalogCode]
		if !ok {
			catalogAssignments, err = assignments.ListByCatalog(ctx, store.CatalogCode, true)
			if err != nil {
				return nil, fmt.Errorf("list price list assignments for catalog %q: %w", store.CatalogCode, err)
			}
			byCatalog[store.CatalogCode] = catalogAssignments
		}
		byStore[store.Code] = catalogAssignments
	}

	return &Pass{
		stores:             storeList,
		assignmentsByStore: byStore,
		localesByCatalog:   make(map[string][]language.Tag),
	}, nil
}

// Stores returns the resolved store list for the pass.
func (p *Pass) Stores() []domain.Store {
	return p.stores
}

// AssignmentsForStore returns the price list assignments of a store.
func (p *Pass) AssignmentsForStore(storeCode string) []domain.PriceListAssignment {
	return p.assignmentsByStore[storeCode]
}

// SupportedLocales returns the supported locales of a catalog, memoized by
// catalog code for the duration of the pass.
func (p *Pass) SupportedLocales(catalog domain.Catalog) []language.Tag {
	p.mu.RLock()
	locales, ok := p.localesByCatalog[catalog.Code]
	p.mu.RUnlock()
	if ok {
		return locales
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if locales, ok = p.localesByCatalog[catalog.Code]; ok {
		return locales
	}
	locales = append([]language.Tag(nil), catalog.SupportedLocales...)
	p.localesByCatalog[catalog.Code] = locales
	return locales
}
