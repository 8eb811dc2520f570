package indexing

import (
	"context"
	"fmt"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/lookup"
)

// PriceFieldKey identifies one price index field: the catalog a store sells
// from and the price list assigned to it.
type PriceFieldKey struct {
	CatalogCode   string
	PriceListGUID string
}

// PriceFieldAssembler resolves the lowest price per (catalog, price list)
// pair for one entity across all stores of a pass.
type PriceFieldAssembler struct {
	factory lookup.PriceDataSourceFactory
	prices  lookup.PriceLookup
}

// NewPriceFieldAssembler creates a price field assembler.
func NewPriceFieldAssembler(factory lookup.PriceDataSourceFactory, prices lookup.PriceLookup) *PriceFieldAssembler {
	return &PriceFieldAssembler{factory: factory, prices: prices}
}

// Assemble builds one batch price data source for the entity and resolves
// the lowest price for every (store, price list assignment) pair of the
// pass. Two stores selling from the same catalog produce the same field key;
// the first resolved price wins. Assignments with no resolvable price are
// skipped without error.
func (a *PriceFieldAssembler) Assemble(ctx context.Context, pass *Pass, productCode string) (map[PriceFieldKey]domain.Price, error) {
	stores := pass.Stores()
	if len(stores) == 0 {
		return nil, nil
	}

	source, err := a.factory.ForEntity(ctx, productCode, stores)
	if err != nil {
		return nil, fmt.Errorf("build price data source for %q: %w", productCode, err)
	}

	resolved := make(map[PriceFieldKey]domain.Price)
	for _, store := range stores {
		for _, assignment := range pass.AssignmentsForStore(store.Code) {
			key := PriceFieldKey{
				CatalogCode:   assignment.CatalogCode,
				PriceListGUID: assignment.PriceListGUID,
			}
			if _, ok := resolved[key]; ok {
				continue
			}

			price, err := a.prices.ProductPrice(ctx, productCode, assignment, store, source)
			if err != nil {
				return nil, fmt.Errorf("resolve price for %q in price list %q: %w", productCode, assignment.PriceListGUID, err)
			}
			if price == nil {
				continue
			}
			resolved[key] = *price
		}
	}

	return resolved, nil
}

// WritePriceFields writes the resolved prices into the document as plain
// amount strings under catalog- and price-list-scoped field names.
func WritePriceFields(doc *Document, resolved map[PriceFieldKey]domain.Price) {
	for key, price := range resolved {
		doc.SetField(PriceName(key.CatalogCode, key.PriceListGUID), price.Amount.PlainString())
	}
}
