package indexing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/lookup"
)

// ErrNoCategories is returned when a product is indexed with zero category
// memberships. The caller logs it and continues with the next entity.
var ErrNoCategories = errors.New("entity has no category memberships")

// Assembler builds index documents for every entity type. One assembler
// serves a whole pass; all per-document state lives in local variables and
// the per-pass caches live in the Pass handed to each build call, so
// concurrent builds never share mutable state.
type Assembler struct {
	availability *AvailabilityResolver
	prices       *PriceFieldAssembler
	locales      *LocaleFieldExpander
	constituents *ConstituentFlattener
	brands       lookup.BrandLookup
	analyzer     Analyzer
	logger       *slog.Logger
}

// NewAssembler composes the shared engine components over the given
// collaborators.
func NewAssembler(
	categories lookup.CategoryLookup,
	brands lookup.BrandLookup,
	priceFactory lookup.PriceDataSourceFactory,
	prices lookup.PriceLookup,
	logger *slog.Logger,
) *Assembler {
	analyzer := NewAnalyzer()
	expander := NewLocaleFieldExpander(analyzer)
	return &Assembler{
		availability: NewAvailabilityResolver(categories),
		prices:       NewPriceFieldAssembler(priceFactory, prices),
		locales:      expander,
		constituents: NewConstituentFlattener(brands, expander),
		brands:       brands,
		analyzer:     analyzer,
		logger:       logger,
	}
}

// DocumentID builds the deterministic document identifier for an entity.
func DocumentID(entityType string, uid int64) string {
	return fmt.Sprintf("%s-%d", entityType, uid)
}

// formatUID renders an entity UID for the object_uid field.
func formatUID(uid int64) string {
	return strconv.FormatInt(uid, 10)
}

// lookupBrand resolves an optional brand. An empty code or an unknown code
// yields nil without error.
func (a *Assembler) lookupBrand(ctx context.Context, code string) (*domain.Brand, error) {
	if code == "" {
		return nil, nil
	}
	brand, err := a.brands.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("resolve brand %q: %w", code, err)
	}
	return brand, nil
}

// writeAvailabilityFields writes the fields derived from the availability
// map: the catalog code list, per-catalog category code lists, and the
// per-store displayability flags. An entity is displayable in a store when
// it is available through the store's catalog and not hidden.
func writeAvailabilityFields(doc *Document, pass *Pass, memberships []domain.Category, availability CatalogAvailability, hidden bool) {
	doc.AddFields(FieldCatalogCode, availability.Codes())

	for i := range memberships {
		c := &memberships[i]
		doc.AddFields(FieldCategoryCode, []string{c.Code})
		doc.AddFields(CategoryListName(c.Catalog.Code), []string{c.Code})
	}

	for _, store := range pass.Stores() {
		available, ok := availability[store.CatalogCode]
		if !ok {
			continue
		}
		doc.SetField(DisplayableName(store.Code), strconv.FormatBool(available && !hidden))
	}
}
