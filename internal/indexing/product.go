package indexing

import (
	"context"
	"fmt"
	"strconv"

	"github.com/utafrali/catalog-indexer/internal/domain"
)

// AssembleProduct builds the index document for a product. A nil product
// yields no document and no error. A product with zero category memberships
// is a structural failure and returns ErrNoCategories.
func (a *Assembler) AssembleProduct(ctx context.Context, pass *Pass, p *domain.Product) (*Document, error) {
	if p == nil {
		return nil, nil
	}
	if len(p.Categories) == 0 {
		return nil, fmt.Errorf("product %q: %w", p.Code, ErrNoCategories)
	}

	doc := NewDocument(TypeProduct, DocumentID(TypeProduct, p.UID))

	// Identity fields.
	doc.SetField(FieldObjectUID, formatUID(p.UID))
	doc.SetField(FieldProductCode, p.Code)
	doc.SetField(FieldMasterCatalogCode, p.MasterCatalog.Code)
	doc.SetField(FieldBrandCode, p.BrandCode)
	doc.AddFields(FieldSkuCode, p.SkuCodes())
	doc.SetField(FieldStartDate, a.analyzer.AnalyzeDate(p.StartDate))
	if p.EndDate != nil {
		doc.SetField(FieldEndDate, a.analyzer.AnalyzeDate(*p.EndDate))
	}

	// Availability across the category ancestor graph.
	availability, parentCodes, err := a.availability.Resolve(ctx, p.Categories)
	if err != nil {
		return nil, err
	}
	doc.AddFields(FieldParentCategoryCodes, parentCodes)
	writeAvailabilityFields(doc, pass, p.Categories, availability, p.Hidden)

	// Prices per (catalog, price list) pair.
	resolved, err := a.prices.Assemble(ctx, pass, p.Code)
	if err != nil {
		return nil, err
	}
	WritePriceFields(doc, resolved)

	// Locale expansion over the union of catalog locales.
	brand, err := a.lookupBrand(ctx, p.BrandCode)
	if err != nil {
		return nil, err
	}
	locales := a.locales.LocaleUniverse(pass, p.Categories)
	a.locales.ExpandProduct(doc, p, brand, locales)

	// Bundles fold their constituent tree into this same document.
	if p.Bundle {
		count, err := a.constituents.Flatten(ctx, doc, p, locales)
		if err != nil {
			return nil, err
		}
		doc.SetField(FieldConstituentCount, strconv.Itoa(count))
	}

	return doc, nil
}
