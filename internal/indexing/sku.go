package indexing

import (
	"context"

	"github.com/utafrali/catalog-indexer/internal/domain"
)

// AssembleSku builds the index document for a single sku of a product. A
// nil product or sku yields no document and no error. Unlike products, a
// parent product with zero category memberships is tolerated: the product
// was validated when its own document was built, and a sku document without
// catalog scoping is still useful for code lookups.
func (a *Assembler) AssembleSku(ctx context.Context, pass *Pass, p *domain.Product, sku *domain.ProductSku) (*Document, error) {
	if p == nil || sku == nil {
		return nil, nil
	}

	doc := NewDocument(TypeSku, DocumentID(TypeSku, sku.UID))

	// Identity fields.
	doc.SetField(FieldObjectUID, formatUID(sku.UID))
	doc.SetField(FieldSkuCode, sku.Code)
	doc.SetField(FieldSkuResultUID, formatUID(sku.UID))
	doc.SetField(FieldProductCode, p.Code)
	doc.SetField(FieldMasterCatalogCode, p.MasterCatalog.Code)
	doc.SetField(FieldBrandCode, p.BrandCode)

	// Availability through the parent product's memberships.
	availability, parentCodes, err := a.availability.Resolve(ctx, p.Categories)
	if err != nil {
		return nil, err
	}
	doc.AddFields(FieldParentCategoryCodes, parentCodes)
	writeAvailabilityFields(doc, pass, p.Categories, availability, p.Hidden)

	// Prices resolve through the parent product.
	resolved, err := a.prices.Assemble(ctx, pass, p.Code)
	if err != nil {
		return nil, err
	}
	WritePriceFields(doc, resolved)

	brand, err := a.lookupBrand(ctx, p.BrandCode)
	if err != nil {
		return nil, err
	}
	locales := a.locales.LocaleUniverse(pass, p.Categories)
	a.locales.ExpandSku(doc, p, sku, brand, locales)

	return doc, nil
}
