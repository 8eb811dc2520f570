package indexing

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/lookup"
)

// ConstituentFlattener folds a bundle's constituent tree into the bundle's
// own document so the bundle is discoverable by its children's sku codes,
// brands, and names.
type ConstituentFlattener struct {
	brands   lookup.BrandLookup
	expander *LocaleFieldExpander
}

// NewConstituentFlattener creates a flattener.
func NewConstituentFlattener(brands lookup.BrandLookup, expander *LocaleFieldExpander) *ConstituentFlattener {
	return &ConstituentFlattener{brands: brands, expander: expander}
}

// Flatten traverses the bundle's constituents depth-first in pre-order,
// writing each constituent's brand code, sku codes, and localized name
// fields into the shared document, and recursing into nested bundles. It
// returns the total number of constituent items visited across the whole
// tree, not counting the bundle itself. Constituent data is a tree by
// construction; a visited set stops the traversal if that invariant is ever
// violated, so cyclic data degrades into a truncated document instead of
// unbounded recursion.
func (f *ConstituentFlattener) Flatten(ctx context.Context, doc *Document, bundle *domain.Product, locales []language.Tag) (int, error) {
	visited := map[string]struct{}{bundle.Code: {}}
	return f.flatten(ctx, doc, bundle, locales, visited)
}

func (f *ConstituentFlattener) flatten(ctx context.Context, doc *Document, bundle *domain.Product, locales []language.Tag, visited map[string]struct{}) (int, error) {
	count := 0
	for i := range bundle.Constituents {
		constituent := &bundle.Constituents[i]
		p := constituent.Product
		if p == nil {
			continue
		}
		// Every constituent entry counts, including one that references a
		// product already folded in; repeated entries skip only the field
		// writes and the recursion, so the count can exceed the number of
		// distinct products when the data loops back on itself.
		count++

		if _, seen := visited[p.Code]; seen {
			continue
		}
		visited[p.Code] = struct{}{}

		doc.AddFields(FieldBrandCode, []string{p.BrandCode})
		doc.AddFields(FieldSkuCode, constituentSkuCodes(constituent))

		var brand *domain.Brand
		if p.BrandCode != "" {
			var err error
			brand, err = f.brands.FindByCode(ctx, p.BrandCode)
			if err != nil {
				return 0, fmt.Errorf("resolve brand %q for constituent %q: %w", p.BrandCode, p.Code, err)
			}
		}
		f.expander.AccumulateConstituent(doc, p, brand, locales)

		if p.Bundle {
			nested, err := f.flatten(ctx, doc, p, locales, visited)
			if err != nil {
				return 0, err
			}
			count += nested
		}
	}
	return count, nil
}

// constituentSkuCodes returns the sku codes a constituent contributes: the
// pinned sku when the constituent references one, otherwise every sku of
// the product.
func constituentSkuCodes(c *domain.BundleConstituent) []string {
	if c.SkuCode != "" {
		return []string{c.SkuCode}
	}
	return c.Product.SkuCodes()
}
