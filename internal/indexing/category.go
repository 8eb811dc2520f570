package indexing

import (
	"context"
	"strconv"

	"github.com/utafrali/catalog-indexer/internal/domain"
)

// AssembleCategory builds the index document for a category itself. The
// category's own ancestor chain supplies the parent codes and availability.
func (a *Assembler) AssembleCategory(ctx context.Context, pass *Pass, c *domain.Category) (*Document, error) {
	if c == nil {
		return nil, nil
	}

	doc := NewDocument(TypeCategory, DocumentID(TypeCategory, c.UID))

	doc.SetField(FieldObjectUID, formatUID(c.UID))
	doc.SetField(FieldCategoryCode, c.Code)
	doc.SetField(FieldCatalogCode, c.Catalog.Code)

	availability, parentCodes, err := a.availability.Resolve(ctx, []domain.Category{*c})
	if err != nil {
		return nil, err
	}
	doc.AddFields(FieldParentCategoryCodes, parentCodes)
	for _, store := range pass.Stores() {
		available, ok := availability[store.CatalogCode]
		if !ok {
			continue
		}
		doc.SetField(DisplayableName(store.Code), strconv.FormatBool(available))
	}

	for _, tag := range pass.SupportedLocales(c.Catalog) {
		doc.SetField(LocaleName(FieldDisplayName, tag), a.analyzer.Analyze(c.DisplayNames.Get(tag)))
	}
	def := c.Catalog.DefaultLocale
	doc.SetField(FieldDisplayName, a.analyzer.Analyze(c.DisplayNames.Get(def)))
	doc.PrependSortable(SortableName(FieldDisplayName), a.analyzer.Analyze(c.DisplayNames.Get(def)))

	return doc, nil
}
