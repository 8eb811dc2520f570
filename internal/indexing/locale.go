package indexing

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/utafrali/catalog-indexer/internal/domain"
)

// LocaleFieldExpander emits the per-locale and default-locale variants of
// name, brand, category, attribute, and sku option fields.
type LocaleFieldExpander struct {
	analyzer Analyzer
}

// NewLocaleFieldExpander creates an expander using the given analyzer.
func NewLocaleFieldExpander(analyzer Analyzer) *LocaleFieldExpander {
	return &LocaleFieldExpander{analyzer: analyzer}
}

// LocaleUniverse returns the union of supported locales over every catalog
// the given category memberships belong to, in stable tag order. A
// storefront may fall back to any containing catalog's locale list, so the
// index must carry every locale any of them could request.
func (e *LocaleFieldExpander) LocaleUniverse(pass *Pass, memberships []domain.Category) []language.Tag {
	seen := make(map[string]language.Tag)
	for i := range memberships {
		for _, tag := range pass.SupportedLocales(memberships[i].Catalog) {
			seen[tag.String()] = tag
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	locales := make([]language.Tag, 0, len(keys))
	for _, k := range keys {
		locales = append(locales, seen[k])
	}
	return locales
}

// ExpandProduct writes the locale-scoped and sortable name fields for a
// top-level product: display name, brand display name, each owning
// category's display name, and attribute values. The unsuffixed default
// variants and the sortable variants are seeded from the master catalog's
// default locale.
func (e *LocaleFieldExpander) ExpandProduct(doc *Document, p *domain.Product, brand *domain.Brand, locales []language.Tag) {
	def := p.MasterCatalog.DefaultLocale

	doc.SetField(FieldDisplayName, e.analyzer.Analyze(p.DisplayNames.Get(def)))
	if brand != nil {
		doc.SetField(FieldBrandName, e.analyzer.Analyze(brand.DisplayNames.Get(def)))
	}

	for _, tag := range locales {
		doc.SetField(LocaleName(FieldDisplayName, tag), e.analyzer.Analyze(p.DisplayNames.Get(tag)))
		if brand != nil {
			doc.SetField(LocaleName(FieldBrandName, tag), e.analyzer.Analyze(brand.DisplayNames.Get(tag)))
		}
		for i := range p.Categories {
			e.addValue(doc, LocaleName(FieldCategoryName, tag), p.Categories[i].DisplayNames.Get(tag))
		}
		e.expandAttributes(doc, p.Attributes, tag, true)
	}

	// Locale-independent attributes are written once, not per locale.
	e.expandAttributes(doc, p.Attributes, def, false)

	// Sortable variants carry no locale suffix; categories concatenate into
	// a single combined sort token.
	doc.PrependSortable(SortableName(FieldDisplayName), e.analyzer.Analyze(p.DisplayNames.Get(def)))
	if brand != nil {
		doc.PrependSortable(SortableName(FieldBrandName), e.analyzer.Analyze(brand.DisplayNames.Get(def)))
	}
	for i := range p.Categories {
		doc.PrependSortable(SortableName(FieldCategoryName), e.analyzer.Analyze(p.Categories[i].DisplayNames.Get(def)))
	}
}

// ExpandSku writes the locale-scoped fields of a sku document: the parent
// product's display name and brand, the sku's option display values, and
// the sku's own attribute values.
func (e *LocaleFieldExpander) ExpandSku(doc *Document, p *domain.Product, sku *domain.ProductSku, brand *domain.Brand, locales []language.Tag) {
	def := p.MasterCatalog.DefaultLocale

	doc.SetField(FieldDisplayName, e.analyzer.Analyze(p.DisplayNames.Get(def)))
	if brand != nil {
		doc.SetField(FieldBrandName, e.analyzer.Analyze(brand.DisplayNames.Get(def)))
	}

	for _, tag := range locales {
		doc.SetField(LocaleName(FieldDisplayName, tag), e.analyzer.Analyze(p.DisplayNames.Get(tag)))
		if brand != nil {
			doc.SetField(LocaleName(FieldBrandName, tag), e.analyzer.Analyze(brand.DisplayNames.Get(tag)))
		}
		for i := range sku.OptionValues {
			e.addValue(doc, LocaleName(FieldSkuOptionValue, tag), sku.OptionValues[i].DisplayValues.Get(tag))
		}
		e.expandAttributes(doc, sku.Attributes, tag, true)
	}

	e.expandAttributes(doc, sku.Attributes, def, false)

	doc.PrependSortable(SortableName(FieldDisplayName), e.analyzer.Analyze(p.DisplayNames.Get(def)))
}

// AccumulateConstituent merges a bundle constituent's name and brand fields
// into the shared document. Unlike ExpandProduct this never overwrites:
// values accumulate next to the top-level entity's own fields so the bundle
// stays discoverable by its children's names.
func (e *LocaleFieldExpander) AccumulateConstituent(doc *Document, p *domain.Product, brand *domain.Brand, locales []language.Tag) {
	def := p.MasterCatalog.DefaultLocale

	e.addValue(doc, FieldDisplayName, p.DisplayNames.Get(def))
	if brand != nil {
		e.addValue(doc, FieldBrandName, brand.DisplayNames.Get(def))
	}

	for _, tag := range locales {
		e.addValue(doc, LocaleName(FieldDisplayName, tag), p.DisplayNames.Get(tag))
		if brand != nil {
			e.addValue(doc, LocaleName(FieldBrandName, tag), brand.DisplayNames.Get(tag))
		}
	}
}

// ExpandLocalizedNames writes locale-scoped name fields for entities that
// carry their own localized names without catalog memberships (e.g.
// shipping service levels). One field per locale present on the entity,
// plus the sortable variant seeded from the lexicographically first locale.
func (e *LocaleFieldExpander) ExpandLocalizedNames(doc *Document, base string, names domain.LocalizedString) {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		tag := language.Make(k)
		doc.SetField(LocaleName(base, tag), e.analyzer.Analyze(names[k]))
	}
	if len(keys) > 0 {
		doc.PrependSortable(SortableName(base), e.analyzer.Analyze(names[keys[0]]))
	}
}

// expandAttributes writes attribute value fields for one locale.
// DATE and DATETIME values are analyzed as dates, DECIMAL values as
// decimals, everything else as its string representation. Multi-valued
// attributes are written as one collection field.
func (e *LocaleFieldExpander) expandAttributes(doc *Document, values []domain.AttributeValue, tag language.Tag, localeDependent bool) {
	for i := range values {
		av := &values[i]
		if av.Attribute.LocaleDependent != localeDependent {
			continue
		}
		if localeDependent && av.Locale != "" && !localeMatches(av.Locale, tag) {
			continue
		}

		name := AttributeName(av.Attribute.Key, tag, av.Attribute.LocaleDependent)
		if av.Attribute.MultiValued {
			analyzed := make([]string, 0, len(av.Values))
			for _, v := range av.Values {
				analyzed = append(analyzed, e.analyzer.Analyze(v))
			}
			doc.AddFields(name, analyzed)
			continue
		}

		doc.SetField(name, e.analyzeAttributeValue(av))
	}
}

// analyzeAttributeValue routes a single attribute value through the
// analyzer according to the attribute's declared type.
func (e *LocaleFieldExpander) analyzeAttributeValue(av *domain.AttributeValue) string {
	switch av.Attribute.Type {
	case domain.AttributeTypeDate, domain.AttributeTypeDateTime:
		if av.DateValue == nil {
			return ""
		}
		return e.analyzer.AnalyzeDate(*av.DateValue)
	case domain.AttributeTypeDecimal:
		return e.analyzer.AnalyzeDecimal(av.Value)
	default:
		return e.analyzer.Analyze(av.Value)
	}
}

// addValue appends a single analyzed value to a multi-valued field,
// skipping empties.
func (e *LocaleFieldExpander) addValue(doc *Document, name, value string) {
	analyzed := e.analyzer.Analyze(value)
	if analyzed == "" {
		return
	}
	doc.AddFields(name, []string{analyzed})
}

// localeMatches reports whether an attribute value's locale string refers to
// the same locale as the given tag, tolerating "_" separators and casing
// differences ("en_US" matches en-US).
func localeMatches(locale string, tag language.Tag) bool {
	normalized := strings.ReplaceAll(locale, "_", "-")
	return strings.EqualFold(normalized, tag.String())
}
