package domain

import (
	"golang.org/x/text/language"
)

// Catalog represents a catalog an entity may be published in. Supported
// locales drive how many locale-scoped field variants the indexer emits.
type Catalog struct {
	UID              int64          `json:"uid"`
	Code             string         `json:"code"`
	DefaultLocale    language.Tag   `json:"default_locale"`
	SupportedLocales []language.Tag `json:"supported_locales"`
}

// Store represents a storefront selling from a single catalog.
type Store struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CatalogCode string `json:"catalog_code"`
	Currency    string `json:"currency"`
	Enabled     bool   `json:"enabled"`
}

// PriceListAssignment binds a price list to a catalog for a currency.
// Assignments are resolved per store and ordered by priority upstream.
type PriceListAssignment struct {
	GUID          string `json:"guid"`
	PriceListGUID string `json:"price_list_guid"`
	CatalogCode   string `json:"catalog_code"`
	Currency      string `json:"currency"`
	Priority      int    `json:"priority"`
}

// LocalizedString holds per-locale values keyed by BCP-47 tag string.
type LocalizedString map[string]string

// Get returns the value for the given locale, falling back to the base
// language (e.g. "en-US" -> "en") when no exact match exists.
func (l LocalizedString) Get(tag language.Tag) string {
	if l == nil {
		return ""
	}
	if v, ok := l[tag.String()]; ok {
		return v
	}
	base, _ := tag.Base()
	return l[base.String()]
}
