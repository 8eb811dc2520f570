package indexing

import (
	"strings"

	"golang.org/x/text/language"
)

// Base field names. The full-text index declares dynamic field patterns
// against these names and their scoped variants, so they must stay stable.
const (
	FieldEntityType          = "entity_type"
	FieldObjectUID           = "object_uid"
	FieldProductCode         = "product_code"
	FieldSkuCode             = "sku_code"
	FieldSkuResultUID        = "sku_result_uid"
	FieldBrandCode           = "brand_code"
	FieldCatalogCode         = "catalog_code"
	FieldMasterCatalogCode   = "master_catalog_code"
	FieldCategoryCode        = "category_code"
	FieldParentCategoryCodes = "parent_category_codes"
	FieldProductCategory     = "product_category"
	FieldDisplayName         = "display_name"
	FieldBrandName           = "brand_name"
	FieldCategoryName        = "category_name"
	FieldSkuOptionValue      = "sku_option_value"
	FieldAttributePrefix     = "attr"
	FieldSortPrefix          = "sort"
	FieldPrice               = "price"
	FieldDisplayable         = "displayable"
	FieldConstituentCount    = "constituent_count"
	FieldStartDate           = "start_date"
	FieldEndDate             = "end_date"
	FieldStatus              = "status"
	FieldStoreCode           = "store_code"
	FieldCarrierCode         = "carrier_code"
	FieldRuleName            = "promotion_name"
	FieldUserName            = "user_name"
	FieldEmail               = "email"
	FieldUserID              = "user_id"
	FieldSharedID            = "shared_id"
	FieldFirstName           = "first_name"
	FieldLastName            = "last_name"
	FieldPhoneNumber         = "phone_number"
	FieldZipPostalCode       = "zip_postal_code"
	FieldPreferredAddress    = "preferred_address"
	FieldCreateTime          = "create_time"
	FieldAllCatalogsAccess   = "all_catalogs_access"
	FieldAllStoresAccess     = "all_stores_access"
)

// nameSeparator joins a base field name with its scoping qualifiers.
const nameSeparator = "_"

// ScopedName derives a scoped field name from a base name and qualifiers,
// e.g. ScopedName(FieldPrice, "CATALOG", "plGuid") -> "price_CATALOG_plGuid".
// Qualifiers are used verbatim: store, catalog, and price list identifiers
// are case-sensitive and the index schema depends on the exact spelling.
// Empty qualifiers are skipped.
func ScopedName(base string, qualifiers ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, q := range qualifiers {
		if q == "" {
			continue
		}
		b.WriteString(nameSeparator)
		b.WriteString(q)
	}
	return b.String()
}

// LocaleSuffix renders a locale tag as a field name qualifier: lowercased
// with underscores, e.g. "en-US" -> "en_us". The mapping is deterministic so
// that the index's per-locale dynamic field patterns line up.
func LocaleSuffix(tag language.Tag) string {
	return strings.ReplaceAll(strings.ToLower(tag.String()), "-", "_")
}

// LocaleName derives the locale-scoped variant of a base field name.
func LocaleName(base string, tag language.Tag) string {
	return ScopedName(base, LocaleSuffix(tag))
}

// SortableName derives the locale-agnostic sortable variant of a base field
// name, e.g. "display_name" -> "sort_display_name".
func SortableName(base string) string {
	return FieldSortPrefix + nameSeparator + base
}

// AttributeName derives the field name for an attribute key, optionally
// locale-scoped, e.g. ("fabric", en) -> "attr_fabric_en".
func AttributeName(key string, tag language.Tag, localeDependent bool) string {
	base := ScopedName(FieldAttributePrefix, key)
	if !localeDependent {
		return base
	}
	return LocaleName(base, tag)
}

// PriceName derives the price field name for a catalog and price list pair.
func PriceName(catalogCode, priceListGUID string) string {
	return ScopedName(FieldPrice, catalogCode, priceListGUID)
}

// DisplayableName derives the per-store displayability flag field name.
func DisplayableName(storeCode string) string {
	return ScopedName(FieldDisplayable, storeCode)
}

// CategoryListName derives the per-catalog category code list field name.
func CategoryListName(catalogCode string) string {
	return ScopedName(FieldProductCategory, catalogCode)
}
