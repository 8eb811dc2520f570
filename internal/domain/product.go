package domain

import "time"

// Brand represents a product brand.
type Brand struct {
	Code         string          `json:"code"`
	DisplayNames LocalizedString `json:"display_names,omitempty"`
}

// Product is the indexable snapshot of a catalog product. It is treated as
// immutable for the duration of a document build.
type Product struct {
	UID           int64               `json:"uid"`
	Code          string              `json:"code"`
	BrandCode     string              `json:"brand_code,omitempty"`
	MasterCatalog Catalog             `json:"master_catalog"`
	Categories    []Category          `json:"categories"`
	DisplayNames  LocalizedString     `json:"display_names,omitempty"`
	Attributes    []AttributeValue    `json:"attributes,omitempty"`
	SKUs          []ProductSku        `json:"skus,omitempty"`
	Bundle        bool                `json:"bundle"`
	Constituents  []BundleConstituent `json:"constituents,omitempty"`
	Hidden        bool                `json:"hidden"`
	StartDate     time.Time           `json:"start_date"`
	EndDate       *time.Time          `json:"end_date,omitempty"`
}

// SkuCodes returns the codes of all skus of the product.
func (p *Product) SkuCodes() []string {
	if len(p.SKUs) == 0 {
		return nil
	}
	codes := make([]string, 0, len(p.SKUs))
	for i := range p.SKUs {
		codes = append(codes, p.SKUs[i].Code)
	}
	return codes
}

// SkuOptionValue is one configured option on a sku (e.g. color=red), with
// localized display values for the option value.
type SkuOptionValue struct {
	OptionKey     string          `json:"option_key"`
	ValueKey      string          `json:"value_key"`
	DisplayValues LocalizedString `json:"display_values,omitempty"`
}

// ProductSku is the indexable snapshot of a single sku. Sku documents are
// built from the (product, sku) pair; the sku does not carry a back-pointer.
type ProductSku struct {
	UID          int64            `json:"uid"`
	Code         string           `json:"code"`
	OptionValues []SkuOptionValue `json:"option_values,omitempty"`
	Attributes   []AttributeValue `json:"attributes,omitempty"`
}

// BundleConstituent is one entry of a bundle's constituent list. The
// referenced product may itself be a bundle, in which case the flattener
// recurses into its constituents. A non-empty SkuCode pins the constituent
// to a single sku of the product.
type BundleConstituent struct {
	Product  *Product `json:"product"`
	SkuCode  string   `json:"sku_code,omitempty"`
	Quantity int      `json:"quantity"`
}
