package domain

import "time"

// Rule is the indexable snapshot of a promotion rule.
type Rule struct {
	UID         int64      `json:"uid"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StoreCode   string     `json:"store_code,omitempty"`
	CatalogCode string     `json:"catalog_code,omitempty"`
	Enabled     bool       `json:"enabled"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// StaffUser is the indexable snapshot of a back-office user account.
type StaffUser struct {
	UID          int64    `json:"uid"`
	UserName     string   `json:"user_name"`
	Email        string   `json:"email,omitempty"`
	FirstName    string   `json:"first_name,omitempty"`
	LastName     string   `json:"last_name,omitempty"`
	Status       string   `json:"status"`
	AllCatalogs  bool     `json:"all_catalogs"`
	AllStores    bool     `json:"all_stores"`
	CatalogCodes []string `json:"catalog_codes,omitempty"`
	StoreCodes   []string `json:"store_codes,omitempty"`
}

// Address is a customer address snapshot used for index fields.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	SubCountry string `json:"sub_country,omitempty"`
	Country    string `json:"country,omitempty"`
	ZipCode    string `json:"zip_code,omitempty"`
}

// Customer is the indexable snapshot of a storefront customer. SharedID is
// the cross-store customer identifier; a customer without one is skipped by
// the assembler.
type Customer struct {
	UID              int64      `json:"uid"`
	SharedID         string     `json:"shared_id"`
	Email            string     `json:"email,omitempty"`
	UserID           string     `json:"user_id,omitempty"`
	FirstName        string     `json:"first_name,omitempty"`
	LastName         string     `json:"last_name,omitempty"`
	PhoneNumber      string     `json:"phone_number,omitempty"`
	StoreCode        string     `json:"store_code,omitempty"`
	PreferredAddress *Address   `json:"preferred_address,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

// ShippingServiceLevel is the indexable snapshot of a shipping service level.
type ShippingServiceLevel struct {
	UID          int64           `json:"uid"`
	Code         string          `json:"code"`
	CarrierCode  string          `json:"carrier_code,omitempty"`
	DisplayNames LocalizedString `json:"display_names,omitempty"`
	StoreCodes   []string        `json:"store_codes,omitempty"`
	Enabled      bool            `json:"enabled"`
}
