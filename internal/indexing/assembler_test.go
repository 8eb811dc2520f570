package indexing

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/lookup/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture wires the in-memory lookups into an assembler plus a pass over two
// catalogs: NORTH (en-US, fr-FR) fully available and SOUTH (de-DE, en-US)
// blocked at its root category.
type fixture struct {
	assembler *Assembler
	pass      *Pass
	prices    *memory.PriceStore
	north     domain.Catalog
	south     domain.Catalog
	nLeaf     domain.Category
	sLeaf     domain.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	north := domain.Catalog{
		UID:              1,
		Code:             "NORTH",
		DefaultLocale:    language.MustParse("en-US"),
		SupportedLocales: []language.Tag{language.MustParse("en-US"), language.MustParse("fr-FR")},
	}
	south := domain.Catalog{
		UID:              2,
		Code:             "SOUTH",
		DefaultLocale:    language.MustParse("de-DE"),
		SupportedLocales: []language.Tag{language.MustParse("de-DE"), language.MustParse("en-US")},
	}

	nRoot := domain.Category{UID: 100, Code: "n-root", Catalog: north, Available: true}
	nLeaf := domain.Category{
		UID: 101, Code: "n-shoes", ParentUID: 100, Catalog: north, Available: true,
		DisplayNames: domain.LocalizedString{"en-US": "Shoes", "fr-FR": "Chaussures"},
	}
	sRoot := domain.Category{UID: 200, Code: "s-root", Catalog: south, Available: false}
	sLeaf := domain.Category{
		UID: 201, Code: "s-shoes", ParentUID: 200, Catalog: south, Available: true,
		DisplayNames: domain.LocalizedString{"de-DE": "Schuhe"},
	}

	categories := memory.NewCategoryLookup()
	categories.Add(nRoot, nLeaf, sRoot, sLeaf)

	brands := memory.NewBrandLookup()
	brands.Add(domain.Brand{Code: "acme", DisplayNames: domain.LocalizedString{"en-US": "Acme"}})

	prices := memory.NewPriceStore()
	prices.SetLowestPrice("SNEAKER", "pl-north", domain.Money{Amount: 4999, Currency: "USD"})

	stores := memory.NewStoreLister(
		domain.Store{Code: "north-web", CatalogCode: "NORTH", Currency: "USD", Enabled: true},
		domain.Store{Code: "south-web", CatalogCode: "SOUTH", Currency: "EUR", Enabled: true},
		domain.Store{Code: "closed", CatalogCode: "NORTH", Enabled: false},
	)
	assignments := memory.NewAssignmentLister()
	assignments.Add(
		domain.PriceListAssignment{GUID: "a-1", PriceListGUID: "pl-north", CatalogCode: "NORTH", Currency: "USD"},
		domain.PriceListAssignment{GUID: "a-2", PriceListGUID: "pl-south", CatalogCode: "SOUTH", Currency: "EUR"},
	)

	pass, err := NewPass(context.Background(), stores, assignments)
	require.NoError(t, err)

	return &fixture{
		assembler: NewAssembler(categories, brands, prices, prices, testLogger()),
		pass:      pass,
		prices:    prices,
		north:     north,
		south:     south,
		nLeaf:     nLeaf,
		sLeaf:     sLeaf,
	}
}

func (f *fixture) sneaker() *domain.Product {
	return &domain.Product{
		UID:           7,
		Code:          "SNEAKER",
		BrandCode:     "acme",
		MasterCatalog: f.north,
		Categories:    []domain.Category{f.nLeaf, f.sLeaf},
		DisplayNames:  domain.LocalizedString{"en-US": "Sneaker", "fr-FR": "Basket", "de-DE": "Turnschuh"},
		SKUs: []domain.ProductSku{
			{UID: 71, Code: "SNEAKER-41"},
			{UID: 72, Code: "SNEAKER-42"},
		},
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// requireNoEmptyFields asserts the core document invariant: a present field
// never holds an empty value.
func requireNoEmptyFields(t *testing.T, doc *Document) {
	t.Helper()
	for name, value := range doc.Fields() {
		switch v := value.(type) {
		case string:
			require.NotEmpty(t, v, "field %q", name)
		case []string:
			require.NotEmpty(t, v, "field %q", name)
			for _, item := range v {
				require.NotEmpty(t, item, "field %q", name)
			}
		default:
			t.Fatalf("field %q has unexpected type %T", name, value)
		}
	}
}

func TestAssembleProduct(t *testing.T) {
	f := newFixture(t)

	doc, err := f.assembler.AssembleProduct(context.Background(), f.pass, f.sneaker())
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "product-7", doc.ID())
	assert.Equal(t, TypeProduct, doc.String(FieldEntityType))
	assert.Equal(t, "7", doc.String(FieldObjectUID))
	assert.Equal(t, "SNEAKER", doc.String(FieldProductCode))
	assert.Equal(t, "NORTH", doc.String(FieldMasterCatalogCode))
	assert.Equal(t, "acme", doc.String(FieldBrandCode))
	assert.Equal(t, []string{"SNEAKER-41", "SNEAKER-42"}, doc.Strings(FieldSkuCode))
	assert.Equal(t, "2024-01-01T00:00:00Z", doc.String(FieldStartDate))

	// Both catalogs are listed; availability is carried per store.
	assert.Equal(t, []string{"NORTH", "SOUTH"}, doc.Strings(FieldCatalogCode))
	assert.Equal(t, []string{"n-root", "s-root"}, doc.Strings(FieldParentCategoryCodes))
	assert.Equal(t, []string{"n-shoes", "s-shoes"}, doc.Strings(FieldCategoryCode))
	assert.Equal(t, []string{"n-shoes"}, doc.Strings(CategoryListName("NORTH")))
	assert.Equal(t, []string{"s-shoes"}, doc.Strings(CategoryListName("SOUTH")))
	assert.Equal(t, "true", doc.String(DisplayableName("north-web")))
	assert.Equal(t, "false", doc.String(DisplayableName("south-web")))
	assert.False(t, doc.HasField(DisplayableName("closed")))

	// Price fields exist only where a lowest price resolved.
	assert.Equal(t, "49.99", doc.String(PriceName("NORTH", "pl-north")))
	assert.False(t, doc.HasField(PriceName("SOUTH", "pl-south")))

	// Locale expansion spans the union of both catalogs' locales.
	assert.Equal(t, "Sneaker", doc.String(FieldDisplayName))
	assert.Equal(t, "Turnschuh", doc.String("display_name_de_de"))
	assert.Equal(t, "Sneaker", doc.String("display_name_en_us"))
	assert.Equal(t, "Basket", doc.String("display_name_fr_fr"))
	assert.Equal(t, "Acme", doc.String(FieldBrandName))
	assert.Equal(t, "Sneaker", doc.String(SortableName(FieldDisplayName)))
	assert.Equal(t, "Shoes", doc.String(SortableName(FieldCategoryName)))

	requireNoEmptyFields(t, doc)
}

func TestAssembleProduct_HiddenIsNeverDisplayable(t *testing.T) {
	f := newFixture(t)

	p := f.sneaker()
	p.Hidden = true

	doc, err := f.assembler.AssembleProduct(context.Background(), f.pass, p)
	require.NoError(t, err)

	assert.Equal(t, "false", doc.String(DisplayableName("north-web")))
	assert.Equal(t, "false", doc.String(DisplayableName("south-web")))
}

func TestAssembleProduct_BuildIsDeterministic(t *testing.T) {
	f := newFixture(t)

	first, err := f.assembler.AssembleProduct(context.Background(), f.pass, f.sneaker())
	require.NoError(t, err)
	second, err := f.assembler.AssembleProduct(context.Background(), f.pass, f.sneaker())
	require.NoError(t, err)

	assert.Equal(t, first.Fields(), second.Fields())
}

func TestAssembleProduct_NoCategories(t *testing.T) {
	f := newFixture(t)

	p := f.sneaker()
	p.Categories = nil

	doc, err := f.assembler.AssembleProduct(context.Background(), f.pass, p)
	require.ErrorIs(t, err, ErrNoCategories)
	assert.Nil(t, doc)
}

func TestAssembleProduct_Nil(t *testing.T) {
	f := newFixture(t)

	doc, err := f.assembler.AssembleProduct(context.Background(), f.pass, nil)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestAssembleProduct_BundleConstituentCount(t *testing.T) {
	f := newFixture(t)

	p := f.sneaker()
	p.Bundle = true
	p.Constituents = []domain.BundleConstituent{
		{
			Product: &domain.Product{
				Code:          "SOCKS",
				MasterCatalog: f.north,
				DisplayNames:  domain.LocalizedString{"en-US": "Socks"},
				SKUs:          []domain.ProductSku{{UID: 90, Code: "SOCKS-M"}},
			},
			Quantity: 2,
		},
	}

	doc, err := f.assembler.AssembleProduct(context.Background(), f.pass, p)
	require.NoError(t, err)

	assert.Equal(t, "1", doc.String(FieldConstituentCount))
	assert.Contains(t, doc.Strings(FieldSkuCode), "SOCKS-M")
	assert.Contains(t, doc.Strings(FieldDisplayName), "Socks")
}

func TestAssembleSku(t *testing.T) {
	f := newFixture(t)

	p := f.sneaker()
	sku := &p.SKUs[0]
	sku.OptionValues = []domain.SkuOptionValue{
		{OptionKey: "size", ValueKey: "41", DisplayValues: domain.LocalizedString{"en-US": "41"}},
	}

	doc, err := f.assembler.AssembleSku(context.Background(), f.pass, p, sku)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "sku-71", doc.ID())
	assert.Equal(t, TypeSku, doc.String(FieldEntityType))
	assert.Equal(t, "71", doc.String(FieldObjectUID))
	assert.Equal(t, "SNEAKER-41", doc.String(FieldSkuCode))
	assert.Equal(t, "71", doc.String(FieldSkuResultUID))
	assert.Equal(t, "SNEAKER", doc.String(FieldProductCode))

	// Availability and prices resolve through the parent product.
	assert.Equal(t, "true", doc.String(DisplayableName("north-web")))
	assert.Equal(t, "49.99", doc.String(PriceName("NORTH", "pl-north")))

	assert.Equal(t, []string{"41"}, doc.Strings("sku_option_value_en_us"))
	assert.Equal(t, "Sneaker", doc.String(FieldDisplayName))

	requireNoEmptyFields(t, doc)
}

func TestAssembleSku_ToleratesMissingCategories(t *testing.T) {
	f := newFixture(t)

	p := f.sneaker()
	p.Categories = nil

	doc, err := f.assembler.AssembleSku(context.Background(), f.pass, p, &p.SKUs[0])
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "SNEAKER-41", doc.String(FieldSkuCode))
	assert.False(t, doc.HasField(FieldCatalogCode))
}

func TestAssembleSku_NilInputs(t *testing.T) {
	f := newFixture(t)

	doc, err := f.assembler.AssembleSku(context.Background(), f.pass, nil, &domain.ProductSku{})
	require.NoError(t, err)
	assert.Nil(t, doc)

	doc, err = f.assembler.AssembleSku(context.Background(), f.pass, f.sneaker(), nil)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestAssembleCategory(t *testing.T) {
	f := newFixture(t)

	c := f.nLeaf
	doc, err := f.assembler.AssembleCategory(context.Background(), f.pass, &c)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "category-101", doc.ID())
	assert.Equal(t, "n-shoes", doc.String(FieldCategoryCode))
	assert.Equal(t, "NORTH", doc.String(FieldCatalogCode))
	assert.Equal(t, []string{"n-root"}, doc.Strings(FieldParentCategoryCodes))
	assert.Equal(t, "true", doc.String(DisplayableName("north-web")))
	assert.False(t, doc.HasField(DisplayableName("south-web")))

	assert.Equal(t, "Shoes", doc.String(FieldDisplayName))
	assert.Equal(t, "Shoes", doc.String("display_name_en_us"))
	assert.Equal(t, "Chaussures", doc.String("display_name_fr_fr"))
	assert.Equal(t, "Shoes", doc.String(SortableName(FieldDisplayName)))

	requireNoEmptyFields(t, doc)
}

func TestAssembleCategory_BlockedAncestor(t *testing.T) {
	f := newFixture(t)

	c := f.sLeaf
	doc, err := f.assembler.AssembleCategory(context.Background(), f.pass, &c)
	require.NoError(t, err)

	assert.Equal(t, "false", doc.String(DisplayableName("south-web")))
}

func TestAssembleRule(t *testing.T) {
	f := newFixture(t)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	r := &domain.Rule{
		UID:       5,
		Code:      "SUMMER10",
		Name:      " Summer Sale ",
		StoreCode: "north-web",
		Enabled:   true,
		StartDate: &start,
	}

	doc, err := f.assembler.AssembleRule(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, "rule-5", doc.ID())
	assert.Equal(t, "Summer Sale", doc.String(FieldRuleName))
	assert.Equal(t, "north-web", doc.String(FieldStoreCode))
	assert.Equal(t, "true", doc.String(FieldStatus))
	assert.Equal(t, "2024-06-01T00:00:00Z", doc.String(FieldStartDate))
	assert.False(t, doc.HasField(FieldEndDate))

	requireNoEmptyFields(t, doc)
}

func TestAssembleStaffUser(t *testing.T) {
	f := newFixture(t)

	u := &domain.StaffUser{
		UID:          9,
		UserName:     "jdoe",
		Email:        "jdoe@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		Status:       "active",
		AllCatalogs:  false,
		AllStores:    true,
		CatalogCodes: []string{"NORTH"},
		StoreCodes:   []string{"north-web", "south-web"},
	}

	doc, err := f.assembler.AssembleStaffUser(context.Background(), u)
	require.NoError(t, err)

	assert.Equal(t, "staff_user-9", doc.ID())
	assert.Equal(t, "jdoe", doc.String(FieldUserName))
	assert.Equal(t, "false", doc.String(FieldAllCatalogsAccess))
	assert.Equal(t, "true", doc.String(FieldAllStoresAccess))
	assert.Equal(t, []string{"NORTH"}, doc.Strings(FieldCatalogCode))
	assert.Equal(t, []string{"north-web", "south-web"}, doc.Strings(FieldStoreCode))

	requireNoEmptyFields(t, doc)
}

func TestAssembleCustomer(t *testing.T) {
	f := newFixture(t)

	created := time.Date(2023, 11, 20, 8, 0, 0, 0, time.UTC)
	c := &domain.Customer{
		UID:         12,
		SharedID:    "cust-12",
		Email:       "sam@example.com",
		FirstName:   "Sam",
		LastName:    "Smith",
		PhoneNumber: "+1 555 0100",
		StoreCode:   "north-web",
		CreatedAt:   &created,
		PreferredAddress: &domain.Address{
			Street:  "1 Main St",
			City:    "Springfield",
			Country: "US",
			ZipCode: "12345",
		},
	}

	doc, err := f.assembler.AssembleCustomer(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "customer-12", doc.ID())
	assert.Equal(t, "cust-12", doc.String(FieldSharedID))
	assert.Equal(t, "2023-11-20T08:00:00Z", doc.String(FieldCreateTime))
	assert.Equal(t, "12345", doc.String(FieldZipPostalCode))
	assert.Equal(t, []string{"1 Main St", "Springfield", "US", "12345"}, doc.Strings(FieldPreferredAddress))

	requireNoEmptyFields(t, doc)
}

func TestAssembleCustomer_AnonymousSkipped(t *testing.T) {
	f := newFixture(t)

	doc, err := f.assembler.AssembleCustomer(context.Background(), &domain.Customer{UID: 13})
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestAssembleShippingServiceLevel(t *testing.T) {
	f := newFixture(t)

	s := &domain.ShippingServiceLevel{
		UID:         3,
		Code:        "express",
		CarrierCode: "ups",
		Enabled:     true,
		StoreCodes:  []string{"north-web"},
		DisplayNames: domain.LocalizedString{
			"en-US": "Express",
			"de-DE": "Express-Versand",
		},
	}

	doc, err := f.assembler.AssembleShippingServiceLevel(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, "shipping_service_level-3", doc.ID())
	assert.Equal(t, "ups", doc.String(FieldCarrierCode))
	assert.Equal(t, "true", doc.String(FieldStatus))
	assert.Equal(t, []string{"north-web"}, doc.Strings(FieldStoreCode))
	assert.Equal(t, "Express", doc.String("display_name_en_us"))
	assert.Equal(t, "Express-Versand", doc.String("display_name_de_de"))

	requireNoEmptyFields(t, doc)
}
