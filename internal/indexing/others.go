package indexing

import (
	"context"
	"strconv"

	"github.com/utafrali/catalog-indexer/internal/domain"
)

// AssembleRule builds the index document for a promotion rule.
func (a *Assembler) AssembleRule(_ context.Context, r *domain.Rule) (*Document, error) {
	if r == nil {
		return nil, nil
	}

	doc := NewDocument(TypeRule, DocumentID(TypeRule, r.UID))
	doc.SetField(FieldObjectUID, formatUID(r.UID))
	doc.SetField(FieldRuleName, a.analyzer.Analyze(r.Name))
	doc.SetField(FieldStoreCode, r.StoreCode)
	doc.SetField(FieldCatalogCode, r.CatalogCode)
	doc.SetField(FieldStatus, strconv.FormatBool(r.Enabled))
	if r.StartDate != nil {
		doc.SetField(FieldStartDate, a.analyzer.AnalyzeDate(*r.StartDate))
	}
	if r.EndDate != nil {
		doc.SetField(FieldEndDate, a.analyzer.AnalyzeDate(*r.EndDate))
	}
	return doc, nil
}

// AssembleStaffUser builds the index document for a back-office user.
func (a *Assembler) AssembleStaffUser(_ context.Context, u *domain.StaffUser) (*Document, error) {
	if u == nil {
		return nil, nil
	}

	doc := NewDocument(TypeStaffUser, DocumentID(TypeStaffUser, u.UID))
	doc.SetField(FieldObjectUID, formatUID(u.UID))
	doc.SetField(FieldUserName, a.analyzer.Analyze(u.UserName))
	doc.SetField(FieldEmail, a.analyzer.Analyze(u.Email))
	doc.SetField(FieldFirstName, a.analyzer.Analyze(u.FirstName))
	doc.SetField(FieldLastName, a.analyzer.Analyze(u.LastName))
	doc.SetField(FieldStatus, u.Status)
	doc.SetField(FieldAllCatalogsAccess, strconv.FormatBool(u.AllCatalogs))
	doc.SetField(FieldAllStoresAccess, strconv.FormatBool(u.AllStores))
	doc.AddFields(FieldCatalogCode, u.CatalogCodes)
	doc.AddFields(FieldStoreCode, u.StoreCodes)
	return doc, nil
}

// AssembleCustomer builds the index document for a customer. Customers
// without a shared identifier are anonymous sessions and are skipped
// without error.
func (a *Assembler) AssembleCustomer(_ context.Context, c *domain.Customer) (*Document, error) {
	if c == nil || c.SharedID == "" {
		return nil, nil
	}

	doc := NewDocument(TypeCustomer, DocumentID(TypeCustomer, c.UID))
	doc.SetField(FieldObjectUID, formatUID(c.UID))
	doc.SetField(FieldSharedID, c.SharedID)
	doc.SetField(FieldUserID, c.UserID)
	doc.SetField(FieldEmail, a.analyzer.Analyze(c.Email))
	doc.SetField(FieldFirstName, a.analyzer.Analyze(c.FirstName))
	doc.SetField(FieldLastName, a.analyzer.Analyze(c.LastName))
	doc.SetField(FieldPhoneNumber, a.analyzer.Analyze(c.PhoneNumber))
	doc.SetField(FieldStoreCode, c.StoreCode)
	if c.CreatedAt != nil {
		doc.SetField(FieldCreateTime, a.analyzer.AnalyzeDate(*c.CreatedAt))
	}

	// The preferred address is optional; absent means no address fields.
	if addr := c.PreferredAddress; addr != nil {
		doc.SetField(FieldZipPostalCode, a.analyzer.Analyze(addr.ZipCode))
		doc.AddFields(FieldPreferredAddress, addressLines(addr, a.analyzer))
	}

	return doc, nil
}

// AssembleShippingServiceLevel builds the index document for a shipping
// service level.
func (a *Assembler) AssembleShippingServiceLevel(_ context.Context, s *domain.ShippingServiceLevel) (*Document, error) {
	if s == nil {
		return nil, nil
	}

	doc := NewDocument(TypeShippingServiceLevel, DocumentID(TypeShippingServiceLevel, s.UID))
	doc.SetField(FieldObjectUID, formatUID(s.UID))
	doc.SetField(FieldCarrierCode, s.CarrierCode)
	doc.SetField(FieldStatus, strconv.FormatBool(s.Enabled))
	doc.AddFields(FieldStoreCode, s.StoreCodes)
	a.locales.ExpandLocalizedNames(doc, FieldDisplayName, s.DisplayNames)
	return doc, nil
}

// addressLines flattens the non-empty parts of an address.
func addressLines(addr *domain.Address, analyzer Analyzer) []string {
	parts := []string{addr.Street, addr.City, addr.SubCountry, addr.Country, addr.ZipCode}
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := analyzer.Analyze(part); v != "" {
			lines = append(lines, v)
		}
	}
	return lines
}
