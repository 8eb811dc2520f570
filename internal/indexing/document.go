// Package indexing implements the catalog search-document assembly engine.
// It transforms entity snapshots (products, skus, categories, ...) into
// flattened, locale- and store-scoped documents for the full-text index.
package indexing

// Entity type identifiers carried on every document.
const (
	TypeProduct              = "product"
	TypeSku                  = "sku"
	TypeCategory             = "category"
	TypeRule                 = "rule"
	TypeStaffUser            = "staff_user"
	TypeCustomer             = "customer"
	TypeShippingServiceLevel = "shipping_service_level"
)

// Document is one assembled index document: a mapping from field name to a
// string or a list of strings. A field is never present with an empty value;
// omission is how absent data is represented.
type Document struct {
	id         string
	entityType string
	fields     map[string]any
}

// NewDocument creates an empty document for the given entity type and ID.
func NewDocument(entityType, id string) *Document {
	return &Document{
		id:         id,
		entityType: entityType,
		fields:     map[string]any{FieldEntityType: entityType},
	}
}

// ID returns the document identifier.
func (d *Document) ID() string {
	return d.id
}

// EntityType returns the entity type the document was built from.
func (d *Document) EntityType() string {
	return d.entityType
}

// Field returns the raw value of a field (string or []string), or nil.
func (d *Document) Field(name string) any {
	return d.fields[name]
}

// HasField reports whether the field is present.
func (d *Document) HasField(name string) bool {
	_, ok := d.fields[name]
	return ok
}

// String returns the field as a single string, or "" when it is absent or
// multi-valued.
func (d *Document) String(name string) string {
	if v, ok := d.fields[name].(string); ok {
		return v
	}
	return ""
}

// Strings returns the field as a list. A single value yields a one-element
// list; an absent field yields nil.
func (d *Document) Strings(name string) []string {
	switch v := d.fields[name].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	default:
		return nil
	}
}

// Fields returns the underlying field map. The engine serializes this map
// directly; callers must not mutate it after handing the document downstream.
func (d *Document) Fields() map[string]any {
	return d.fields
}

// FieldNames returns the names of all present fields.
func (d *Document) FieldNames() []string {
	names := make([]string, 0, len(d.fields))
	for name := range d.fields {
		names = append(names, name)
	}
	return names
}

// Len returns the number of fields present.
func (d *Document) Len() int {
	return len(d.fields)
}
