package domain

import "time"

// AttributeType enumerates the value types an attribute can carry. The type
// decides how the indexer analyzes the value before writing it.
type AttributeType string

const (
	AttributeTypeShortText AttributeType = "short_text"
	AttributeTypeLongText  AttributeType = "long_text"
	AttributeTypeInteger   AttributeType = "integer"
	AttributeTypeDecimal   AttributeType = "decimal"
	AttributeTypeBoolean   AttributeType = "boolean"
	AttributeTypeDate      AttributeType = "date"
	AttributeTypeDateTime  AttributeType = "datetime"
)

// Attribute describes an attribute definition shared across entities.
type Attribute struct {
	Key             string        `json:"key"`
	Type            AttributeType `json:"type"`
	LocaleDependent bool          `json:"locale_dependent"`
	MultiValued     bool          `json:"multi_valued"`
}

// AttributeValue is one attribute value attached to a product or sku.
// Locale is empty for locale-independent attributes. DateValue is set only
// for date and datetime attributes; Values only for multi-valued ones.
type AttributeValue struct {
	Attribute Attribute  `json:"attribute"`
	Locale    string     `json:"locale,omitempty"`
	Value     string     `json:"value,omitempty"`
	DateValue *time.Time `json:"date_value,omitempty"`
	Values    []string   `json:"values,omitempty"`
}
