package indexing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetField_SkipsEmptyValues(t *testing.T) {
	doc := NewDocument(TypeProduct, "product-1")

	doc.SetField("color", "")

	assert.False(t, doc.HasField("color"))
}

func TestSetField_Overwrites(t *testing.T) {
	doc := NewDocument(TypeProduct, "product-1")

	doc.SetField("color", "red")
	doc.SetField("color", "blue")

	assert.Equal(t, "blue", doc.String("color"))
}

func TestSetField_EmptyDoesNotClearExisting(t *testing.T) {
	doc := NewDocument(TypeProduct, "product-1")

	doc.SetField("color", "red")
	doc.SetField("color", "")

	assert.Equal(t, "red", doc.String("color"))
}

func TestAddFields_DropsEmptyValues(t *testing.T) {
	doc := NewDocument(TypeProduct, "product-1")

	doc.AddFields("codes", []string{"", "a", "", "b"})

	assert.Equal(t, []string{"a", "b"}, doc.Strings("codes"))
}

func TestAddFields_AllEmptyLeavesFieldAbsent(t *testing.T) {
	doc := NewDocument(TypeProduct, "product-1")

	doc.AddFields("codes", []string{"", ""})
	doc.AddFields("codes", nil)

	assert.False(t, doc.HasField("codes"))
}

func TestAddFields_PromotesSingleValueToList(t *testing.T) {
	doc := NewDocument(TypeProduct, "product-1")

	doc.SetField("codes", "a")
	doc.AddFields("codes", []string{"b"})

	assert.Equal(t, []string{"a", "b"}, doc.Strings("codes"))
}

func TestAddFields_KeepsDuplicates(t *testing.T) {
	doc := NewDocument(TypeProduct, "product-1")

	doc.AddFields("codes", []string{"a", "a"})
	doc.AddFields("codes", []string{"a"})

	assert.Equal(t, []string{"a", "a", "a"}, doc.Strings("codes"))
}

func TestPrependSortable_ConcatenatesInFront(t *testing.T) {
	doc := NewDocument(TypeProduct, "product-1")

	doc.PrependSortable("sort_name", "beta")
	doc.PrependSortable("sort_name", "alpha")

	assert.Equal(t, "alphabeta", doc.String("sort_name"))
}

func TestPrependSortable_SkipsEmpty(t *testing.T) {
	doc := NewDocument(TypeProduct, "product-1")

	doc.PrependSortable("sort_name", "")
	assert.False(t, doc.HasField("sort_name"))

	doc.PrependSortable("sort_name", "alpha")
	doc.PrependSortable("sort_name", "")
	assert.Equal(t, "alpha", doc.String("sort_name"))
}

func TestDocument_Accessors(t *testing.T) {
	doc := NewDocument(TypeSku, "sku-42")

	require.Equal(t, "sku-42", doc.ID())
	require.Equal(t, TypeSku, doc.EntityType())
	assert.Equal(t, TypeSku, doc.String(FieldEntityType))

	doc.SetField("single", "x")
	doc.AddFields("multi", []string{"a", "b"})

	assert.Equal(t, []string{"x"}, doc.Strings("single"))
	assert.Equal(t, "", doc.String("multi"))
	assert.Nil(t, doc.Strings("absent"))
	assert.Equal(t, 3, doc.Len())
	assert.ElementsMatch(t, []string{FieldEntityType, "single", "multi"}, doc.FieldNames())
}
