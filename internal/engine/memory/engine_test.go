package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/catalog-indexer/internal/indexing"
)

func TestEngine_IndexAndGet(t *testing.T) {
	e := New()

	doc := indexing.NewDocument(indexing.TypeProduct, "product-1")
	doc.SetField(indexing.FieldProductCode, "P1")

	require.NoError(t, e.Index(context.Background(), doc))

	got := e.Get("product-1")
	require.NotNil(t, got)
	assert.Equal(t, "P1", got.String(indexing.FieldProductCode))
	assert.Equal(t, 1, e.Len())
}

func TestEngine_IndexReplaces(t *testing.T) {
	e := New()

	first := indexing.NewDocument(indexing.TypeProduct, "product-1")
	first.SetField(indexing.FieldProductCode, "OLD")
	second := indexing.NewDocument(indexing.TypeProduct, "product-1")
	second.SetField(indexing.FieldProductCode, "NEW")

	require.NoError(t, e.Index(context.Background(), first))
	require.NoError(t, e.Index(context.Background(), second))

	assert.Equal(t, 1, e.Len())
	assert.Equal(t, "NEW", e.Get("product-1").String(indexing.FieldProductCode))
}

func TestEngine_Delete(t *testing.T) {
	e := New()

	doc := indexing.NewDocument(indexing.TypeProduct, "product-1")
	require.NoError(t, e.Index(context.Background(), doc))
	require.NoError(t, e.Delete(context.Background(), "product-1"))

	assert.Nil(t, e.Get("product-1"))
	assert.Equal(t, 0, e.Len())

	// Deleting an absent document is not an error.
	assert.NoError(t, e.Delete(context.Background(), "product-1"))
}

func TestEngine_BulkIndex(t *testing.T) {
	e := New()

	docs := []*indexing.Document{
		indexing.NewDocument(indexing.TypeProduct, "product-1"),
		indexing.NewDocument(indexing.TypeSku, "sku-2"),
	}
	require.NoError(t, e.BulkIndex(context.Background(), docs))

	assert.Equal(t, 2, e.Len())
	assert.NotNil(t, e.Get("product-1"))
	assert.NotNil(t, e.Get("sku-2"))
}
