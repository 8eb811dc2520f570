package engine

import (
	"context"

	"github.com/utafrali/catalog-indexer/internal/indexing"
)

// SearchEngine defines the interface for the full-text index the assembled
// documents are shipped to. Implementations may use Elasticsearch or
// in-memory storage.
type SearchEngine interface {
	// Index adds or replaces a single document in the index.
	Index(ctx context.Context, doc *indexing.Document) error

	// Delete removes a document from the index by its ID.
	Delete(ctx context.Context, id string) error

	// BulkIndex adds or replaces multiple documents in one request.
	BulkIndex(ctx context.Context, docs []*indexing.Document) error
}
