package memory

import (
	"context"
	"sync"

	"github.com/utafrali/catalog-indexer/internal/indexing"
)

// Engine is an in-memory implementation of the SearchEngine interface used
// by tests and the development profile. Thread-safe via sync.RWMutex.
type Engine struct {
	mu   sync.RWMutex
	docs map[string]*indexing.Document
}

// New creates a new in-memory engine.
func New() *Engine {
	return &Engine{docs: make(map[string]*indexing.Document)}
}

// Index adds or replaces a single document.
func (e *Engine) Index(_ context.Context, doc *indexing.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs[doc.ID()] = doc
	return nil
}

// Delete removes a document by its ID.
func (e *Engine) Delete(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.docs, id)
	return nil
}

// BulkIndex adds or replaces multiple documents.
func (e *Engine) BulkIndex(_ context.Context, docs []*indexing.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, doc := range docs {
		e.docs[doc.ID()] = doc
	}
	return nil
}

// Get returns the stored document with the given ID, or nil.
func (e *Engine) Get(id string) *indexing.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.docs[id]
}

// Len returns the number of stored documents.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.docs)
}
