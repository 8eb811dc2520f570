// Package pipeline drives indexing passes: it builds the per-pass caches,
// fans entities out to a bounded worker pool, hands each one to the
// assembly engine, and forwards finished documents to the search engine.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/engine"
	"github.com/utafrali/catalog-indexer/internal/indexing"
	"github.com/utafrali/catalog-indexer/internal/lookup"
)

// defaultWorkers is the pool size used when the configured value is not positive.
const defaultWorkers = 4

// SkuRef pairs a sku with its parent product for sku document builds.
type SkuRef struct {
	Product *domain.Product
	Sku     *domain.ProductSku
}

// Entity wraps one snapshot of any indexable entity type. Exactly one
// field is non-nil.
type Entity struct {
	Product              *domain.Product
	Sku                  *SkuRef
	Category             *domain.Category
	Rule                 *domain.Rule
	StaffUser            *domain.StaffUser
	Customer             *domain.Customer
	ShippingServiceLevel *domain.ShippingServiceLevel
}

// Type returns the entity type identifier, or "" for an empty entity.
func (e Entity) Type() string {
	switch {
	case e.Product != nil:
		return indexing.TypeProduct
	case e.Sku != nil:
		return indexing.TypeSku
	case e.Category != nil:
		return indexing.TypeCategory
	case e.Rule != nil:
		return indexing.TypeRule
	case e.StaffUser != nil:
		return indexing.TypeStaffUser
	case e.Customer != nil:
		return indexing.TypeCustomer
	case e.ShippingServiceLevel != nil:
		return indexing.TypeShippingServiceLevel
	default:
		return ""
	}
}

// Result summarizes one pass. DocsIn and DocsOut both count every entity
// the pass consumed; Failed carries the failure signal.
type Result struct {
	DocsIn   int64         `json:"docs_in"`
	DocsOut  int64         `json:"docs_out"`
	Failed   int64         `json:"failed"`
	Duration time.Duration `json:"duration_ns"`
}

// Pipeline owns the assembly engine and the sink for indexing passes.
// A single pipeline serves the whole process; each pass gets fresh caches.
type Pipeline struct {
	assembler   *indexing.Assembler
	sink        engine.SearchEngine
	stores      lookup.StoreLister
	assignments lookup.PriceListAssignmentLister
	workers     int
	logger      *slog.Logger
}

// New creates a pipeline over the given assembler and sink.
func New(
	assembler *indexing.Assembler,
	sink engine.SearchEngine,
	stores lookup.StoreLister,
	assignments lookup.PriceListAssignmentLister,
	workers int,
	logger *slog.Logger,
) *Pipeline {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Pipeline{
		assembler:   assembler,
		sink:        sink,
		stores:      stores,
		assignments: assignments,
		workers:     workers,
		logger:      logger,
	}
}

// NewPass builds the per-pass caches (store list, price list assignments by
// store). The returned pass is read-only and safe for concurrent builds.
func (p *Pipeline) NewPass(ctx context.Context) (*indexing.Pass, error) {
	return indexing.NewPass(ctx, p.stores, p.assignments)
}

// Run processes every entity from the channel in one pass, using the
// worker pool. One entity failing is logged and counted but does not abort
// the pass; documents of other entities are unaffected since no mutable
// state is shared between builds. Run returns once the channel is drained
// or the context is canceled.
func (p *Pipeline) Run(ctx context.Context, entities <-chan Entity) (*Result, error) {
	pass, err := p.NewPass(ctx)
	if err != nil {
		return nil, fmt.Errorf("start indexing pass: %w", err)
	}

	start := time.Now()
	var docsIn, docsOut, failed int64

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case entity, ok := <-entities:
					if !ok {
						return
					}
					atomic.AddInt64(&docsIn, 1)
					err := p.ProcessOne(ctx, pass, entity)
					atomic.AddInt64(&docsOut, 1)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						p.logger.ErrorContext(ctx, "document build failed",
							slog.String("entity_type", entity.Type()),
							slog.String("error", err.Error()),
						)
					}
				}
			}
		}()
	}
	wg.Wait()

	result := &Result{
		DocsIn:   atomic.LoadInt64(&docsIn),
		DocsOut:  atomic.LoadInt64(&docsOut),
		Failed:   atomic.LoadInt64(&failed),
		Duration: time.Since(start),
	}

	p.logger.InfoContext(ctx, "indexing pass finished",
		slog.Int64("docs_in", result.DocsIn),
		slog.Int64("docs_out", result.DocsOut),
		slog.Int64("failed", result.Failed),
		slog.Duration("duration", result.Duration),
	)

	return result, ctx.Err()
}

// ProcessOne assembles one entity's document and forwards it to the sink.
// An entity that yields no document (nil snapshot, blank customer shared
// ID) is counted but produces nothing downstream.
func (p *Pipeline) ProcessOne(ctx context.Context, pass *indexing.Pass, entity Entity) error {
	entityType := entity.Type()
	if entityType == "" {
		return nil
	}

	// The in/out counters move in lockstep, once per entity handed to the
	// pipeline. Failures show up in buildFailures, not as a gap between the
	// two.
	documentsIn.WithLabelValues(entityType).Inc()
	documentsOut.WithLabelValues(entityType).Inc()

	timer := observeBuildDuration(entityType)
	doc, err := p.assemble(ctx, pass, entity)
	timer()
	if err != nil {
		buildFailures.WithLabelValues(entityType).Inc()
		return err
	}
	if doc == nil {
		return nil
	}

	if err := p.sink.Index(ctx, doc); err != nil {
		return fmt.Errorf("forward document %q: %w", doc.ID(), err)
	}
	return nil
}

// assemble dispatches to the entity-specific assembly strategy.
func (p *Pipeline) assemble(ctx context.Context, pass *indexing.Pass, entity Entity) (*indexing.Document, error) {
	switch {
	case entity.Product != nil:
		return p.assembler.AssembleProduct(ctx, pass, entity.Product)
	case entity.Sku != nil:
		return p.assembler.AssembleSku(ctx, pass, entity.Sku.Product, entity.Sku.Sku)
	case entity.Category != nil:
		return p.assembler.AssembleCategory(ctx, pass, entity.Category)
	case entity.Rule != nil:
		return p.assembler.AssembleRule(ctx, entity.Rule)
	case entity.StaffUser != nil:
		return p.assembler.AssembleStaffUser(ctx, entity.StaffUser)
	case entity.Customer != nil:
		return p.assembler.AssembleCustomer(ctx, entity.Customer)
	case entity.ShippingServiceLevel != nil:
		return p.assembler.AssembleShippingServiceLevel(ctx, entity.ShippingServiceLevel)
	default:
		return nil, nil
	}
}

// observeBuildDuration starts a build-duration observation and returns the stop
// function.
func observeBuildDuration(entityType string) func() {
	start := time.Now()
	return func() {
		buildDuration.WithLabelValues(entityType).Observe(time.Since(start).Seconds())
	}
}
