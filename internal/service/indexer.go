package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/catalog-indexer/internal/engine"
	"github.com/utafrali/catalog-indexer/internal/indexing"
	"github.com/utafrali/catalog-indexer/internal/pipeline"
	apperrors "github.com/utafrali/catalog-indexer/pkg/errors"
	pkgkafka "github.com/utafrali/catalog-indexer/pkg/kafka"
)

// ErrReindexRunning is returned when a full reindex is requested while one
// is already in progress. It maps to 409 on the HTTP surface.
var ErrReindexRunning error = apperrors.Conflict("a reindex pass is already running")

// streamBuffer is the channel depth between the entity source and the
// pipeline workers.
const streamBuffer = 64

// EntitySource streams every indexable entity for a full reindex pass.
// Implementations send entities on the channel and return once done; the
// service owns closing the channel.
type EntitySource interface {
	Stream(ctx context.Context, out chan<- pipeline.Entity) error
}

// EventPublisher publishes indexing lifecycle events to the message bus.
// pkg/kafka's Producer satisfies it; a nil publisher disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// eventSource identifies this service in published event envelopes.
const eventSource = "catalog-indexer"

// topicReindexCompleted carries the summary event emitted after each full
// reindex pass.
var topicReindexCompleted = pkgkafka.Topic("index", "reindexed")

// reindexCompleted is the payload of a reindex completion event.
type reindexCompleted struct {
	RunID      string    `json:"run_id"`
	DocsIn     int64     `json:"docs_in"`
	DocsOut    int64     `json:"docs_out"`
	Failed     int64     `json:"failed"`
	DurationMS int64     `json:"duration_ms"`
	FinishedAt time.Time `json:"finished_at"`
}

// IndexerService orchestrates full reindex passes and single-entity
// updates over the document pipeline.
type IndexerService struct {
	pipeline *pipeline.Pipeline
	sink     engine.SearchEngine
	source   EntitySource
	events   EventPublisher
	logger   *slog.Logger

	mu         sync.Mutex
	running    bool
	lastResult *pipeline.Result
	lastRun    time.Time
}

// NewIndexerService creates the indexer service. events may be nil when no
// message bus is available (tests, development without Kafka).
func NewIndexerService(p *pipeline.Pipeline, sink engine.SearchEngine, source EntitySource, events EventPublisher, logger *slog.Logger) *IndexerService {
	return &IndexerService{
		pipeline: p,
		sink:     sink,
		source:   source,
		events:   events,
		logger:   logger,
	}
}

// Reindex runs one full indexing pass over the entity source. Products fan
// out into one additional sku entity per sku. Only one pass runs at a
// time; a concurrent request gets ErrReindexRunning.
func (s *IndexerService) Reindex(ctx context.Context) (*pipeline.Result, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrReindexRunning
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	entities := make(chan pipeline.Entity, streamBuffer)
	streamErr := make(chan error, 1)
	go func() {
		defer close(entities)
		streamErr <- s.source.Stream(ctx, entities)
	}()

	result, err := s.pipeline.Run(ctx, expandSkus(ctx, entities))
	if err != nil {
		return nil, fmt.Errorf("reindex: %w", err)
	}
	if serr := <-streamErr; serr != nil {
		return result, fmt.Errorf("reindex: entity source: %w", serr)
	}

	finishedAt := time.Now().UTC()

	s.mu.Lock()
	s.lastResult = result
	s.lastRun = finishedAt
	s.mu.Unlock()

	s.publishReindexCompleted(ctx, result, finishedAt)

	return result, nil
}

// publishReindexCompleted emits the pass summary on the message bus. A
// publish failure is logged but never fails the pass; the index is already
// up to date at this point.
func (s *IndexerService) publishReindexCompleted(ctx context.Context, result *pipeline.Result, finishedAt time.Time) {
	if s.events == nil {
		return
	}

	payload := reindexCompleted{
		RunID:      uuid.New().String(),
		DocsIn:     result.DocsIn,
		DocsOut:    result.DocsOut,
		Failed:     result.Failed,
		DurationMS: result.Duration.Milliseconds(),
		FinishedAt: finishedAt,
	}

	event, err := pkgkafka.NewEvent("index.reindexed", payload.RunID, "index", eventSource, payload)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to build reindex completion event",
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.events.Publish(ctx, topicReindexCompleted, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish reindex completion event",
			slog.String("topic", topicReindexCompleted),
			slog.String("run_id", payload.RunID),
			slog.String("error", err.Error()),
		)
	}
}

// IndexEntity rebuilds and forwards the documents for one entity. Product
// entities also rebuild one document per sku. The per-pass caches are
// built fresh for the call and discarded afterwards.
func (s *IndexerService) IndexEntity(ctx context.Context, entity pipeline.Entity) error {
	pass, err := s.pipeline.NewPass(ctx)
	if err != nil {
		return fmt.Errorf("index entity: %w", err)
	}

	if err := s.pipeline.ProcessOne(ctx, pass, entity); err != nil {
		return fmt.Errorf("index entity: %w", err)
	}

	if p := entity.Product; p != nil {
		for i := range p.SKUs {
			skuEntity := pipeline.Entity{Sku: &pipeline.SkuRef{Product: p, Sku: &p.SKUs[i]}}
			if err := s.pipeline.ProcessOne(ctx, pass, skuEntity); err != nil {
				return fmt.Errorf("index sku %q: %w", p.SKUs[i].Code, err)
			}
		}
	}

	return nil
}

// DeleteEntity removes an entity's document from the index.
func (s *IndexerService) DeleteEntity(ctx context.Context, entityType string, uid int64) error {
	id := indexing.DocumentID(entityType, uid)
	if err := s.sink.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document %q: %w", id, err)
	}
	s.logger.InfoContext(ctx, "document deleted from index",
		slog.String("document_id", id),
	)
	return nil
}

// Status describes the reindex state for the HTTP surface.
type Status struct {
	Running    bool             `json:"running"`
	LastRun    *time.Time       `json:"last_run,omitempty"`
	LastResult *pipeline.Result `json:"last_result,omitempty"`
}

// Status reports whether a pass is running and the outcome of the last one.
func (s *IndexerService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{Running: s.running}
	if !s.lastRun.IsZero() {
		t := s.lastRun
		status.LastRun = &t
	}
	status.LastResult = s.lastResult
	return status
}

// expandSkus forwards every entity and, for products, also emits one sku
// entity per sku so sku documents ride the same pass.
func expandSkus(ctx context.Context, in <-chan pipeline.Entity) <-chan pipeline.Entity {
	out := make(chan pipeline.Entity, streamBuffer)
	go func() {
		defer close(out)
		for entity := range in {
			if !send(ctx, out, entity) {
				return
			}
			p := entity.Product
			if p == nil {
				continue
			}
			for i := range p.SKUs {
				skuEntity := pipeline.Entity{Sku: &pipeline.SkuRef{Product: p, Sku: &p.SKUs[i]}}
				if !send(ctx, out, skuEntity) {
					return
				}
			}
		}
	}()
	return out
}

func send(ctx context.Context, out chan<- pipeline.Entity, entity pipeline.Entity) bool {
	select {
	case out <- entity:
		return true
	case <-ctx.Done():
		return false
	}
}
