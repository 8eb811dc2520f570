// Package app wires the indexer's dependency graph and owns its lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	pkgkafka "github.com/utafrali/catalog-indexer/pkg/kafka"

	"github.com/utafrali/catalog-indexer/internal/config"
	"github.com/utafrali/catalog-indexer/internal/engine"
	esengine "github.com/utafrali/catalog-indexer/internal/engine/elasticsearch"
	"github.com/utafrali/catalog-indexer/internal/engine/memory"
	"github.com/utafrali/catalog-indexer/internal/event"
	handler "github.com/utafrali/catalog-indexer/internal/handler/http"
	"github.com/utafrali/catalog-indexer/internal/indexing"
	"github.com/utafrali/catalog-indexer/internal/pipeline"
	"github.com/utafrali/catalog-indexer/internal/service"
	"github.com/utafrali/catalog-indexer/internal/source/catalog"
	"github.com/utafrali/catalog-indexer/pkg/health"
)

// App wires together all dependencies and runs the indexer service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	producer   *pkgkafka.Producer
	consumers  []*pkgkafka.Consumer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize the search engine sink based on configuration.
	var sink engine.SearchEngine
	var esSink *esengine.Engine
	switch cfg.SearchEngine {
	case "elasticsearch":
		var err error
		esSink, err = esengine.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, logger)
		if err != nil {
			return nil, fmt.Errorf("init elasticsearch engine: %w", err)
		}
		sink = esSink
		logger.Info("elasticsearch sink initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	default:
		sink = memory.New()
		logger.Info("in-memory sink initialized")
	}

	// The catalog export source serves both the lookup interfaces and the
	// reindex entity stream.
	exportClient := catalog.NewClient(cfg.CatalogServiceURL, logger)
	source := catalog.NewSource(exportClient, cfg.SnapshotTTL, logger)

	// Kafka producer for indexing lifecycle events (reindex completion).
	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)

	// Build the assembly engine and the pipeline around it.
	assembler := indexing.NewAssembler(source, source, source, source, logger)
	pipe := pipeline.New(assembler, sink, source, source, cfg.IndexWorkers, logger)
	indexerService := service.NewIndexerService(pipe, sink, source, producer, logger)

	// Kafka consumers for catalog change events, one per topic, sharing
	// an idempotency guard.
	eventConsumer := event.NewConsumer(indexerService, logger)
	idempotencyStore := pkgkafka.NewMemoryIdempotencyStore(cfg.IdempotencyTTL)

	var consumers []*pkgkafka.Consumer
	for _, topic := range event.Topics() {
		consumerCfg := pkgkafka.ConsumerConfig{
			Brokers:   cfg.KafkaBrokers,
			GroupID:   cfg.KafkaGroupID,
			Topic:     topic,
			MinBytes:  1,
			MaxBytes:  10e6, // 10 MB
			EnableDLQ: true,
		}
		c := pkgkafka.NewConsumer(consumerCfg, pkgkafka.IdempotentHandler(idempotencyStore, eventConsumer.Handle, logger), logger)
		consumers = append(consumers, c)
	}
	logger.Info("kafka consumers initialized",
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.Int("topic_count", len(event.Topics())),
	)

	// Health checks.
	// Elasticsearch is critical (nothing can be indexed without it); Kafka
	// only degrades readiness since reindexing over HTTP still works.
	healthHandler := health.NewHandler()
	if esSink != nil {
		healthHandler.RegisterCritical("elasticsearch", esSink.Ping)
	}
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
	})

	// HTTP router.
	router := handler.NewRouter(indexerService, healthHandler, handler.RouterConfig{
		PprofCIDRs: cfg.PprofCIDRs,
		AdminToken: cfg.AdminToken,
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		producer:   producer,
		consumers:  consumers,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and Kafka consumers, blocking until the context
// is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	for _, c := range a.consumers {
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
