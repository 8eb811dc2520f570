package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/catalog-indexer/pkg/config"
)

// Config holds all configuration for the indexer service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"INDEXER_HTTP_PORT" envDefault:"8020"`

	// Elasticsearch
	ElasticsearchURL   string `env:"ELASTICSEARCH_URL" envDefault:"http://localhost:9200"`
	ElasticsearchIndex string `env:"ELASTICSEARCH_INDEX" envDefault:"catalog_documents"`

	// Search engine selection (elasticsearch or memory)
	SearchEngine string `env:"SEARCH_ENGINE" envDefault:"elasticsearch"`

	// Catalog export API used for reindex passes and lookup snapshots
	CatalogServiceURL string        `env:"CATALOG_SERVICE_URL" envDefault:"http://localhost:8080"`
	SnapshotTTL       time.Duration `env:"SNAPSHOT_TTL" envDefault:"5m"`

	// Indexing pipeline
	IndexWorkers int `env:"INDEX_WORKERS" envDefault:"4"`

	// Kafka
	KafkaBrokers   []string      `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaGroupID   string        `env:"KAFKA_GROUP_ID" envDefault:"catalog-indexer"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof access, comma-separated CIDRs. Empty disables pprof.
	PprofCIDRs []string `env:"PPROF_CIDRS" envSeparator:","`

	// Bearer token guarding the mutating admin endpoints. Empty leaves
	// them open (development only).
	AdminToken string `env:"INDEXER_ADMIN_TOKEN"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load indexer config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SearchEngine != "elasticsearch" && c.SearchEngine != "memory" {
		return fmt.Errorf("invalid search engine: %q", c.SearchEngine)
	}
	if c.IndexWorkers < 1 {
		return fmt.Errorf("invalid worker count: %d", c.IndexWorkers)
	}
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		return fmt.Errorf("invalid trace sample rate: %v", c.TraceSampleRate)
	}
	return nil
}
