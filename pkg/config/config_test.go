package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// indexerEnv mirrors the shape of the indexer's real config: scalar knobs,
// a duration, and a slice parsed from a comma-separated variable.
type indexerEnv struct {
	HTTPPort    int           `env:"LOADER_HTTP_PORT" envDefault:"8020"`
	Engine      string        `env:"LOADER_ENGINE" envDefault:"elasticsearch"`
	Brokers     []string      `env:"LOADER_BROKERS" envDefault:"localhost:9092"`
	SnapshotTTL time.Duration `env:"LOADER_SNAPSHOT_TTL" envDefault:"5m"`
	Verbose     bool          `env:"LOADER_VERBOSE" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg indexerEnv
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8020, cfg.HTTPPort)
	assert.Equal(t, "elasticsearch", cfg.Engine)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotTTL)
	assert.False(t, cfg.Verbose)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LOADER_HTTP_PORT", "9000")
	t.Setenv("LOADER_ENGINE", "memory")
	t.Setenv("LOADER_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("LOADER_SNAPSHOT_TTL", "30s")
	t.Setenv("LOADER_VERBOSE", "true")

	var cfg indexerEnv
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.Engine)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	assert.Equal(t, 30*time.Second, cfg.SnapshotTTL)
	assert.True(t, cfg.Verbose)
}

func TestLoad_RequiredField(t *testing.T) {
	var cfg struct {
		Token string `env:"LOADER_ADMIN_TOKEN,required"`
	}

	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")

	t.Setenv("LOADER_ADMIN_TOKEN", "s3cret")
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "s3cret", cfg.Token)
}

func TestLoad_UnparseableValue(t *testing.T) {
	t.Setenv("LOADER_HTTP_PORT", "eight-thousand")

	var cfg indexerEnv
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
