package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainft-labs/ainft-sync/internal/config"
)

func TestLoadAPIConfig_Defaults(t *testing.T) {
	t.Setenv("AINFT_SYNC_LEDGER_GATEWAY_URL", "https://ledger.example.com")
	t.Setenv("AINFT_SYNC_PROVIDER_BASE_URL", "https://compute.example.com")

	cfg, err := config.LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "CONVERSATION_EVENTS", cfg.NATS.StreamName)
	assert.Equal(t, 60*time.Second, cfg.Sync.InvokeTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Sync.RunTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Sync.RunPollInterval)
	assert.Equal(t, 2*time.Second, cfg.Sync.BalancePollInterval)
	assert.Equal(t, "https://ledger.example.com", cfg.Ledger.GatewayURL)
	assert.Equal(t, "https://compute.example.com", cfg.Provider.BaseURL)

	// Rate limiting stays disabled until a redis address is configured, but
	// the per-upstream defaults are present.
	assert.Empty(t, cfg.RateLimiter.RedisAddr)
	assert.Equal(t, "ainft:sync:limiter:", cfg.RateLimiter.RedisKeyPrefix)
	assert.True(t, cfg.RateLimiter.EnableLocalFallback)
	assert.Equal(t, 0.5, cfg.RateLimiter.LocalFallbackMultiplier)
	require.Contains(t, cfg.RateLimiter.Upstreams, "ledger")
	assert.Equal(t, 20, cfg.RateLimiter.Upstreams["ledger"].RequestsPerSecond)
	assert.Equal(t, 40, cfg.RateLimiter.Upstreams["ledger"].Burst)
	require.Contains(t, cfg.RateLimiter.Upstreams, "compute")
	assert.Equal(t, 10, cfg.RateLimiter.Upstreams["compute"].RequestsPerSecond)
}

func TestLoadAPIConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AINFT_SYNC_LEDGER_GATEWAY_URL", "https://ledger.example.com")
	t.Setenv("AINFT_SYNC_PROVIDER_BASE_URL", "https://compute.example.com")
	t.Setenv("AINFT_SYNC_SERVER_PORT", "9090")
	t.Setenv("AINFT_SYNC_DEBUG", "true")
	t.Setenv("AINFT_SYNC_SYNC_RUN_TIMEOUT", "5m")
	t.Setenv("AINFT_SYNC_RATE_LIMITER_REDIS_ADDR", "localhost:6379")

	cfg, err := config.LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Sync.RunTimeout)
	assert.Equal(t, "localhost:6379", cfg.RateLimiter.RedisAddr)
}

func TestLoadAPIConfig_MissingGatewayURL(t *testing.T) {
	t.Setenv("AINFT_SYNC_PROVIDER_BASE_URL", "https://compute.example.com")

	_, err := config.LoadAPIConfig("", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger.gateway_url")
}

func TestLoadAPIConfig_MissingProviderBaseURL(t *testing.T) {
	t.Setenv("AINFT_SYNC_LEDGER_GATEWAY_URL", "https://ledger.example.com")

	_, err := config.LoadAPIConfig("", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider.base_url")
}

func TestLoadSweeperConfig_Defaults(t *testing.T) {
	t.Setenv("AINFT_SYNC_DATABASE_HOST", "localhost")
	t.Setenv("AINFT_SYNC_DATABASE_DBNAME", "ainft_sync")
	t.Setenv("AINFT_SYNC_LEDGER_GATEWAY_URL", "https://ledger.example.com")

	cfg, err := config.LoadSweeperConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, 50, cfg.ReconciliationSweeper.BatchSize)
	assert.Equal(t, 15*time.Minute, cfg.ReconciliationSweeper.RecheckWait)
	assert.Equal(t, 10, cfg.ReconciliationSweeper.Worker.WorkerPoolSize)
}

func TestLoadSweeperConfig_MissingDatabaseHost(t *testing.T) {
	t.Setenv("AINFT_SYNC_DATABASE_DBNAME", "ainft_sync")
	t.Setenv("AINFT_SYNC_LEDGER_GATEWAY_URL", "https://ledger.example.com")

	_, err := config.LoadSweeperConfig("", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}

func TestDatabaseDSN(t *testing.T) {
	c := &config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "ainft_sync",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=ainft_sync sslmode=disable", c.DSN())
}
