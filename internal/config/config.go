package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// LedgerConfig holds ledger gateway configuration
type LedgerConfig struct {
	GatewayURL      string `mapstructure:"gateway_url"`
	OperatorAddress string `mapstructure:"operator_address"`
}

// ProviderConfig holds compute provider gateway configuration
type ProviderConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	UseSession     bool          `mapstructure:"use_session"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// SyncConfig holds synchronization engine configuration
type SyncConfig struct {
	InvokeTimeout       time.Duration `mapstructure:"invoke_timeout"`
	RunTimeout          time.Duration `mapstructure:"run_timeout"`
	RunPollInterval     time.Duration `mapstructure:"run_poll_interval"`
	BalanceTimeout      time.Duration `mapstructure:"balance_timeout"`
	BalancePollInterval time.Duration `mapstructure:"balance_poll_interval"`
	AllowlistedApps     []string      `mapstructure:"allowlisted_apps"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// RateLimitConfig holds the rate limit settings for a single upstream
type RateLimitConfig struct {
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxQueueTime      time.Duration `mapstructure:"max_queue_time"`
}

// RateLimiterConfig holds configuration for the distributed rate limiter.
// Rate limiting is disabled when redis_addr is empty.
type RateLimiterConfig struct {
	RedisAddr               string                     `mapstructure:"redis_addr"`
	RedisPassword           string                     `mapstructure:"redis_password"`
	RedisDB                 int                        `mapstructure:"redis_db"`
	RedisKeyPrefix          string                     `mapstructure:"redis_key_prefix"`
	MaxWorkers              int                        `mapstructure:"max_workers"`
	MaxQueueSize            int                        `mapstructure:"max_queue_size"`
	EnableLocalFallback     bool                       `mapstructure:"enable_local_fallback"`
	LocalFallbackMultiplier float64                    `mapstructure:"local_fallback_multiplier"`
	Upstreams               map[string]RateLimitConfig `mapstructure:"upstreams"`
}

// ReconciliationSweeperConfig holds configuration for the reconciliation sweeper
type ReconciliationSweeperConfig struct {
	Apps        []string      `mapstructure:"apps"`
	BatchSize   int           `mapstructure:"batch_size"`
	RecheckWait time.Duration `mapstructure:"recheck_wait"`
	Worker      WorkerConfig  `mapstructure:"worker"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Ledger      LedgerConfig      `mapstructure:"ledger"`
	Provider    ProviderConfig    `mapstructure:"provider"`
	Sync        SyncConfig        `mapstructure:"sync"`
	RateLimiter RateLimiterConfig `mapstructure:"rate_limiter"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig            `mapstructure:",squash"`
	Database              DatabaseConfig              `mapstructure:"database"`
	NATS                  NATSConfig                  `mapstructure:"nats"`
	Ledger                LedgerConfig                `mapstructure:"ledger"`
	Provider              ProviderConfig              `mapstructure:"provider"`
	RateLimiter           RateLimiterConfig           `mapstructure:"rate_limiter"`
	ReconciliationSweeper ReconciliationSweeperConfig `mapstructure:"reconciliation_sweeper"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "CONVERSATION_EVENTS")
	v.SetDefault("provider.use_session", false)
	v.SetDefault("provider.default_timeout", "60s")
	v.SetDefault("sync.invoke_timeout", "60s")
	v.SetDefault("sync.run_timeout", "2m")
	v.SetDefault("sync.run_poll_interval", "1500ms")
	v.SetDefault("sync.balance_timeout", "60s")
	v.SetDefault("sync.balance_poll_interval", "2s")
	setRateLimiterDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Ledger.GatewayURL == "" {
		return nil, errors.New("ledger.gateway_url is required")
	}
	if config.Provider.BaseURL == "" {
		return nil, errors.New("provider.base_url is required")
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "CONVERSATION_EVENTS")
	v.SetDefault("provider.use_session", false)
	v.SetDefault("provider.default_timeout", "60s")
	setRateLimiterDefaults(v)
	v.SetDefault("reconciliation_sweeper.batch_size", 50)
	v.SetDefault("reconciliation_sweeper.recheck_wait", "15m")
	v.SetDefault("reconciliation_sweeper.worker.pool_size", 10)
	v.SetDefault("reconciliation_sweeper.worker.queue_size", 100)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if cfg.Ledger.GatewayURL == "" {
		return nil, errors.New("ledger.gateway_url is required")
	}

	return &cfg, nil
}

// setRateLimiterDefaults sets defaults for the distributed rate limiter shared
// by every program that talks to the ledger gateway or the compute provider
func setRateLimiterDefaults(v *viper.Viper) {
	v.SetDefault("rate_limiter.redis_key_prefix", "ainft:sync:limiter:")
	v.SetDefault("rate_limiter.enable_local_fallback", true)
	v.SetDefault("rate_limiter.local_fallback_multiplier", 0.5)
	v.SetDefault("rate_limiter.upstreams.ledger.requests_per_second", 20)
	v.SetDefault("rate_limiter.upstreams.ledger.burst", 40)
	v.SetDefault("rate_limiter.upstreams.ledger.max_queue_time", "30s")
	v.SetDefault("rate_limiter.upstreams.compute.requests_per_second", 10)
	v.SetDefault("rate_limiter.upstreams.compute.burst", 20)
	v.SetDefault("rate_limiter.upstreams.compute.max_queue_time", "1m")
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("AINFT_SYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ledger
		"ledger.gateway_url",
		"ledger.operator_address",
		// Provider
		"provider.base_url",
		"provider.api_key",
		"provider.use_session",
		"provider.default_timeout",
		// Sync
		"sync.invoke_timeout",
		"sync.run_timeout",
		"sync.run_poll_interval",
		"sync.balance_timeout",
		"sync.balance_poll_interval",
		"sync.allowlisted_apps",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Rate limiter
		"rate_limiter.redis_addr",
		"rate_limiter.redis_password",
		"rate_limiter.redis_db",
		"rate_limiter.redis_key_prefix",
		"rate_limiter.max_workers",
		"rate_limiter.max_queue_size",
		"rate_limiter.enable_local_fallback",
		"rate_limiter.local_fallback_multiplier",
		// Reconciliation sweeper
		"reconciliation_sweeper.apps",
		"reconciliation_sweeper.batch_size",
		"reconciliation_sweeper.recheck_wait",
		"reconciliation_sweeper.worker.pool_size",
		"reconciliation_sweeper.worker.queue_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
