package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/api/middleware"
	"github.com/ainft-labs/ainft-sync/internal/api/server"
	"github.com/ainft-labs/ainft-sync/internal/authz"
	"github.com/ainft-labs/ainft-sync/internal/compute"
	"github.com/ainft-labs/ainft-sync/internal/config"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
	"github.com/ainft-labs/ainft-sync/internal/logger"
	"github.com/ainft-labs/ainft-sync/internal/messaging"
	"github.com/ainft-labs/ainft-sync/internal/orchestrator"
	"github.com/ainft-labs/ainft-sync/internal/poller"
	"github.com/ainft-labs/ainft-sync/internal/providers/jetstream"
	"github.com/ainft-labs/ainft-sync/internal/ratelimit"
	"github.com/ainft-labs/ainft-sync/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting AINFT sync API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(30 * time.Second)

	// Distributed rate limiting across instances (optional)
	var limiter ratelimit.Proxy
	if cfg.RateLimiter.RedisAddr != "" {
		redisClient := adapter.NewRedisClient(cfg.RateLimiter.RedisAddr, cfg.RateLimiter.RedisPassword, cfg.RateLimiter.RedisDB)
		limiter, err = ratelimit.NewProxy(cfg.RateLimiter, redisClient, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to initialize rate limiter", zap.Error(err))
		}
		defer func() {
			if err := limiter.Close(); err != nil {
				logger.Warn("Failed to close rate limiter", zap.Error(err))
			}
		}()
	}
	ledgerHTTP := ratelimit.NewHTTPClient(limiter, ratelimit.UpstreamLedger, httpClient)
	computeHTTP := ratelimit.NewHTTPClient(limiter, ratelimit.UpstreamCompute, httpClient)

	// Ledger gateway client and transaction builder
	ledgerClient := ledger.NewClient(ledgerHTTP, jsonAdapter, cfg.Ledger.GatewayURL)
	builder := ledger.NewBuilder(clock)

	// Compute provider bridge
	provider := compute.NewClient(computeHTTP, jsonAdapter, cfg.Provider.BaseURL)
	bridge := compute.NewBridge(provider, compute.Config{
		UseSession:     cfg.Provider.UseSession,
		DefaultTimeout: cfg.Provider.DefaultTimeout,
	})

	// Completion pollers
	runs := poller.NewRunWaiter(bridge, clock, jsonAdapter, cfg.Sync.RunPollInterval)
	balances := poller.NewBalanceWaiter(bridge, clock, cfg.Sync.BalancePollInterval)

	// Authorization gate
	gate := authz.New(ledgerClient, jsonAdapter, cfg.Sync.AllowlistedApps)

	// Event publisher (optional)
	var events messaging.Publisher
	if cfg.NATS.URL != "" {
		events, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		defer events.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		events = messaging.NewNoopPublisher()
		logger.WarnCtx(ctx, "NATS not configured, sync events will be dropped")
	}

	// Synchronization engine
	engine := orchestrator.New(
		gate,
		bridge,
		runs,
		balances,
		ledgerClient,
		builder,
		events,
		clock,
		jsonAdapter,
		orchestrator.Config{
			InvokeTimeout:  cfg.Sync.InvokeTimeout,
			RunTimeout:     cfg.Sync.RunTimeout,
			BalanceTimeout: cfg.Sync.BalanceTimeout,
		},
	)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, engine, dataStore)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
