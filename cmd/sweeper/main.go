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
	"github.com/ainft-labs/ainft-sync/internal/compute"
	"github.com/ainft-labs/ainft-sync/internal/config"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
	"github.com/ainft-labs/ainft-sync/internal/logger"
	"github.com/ainft-labs/ainft-sync/internal/messaging"
	"github.com/ainft-labs/ainft-sync/internal/providers/jetstream"
	"github.com/ainft-labs/ainft-sync/internal/ratelimit"
	"github.com/ainft-labs/ainft-sync/internal/store"
	"github.com/ainft-labs/ainft-sync/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
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
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting AINFT sync sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

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

	// Ledger gateway client
	ledgerClient := ledger.NewClient(ledgerHTTP, jsonAdapter, cfg.Ledger.GatewayURL)

	// Compute provider bridge
	provider := compute.NewClient(computeHTTP, jsonAdapter, cfg.Provider.BaseURL)
	bridge := compute.NewBridge(provider, compute.Config{
		UseSession:     cfg.Provider.UseSession,
		DefaultTimeout: cfg.Provider.DefaultTimeout,
	})

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
	} else {
		events = messaging.NewNoopPublisher()
		logger.WarnCtx(ctx, "NATS not configured, drift events will be dropped")
	}

	// Create the reconciliation sweeper
	sw := sweeper.NewReconciliationSweeper(
		&sweeper.ReconciliationSweeperConfig{
			Apps:           cfg.ReconciliationSweeper.Apps,
			BatchSize:      cfg.ReconciliationSweeper.BatchSize,
			WorkerPoolSize: cfg.ReconciliationSweeper.Worker.WorkerPoolSize,
			RecheckWait:    cfg.ReconciliationSweeper.RecheckWait,
		},
		dataStore,
		ledgerClient,
		bridge,
		events,
		jsonAdapter,
		clock,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := sw.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", sw.Name()))
		cancel()
	}

	// Give in-progress checks a bounded window to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := sw.Stop(shutdownCtx); err != nil {
		logger.Error(fmt.Errorf("sweeper forced to stop: %w", err))
	}

	logger.Info("Sweeper stopped")
}
