package sweeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/compute"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/keypath"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
	"github.com/ainft-labs/ainft-sync/internal/logger"
	"github.com/ainft-labs/ainft-sync/internal/messaging"
	"github.com/ainft-labs/ainft-sync/internal/store"
	"github.com/ainft-labs/ainft-sync/internal/store/schema"
)

const retrieveTimeout = 30 * time.Second

// ReconciliationSweeperConfig holds configuration for the reconciliation sweeper
type ReconciliationSweeperConfig struct {
	Apps           []string      // Applications to audit
	BatchSize      int           // Bindings to check per cycle
	WorkerPoolSize int           // Concurrent workers
	RecheckWait    time.Duration // Time to sleep between sweep cycles
}

// reconciliationSweeper implements the Sweeper interface. It walks the
// conversation state recorded on the ledger, asks the compute provider for its
// view of each assistant, and journals every divergence it finds.
type reconciliationSweeper struct {
	config    *ReconciliationSweeperConfig
	store     store.Store
	ledger    ledger.Ledger
	bridge    compute.Bridge
	events    messaging.Publisher
	jsonUtil  adapter.JSON
	pool      pond.Pool
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewReconciliationSweeper creates a new reconciliation sweeper
func NewReconciliationSweeper(
	config *ReconciliationSweeperConfig,
	st store.Store,
	ldg ledger.Ledger,
	bridge compute.Bridge,
	events messaging.Publisher,
	jsonUtil adapter.JSON,
	clock adapter.Clock,
) Sweeper {
	return &reconciliationSweeper{
		config:    config,
		store:     st,
		ledger:    ldg,
		bridge:    bridge,
		events:    events,
		jsonUtil:  jsonUtil,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *reconciliationSweeper) Name() string {
	return "reconciliation-sweeper"
}

// Start begins the sweeper's main loop
func (s *reconciliationSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting reconciliation sweeper",
		zap.Strings("apps", s.config.Apps),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("recheck_wait", s.config.RecheckWait),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Reconciliation sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Reconciliation sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *reconciliationSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *reconciliationSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Reconciliation sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Reconciliation sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// tokenNode mirrors the per-token layout under the application tokens container.
type tokenNode struct {
	Owner string                      `json:"owner"`
	AI    map[string]domain.Assistant `json:"ai"`
}

// binding is one assistant record scheduled for a provider check.
type binding struct {
	appID       string
	tokenID     string
	serviceName string
	assistant   domain.Assistant
}

// runSweepCycle runs a single sweep cycle
func (s *reconciliationSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	logger.InfoCtx(ctx, "Starting sweep cycle")

	bindings, err := s.collectBindings(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect bindings: %w", err)
	}

	if len(bindings) == 0 {
		logger.InfoCtx(ctx, "No assistant records to audit, waiting...")
		if !s.sleep(ctx, s.config.RecheckWait) {
			return ctx.Err() // Context canceled during sleep
		}
		return nil
	}

	logger.InfoCtx(ctx, "Found assistant records to audit", zap.Int("count", len(bindings)))

	var cleanCount, driftCount, unreachableCount atomic.Int32

	for _, b := range bindings {
		s.pool.Submit(func() {
			s.checkBinding(ctx, b, &cleanCount, &driftCount, &unreachableCount)
		})
	}

	// Wait for all checks to complete
	s.pool.StopAndWait()

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", duration),
		zap.Int("total_checked", len(bindings)),
		zap.Int32("clean", cleanCount.Load()),
		zap.Int32("drifted", driftCount.Load()),
		zap.Int32("unreachable", unreachableCount.Load()),
	)

	if !s.sleep(ctx, s.config.RecheckWait) {
		return ctx.Err()
	}

	return nil
}

// collectBindings reads the tokens container of every configured application
// and flattens it into the list of assistant records to audit. The sweep
// cursor lets a restarted sweeper resume mid-rotation instead of always
// starting over with the first application.
func (s *reconciliationSweeper) collectBindings(ctx context.Context) ([]binding, error) {
	cursor, err := s.store.GetSweepCursor(ctx)
	if err != nil {
		return nil, err
	}

	apps := rotateAfter(s.config.Apps, cursor)

	var bindings []binding
	for _, appID := range apps {
		raw, err := s.ledger.ReadValue(ctx, keypath.Tokens(appID))
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("app_id", appID))
			continue
		}
		if raw == nil {
			continue
		}

		var tokens map[string]tokenNode
		if err := s.jsonUtil.Unmarshal(raw, &tokens); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to decode tokens container: %w", err),
				zap.String("app_id", appID))
			continue
		}

		for tokenID, node := range tokens {
			for serviceName, assistant := range node.AI {
				bindings = append(bindings, binding{
					appID:       appID,
					tokenID:     tokenID,
					serviceName: serviceName,
					assistant:   assistant,
				})
			}
		}

		if err := s.store.SetSweepCursor(ctx, appID); err != nil {
			logger.WarnCtx(ctx, "Failed to persist sweep cursor",
				zap.String("app_id", appID), zap.Error(err))
		}

		if s.config.BatchSize > 0 && len(bindings) >= s.config.BatchSize {
			bindings = bindings[:s.config.BatchSize]
			break
		}
	}

	return bindings, nil
}

// rotateAfter reorders apps so the sweep resumes with the entry after cursor.
// An empty or unknown cursor leaves the order unchanged.
func rotateAfter(apps []string, cursor string) []string {
	if cursor == "" {
		return apps
	}
	for i, app := range apps {
		if app == cursor {
			rotated := make([]string, 0, len(apps))
			rotated = append(rotated, apps[i+1:]...)
			rotated = append(rotated, apps[:i+1]...)
			return rotated
		}
	}
	return apps
}

// checkBinding asks the provider for its view of one assistant and journals
// any divergence from the ledger record.
func (s *reconciliationSweeper) checkBinding(ctx context.Context, b binding, cleanCount, driftCount, unreachableCount *atomic.Int32) {
	payload := map[string]interface{}{"assistant_id": b.assistant.ID}
	data, err := s.bridge.Invoke(ctx, b.serviceName, domain.OpRetrieveAssistant, payload, retrieveTimeout)
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.ErrCodeProviderError:
			driftCount.Add(1)
			s.recordFinding(ctx, b, schema.FindingTypeMissingAssistant, map[string]interface{}{
				"ledger_assistant_id": b.assistant.ID,
				"provider_error":      err.Error(),
			})
		default:
			unreachableCount.Add(1)
			logger.WarnCtx(ctx, "Provider unreachable during audit",
				zap.String("service", b.serviceName),
				zap.String("assistant_id", b.assistant.ID),
				zap.Error(err),
			)
			s.recordFinding(ctx, b, schema.FindingTypeProviderUnreachable, map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}

	var remote domain.Assistant
	if err := s.jsonUtil.Unmarshal(data, &remote); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to decode provider assistant: %w", err),
			zap.String("assistant_id", b.assistant.ID))
		return
	}

	if !reflect.DeepEqual(remote.Config, b.assistant.Config) {
		driftCount.Add(1)
		s.recordFinding(ctx, b, schema.FindingTypeConfigDrift, map[string]interface{}{
			"ledger_config":   b.assistant.Config,
			"provider_config": remote.Config,
		})
		return
	}

	cleanCount.Add(1)
	if err := s.store.ResolveFindings(ctx, b.appID, b.tokenID, b.serviceName); err != nil {
		logger.WarnCtx(ctx, "Failed to resolve findings",
			zap.String("app_id", b.appID),
			zap.String("token_id", b.tokenID),
			zap.Error(err),
		)
	}
}

// recordFinding journals one divergence and notifies downstream consumers.
func (s *reconciliationSweeper) recordFinding(ctx context.Context, b binding, ft schema.FindingType, details map[string]interface{}) {
	raw, err := json.Marshal(details)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to encode finding details: %w", err))
		raw = []byte("{}")
	}

	finding := &schema.ReconciliationFinding{
		ID:          ulid.Make().String(),
		AppID:       b.appID,
		TokenID:     b.tokenID,
		ServiceName: b.serviceName,
		Type:        ft,
		Details:     datatypes.JSON(raw),
		DetectedAt:  s.clock.Now(),
	}

	if err := s.store.RecordFinding(ctx, finding); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record finding: %w", err),
			zap.String("app_id", b.appID),
			zap.String("token_id", b.tokenID),
		)
		return
	}

	logger.WarnCtx(ctx, "Reconciliation finding recorded",
		zap.String("finding_id", finding.ID),
		zap.String("type", string(ft)),
		zap.String("app_id", b.appID),
		zap.String("token_id", b.tokenID),
		zap.String("service", b.serviceName),
	)

	event := &domain.SyncEvent{
		Type:        domain.SyncEventDriftDetected,
		AppID:       b.appID,
		TokenID:     b.tokenID,
		ServiceName: b.serviceName,
		LedgerPath:  keypath.Assistant(b.appID, b.tokenID, b.serviceName),
		Timestamp:   s.clock.Now().Unix(),
	}
	if err := s.events.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish drift event", zap.Error(err))
	}
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted by context
func (s *reconciliationSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-s.stopChan:
		return false // Interrupted by stop signal
	}
}
