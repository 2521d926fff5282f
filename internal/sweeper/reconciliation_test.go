package sweeper_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/keypath"
	"github.com/ainft-labs/ainft-sync/internal/logger"
	"github.com/ainft-labs/ainft-sync/internal/mocks"
	"github.com/ainft-labs/ainft-sync/internal/store/schema"
	"github.com/ainft-labs/ainft-sync/internal/sweeper"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type sweeperMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	ledger  *mocks.MockLedger
	bridge  *mocks.MockBridge
	events  *mocks.MockPublisher
	clock   *mocks.MockClock
	sweeper sweeper.Sweeper
}

func setupSweeper(t *testing.T, cfg *sweeper.ReconciliationSweeperConfig) *sweeperMocks {
	ctrl := gomock.NewController(t)
	tm := &sweeperMocks{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		ledger: mocks.NewMockLedger(ctrl),
		bridge: mocks.NewMockBridge(ctrl),
		events: mocks.NewMockPublisher(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(time.Unix(1700000000, 0)).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()
	// The post-cycle sleep never elapses; tests end the loop through Stop.
	tm.clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()

	tm.sweeper = sweeper.NewReconciliationSweeper(
		cfg, tm.store, tm.ledger, tm.bridge, tm.events, adapter.NewJSON(), tm.clock)
	return tm
}

func sweeperConfig(apps ...string) *sweeper.ReconciliationSweeperConfig {
	return &sweeper.ReconciliationSweeperConfig{
		Apps:           apps,
		BatchSize:      10,
		WorkerPoolSize: 2,
		RecheckWait:    time.Minute,
	}
}

// runOneCycle starts the sweeper, waits for the signal that the cycle reached
// its terminal expectation, then stops it.
func runOneCycle(t *testing.T, tm *sweeperMocks, done <-chan struct{}) {
	startErr := make(chan error, 1)
	go func() {
		startErr <- tm.sweeper.Start(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep cycle did not complete")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tm.sweeper.Stop(stopCtx))
	require.NoError(t, <-startErr)
}

func tokensJSON() json.RawMessage {
	return json.RawMessage(`{
		"1": {
			"owner": "0x1111111111111111111111111111111111111111",
			"ai": {"openai": {"id": "asst_1", "config": {"model": "gpt-4o", "name": "concierge", "instructions": "be helpful"}}}
		}
	}`)
}

func TestName(t *testing.T) {
	tm := setupSweeper(t, sweeperConfig("app_a"))
	defer tm.ctrl.Finish()
	assert.Equal(t, "reconciliation-sweeper", tm.sweeper.Name())
}

func TestSweep_CleanBindingResolvesFindings(t *testing.T) {
	tm := setupSweeper(t, sweeperConfig("app_a"))
	defer tm.ctrl.Finish()

	done := make(chan struct{})

	tm.store.EXPECT().GetSweepCursor(gomock.Any()).Return("", nil)
	tm.ledger.EXPECT().ReadValue(gomock.Any(), keypath.Tokens("app_a")).Return(tokensJSON(), nil)
	tm.store.EXPECT().SetSweepCursor(gomock.Any(), "app_a").Return(nil)

	// The provider reports the identical config: no drift.
	tm.bridge.EXPECT().
		Invoke(gomock.Any(), "openai", domain.OpRetrieveAssistant, gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"id":"asst_1","config":{"model":"gpt-4o","name":"concierge","instructions":"be helpful"}}`), nil)
	tm.store.EXPECT().
		ResolveFindings(gomock.Any(), "app_a", "1", "openai").
		DoAndReturn(func(context.Context, string, string, string) error {
			close(done)
			return nil
		})

	runOneCycle(t, tm, done)
}

func TestSweep_ConfigDriftRecordsFinding(t *testing.T) {
	tm := setupSweeper(t, sweeperConfig("app_a"))
	defer tm.ctrl.Finish()

	done := make(chan struct{})

	tm.store.EXPECT().GetSweepCursor(gomock.Any()).Return("", nil)
	tm.ledger.EXPECT().ReadValue(gomock.Any(), keypath.Tokens("app_a")).Return(tokensJSON(), nil)
	tm.store.EXPECT().SetSweepCursor(gomock.Any(), "app_a").Return(nil)

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), "openai", domain.OpRetrieveAssistant, gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"id":"asst_1","config":{"model":"gpt-4o-mini","name":"concierge","instructions":"be helpful"}}`), nil)

	tm.store.EXPECT().
		RecordFinding(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, finding *schema.ReconciliationFinding) error {
			assert.Equal(t, schema.FindingTypeConfigDrift, finding.Type)
			assert.Equal(t, "app_a", finding.AppID)
			assert.Equal(t, "1", finding.TokenID)
			assert.Equal(t, "openai", finding.ServiceName)
			assert.NotEmpty(t, finding.ID)
			return nil
		})
	tm.events.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.SyncEvent) error {
			assert.Equal(t, domain.SyncEventDriftDetected, event.Type)
			assert.Equal(t, keypath.Assistant("app_a", "1", "openai"), event.LedgerPath)
			close(done)
			return nil
		})

	runOneCycle(t, tm, done)
}

func TestSweep_MissingAssistantRecordsFinding(t *testing.T) {
	tm := setupSweeper(t, sweeperConfig("app_a"))
	defer tm.ctrl.Finish()

	done := make(chan struct{})

	tm.store.EXPECT().GetSweepCursor(gomock.Any()).Return("", nil)
	tm.ledger.EXPECT().ReadValue(gomock.Any(), keypath.Tokens("app_a")).Return(tokensJSON(), nil)
	tm.store.EXPECT().SetSweepCursor(gomock.Any(), "app_a").Return(nil)

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), "openai", domain.OpRetrieveAssistant, gomock.Any(), gomock.Any()).
		Return(nil, domain.NewProviderError(nil, "no assistant found with id asst_1"))

	tm.store.EXPECT().
		RecordFinding(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, finding *schema.ReconciliationFinding) error {
			assert.Equal(t, schema.FindingTypeMissingAssistant, finding.Type)
			return nil
		})
	tm.events.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.SyncEvent) error {
			close(done)
			return nil
		})

	runOneCycle(t, tm, done)
}

func TestSweep_UnreachableProviderRecordsFinding(t *testing.T) {
	tm := setupSweeper(t, sweeperConfig("app_a"))
	defer tm.ctrl.Finish()

	done := make(chan struct{})

	tm.store.EXPECT().GetSweepCursor(gomock.Any()).Return("", nil)
	tm.ledger.EXPECT().ReadValue(gomock.Any(), keypath.Tokens("app_a")).Return(tokensJSON(), nil)
	tm.store.EXPECT().SetSweepCursor(gomock.Any(), "app_a").Return(nil)

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), "openai", domain.OpRetrieveAssistant, gomock.Any(), gomock.Any()).
		Return(nil, domain.NewUnavailable("compute provider is not reachable"))

	tm.store.EXPECT().
		RecordFinding(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, finding *schema.ReconciliationFinding) error {
			assert.Equal(t, schema.FindingTypeProviderUnreachable, finding.Type)
			return nil
		})
	tm.events.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.SyncEvent) error {
			close(done)
			return nil
		})

	runOneCycle(t, tm, done)
}

func TestSweep_CursorRotatesApps(t *testing.T) {
	tm := setupSweeper(t, sweeperConfig("app_a", "app_b"))
	defer tm.ctrl.Finish()

	done := make(chan struct{})

	tm.store.EXPECT().GetSweepCursor(gomock.Any()).Return("app_a", nil)
	// The sweep resumes after the cursor: app_b is read before app_a.
	gomock.InOrder(
		tm.ledger.EXPECT().ReadValue(gomock.Any(), keypath.Tokens("app_b")).Return(nil, nil),
		tm.ledger.EXPECT().
			ReadValue(gomock.Any(), keypath.Tokens("app_a")).
			DoAndReturn(func(context.Context, string) (json.RawMessage, error) {
				close(done)
				return nil, nil
			}),
	)

	runOneCycle(t, tm, done)
}

func TestStop_BeforeStartIsNoop(t *testing.T) {
	tm := setupSweeper(t, sweeperConfig("app_a"))
	defer tm.ctrl.Finish()

	assert.NoError(t, tm.sweeper.Stop(context.Background()))
}
