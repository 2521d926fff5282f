package orchestrator_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
	"github.com/ainft-labs/ainft-sync/internal/logger"
	"github.com/ainft-labs/ainft-sync/internal/mocks"
	"github.com/ainft-labs/ainft-sync/internal/orchestrator"
)

const (
	testApp     = "my_app"
	testToken   = "1"
	testService = "openai"
	testCaller  = "0xAaBb00000000000000000000000000000000CcDd"
	// testCaller after normalization.
	testAddress = "0xaabb00000000000000000000000000000000ccdd"
)

var testTime = time.Unix(1700000000, 0)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type orchestratorMocks struct {
	ctrl     *gomock.Controller
	gate     *mocks.MockGate
	bridge   *mocks.MockBridge
	runs     *mocks.MockRunWaiter
	balances *mocks.MockBalanceWaiter
	ledger   *mocks.MockLedger
	events   *mocks.MockPublisher
	clock    *mocks.MockClock
	orch     *orchestrator.Orchestrator
}

func setupOrchestrator(t *testing.T) *orchestratorMocks {
	ctrl := gomock.NewController(t)
	tm := &orchestratorMocks{
		ctrl:     ctrl,
		gate:     mocks.NewMockGate(ctrl),
		bridge:   mocks.NewMockBridge(ctrl),
		runs:     mocks.NewMockRunWaiter(ctrl),
		balances: mocks.NewMockBalanceWaiter(ctrl),
		ledger:   mocks.NewMockLedger(ctrl),
		events:   mocks.NewMockPublisher(ctrl),
		clock:    mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(testTime).AnyTimes()
	tm.orch = orchestrator.New(
		tm.gate,
		tm.bridge,
		tm.runs,
		tm.balances,
		tm.ledger,
		ledger.NewBuilder(tm.clock),
		tm.events,
		tm.clock,
		adapter.NewJSON(),
		orchestrator.Config{},
	)
	return tm
}

func okReceipt(txHash string) *ledger.Receipt {
	return &ledger.Receipt{TxHash: txHash, Result: ledger.OpResult{Code: 0}}
}

func TestConfigureService(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().RequireOwner(gomock.Any(), testApp, testAddress).Return(nil)
	tm.bridge.EXPECT().Ready(gomock.Any(), testService).Return(nil)

	var committed *ledger.Transaction
	tm.ledger.EXPECT().
		Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) (*ledger.Receipt, error) {
			committed = tx
			return okReceipt("0xfeed"), nil
		})
	tm.events.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.SyncEvent) error {
			assert.Equal(t, domain.SyncEventServiceBound, event.Type)
			assert.Equal(t, "0xfeed", event.TxHash)
			assert.Equal(t, testTime.Unix(), event.Timestamp)
			return nil
		})

	out, err := tm.orch.ConfigureService(context.Background(), orchestrator.ConfigureServiceParams{
		AppID:       testApp,
		ServiceName: testService,
		Caller:      testCaller,
		Description: "chat completion service",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Receipt)
	assert.Equal(t, "0xfeed", out.Receipt.TxHash)
	assert.Equal(t, domain.ServiceKindChat, out.Binding.Kind)
	assert.Equal(t, testTime.Unix(), out.Binding.CreatedAt)

	require.NotNil(t, committed)
	assert.Equal(t, testAddress, committed.Address)
	assert.Equal(t, int64(-1), committed.Nonce)
	require.Len(t, committed.Operation.OpList, 1)
	assert.Equal(t, ledger.OpTypeSetValue, committed.Operation.OpList[0].Type)
}

func TestConfigureService_NotOwner(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().
		RequireOwner(gomock.Any(), testApp, testAddress).
		Return(domain.NewPermissionDenied("caller is not the owner"))

	_, err := tm.orch.ConfigureService(context.Background(), orchestrator.ConfigureServiceParams{
		AppID:       testApp,
		ServiceName: testService,
		Caller:      testCaller,
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodePermissionDenied, domain.CodeOf(err))
}

func TestConfigureService_ProviderNotReady(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().RequireOwner(gomock.Any(), testApp, testAddress).Return(nil)
	tm.bridge.EXPECT().
		Ready(gomock.Any(), testService).
		Return(domain.NewUnavailable("service %s is not running", testService))

	_, err := tm.orch.ConfigureService(context.Background(), orchestrator.ConfigureServiceParams{
		AppID:       testApp,
		ServiceName: testService,
		Caller:      testCaller,
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeUnavailable, domain.CodeOf(err))
}

func TestDepositCredit(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().RequireOwner(gomock.Any(), testApp, testAddress).Return(nil)
	tm.gate.EXPECT().RequireServiceBinding(gomock.Any(), testApp, testService).Return(&domain.ServiceBinding{Name: testService}, nil)

	gomock.InOrder(
		tm.bridge.EXPECT().GetBalance(gomock.Any(), testService).Return(10.0, nil),
		tm.bridge.EXPECT().Charge(gomock.Any(), testService, 5.0).Return("0xcharge", nil),
		// The expected balance is the pre-charge balance plus the deposit.
		tm.balances.EXPECT().Await(gomock.Any(), testService, 15.0, "0xcharge", gomock.Any()).Return(15.0, nil),
	)

	out, err := tm.orch.DepositCredit(context.Background(), orchestrator.DepositCreditParams{
		AppID:       testApp,
		ServiceName: testService,
		Caller:      testCaller,
		Amount:      5.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "0xcharge", out.ChargeTxID)
	assert.Equal(t, 15.0, out.Balance)
}

func TestDepositCredit_SettlementTimeout(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().RequireOwner(gomock.Any(), testApp, testAddress).Return(nil)
	tm.gate.EXPECT().RequireServiceBinding(gomock.Any(), testApp, testService).Return(&domain.ServiceBinding{Name: testService}, nil)
	tm.bridge.EXPECT().GetBalance(gomock.Any(), testService).Return(10.0, nil)
	tm.bridge.EXPECT().Charge(gomock.Any(), testService, 5.0).Return("0xcharge", nil)
	tm.balances.EXPECT().
		Await(gomock.Any(), testService, 15.0, "0xcharge", gomock.Any()).
		Return(0.0, domain.NewDeadlineExceeded("balance did not settle").WithTx("0xcharge"))

	_, err := tm.orch.DepositCredit(context.Background(), orchestrator.DepositCreditParams{
		AppID:       testApp,
		ServiceName: testService,
		Caller:      testCaller,
		Amount:      5.0,
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeDeadlineExceeded, domain.CodeOf(err))

	var typed *domain.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "0xcharge", typed.TxID)
}

func TestGetCredit(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().RequireServiceBinding(gomock.Any(), testApp, testService).Return(&domain.ServiceBinding{Name: testService}, nil)
	tm.bridge.EXPECT().GetBalance(gomock.Any(), testService).Return(42.5, nil)

	balance, err := tm.orch.GetCredit(context.Background(), testApp, testService)
	require.NoError(t, err)
	assert.Equal(t, 42.5, balance)
}

func TestInvalidCallerRejectedBeforeGate(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	// No gate or bridge expectations: validation fails first.
	_, err := tm.orch.ConfigureService(context.Background(), orchestrator.ConfigureServiceParams{
		AppID:       testApp,
		ServiceName: testService,
		Caller:      "not-an-address",
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodePermissionDenied, domain.CodeOf(err))
}
