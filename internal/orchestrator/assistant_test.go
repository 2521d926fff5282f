package orchestrator_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/keypath"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
	"github.com/ainft-labs/ainft-sync/internal/orchestrator"
)

var testConfig = domain.AssistantConfig{
	Model:        "gpt-4o",
	Name:         "concierge",
	Instructions: "You are a helpful concierge.",
}

func TestCreateAssistant(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().ResolveRole(gomock.Any(), testApp, testAddress).Return(domain.RoleOwner, nil)
	tm.gate.EXPECT().RequireToken(gomock.Any(), testApp, testToken).Return(&domain.Token{ID: testToken, Owner: testAddress}, nil)
	tm.gate.EXPECT().RequireServiceBinding(gomock.Any(), testApp, testService).Return(&domain.ServiceBinding{Name: testService}, nil)
	tm.gate.EXPECT().RequireNoAssistant(gomock.Any(), testApp, testToken, testService).Return(nil)

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), testService, domain.OpCreateAssistant, testConfig, gomock.Any()).
		Return(json.RawMessage(`{"id":"asst_1","created_at":1700000000}`), nil)

	var committed *ledger.Transaction
	tm.ledger.EXPECT().
		Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) (*ledger.Receipt, error) {
			committed = tx
			return okReceipt("0xbeef"), nil
		})
	tm.events.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	out, err := tm.orch.CreateAssistant(context.Background(), orchestrator.CreateAssistantParams{
		AppID:       testApp,
		TokenID:     testToken,
		ServiceName: testService,
		Caller:      testCaller,
		Config:      testConfig,
	})
	require.NoError(t, err)
	assert.Equal(t, "asst_1", out.Assistant.ID)
	assert.Equal(t, testAddress, out.Assistant.Owner)
	assert.Equal(t, testToken, out.Assistant.TokenID)
	require.NotNil(t, out.Receipt)
	assert.Equal(t, "0xbeef", out.Receipt.TxHash)

	// The assistant node lands with its write rule and both retention rules
	// in one atomic transaction.
	require.NotNil(t, committed)
	require.Len(t, committed.Operation.OpList, 4)
	assert.Equal(t, ledger.OpTypeSetValue, committed.Operation.OpList[0].Type)
	assert.Equal(t, keypath.Assistant(testApp, testToken, testService), committed.Operation.OpList[0].Ref)
	for _, op := range committed.Operation.OpList[1:] {
		assert.Equal(t, ledger.OpTypeSetRule, op.Type)
	}
}

func TestCreateAssistant_Duplicate(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().ResolveRole(gomock.Any(), testApp, testAddress).Return(domain.RoleOwner, nil)
	tm.gate.EXPECT().RequireToken(gomock.Any(), testApp, testToken).Return(&domain.Token{ID: testToken, Owner: testAddress}, nil)
	tm.gate.EXPECT().RequireServiceBinding(gomock.Any(), testApp, testService).Return(&domain.ServiceBinding{Name: testService}, nil)
	tm.gate.EXPECT().
		RequireNoAssistant(gomock.Any(), testApp, testToken, testService).
		Return(domain.NewAlreadyExists("assistant already exists"))

	// The provider is never invoked when the precondition fails.
	_, err := tm.orch.CreateAssistant(context.Background(), orchestrator.CreateAssistantParams{
		AppID:       testApp,
		TokenID:     testToken,
		ServiceName: testService,
		Caller:      testCaller,
		Config:      testConfig,
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeAlreadyExists, domain.CodeOf(err))
}

func TestCreateAssistant_AllowlistedCallerSkipsCommit(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	user := "0x1111111111111111111111111111111111111111"
	tm.gate.EXPECT().ResolveRole(gomock.Any(), testApp, user).Return(domain.RoleAllowlistedUser, nil)
	tm.gate.EXPECT().RequireToken(gomock.Any(), testApp, testToken).Return(&domain.Token{ID: testToken, Owner: testAddress}, nil)
	tm.gate.EXPECT().RequireServiceBinding(gomock.Any(), testApp, testService).Return(&domain.ServiceBinding{Name: testService}, nil)
	tm.gate.EXPECT().RequireNoAssistant(gomock.Any(), testApp, testToken, testService).Return(nil)

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), testService, domain.OpCreateAssistant, testConfig, gomock.Any()).
		Return(json.RawMessage(`{"id":"asst_1","created_at":1700000000}`), nil)

	// No Commit and no PublishEvent expectations: the ledger write is left
	// to the owner.
	out, err := tm.orch.CreateAssistant(context.Background(), orchestrator.CreateAssistantParams{
		AppID:       testApp,
		TokenID:     testToken,
		ServiceName: testService,
		Caller:      user,
		Config:      testConfig,
	})
	require.NoError(t, err)
	assert.Nil(t, out.Receipt)
	assert.Equal(t, "asst_1", out.Assistant.ID)
}

func TestUpdateAssistant(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().ResolveRole(gomock.Any(), testApp, testAddress).Return(domain.RoleOwner, nil)
	tm.gate.EXPECT().RequireToken(gomock.Any(), testApp, testToken).Return(&domain.Token{ID: testToken, Owner: testAddress}, nil)
	tm.gate.EXPECT().
		RequireAssistant(gomock.Any(), testApp, testToken, testService, "").
		Return(&domain.Assistant{ID: "asst_1", TokenID: testToken}, nil)

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), testService, domain.OpModifyAssistant, gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"id":"asst_1"}`), nil)

	var committed *ledger.Transaction
	tm.ledger.EXPECT().
		Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) (*ledger.Receipt, error) {
			committed = tx
			return okReceipt("0xbeef"), nil
		})
	tm.events.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	out, err := tm.orch.UpdateAssistant(context.Background(), orchestrator.UpdateAssistantParams{
		AppID:       testApp,
		TokenID:     testToken,
		ServiceName: testService,
		Caller:      testCaller,
		Config:      testConfig,
	})
	require.NoError(t, err)
	assert.Equal(t, testConfig, out.Assistant.Config)

	// Only the config sub-object is rewritten.
	require.Len(t, committed.Operation.OpList, 1)
	assert.Equal(t, keypath.Assistant(testApp, testToken, testService)+"/config", committed.Operation.OpList[0].Ref)
}

func TestDeleteAssistant(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().ResolveRole(gomock.Any(), testApp, testAddress).Return(domain.RoleOwner, nil)
	tm.gate.EXPECT().
		RequireAssistant(gomock.Any(), testApp, testToken, testService, "").
		Return(&domain.Assistant{ID: "asst_1", TokenID: testToken}, nil)

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), testService, domain.OpDeleteAssistant, gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"deleted":true}`), nil)

	var committed *ledger.Transaction
	tm.ledger.EXPECT().
		Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) (*ledger.Receipt, error) {
			committed = tx
			return okReceipt("0xbeef"), nil
		})
	tm.events.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	_, err := tm.orch.DeleteAssistant(context.Background(), orchestrator.DeleteAssistantParams{
		AppID:       testApp,
		TokenID:     testToken,
		ServiceName: testService,
		Caller:      testCaller,
	})
	require.NoError(t, err)

	// Node removal plus the three rule removals, atomically.
	require.Len(t, committed.Operation.OpList, 4)
	assert.Nil(t, committed.Operation.OpList[0].Value)
	for _, op := range committed.Operation.OpList[1:] {
		assert.Equal(t, ledger.OpTypeSetRule, op.Type)
		assert.Nil(t, op.Value)
	}
}

func TestListAssistants(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().RequireApplication(gomock.Any(), testApp).Return(&domain.Application{ID: testApp, Owner: testAddress}, nil)
	tm.ledger.EXPECT().
		ReadValue(gomock.Any(), keypath.Tokens(testApp)).
		Return(json.RawMessage(`{
			"2": {"owner": "0x2222222222222222222222222222222222222222", "ai": {"openai": {"id": "asst_2", "config": {"model": "gpt-4o"}}}},
			"1": {"owner": "0x1111111111111111111111111111111111111111", "ai": {"openai": {"id": "asst_1", "config": {"model": "gpt-4o"}}}},
			"3": {"owner": "0x3333333333333333333333333333333333333333"}
		}`), nil)

	assistants, err := tm.orch.ListAssistants(context.Background(), testApp, testService)
	require.NoError(t, err)
	require.Len(t, assistants, 2)
	assert.Equal(t, "asst_1", assistants[0].ID)
	assert.Equal(t, "1", assistants[0].TokenID)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", assistants[0].Owner)
	assert.Equal(t, "asst_2", assistants[1].ID)
}

func TestListAssistants_NoTokens(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().RequireApplication(gomock.Any(), testApp).Return(&domain.Application{ID: testApp, Owner: testAddress}, nil)
	tm.ledger.EXPECT().ReadValue(gomock.Any(), keypath.Tokens(testApp)).Return(nil, nil)

	assistants, err := tm.orch.ListAssistants(context.Background(), testApp, testService)
	require.NoError(t, err)
	assert.Empty(t, assistants)
}
