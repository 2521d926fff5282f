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
	"github.com/ainft-labs/ainft-sync/internal/poller"
)

const testThread = "th_1"

func TestCreateMessage(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().ResolveRole(gomock.Any(), testApp, testAddress).Return(domain.RoleOwner, nil)
	tm.gate.EXPECT().
		RequireAssistant(gomock.Any(), testApp, testToken, testService, "").
		Return(&domain.Assistant{ID: "asst_1"}, nil)

	// First read gates the mutation; second read is the fresh fold base.
	existing := &domain.ThreadNode{
		ID: testThread,
		Messages: map[string]domain.Message{
			"1699999990": {ID: "msg_0", Role: domain.MessageRoleUser, Content: "earlier", CreatedAt: 1699999990},
		},
	}
	gomock.InOrder(
		tm.gate.EXPECT().
			RequireThread(gomock.Any(), testApp, testToken, testService, testAddress, testThread).
			Return(&domain.ThreadNode{ID: testThread}, nil),
		tm.gate.EXPECT().
			RequireThread(gomock.Any(), testApp, testToken, testService, testAddress, testThread).
			Return(existing, nil),
	)

	gomock.InOrder(
		tm.bridge.EXPECT().
			Invoke(gomock.Any(), testService, domain.OpCreateMessage, gomock.Any(), gomock.Any()).
			Return(json.RawMessage(`{"id":"msg_1"}`), nil),
		tm.bridge.EXPECT().
			Invoke(gomock.Any(), testService, domain.OpCreateRun, gomock.Any(), gomock.Any()).
			Return(json.RawMessage(`{"id":"run_1","status":"queued"}`), nil),
		tm.bridge.EXPECT().
			Invoke(gomock.Any(), testService, domain.OpListMessages, gomock.Any(), gomock.Any()).
			Return(json.RawMessage(`{"messages":[
				{"id":"msg_0","role":"user","content":"earlier","created_at":1699999990},
				{"id":"msg_1","role":"user","content":"question","created_at":1700000001},
				{"id":"msg_2","role":"assistant","content":"answer","created_at":1700000002}
			]}`), nil),
	)
	tm.runs.EXPECT().
		Await(gomock.Any(), testService, testThread, "run_1", gomock.Any()).
		Return(&poller.Run{ID: "run_1", Status: domain.RunStatusCompleted}, nil)

	var committed *ledger.Transaction
	tm.ledger.EXPECT().
		Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) (*ledger.Receipt, error) {
			committed = tx
			return okReceipt("0xfold"), nil
		})
	tm.events.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	out, err := tm.orch.CreateMessage(context.Background(), orchestrator.CreateMessageParams{
		AppID:       testApp,
		TokenID:     testToken,
		ServiceName: testService,
		Caller:      testCaller,
		ThreadID:    testThread,
		Content:     "question",
	})
	require.NoError(t, err)
	require.Len(t, out.Messages, 3)
	assert.Equal(t, "msg_0", out.Messages[0].ID)
	assert.Equal(t, "msg_1", out.Messages[1].ID)
	assert.Equal(t, "msg_2", out.Messages[2].ID)

	require.NotNil(t, committed)
	require.Len(t, committed.Operation.OpList, 2)
	assert.Equal(t, keypath.Messages(testApp, testToken, testService, testAddress, testThread), committed.Operation.OpList[0].Ref)

	// The fold keeps the pre-existing message under its original key.
	merged, ok := committed.Operation.OpList[0].Value.(map[string]domain.Message)
	require.True(t, ok)
	require.Len(t, merged, 3)
	assert.Equal(t, "msg_0", merged["1699999990"].ID)
	assert.Equal(t, "msg_1", merged["1700000001"].ID)
	assert.Equal(t, "msg_2", merged["1700000002"].ID)

	assert.Equal(t, keypath.Thread(testApp, testToken, testService, testAddress, testThread)+"/updated_at", committed.Operation.OpList[1].Ref)
}

func TestCreateMessage_RunTimeoutSkipsLedgerWrite(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.gate.EXPECT().ResolveRole(gomock.Any(), testApp, testAddress).Return(domain.RoleOwner, nil)
	tm.gate.EXPECT().
		RequireAssistant(gomock.Any(), testApp, testToken, testService, "").
		Return(&domain.Assistant{ID: "asst_1"}, nil)
	tm.gate.EXPECT().
		RequireThread(gomock.Any(), testApp, testToken, testService, testAddress, testThread).
		Return(&domain.ThreadNode{ID: testThread}, nil)

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), testService, domain.OpCreateMessage, gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"id":"msg_1"}`), nil)
	tm.bridge.EXPECT().
		Invoke(gomock.Any(), testService, domain.OpCreateRun, gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"id":"run_1","status":"queued"}`), nil)
	tm.runs.EXPECT().
		Await(gomock.Any(), testService, testThread, "run_1", gomock.Any()).
		Return(nil, domain.NewDeadlineExceeded("run did not complete").WithRun("run_1"))

	// No list, no fold, no Commit: the ledger must not reflect an unknown
	// provider outcome.
	_, err := tm.orch.CreateMessage(context.Background(), orchestrator.CreateMessageParams{
		AppID:       testApp,
		TokenID:     testToken,
		ServiceName: testService,
		Caller:      testCaller,
		ThreadID:    testThread,
		Content:     "question",
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeDeadlineExceeded, domain.CodeOf(err))

	var typed *domain.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "run_1", typed.RunID)
}

func TestUpdateMessage(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	stored := &domain.Message{ID: "msg_1", Role: domain.MessageRoleUser, Content: "hi", CreatedAt: 1700000001}
	tm.gate.EXPECT().ResolveRole(gomock.Any(), testApp, testAddress).Return(domain.RoleOwner, nil)
	tm.gate.EXPECT().
		RequireMessage(gomock.Any(), testApp, testToken, testService, testAddress, testThread, "msg_1").
		Return("1700000001", stored, nil)

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), testService, domain.OpModifyMessage, gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"id":"msg_1"}`), nil)

	meta := map[string]string{"flag": "pinned"}
	var committed *ledger.Transaction
	tm.ledger.EXPECT().
		Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) (*ledger.Receipt, error) {
			committed = tx
			return okReceipt("0xmsg"), nil
		})
	tm.events.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	out, err := tm.orch.UpdateMessage(context.Background(), orchestrator.UpdateMessageParams{
		AppID:       testApp,
		TokenID:     testToken,
		ServiceName: testService,
		Caller:      testCaller,
		ThreadID:    testThread,
		MessageID:   "msg_1",
		Metadata:    meta,
	})
	require.NoError(t, err)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, meta, out.Messages[0].Metadata)
	assert.Equal(t, "hi", out.Messages[0].Content)

	require.Len(t, committed.Operation.OpList, 1)
	assert.Equal(t,
		keypath.Message(testApp, testToken, testService, testAddress, testThread, "1700000001"),
		committed.Operation.OpList[0].Ref)
}

func TestListMessages(t *testing.T) {
	tm := setupOrchestrator(t)
	defer tm.ctrl.Finish()

	node := &domain.ThreadNode{
		ID: testThread,
		Messages: map[string]domain.Message{
			"1700000002": {ID: "msg_2", CreatedAt: 1700000002},
			"1700000001": {ID: "msg_1", CreatedAt: 1700000001},
		},
	}
	tm.gate.EXPECT().
		RequireThread(gomock.Any(), testApp, testToken, testService, testAddress, testThread).
		Return(node, nil)

	msgs, err := tm.orch.ListMessages(context.Background(), testApp, testToken, testService, testCaller, testThread)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "msg_1", msgs[0].ID)
	assert.Equal(t, "msg_2", msgs[1].ID)
}
