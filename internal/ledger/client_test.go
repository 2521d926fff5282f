package ledger_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
	"github.com/ainft-labs/ainft-sync/internal/mocks"
)

const gatewayURL = "http://ledger-gateway:8545/json-rpc"

func newClient(t *testing.T) (*ledger.Client, *mocks.MockHTTPClient, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	return ledger.NewClient(httpClient, adapter.NewJSON(), gatewayURL), httpClient, ctrl
}

func TestReadValue(t *testing.T) {
	client, httpClient, ctrl := newClient(t)
	defer ctrl.Finish()

	httpClient.EXPECT().
		PostJSON(gomock.Any(), gatewayURL, gomock.Any()).
		Return([]byte(`{"result":{"owner":"0xabc"}}`), nil)

	raw, err := client.ReadValue(context.Background(), "/applications/app1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"owner":"0xabc"}`, string(raw))
}

func TestReadValue_AbsentNode(t *testing.T) {
	client, httpClient, ctrl := newClient(t)
	defer ctrl.Finish()

	httpClient.EXPECT().
		PostJSON(gomock.Any(), gatewayURL, gomock.Any()).
		Return([]byte(`{"result":null}`), nil)

	raw, err := client.ReadValue(context.Background(), "/applications/missing")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestReadValue_GatewayError(t *testing.T) {
	client, httpClient, ctrl := newClient(t)
	defer ctrl.Finish()

	httpClient.EXPECT().
		PostJSON(gomock.Any(), gatewayURL, gomock.Any()).
		Return([]byte(`{"error":{"code":-32000,"message":"node down"}}`), nil)

	_, err := client.ReadValue(context.Background(), "/applications/app1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInternal, domain.CodeOf(err))
	assert.Contains(t, err.Error(), "node down")
}

func TestCommit(t *testing.T) {
	client, httpClient, ctrl := newClient(t)
	defer ctrl.Finish()

	tx := &ledger.Transaction{
		Address:   "0xowner",
		Timestamp: 1700000000000,
		Nonce:     -1,
		Operation: ledger.Operation{Type: "SET"},
	}

	httpClient.EXPECT().
		PostJSON(gomock.Any(), gatewayURL, gomock.Any()).
		Return([]byte(`{"result":{"tx_hash":"0xdeadbeef","result":{"code":0},"result_list":[{"code":0},{"code":0}]}}`), nil)

	receipt, err := client.Commit(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", receipt.TxHash)
	assert.True(t, receipt.OK())
}

func TestCommit_TransportError(t *testing.T) {
	client, httpClient, ctrl := newClient(t)
	defer ctrl.Finish()

	httpClient.EXPECT().
		PostJSON(gomock.Any(), gatewayURL, gomock.Any()).
		Return(nil, assert.AnError)

	_, err := client.Commit(context.Background(), &ledger.Transaction{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
