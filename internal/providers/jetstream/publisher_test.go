package jetstream_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/logger"
	"github.com/ainft-labs/ainft-sync/internal/mocks"
	"github.com/ainft-labs/ainft-sync/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig() jetstream.Config {
	return jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "CONVERSATION_EVENTS",
		ConnectionName: "ainft-sync-test",
	}
}

func TestPublishEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().
		Connect("nats://localhost:4222", gomock.Any()).
		Return(nc, js, nil)

	js.EXPECT().
		Publish(gomock.Any(), "conversations.my_app.thread_created", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var event domain.SyncEvent
			require.NoError(t, json.Unmarshal(data, &event))
			assert.Equal(t, domain.SyncEventThreadCreated, event.Type)
			assert.Equal(t, "0xtxhash", event.TxHash)
			return &natsjs.PubAck{Stream: "CONVERSATION_EVENTS", Sequence: 1}, nil
		})

	pub, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)

	err = pub.PublishEvent(context.Background(), &domain.SyncEvent{
		Type:   domain.SyncEventThreadCreated,
		AppID:  "my_app",
		TxHash: "0xtxhash",
	})
	assert.NoError(t, err)
}

func TestPublishEvent_PublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	pub, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)

	err = pub.PublishEvent(context.Background(), &domain.SyncEvent{
		Type:  domain.SyncEventDriftDetected,
		AppID: "my_app",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish")
}

func TestNewPublisher_ConnectFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, assert.AnError)

	_, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}
