package poller_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/mocks"
	"github.com/ainft-labs/ainft-sync/internal/poller"
)

// tick returns an already-fired timer channel so polls run back to back.
func tick() <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

type runWaiterMocks struct {
	ctrl   *gomock.Controller
	bridge *mocks.MockBridge
	clock  *mocks.MockClock
	waiter poller.RunWaiter
}

func setupRunWaiter(t *testing.T) *runWaiterMocks {
	ctrl := gomock.NewController(t)
	tm := &runWaiterMocks{
		ctrl:   ctrl,
		bridge: mocks.NewMockBridge(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}
	tm.waiter = poller.NewRunWaiter(tm.bridge, tm.clock, adapter.NewJSON(), time.Second)
	return tm
}

func TestRunWaiter_CompletesAfterPolls(t *testing.T) {
	tm := setupRunWaiter(t)
	defer tm.ctrl.Finish()

	t0 := time.Unix(1700000000, 0)
	tm.clock.EXPECT().Now().Return(t0).AnyTimes()
	tm.clock.EXPECT().After(time.Second).DoAndReturn(func(time.Duration) <-chan time.Time { return tick() }).AnyTimes()

	gomock.InOrder(
		tm.bridge.EXPECT().
			Invoke(gomock.Any(), "openai", domain.OpRetrieveRun, gomock.Any(), 2*time.Second).
			Return(json.RawMessage(`{"id":"run_1","status":"in_progress"}`), nil),
		tm.bridge.EXPECT().
			Invoke(gomock.Any(), "openai", domain.OpRetrieveRun, gomock.Any(), 2*time.Second).
			Return(json.RawMessage(`{"id":"run_1","status":"completed"}`), nil),
	)

	run, err := tm.waiter.Await(context.Background(), "openai", "th_1", "run_1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "run_1", run.ID)
	assert.Equal(t, domain.RunStatusCompleted, run.Status)
}

func TestRunWaiter_FailedRun(t *testing.T) {
	tm := setupRunWaiter(t)
	defer tm.ctrl.Finish()

	t0 := time.Unix(1700000000, 0)
	tm.clock.EXPECT().Now().Return(t0).AnyTimes()
	tm.clock.EXPECT().After(time.Second).DoAndReturn(func(time.Duration) <-chan time.Time { return tick() }).AnyTimes()

	tm.bridge.EXPECT().
		Invoke(gomock.Any(), "openai", domain.OpRetrieveRun, gomock.Any(), 2*time.Second).
		Return(json.RawMessage(`{"id":"run_1","status":"failed","last_error":"model overloaded"}`), nil)

	_, err := tm.waiter.Await(context.Background(), "openai", "th_1", "run_1", time.Minute)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeProviderError, domain.CodeOf(err))

	var typed *domain.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "run_1", typed.RunID)
}

func TestRunWaiter_Timeout(t *testing.T) {
	tm := setupRunWaiter(t)
	defer tm.ctrl.Finish()

	t0 := time.Unix(1700000000, 0)
	// The deadline computation sees t0; the in-loop check sees a time past it.
	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(t0),
		tm.clock.EXPECT().Now().Return(t0.Add(2*time.Minute)),
	)
	tm.clock.EXPECT().After(time.Second).DoAndReturn(func(time.Duration) <-chan time.Time { return tick() })

	_, err := tm.waiter.Await(context.Background(), "openai", "th_1", "run_1", time.Minute)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeDeadlineExceeded, domain.CodeOf(err))

	var typed *domain.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "run_1", typed.RunID)
}

func TestRunWaiter_ContextCancelled(t *testing.T) {
	tm := setupRunWaiter(t)
	defer tm.ctrl.Finish()

	t0 := time.Unix(1700000000, 0)
	tm.clock.EXPECT().Now().Return(t0).AnyTimes()
	// Never fires; cancellation must win.
	tm.clock.EXPECT().After(time.Second).Return(make(chan time.Time)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tm.waiter.Await(ctx, "openai", "th_1", "run_1", time.Minute)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeDeadlineExceeded, domain.CodeOf(err))
}
