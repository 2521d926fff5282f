// Package poller implements the bounded polling loops that wait for
// asynchronous provider-side effects: run completion and balance settlement.
// Both loops are timer-driven and cancellable through the caller's context.
package poller

import (
	"context"
	"time"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/compute"
	"github.com/ainft-labs/ainft-sync/internal/domain"
)

// DefaultRunPollInterval is the fixed interval between run status polls.
// Constant-interval polling is sufficient given the short expected run
// durations; no backoff.
const DefaultRunPollInterval = 1500 * time.Millisecond

// Run is the provider-side unit of work for "let the assistant respond in
// this thread".
type Run struct {
	ID        string           `json:"id"`
	ThreadID  string           `json:"thread_id,omitempty"`
	Status    domain.RunStatus `json:"status"`
	LastError string           `json:"last_error,omitempty"`
}

type retrieveRunPayload struct {
	ThreadID string `json:"thread_id"`
	RunID    string `json:"run_id"`
}

// RunWaiter polls a run until it reaches a terminal state or the timeout
// elapses.
//
//go:generate mockgen -source=run.go -destination=../mocks/run_waiter.go -package=mocks -mock_names=RunWaiter=MockRunWaiter
type RunWaiter interface {
	// Await blocks until the run completes, fails, or the timeout elapses.
	// A timeout yields deadline_exceeded carrying the run id; the run's
	// true outcome is unknown at that point.
	Await(ctx context.Context, service, threadID, runID string, timeout time.Duration) (*Run, error)
}

type runWaiter struct {
	bridge   compute.Bridge
	clock    adapter.Clock
	json     adapter.JSON
	interval time.Duration
}

// NewRunWaiter creates a run-completion poller.
func NewRunWaiter(bridge compute.Bridge, clock adapter.Clock, jsonAdapter adapter.JSON, interval time.Duration) RunWaiter {
	if interval <= 0 {
		interval = DefaultRunPollInterval
	}
	return &runWaiter{
		bridge:   bridge,
		clock:    clock,
		json:     jsonAdapter,
		interval: interval,
	}
}

func (w *runWaiter) Await(ctx context.Context, service, threadID, runID string, timeout time.Duration) (*Run, error) {
	deadline := w.clock.Now().Add(timeout)

	for {
		select {
		case <-ctx.Done():
			return nil, domain.WrapError(domain.ErrCodeDeadlineExceeded, ctx.Err(),
				"wait for run %s cancelled", runID).WithRun(runID)
		case <-w.clock.After(w.interval):
		}

		if w.clock.Now().After(deadline) {
			return nil, domain.NewDeadlineExceeded(
				"run %s did not reach a terminal state within %s", runID, timeout).WithRun(runID)
		}

		data, err := w.bridge.Invoke(ctx, service, domain.OpRetrieveRun, retrieveRunPayload{
			ThreadID: threadID,
			RunID:    runID,
		}, w.interval*2)
		if err != nil {
			return nil, err
		}

		var run Run
		if err := w.json.Unmarshal(data, &run); err != nil {
			return nil, domain.WrapError(domain.ErrCodeInternal, err, "failed to decode run %s", runID)
		}
		if !run.Status.Terminal() {
			continue
		}
		if run.Status == domain.RunStatusCompleted {
			return &run, nil
		}
		return nil, domain.NewProviderError(nil,
			"run %s terminated with status %s", runID, run.Status).WithRun(runID)
	}
}
