package poller

import (
	"context"
	"time"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/compute"
	"github.com/ainft-labs/ainft-sync/internal/domain"
)

// DefaultBalancePollInterval is the fixed interval between balance polls.
const DefaultBalancePollInterval = 2 * time.Second

// BalanceWaiter waits for the provider-reported balance to reach an expected
// value after a charge. The provider's internal credit ledger settles
// asynchronously, so the charge transaction id alone proves nothing about the
// visible balance.
//
//go:generate mockgen -source=balance.go -destination=../mocks/balance_waiter.go -package=mocks -mock_names=BalanceWaiter=MockBalanceWaiter
type BalanceWaiter interface {
	// Await polls the balance until it equals expected or the timeout
	// elapses. A value other than expected is not a failure, only "not
	// yet": concurrent charges from other callers make the balance
	// non-monotonic, so only an exact match succeeds. On timeout the
	// charge transaction id is surfaced for out-of-band verification.
	Await(ctx context.Context, service string, expected float64, chargeTxID string, timeout time.Duration) (float64, error)
}

type balanceWaiter struct {
	bridge   compute.Bridge
	clock    adapter.Clock
	interval time.Duration
}

// NewBalanceWaiter creates a balance reconciliation poller.
func NewBalanceWaiter(bridge compute.Bridge, clock adapter.Clock, interval time.Duration) BalanceWaiter {
	if interval <= 0 {
		interval = DefaultBalancePollInterval
	}
	return &balanceWaiter{
		bridge:   bridge,
		clock:    clock,
		interval: interval,
	}
}

func (w *balanceWaiter) Await(ctx context.Context, service string, expected float64, chargeTxID string, timeout time.Duration) (float64, error) {
	deadline := w.clock.Now().Add(timeout)

	for {
		select {
		case <-ctx.Done():
			return 0, domain.WrapError(domain.ErrCodeDeadlineExceeded, ctx.Err(),
				"wait for balance of %q cancelled", service).WithTx(chargeTxID)
		case <-w.clock.After(w.interval):
		}

		if w.clock.Now().After(deadline) {
			return 0, domain.NewDeadlineExceeded(
				"balance of %q did not reach %v within %s", service, expected, timeout).WithTx(chargeTxID)
		}

		balance, err := w.bridge.GetBalance(ctx, service)
		if err != nil {
			return 0, err
		}
		if balance == expected {
			return balance, nil
		}
	}
}
