// Package orchestrator composes the authorization gate, the compute bridge,
// the pollers and the transaction builder into the conversation mutation
// entry points. Every mutation follows the same template: resolve role, run
// preconditions, invoke the provider, build an atomic ledger transaction and
// commit it when the caller's role commits the ledger.
package orchestrator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/authz"
	"github.com/ainft-labs/ainft-sync/internal/compute"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
	"github.com/ainft-labs/ainft-sync/internal/logger"
	"github.com/ainft-labs/ainft-sync/internal/messaging"
	"github.com/ainft-labs/ainft-sync/internal/poller"
)

// userHistoryWritePredicate authorizes writes under a user's history subtree
// to the authoring user address or an application admin. The $user_addr and
// $app_id variables are bound by the ledger at evaluation time.
const userHistoryWritePredicate = "auth.addr === $user_addr || util.isAppAdmin($app_id, auth.addr, getValue) === true"

var (
	// threadRetention bounds the number of threads retained per user.
	threadRetention = ledger.RetentionPolicy{MaxSiblings: 30, DeleteBatchSize: 10}
	// messageRetention bounds the number of messages retained per thread.
	messageRetention = ledger.RetentionPolicy{MaxSiblings: 200, DeleteBatchSize: 100}
)

// Config holds orchestrator timeouts.
type Config struct {
	// InvokeTimeout bounds a single compute bridge call.
	InvokeTimeout time.Duration
	// RunTimeout bounds the total wall-clock wait for run completion.
	RunTimeout time.Duration
	// BalanceTimeout bounds the total wall-clock wait for balance settlement.
	BalanceTimeout time.Duration
}

// Orchestrator is the conversation state synchronization entry point.
type Orchestrator struct {
	gate     authz.Gate
	bridge   compute.Bridge
	runs     poller.RunWaiter
	balances poller.BalanceWaiter
	ledger   ledger.Ledger
	builder  *ledger.Builder
	events   messaging.Publisher
	clock    adapter.Clock
	json     adapter.JSON
	config   Config
}

// New creates an orchestrator.
func New(
	gate authz.Gate,
	bridge compute.Bridge,
	runs poller.RunWaiter,
	balances poller.BalanceWaiter,
	ledgerPort ledger.Ledger,
	builder *ledger.Builder,
	events messaging.Publisher,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
	cfg Config,
) *Orchestrator {
	if cfg.InvokeTimeout <= 0 {
		cfg.InvokeTimeout = 60 * time.Second
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 2 * time.Minute
	}
	if cfg.BalanceTimeout <= 0 {
		cfg.BalanceTimeout = 60 * time.Second
	}
	if events == nil {
		events = messaging.NewNoopPublisher()
	}
	return &Orchestrator{
		gate:     gate,
		bridge:   bridge,
		runs:     runs,
		balances: balances,
		ledger:   ledgerPort,
		builder:  builder,
		events:   events,
		clock:    clock,
		json:     jsonAdapter,
		config:   cfg,
	}
}

// normalizeCaller validates and lowercases the caller address.
func normalizeCaller(caller string) (string, error) {
	if !domain.ValidAddress(caller) {
		return "", domain.NewPermissionDenied("caller %q is not a valid address", caller)
	}
	return domain.NormalizeAddress(caller), nil
}

// commit builds the atomic transaction and submits it when the role commits
// the ledger. Allow-listed non-owner callers get a nil receipt: the provider
// mutation happened but the ledger write is left to the owner.
func (o *Orchestrator) commit(ctx context.Context, role domain.Role, address string, ops []ledger.Op, event *domain.SyncEvent) (*domain.LedgerReceipt, error) {
	if !role.CommitsLedger() {
		return nil, nil
	}

	tx, err := o.builder.Atomic(address, ops)
	if err != nil {
		return nil, err
	}

	receipt, err := o.ledger.Commit(ctx, tx)
	if err != nil {
		return nil, err
	}
	if !receipt.OK() {
		return nil, domain.NewInternal("ledger transaction committed with non-zero result").WithTx(receipt.TxHash)
	}

	if event != nil {
		event.TxHash = receipt.TxHash
		event.Timestamp = o.clock.Now().Unix()
		// The ledger commit already succeeded; a publish failure must not
		// mask it from the caller.
		if err := o.events.PublishEvent(ctx, event); err != nil {
			logger.WarnCtx(ctx, "failed to publish sync event",
				zap.String("type", string(event.Type)),
				zap.String("tx_hash", receipt.TxHash),
				zap.Error(err),
			)
		}
	}

	return &domain.LedgerReceipt{TxHash: receipt.TxHash, Code: receipt.Result.Code}, nil
}
