package compute

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/logger"
)

// Config holds bridge behavior settings.
type Config struct {
	// UseSession brackets every invocation with a login/logout pair.
	UseSession bool
	// DefaultTimeout bounds an invocation when the caller passes no timeout.
	DefaultTimeout time.Duration
}

// Bridge sends typed operation requests to the compute provider, enforcing a
// per-call timeout and mapping provider failures to typed errors. A timed-out
// call abandons only the local wait: the provider-side operation keeps
// running and its outcome is unknown to the caller.
//
//go:generate mockgen -source=bridge.go -destination=../mocks/bridge.go -package=mocks -mock_names=Bridge=MockBridge
type Bridge interface {
	// Ready fails with unavailable when the named service is not running.
	Ready(ctx context.Context, service string) error

	// Invoke performs one typed operation and returns the provider data
	// payload on success.
	Invoke(ctx context.Context, service string, op domain.OperationType, payload interface{}, timeout time.Duration) (json.RawMessage, error)

	// GetBalance returns the provider-reported credit balance.
	GetBalance(ctx context.Context, service string) (float64, error)

	// Charge deposits credit and returns the provider transaction id.
	Charge(ctx context.Context, service string, amount float64) (string, error)
}

type bridge struct {
	provider Provider
	config   Config
}

// NewBridge creates a compute bridge over the given provider port. The
// session lifecycle is owned by this instance, not by process-wide state, so
// concurrent orchestrator invocations can hold separate bridges safely.
func NewBridge(provider Provider, cfg Config) Bridge {
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = 60 * time.Second
	}
	return &bridge{provider: provider, config: cfg}
}

// Ready fails with unavailable when the named service is not running.
func (b *bridge) Ready(ctx context.Context, service string) error {
	running, err := b.provider.IsServiceRunning(ctx, service)
	if err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, err, "failed to check service %q", service)
	}
	if !running {
		return domain.NewUnavailable("service %q is not running", service)
	}
	return nil
}

// Invoke performs one typed operation against the provider.
func (b *bridge) Invoke(ctx context.Context, service string, op domain.OperationType, payload interface{}, timeout time.Duration) (json.RawMessage, error) {
	if err := b.Ready(ctx, service); err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = b.config.DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if b.config.UseSession {
		if err := b.provider.Login(callCtx, service); err != nil {
			return nil, domain.WrapError(domain.ErrCodeUnavailable, err, "failed to establish session with %q", service)
		}
		// Logout must run even when the call fails. A fresh context is
		// used because callCtx may already be expired by then.
		defer func() {
			logoutCtx, logoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer logoutCancel()
			if err := b.provider.Logout(logoutCtx, service); err != nil {
				logger.Warn("failed to close provider session",
					zap.String("service", service),
					zap.Error(err),
				)
			}
		}()
	}

	resp, err := b.provider.Invoke(callCtx, service, op, payload)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, domain.WrapError(domain.ErrCodeDeadlineExceeded, err,
				"%s on %q timed out after %s (provider-side operation not cancelled)", op, service, timeout)
		}
		return nil, domain.WrapError(domain.ErrCodeUnavailable, err, "%s on %q failed", op, service)
	}
	if resp.Status == StatusFail {
		return nil, domain.NewProviderError(resp.Data, "%s on %q reported failure", op, service)
	}

	return resp.Data, nil
}

// GetBalance returns the provider-reported credit balance.
func (b *bridge) GetBalance(ctx context.Context, service string) (float64, error) {
	balance, err := b.provider.GetBalance(ctx, service)
	if err != nil {
		return 0, domain.WrapError(domain.ErrCodeUnavailable, err, "failed to get balance of %q", service)
	}
	return balance, nil
}

// Charge deposits credit and returns the provider transaction id.
func (b *bridge) Charge(ctx context.Context, service string, amount float64) (string, error) {
	txID, err := b.provider.Charge(ctx, service, amount)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeUnavailable, err, "failed to charge %q", service)
	}
	return txID, nil
}
