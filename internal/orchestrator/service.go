package orchestrator

import (
	"context"

	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/keypath"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
)

// ConfigureServiceParams are the caller parameters for ConfigureService.
type ConfigureServiceParams struct {
	AppID       string
	ServiceName string
	Caller      string
	Kind        domain.ServiceKind
	Description string
}

// ConfigureService declares a compute service binding for an application.
// Configuration mutations are owner-only; the allow-list does not apply.
func (o *Orchestrator) ConfigureService(ctx context.Context, p ConfigureServiceParams) (*domain.ServiceBindingWrite, error) {
	caller, err := normalizeCaller(p.Caller)
	if err != nil {
		return nil, err
	}
	if err := o.gate.RequireOwner(ctx, p.AppID, caller); err != nil {
		return nil, err
	}
	if err := o.bridge.Ready(ctx, p.ServiceName); err != nil {
		return nil, err
	}

	kind := p.Kind
	if kind == "" {
		kind = domain.ServiceKindChat
	}
	binding := domain.ServiceBinding{
		Name:        p.ServiceName,
		Kind:        kind,
		Description: p.Description,
		CreatedAt:   o.clock.Now().Unix(),
	}

	bindingPath := keypath.ServiceBinding(p.AppID, p.ServiceName)
	ops := []ledger.Op{
		o.builder.ValueOp(bindingPath, binding),
	}
	receipt, err := o.commit(ctx, domain.RoleOwner, caller, ops, &domain.SyncEvent{
		Type:        domain.SyncEventServiceBound,
		AppID:       p.AppID,
		ServiceName: p.ServiceName,
		LedgerPath:  bindingPath,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ServiceBindingWrite{Receipt: receipt, Binding: &binding}, nil
}

// DepositCreditParams are the caller parameters for DepositCredit.
type DepositCreditParams struct {
	AppID       string
	ServiceName string
	Caller      string
	Amount      float64
}

// DepositCredit charges credit on the provider and waits for the reported
// balance to reach the expected value. The provider's credit ledger settles
// asynchronously, so the charge call returning is not settlement.
func (o *Orchestrator) DepositCredit(ctx context.Context, p DepositCreditParams) (*domain.CreditDeposit, error) {
	caller, err := normalizeCaller(p.Caller)
	if err != nil {
		return nil, err
	}
	if err := o.gate.RequireOwner(ctx, p.AppID, caller); err != nil {
		return nil, err
	}
	if _, err := o.gate.RequireServiceBinding(ctx, p.AppID, p.ServiceName); err != nil {
		return nil, err
	}

	current, err := o.bridge.GetBalance(ctx, p.ServiceName)
	if err != nil {
		return nil, err
	}
	txID, err := o.bridge.Charge(ctx, p.ServiceName, p.Amount)
	if err != nil {
		return nil, err
	}

	balance, err := o.balances.Await(ctx, p.ServiceName, current+p.Amount, txID, o.config.BalanceTimeout)
	if err != nil {
		return nil, err
	}

	return &domain.CreditDeposit{ChargeTxID: txID, Balance: balance}, nil
}

// GetCredit returns the provider-reported credit balance for a configured
// service.
func (o *Orchestrator) GetCredit(ctx context.Context, appID, serviceName string) (float64, error) {
	if _, err := o.gate.RequireServiceBinding(ctx, appID, serviceName); err != nil {
		return 0, err
	}
	return o.bridge.GetBalance(ctx, serviceName)
}
