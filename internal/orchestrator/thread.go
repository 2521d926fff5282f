package orchestrator

import (
	"context"
	"sort"

	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/keypath"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
)

// CreateThreadParams are the caller parameters for CreateThread. The thread
// is created under the caller's own history subtree.
type CreateThreadParams struct {
	AppID       string
	TokenID     string
	ServiceName string
	Caller      string
	Metadata    map[string]string
}

type providerThread struct {
	ID        string            `json:"id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt int64             `json:"created_at"`
}

type threadIDPayload struct {
	ThreadID string `json:"thread_id"`
}

// CreateThread creates a conversation thread on the provider and reflects it
// on the ledger. The assistant must already exist.
func (o *Orchestrator) CreateThread(ctx context.Context, p CreateThreadParams) (*domain.ThreadWrite, error) {
	caller, err := normalizeCaller(p.Caller)
	if err != nil {
		return nil, err
	}
	role, err := o.gate.ResolveRole(ctx, p.AppID, caller)
	if err != nil {
		return nil, err
	}
	if _, err := o.gate.RequireAssistant(ctx, p.AppID, p.TokenID, p.ServiceName, ""); err != nil {
		return nil, err
	}

	payload := struct {
		Metadata map[string]string `json:"metadata,omitempty"`
	}{Metadata: p.Metadata}
	data, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpCreateThread, payload, o.config.InvokeTimeout)
	if err != nil {
		return nil, err
	}
	var created providerThread
	if err := o.json.Unmarshal(data, &created); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, err, "failed to decode created thread")
	}

	node := domain.ThreadNode{
		ID:        created.ID,
		Metadata:  created.Metadata,
		CreatedAt: created.CreatedAt,
		UpdatedAt: created.CreatedAt,
	}
	threadPath := keypath.Thread(p.AppID, p.TokenID, p.ServiceName, caller, created.ID)
	ops := []ledger.Op{
		o.builder.ValueOp(threadPath, node),
	}
	receipt, err := o.commit(ctx, role, caller, ops, &domain.SyncEvent{
		Type:        domain.SyncEventThreadCreated,
		AppID:       p.AppID,
		TokenID:     p.TokenID,
		ServiceName: p.ServiceName,
		UserAddress: caller,
		LedgerPath:  threadPath,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ThreadWrite{Receipt: receipt, Thread: node.Thread()}, nil
}

// UpdateThreadParams are the caller parameters for UpdateThread.
type UpdateThreadParams struct {
	AppID       string
	TokenID     string
	ServiceName string
	Caller      string
	ThreadID    string
	Metadata    map[string]string
}

// UpdateThread replaces the thread metadata on the provider and merges it
// into the freshly re-read thread node, preserving concurrent fields such as
// the messages container.
func (o *Orchestrator) UpdateThread(ctx context.Context, p UpdateThreadParams) (*domain.ThreadWrite, error) {
	caller, err := normalizeCaller(p.Caller)
	if err != nil {
		return nil, err
	}
	role, err := o.gate.ResolveRole(ctx, p.AppID, caller)
	if err != nil {
		return nil, err
	}
	if _, err := o.gate.RequireThread(ctx, p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID); err != nil {
		return nil, err
	}

	payload := struct {
		ThreadID string            `json:"thread_id"`
		Metadata map[string]string `json:"metadata,omitempty"`
	}{ThreadID: p.ThreadID, Metadata: p.Metadata}
	if _, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpModifyThread, payload, o.config.InvokeTimeout); err != nil {
		return nil, err
	}

	// Re-read after the bridge call: the node may have changed while the
	// provider call was in flight, and a stale merge would clobber it.
	node, err := o.gate.RequireThread(ctx, p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID)
	if err != nil {
		return nil, err
	}
	node.Metadata = p.Metadata
	node.UpdatedAt = o.clock.Now().Unix()

	threadPath := keypath.Thread(p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID)
	ops := []ledger.Op{
		o.builder.ValueOp(threadPath, node),
	}
	receipt, err := o.commit(ctx, role, caller, ops, &domain.SyncEvent{
		Type:        domain.SyncEventThreadUpdated,
		AppID:       p.AppID,
		TokenID:     p.TokenID,
		ServiceName: p.ServiceName,
		UserAddress: caller,
		LedgerPath:  threadPath,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ThreadWrite{Receipt: receipt, Thread: node.Thread()}, nil
}

// DeleteThreadParams are the caller parameters for DeleteThread.
type DeleteThreadParams struct {
	AppID       string
	TokenID     string
	ServiceName string
	Caller      string
	ThreadID    string
}

// DeleteThread deletes the thread on the provider and removes its subtree
// from the ledger.
func (o *Orchestrator) DeleteThread(ctx context.Context, p DeleteThreadParams) (*domain.ThreadWrite, error) {
	caller, err := normalizeCaller(p.Caller)
	if err != nil {
		return nil, err
	}
	role, err := o.gate.ResolveRole(ctx, p.AppID, caller)
	if err != nil {
		return nil, err
	}
	node, err := o.gate.RequireThread(ctx, p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID)
	if err != nil {
		return nil, err
	}

	if _, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpDeleteThread, threadIDPayload{ThreadID: p.ThreadID}, o.config.InvokeTimeout); err != nil {
		return nil, err
	}

	threadPath := keypath.Thread(p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID)
	ops := []ledger.Op{
		o.builder.ValueOp(threadPath, nil),
	}
	receipt, err := o.commit(ctx, role, caller, ops, &domain.SyncEvent{
		Type:        domain.SyncEventThreadDeleted,
		AppID:       p.AppID,
		TokenID:     p.TokenID,
		ServiceName: p.ServiceName,
		UserAddress: caller,
		LedgerPath:  threadPath,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ThreadWrite{Receipt: receipt, Thread: node.Thread()}, nil
}

// GetThread returns one thread of a user's history.
func (o *Orchestrator) GetThread(ctx context.Context, appID, tokenID, serviceName, userAddress, threadID string) (*domain.Thread, error) {
	node, err := o.gate.RequireThread(ctx, appID, tokenID, serviceName, domain.NormalizeAddress(userAddress), threadID)
	if err != nil {
		return nil, err
	}
	return node.Thread(), nil
}

// ListThreads returns every thread of a user's history, most recently
// updated first.
func (o *Orchestrator) ListThreads(ctx context.Context, appID, tokenID, serviceName, userAddress string) ([]domain.Thread, error) {
	raw, err := o.ledger.ReadValue(ctx, keypath.Threads(appID, tokenID, serviceName, domain.NormalizeAddress(userAddress)))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []domain.Thread{}, nil
	}

	var nodes map[string]domain.ThreadNode
	if err := o.json.Unmarshal(raw, &nodes); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, err, "failed to decode threads of user %s", userAddress)
	}

	threads := make([]domain.Thread, 0, len(nodes))
	for _, node := range nodes {
		threads = append(threads, *node.Thread())
	}
	sort.Slice(threads, func(i, j int) bool {
		return threads[i].UpdatedAt > threads[j].UpdatedAt
	})
	return threads, nil
}
