package orchestrator

import (
	"context"

	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/keypath"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
	"github.com/ainft-labs/ainft-sync/internal/poller"
)

// CreateMessageParams are the caller parameters for CreateMessage.
type CreateMessageParams struct {
	AppID       string
	TokenID     string
	ServiceName string
	Caller      string
	ThreadID    string
	Role        domain.MessageRole
	Content     string
	Metadata    map[string]string
}

// CreateMessage appends the caller's message to the thread, runs the
// assistant, awaits run completion and folds the entire resulting message
// batch into the ledger: the provider may append more than the one message
// the caller sent (typically the assistant's reply), and every returned
// message is keyed by its own creation timestamp.
func (o *Orchestrator) CreateMessage(ctx context.Context, p CreateMessageParams) (*domain.MessageWrite, error) {
	caller, err := normalizeCaller(p.Caller)
	if err != nil {
		return nil, err
	}
	role, err := o.gate.ResolveRole(ctx, p.AppID, caller)
	if err != nil {
		return nil, err
	}
	assistant, err := o.gate.RequireAssistant(ctx, p.AppID, p.TokenID, p.ServiceName, "")
	if err != nil {
		return nil, err
	}
	if _, err := o.gate.RequireThread(ctx, p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID); err != nil {
		return nil, err
	}

	messageRole := p.Role
	if messageRole == "" {
		messageRole = domain.MessageRoleUser
	}
	createPayload := struct {
		ThreadID string             `json:"thread_id"`
		Role     domain.MessageRole `json:"role"`
		Content  string             `json:"content"`
		Metadata map[string]string  `json:"metadata,omitempty"`
	}{ThreadID: p.ThreadID, Role: messageRole, Content: p.Content, Metadata: p.Metadata}
	if _, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpCreateMessage, createPayload, o.config.InvokeTimeout); err != nil {
		return nil, err
	}

	runPayload := struct {
		ThreadID    string `json:"thread_id"`
		AssistantID string `json:"assistant_id"`
	}{ThreadID: p.ThreadID, AssistantID: assistant.ID}
	runData, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpCreateRun, runPayload, o.config.InvokeTimeout)
	if err != nil {
		return nil, err
	}
	var run poller.Run
	if err := o.json.Unmarshal(runData, &run); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, err, "failed to decode created run")
	}

	if _, err := o.runs.Await(ctx, p.ServiceName, p.ThreadID, run.ID, o.config.RunTimeout); err != nil {
		return nil, err
	}

	listData, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpListMessages, threadIDPayload{ThreadID: p.ThreadID}, o.config.InvokeTimeout)
	if err != nil {
		return nil, err
	}
	var listed struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := o.json.Unmarshal(listData, &listed); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, err, "failed to decode thread messages")
	}

	// Fold against the freshly re-read node: concurrent writers may have
	// touched the thread while the run was executing, and prior messages
	// must never be overwritten.
	node, err := o.gate.RequireThread(ctx, p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]domain.Message, len(node.Messages)+len(listed.Messages))
	for key, msg := range node.Messages {
		merged[key] = msg
	}
	for _, msg := range listed.Messages {
		key := msg.Key()
		if _, exists := merged[key]; exists {
			continue
		}
		merged[key] = msg
	}

	now := o.clock.Now().Unix()
	threadPath := keypath.Thread(p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID)
	ops := []ledger.Op{
		o.builder.ValueOp(keypath.Messages(p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID), merged),
		o.builder.ValueOp(threadPath+"/updated_at", now),
	}
	receipt, err := o.commit(ctx, role, caller, ops, &domain.SyncEvent{
		Type:        domain.SyncEventMessagesFolded,
		AppID:       p.AppID,
		TokenID:     p.TokenID,
		ServiceName: p.ServiceName,
		UserAddress: caller,
		LedgerPath:  threadPath,
	})
	if err != nil {
		return nil, err
	}

	batch := make([]domain.Message, 0, len(merged))
	for _, msg := range merged {
		batch = append(batch, msg)
	}
	domain.SortMessages(batch)
	return &domain.MessageWrite{Receipt: receipt, Messages: batch}, nil
}

// UpdateMessageParams are the caller parameters for UpdateMessage. MessageID
// is the provider's message identifier, located by a linear scan over the
// thread's message set.
type UpdateMessageParams struct {
	AppID       string
	TokenID     string
	ServiceName string
	Caller      string
	ThreadID    string
	MessageID   string
	Metadata    map[string]string
}

// UpdateMessage replaces a message's metadata on the provider and on the
// ledger.
func (o *Orchestrator) UpdateMessage(ctx context.Context, p UpdateMessageParams) (*domain.MessageWrite, error) {
	caller, err := normalizeCaller(p.Caller)
	if err != nil {
		return nil, err
	}
	role, err := o.gate.ResolveRole(ctx, p.AppID, caller)
	if err != nil {
		return nil, err
	}
	key, msg, err := o.gate.RequireMessage(ctx, p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID, p.MessageID)
	if err != nil {
		return nil, err
	}

	payload := struct {
		ThreadID  string            `json:"thread_id"`
		MessageID string            `json:"message_id"`
		Metadata  map[string]string `json:"metadata,omitempty"`
	}{ThreadID: p.ThreadID, MessageID: p.MessageID, Metadata: p.Metadata}
	if _, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpModifyMessage, payload, o.config.InvokeTimeout); err != nil {
		return nil, err
	}

	updated := *msg
	updated.Metadata = p.Metadata

	messagePath := keypath.Message(p.AppID, p.TokenID, p.ServiceName, caller, p.ThreadID, key)
	ops := []ledger.Op{
		o.builder.ValueOp(messagePath, updated),
	}
	receipt, err := o.commit(ctx, role, caller, ops, &domain.SyncEvent{
		Type:        domain.SyncEventMessagesFolded,
		AppID:       p.AppID,
		TokenID:     p.TokenID,
		ServiceName: p.ServiceName,
		UserAddress: caller,
		LedgerPath:  messagePath,
	})
	if err != nil {
		return nil, err
	}

	return &domain.MessageWrite{Receipt: receipt, Messages: []domain.Message{updated}}, nil
}

// GetMessage finds one message by provider id. The lookup is a linear scan:
// messages are keyed by creation timestamp, not provider id.
func (o *Orchestrator) GetMessage(ctx context.Context, appID, tokenID, serviceName, userAddress, threadID, messageID string) (*domain.Message, error) {
	_, msg, err := o.gate.RequireMessage(ctx, appID, tokenID, serviceName, domain.NormalizeAddress(userAddress), threadID, messageID)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns every message of a thread ordered by creation time.
func (o *Orchestrator) ListMessages(ctx context.Context, appID, tokenID, serviceName, userAddress, threadID string) ([]domain.Message, error) {
	node, err := o.gate.RequireThread(ctx, appID, tokenID, serviceName, domain.NormalizeAddress(userAddress), threadID)
	if err != nil {
		return nil, err
	}
	return node.MessageList(), nil
}
