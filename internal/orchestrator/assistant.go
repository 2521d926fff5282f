package orchestrator

import (
	"context"
	"sort"

	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/keypath"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
)

// CreateAssistantParams are the caller parameters for CreateAssistant.
type CreateAssistantParams struct {
	AppID       string
	TokenID     string
	ServiceName string
	Caller      string
	Config      domain.AssistantConfig
}

type providerAssistant struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"created_at"`
}

type assistantIDPayload struct {
	AssistantID string `json:"assistant_id"`
}

// CreateAssistant creates an assistant on the provider and reflects it on the
// ledger, installing the per-user write rule and the thread/message retention
// policies atomically alongside the assistant node.
func (o *Orchestrator) CreateAssistant(ctx context.Context, p CreateAssistantParams) (*domain.AssistantWrite, error) {
	caller, err := normalizeCaller(p.Caller)
	if err != nil {
		return nil, err
	}
	role, err := o.gate.ResolveRole(ctx, p.AppID, caller)
	if err != nil {
		return nil, err
	}
	token, err := o.gate.RequireToken(ctx, p.AppID, p.TokenID)
	if err != nil {
		return nil, err
	}
	if _, err := o.gate.RequireServiceBinding(ctx, p.AppID, p.ServiceName); err != nil {
		return nil, err
	}
	if err := o.gate.RequireNoAssistant(ctx, p.AppID, p.TokenID, p.ServiceName); err != nil {
		return nil, err
	}

	data, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpCreateAssistant, p.Config, o.config.InvokeTimeout)
	if err != nil {
		return nil, err
	}
	var created providerAssistant
	if err := o.json.Unmarshal(data, &created); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, err, "failed to decode created assistant")
	}

	node := domain.Assistant{
		ID:        created.ID,
		Config:    p.Config,
		CreatedAt: created.CreatedAt,
	}
	ops := []ledger.Op{
		o.builder.ValueOp(keypath.Assistant(p.AppID, p.TokenID, p.ServiceName), node),
		o.builder.WriteRuleOp(keypath.UserHistoryRule(p.AppID, p.TokenID, p.ServiceName), userHistoryWritePredicate),
		o.builder.RetentionRuleOp(keypath.ThreadsRule(p.AppID, p.TokenID, p.ServiceName), threadRetention),
		o.builder.RetentionRuleOp(keypath.MessagesRule(p.AppID, p.TokenID, p.ServiceName), messageRetention),
	}

	receipt, err := o.commit(ctx, role, caller, ops, &domain.SyncEvent{
		Type:        domain.SyncEventAssistantCreated,
		AppID:       p.AppID,
		TokenID:     p.TokenID,
		ServiceName: p.ServiceName,
		LedgerPath:  keypath.Assistant(p.AppID, p.TokenID, p.ServiceName),
	})
	if err != nil {
		return nil, err
	}

	assistant := node
	assistant.Owner = token.Owner
	assistant.TokenID = p.TokenID
	return &domain.AssistantWrite{Receipt: receipt, Assistant: &assistant}, nil
}

// UpdateAssistantParams are the caller parameters for UpdateAssistant.
type UpdateAssistantParams struct {
	AppID       string
	TokenID     string
	ServiceName string
	Caller      string
	Config      domain.AssistantConfig
}

// UpdateAssistant replaces the assistant's configuration sub-object on the
// provider and on the ledger.
func (o *Orchestrator) UpdateAssistant(ctx context.Context, p UpdateAssistantParams) (*domain.AssistantWrite, error) {
	caller, err := normalizeCaller(p.Caller)
	if err != nil {
		return nil, err
	}
	role, err := o.gate.ResolveRole(ctx, p.AppID, caller)
	if err != nil {
		return nil, err
	}
	token, err := o.gate.RequireToken(ctx, p.AppID, p.TokenID)
	if err != nil {
		return nil, err
	}
	assistant, err := o.gate.RequireAssistant(ctx, p.AppID, p.TokenID, p.ServiceName, "")
	if err != nil {
		return nil, err
	}

	payload := struct {
		AssistantID string `json:"assistant_id"`
		domain.AssistantConfig
	}{AssistantID: assistant.ID, AssistantConfig: p.Config}
	if _, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpModifyAssistant, payload, o.config.InvokeTimeout); err != nil {
		return nil, err
	}

	ops := []ledger.Op{
		o.builder.ValueOp(keypath.Assistant(p.AppID, p.TokenID, p.ServiceName)+"/config", p.Config),
	}
	receipt, err := o.commit(ctx, role, caller, ops, &domain.SyncEvent{
		Type:        domain.SyncEventAssistantUpdated,
		AppID:       p.AppID,
		TokenID:     p.TokenID,
		ServiceName: p.ServiceName,
		LedgerPath:  keypath.Assistant(p.AppID, p.TokenID, p.ServiceName),
	})
	if err != nil {
		return nil, err
	}

	assistant.Config = p.Config
	assistant.Owner = token.Owner
	return &domain.AssistantWrite{Receipt: receipt, Assistant: assistant}, nil
}

// DeleteAssistantParams are the caller parameters for DeleteAssistant.
type DeleteAssistantParams struct {
	AppID       string
	TokenID     string
	ServiceName string
	Caller      string
}

// DeleteAssistant deletes the assistant on the provider and removes the
// assistant node together with its write and retention rules atomically.
func (o *Orchestrator) DeleteAssistant(ctx context.Context, p DeleteAssistantParams) (*domain.AssistantWrite, error) {
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

	if _, err := o.bridge.Invoke(ctx, p.ServiceName, domain.OpDeleteAssistant, assistantIDPayload{AssistantID: assistant.ID}, o.config.InvokeTimeout); err != nil {
		return nil, err
	}

	ops := []ledger.Op{
		o.builder.ValueOp(keypath.Assistant(p.AppID, p.TokenID, p.ServiceName), nil),
		o.builder.RemoveRuleOp(keypath.UserHistoryRule(p.AppID, p.TokenID, p.ServiceName)),
		o.builder.RemoveRuleOp(keypath.ThreadsRule(p.AppID, p.TokenID, p.ServiceName)),
		o.builder.RemoveRuleOp(keypath.MessagesRule(p.AppID, p.TokenID, p.ServiceName)),
	}
	receipt, err := o.commit(ctx, role, caller, ops, &domain.SyncEvent{
		Type:        domain.SyncEventAssistantDeleted,
		AppID:       p.AppID,
		TokenID:     p.TokenID,
		ServiceName: p.ServiceName,
		LedgerPath:  keypath.Assistant(p.AppID, p.TokenID, p.ServiceName),
	})
	if err != nil {
		return nil, err
	}

	return &domain.AssistantWrite{Receipt: receipt, Assistant: assistant}, nil
}

// GetAssistant returns the assistant stored for a token and service, with
// ownership inherited from the token for display.
func (o *Orchestrator) GetAssistant(ctx context.Context, appID, tokenID, serviceName string) (*domain.Assistant, error) {
	token, err := o.gate.RequireToken(ctx, appID, tokenID)
	if err != nil {
		return nil, err
	}
	assistant, err := o.gate.RequireAssistant(ctx, appID, tokenID, serviceName, "")
	if err != nil {
		return nil, err
	}
	assistant.Owner = token.Owner
	return assistant, nil
}

// tokenNode is the ledger shape of a token with its service subtree.
type tokenNode struct {
	Owner string                      `json:"owner"`
	AI    map[string]domain.Assistant `json:"ai,omitempty"`
}

// ListAssistants returns every assistant under an application for the given
// service, ordered by token id.
func (o *Orchestrator) ListAssistants(ctx context.Context, appID, serviceName string) ([]domain.Assistant, error) {
	if _, err := o.gate.RequireApplication(ctx, appID); err != nil {
		return nil, err
	}

	raw, err := o.ledger.ReadValue(ctx, keypath.Tokens(appID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []domain.Assistant{}, nil
	}

	var tokens map[string]tokenNode
	if err := o.json.Unmarshal(raw, &tokens); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, err, "failed to decode tokens of application %s", appID)
	}

	assistants := make([]domain.Assistant, 0, len(tokens))
	for tokenID, token := range tokens {
		assistant, ok := token.AI[serviceName]
		if !ok {
			continue
		}
		assistant.Owner = token.Owner
		assistant.TokenID = tokenID
		assistants = append(assistants, assistant)
	}
	sort.Slice(assistants, func(i, j int) bool {
		return assistants[i].TokenID < assistants[j].TokenID
	})
	return assistants, nil
}
