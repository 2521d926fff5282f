// Package authz validates existence and ownership preconditions against the
// ledger before any mutation is attempted. All checks are read-only and their
// failures are never retried.
package authz

import (
	"context"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/keypath"
	"github.com/ainft-labs/ainft-sync/internal/ledger"
)

// Gate is the precondition gate every mutation must pass.
//
//go:generate mockgen -source=gate.go -destination=../mocks/gate.go -package=mocks -mock_names=Gate=MockGate
type Gate interface {
	// ResolveRole returns the caller's role for the application. The owner
	// gets RoleOwner; a non-owner on an allow-listed application gets
	// RoleAllowlistedUser; anyone else is denied.
	ResolveRole(ctx context.Context, appID, caller string) (domain.Role, error)

	// RequireOwner fails with permission_denied unless caller is the
	// application owner. The allow-list does not apply.
	RequireOwner(ctx context.Context, appID, caller string) error

	// RequireApplication fails with not_found when the application is absent.
	RequireApplication(ctx context.Context, appID string) (*domain.Application, error)

	// RequireToken fails with not_found when the token is absent.
	RequireToken(ctx context.Context, appID, tokenID string) (*domain.Token, error)

	// RequireServiceBinding fails with not_found when the service binding
	// is absent.
	RequireServiceBinding(ctx context.Context, appID, serviceName string) (*domain.ServiceBinding, error)

	// RequireAssistant fails with not_found when the assistant is absent,
	// or when expectedID is non-empty and differs from the stored id.
	RequireAssistant(ctx context.Context, appID, tokenID, serviceName, expectedID string) (*domain.Assistant, error)

	// RequireNoAssistant fails with already_exists when an assistant is
	// already stored for the token and service.
	RequireNoAssistant(ctx context.Context, appID, tokenID, serviceName string) error

	// RequireThread fails with not_found when the thread is absent.
	RequireThread(ctx context.Context, appID, tokenID, serviceName, userAddress, threadID string) (*domain.ThreadNode, error)

	// RequireMessage finds a message by provider id within the thread,
	// failing with not_found when absent.
	RequireMessage(ctx context.Context, appID, tokenID, serviceName, userAddress, threadID, providerID string) (string, *domain.Message, error)
}

type gate struct {
	ledger    ledger.Ledger
	json      adapter.JSON
	allowlist map[string]struct{}
}

// New creates an authorization gate. allowlistedApps are the application ids
// permitted to let non-owner callers mutate conversational resources.
func New(ledgerPort ledger.Ledger, jsonAdapter adapter.JSON, allowlistedApps []string) Gate {
	allowlist := make(map[string]struct{}, len(allowlistedApps))
	for _, appID := range allowlistedApps {
		allowlist[appID] = struct{}{}
	}
	return &gate{
		ledger:    ledgerPort,
		json:      jsonAdapter,
		allowlist: allowlist,
	}
}

func (g *gate) readInto(ctx context.Context, path string, out interface{}) (bool, error) {
	raw, err := g.ledger.ReadValue(ctx, path)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if out != nil {
		if err := g.json.Unmarshal(raw, out); err != nil {
			return false, domain.WrapError(domain.ErrCodeInternal, err, "failed to decode ledger node at %s", path)
		}
	}
	return true, nil
}

func (g *gate) ResolveRole(ctx context.Context, appID, caller string) (domain.Role, error) {
	app, err := g.RequireApplication(ctx, appID)
	if err != nil {
		return 0, err
	}
	if domain.NormalizeAddress(app.Owner) == domain.NormalizeAddress(caller) {
		return domain.RoleOwner, nil
	}
	if _, ok := g.allowlist[appID]; ok {
		return domain.RoleAllowlistedUser, nil
	}
	return 0, domain.NewPermissionDenied("caller %s is not the owner of application %s", caller, appID)
}

func (g *gate) RequireOwner(ctx context.Context, appID, caller string) error {
	app, err := g.RequireApplication(ctx, appID)
	if err != nil {
		return err
	}
	if domain.NormalizeAddress(app.Owner) != domain.NormalizeAddress(caller) {
		return domain.NewPermissionDenied("caller %s is not the owner of application %s", caller, appID)
	}
	return nil
}

func (g *gate) RequireApplication(ctx context.Context, appID string) (*domain.Application, error) {
	var app domain.Application
	found, err := g.readInto(ctx, keypath.Application(appID), &app)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFound("application %s does not exist", appID)
	}
	app.ID = appID
	return &app, nil
}

func (g *gate) RequireToken(ctx context.Context, appID, tokenID string) (*domain.Token, error) {
	var token domain.Token
	found, err := g.readInto(ctx, keypath.Token(appID, tokenID), &token)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFound("token %s does not exist under application %s", tokenID, appID)
	}
	token.ID = tokenID
	return &token, nil
}

func (g *gate) RequireServiceBinding(ctx context.Context, appID, serviceName string) (*domain.ServiceBinding, error) {
	var binding domain.ServiceBinding
	found, err := g.readInto(ctx, keypath.ServiceBinding(appID, serviceName), &binding)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFound("service %s is not configured for application %s", serviceName, appID)
	}
	binding.Name = serviceName
	return &binding, nil
}

func (g *gate) RequireAssistant(ctx context.Context, appID, tokenID, serviceName, expectedID string) (*domain.Assistant, error) {
	var assistant domain.Assistant
	found, err := g.readInto(ctx, keypath.Assistant(appID, tokenID, serviceName), &assistant)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFound("no assistant for token %s and service %s", tokenID, serviceName)
	}
	if expectedID != "" && assistant.ID != expectedID {
		return nil, domain.NewNotFound("assistant %s not found for token %s (stored: %s)", expectedID, tokenID, assistant.ID)
	}
	assistant.TokenID = tokenID
	return &assistant, nil
}

func (g *gate) RequireNoAssistant(ctx context.Context, appID, tokenID, serviceName string) error {
	found, err := g.readInto(ctx, keypath.Assistant(appID, tokenID, serviceName), nil)
	if err != nil {
		return err
	}
	if found {
		return domain.NewAlreadyExists("assistant already exists for token %s and service %s", tokenID, serviceName)
	}
	return nil
}

func (g *gate) RequireThread(ctx context.Context, appID, tokenID, serviceName, userAddress, threadID string) (*domain.ThreadNode, error) {
	var node domain.ThreadNode
	found, err := g.readInto(ctx, keypath.Thread(appID, tokenID, serviceName, userAddress, threadID), &node)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFound("thread %s does not exist for user %s", threadID, userAddress)
	}
	return &node, nil
}

func (g *gate) RequireMessage(ctx context.Context, appID, tokenID, serviceName, userAddress, threadID, providerID string) (string, *domain.Message, error) {
	node, err := g.RequireThread(ctx, appID, tokenID, serviceName, userAddress, threadID)
	if err != nil {
		return "", nil, err
	}
	key, msg, ok := node.FindMessageByProviderID(providerID)
	if !ok {
		return "", nil, domain.NewNotFound("message %s does not exist in thread %s", providerID, threadID)
	}
	return key, msg, nil
}
