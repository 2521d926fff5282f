package store

import (
	"context"

	"github.com/ainft-labs/ainft-sync/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// RecordFinding persists a reconciliation finding
	RecordFinding(ctx context.Context, finding *schema.ReconciliationFinding) error
	// ListOpenFindings returns unresolved findings for an application, newest first
	ListOpenFindings(ctx context.Context, appID string, limit int) ([]schema.ReconciliationFinding, error)
	// ResolveFindings marks all open findings for a binding as resolved
	ResolveFindings(ctx context.Context, appID, tokenID, serviceName string) error
	// GetSweepCursor retrieves the last app id processed by the reconciliation sweeper
	GetSweepCursor(ctx context.Context) (string, error)
	// SetSweepCursor stores the last app id processed by the reconciliation sweeper
	SetSweepCursor(ctx context.Context, appID string) error
}
