package messaging

import (
	"context"

	"github.com/ainft-labs/ainft-sync/internal/domain"
)

// Publisher defines the interface for publishing sync events to a message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a sync event to the message broker
	PublishEvent(ctx context.Context, event *domain.SyncEvent) error
	// Close closes the connection
	Close()
}

// noopPublisher drops events. Used when no broker is configured.
type noopPublisher struct{}

// NewNoopPublisher creates a publisher that discards every event.
func NewNoopPublisher() Publisher {
	return &noopPublisher{}
}

func (noopPublisher) PublishEvent(ctx context.Context, event *domain.SyncEvent) error { return nil }
func (noopPublisher) Close()                                                          {}
