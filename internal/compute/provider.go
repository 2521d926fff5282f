// Package compute bridges typed operation requests to the external compute
// provider that actually executes AI requests.
package compute

import (
	"context"
	"encoding/json"

	"github.com/ainft-labs/ainft-sync/internal/domain"
)

// Status is the provider-level outcome of an invocation.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFail    Status = "FAIL"
)

// Response is the provider's reply to an invocation. Data carries the
// operation result on success and the failure payload on FAIL.
type Response struct {
	Status Status          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Provider is the port to the compute provider gateway.
//
//go:generate mockgen -source=provider.go -destination=../mocks/provider.go -package=mocks -mock_names=Provider=MockProvider
type Provider interface {
	// IsServiceRunning reports whether the named service is reachable.
	IsServiceRunning(ctx context.Context, service string) (bool, error)

	// Invoke sends a typed operation request to the named service.
	Invoke(ctx context.Context, service string, op domain.OperationType, payload interface{}) (*Response, error)

	// GetBalance returns the provider-reported credit balance for the service.
	GetBalance(ctx context.Context, service string) (float64, error)

	// Charge deposits credit and returns the provider's transaction id.
	// The reported balance is not necessarily updated when Charge returns.
	Charge(ctx context.Context, service string, amount float64) (string, error)

	// Login opens a provider session for the service.
	Login(ctx context.Context, service string) error

	// Logout closes the provider session for the service.
	Logout(ctx context.Context, service string) error
}
