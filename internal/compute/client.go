package compute

import (
	"context"
	"fmt"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/domain"
)

// Client implements the Provider port over the provider gateway's REST API.
type Client struct {
	http adapter.HTTPClient
	json adapter.JSON
	url  string
}

// NewClient creates a provider gateway client.
func NewClient(httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, gatewayURL string) *Client {
	return &Client{
		http: httpClient,
		json: jsonAdapter,
		url:  gatewayURL,
	}
}

type invokeRequest struct {
	Service       string               `json:"service"`
	OperationType domain.OperationType `json:"operation_type"`
	Payload       interface{}          `json:"payload,omitempty"`
}

type sessionRequest struct {
	Service string `json:"service"`
}

type chargeRequest struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
}

// IsServiceRunning reports whether the named service is reachable.
func (c *Client) IsServiceRunning(ctx context.Context, service string) (bool, error) {
	var resp struct {
		Running bool `json:"running"`
	}
	if err := c.http.Get(ctx, fmt.Sprintf("%s/v1/services/%s/status", c.url, service), nil, &resp); err != nil {
		return false, fmt.Errorf("failed to query service status: %w", err)
	}
	return resp.Running, nil
}

// Invoke sends a typed operation request to the named service.
func (c *Client) Invoke(ctx context.Context, service string, op domain.OperationType, payload interface{}) (*Response, error) {
	body, err := c.http.PostJSON(ctx, fmt.Sprintf("%s/v1/invoke", c.url), invokeRequest{
		Service:       service,
		OperationType: op,
		Payload:       payload,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke request failed: %w", err)
	}

	var resp Response
	if err := c.json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode invoke response: %w", err)
	}
	return &resp, nil
}

// GetBalance returns the provider-reported credit balance for the service.
func (c *Client) GetBalance(ctx context.Context, service string) (float64, error) {
	var resp struct {
		Balance float64 `json:"balance"`
	}
	if err := c.http.Get(ctx, fmt.Sprintf("%s/v1/services/%s/balance", c.url, service), nil, &resp); err != nil {
		return 0, fmt.Errorf("failed to query balance: %w", err)
	}
	return resp.Balance, nil
}

// Charge deposits credit and returns the provider's transaction id.
func (c *Client) Charge(ctx context.Context, service string, amount float64) (string, error) {
	body, err := c.http.PostJSON(ctx, fmt.Sprintf("%s/v1/charge", c.url), chargeRequest{
		Service: service,
		Amount:  amount,
	})
	if err != nil {
		return "", fmt.Errorf("charge request failed: %w", err)
	}

	var resp struct {
		TxID string `json:"tx_id"`
	}
	if err := c.json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode charge response: %w", err)
	}
	return resp.TxID, nil
}

// Login opens a provider session for the service.
func (c *Client) Login(ctx context.Context, service string) error {
	if _, err := c.http.PostJSON(ctx, fmt.Sprintf("%s/v1/login", c.url), sessionRequest{Service: service}); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

// Logout closes the provider session for the service.
func (c *Client) Logout(ctx context.Context, service string) error {
	if _, err := c.http.PostJSON(ctx, fmt.Sprintf("%s/v1/logout", c.url), sessionRequest{Service: service}); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}
