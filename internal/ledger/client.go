package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/domain"
)

const (
	methodGet             = "ain_get"
	methodSendTransaction = "ain_sendTransaction"
)

// rpcRequest is the JSON-RPC envelope understood by the ledger gateway.
type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error,omitempty"`
}

type getParams struct {
	Type string `json:"type"`
	Ref  string `json:"ref"`
}

// Client talks JSON-RPC to the ledger gateway over HTTP.
type Client struct {
	http adapter.HTTPClient
	json adapter.JSON
	url  string
}

// NewClient creates a ledger gateway client.
func NewClient(httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, gatewayURL string) *Client {
	return &Client{
		http: httpClient,
		json: jsonAdapter,
		url:  gatewayURL,
	}
}

func (c *Client) call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	respBody, err := c.http.PostJSON(ctx, c.url, rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("ledger gateway call %s failed: %w", method, err)
	}

	var resp rpcResponse
	if err := c.json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode ledger gateway response: %w", err)
	}
	if resp.Error != nil {
		return nil, domain.NewInternal("ledger gateway error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return resp.Result, nil
}

// ReadValue returns the value stored at path, or nil when the node is absent.
func (c *Client) ReadValue(ctx context.Context, path string) (json.RawMessage, error) {
	result, err := c.call(ctx, methodGet, getParams{Type: "GET_VALUE", Ref: path})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return nil, nil
	}
	return result, nil
}

// Commit submits an atomic transaction to the gateway.
func (c *Client) Commit(ctx context.Context, tx *Transaction) (*Receipt, error) {
	result, err := c.call(ctx, methodSendTransaction, tx)
	if err != nil {
		return nil, err
	}

	var receipt Receipt
	if err := c.json.Unmarshal(result, &receipt); err != nil {
		return nil, fmt.Errorf("failed to decode transaction receipt: %w", err)
	}
	return &receipt, nil
}
