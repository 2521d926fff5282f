package ratelimit

import (
	"context"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
)

// Upstream names used by the sync programs.
const (
	UpstreamLedger  = "ledger"
	UpstreamCompute = "compute"
)

// limitedHTTPClient routes every request of an adapter.HTTPClient through the
// rate-limiting proxy under a fixed upstream name.
type limitedHTTPClient struct {
	proxy    Proxy
	upstream string
	inner    adapter.HTTPClient
}

// NewHTTPClient wraps an HTTP client so that all its requests count against
// the named upstream's rate limit. A nil proxy returns the inner client
// unchanged.
func NewHTTPClient(p Proxy, upstream string, inner adapter.HTTPClient) adapter.HTTPClient {
	if p == nil {
		return inner
	}
	return &limitedHTTPClient{
		proxy:    p,
		upstream: upstream,
		inner:    inner,
	}
}

func (c *limitedHTTPClient) Get(ctx context.Context, url string, headers map[string]string, result interface{}) error {
	_, err := c.proxy.Request(ctx, c.upstream, func(ctx context.Context) (interface{}, error) {
		return nil, c.inner.Get(ctx, url, headers, result)
	})
	return err
}

func (c *limitedHTTPClient) PostJSON(ctx context.Context, url string, body interface{}) ([]byte, error) {
	return Request(ctx, c.proxy, c.upstream, func(ctx context.Context) ([]byte, error) {
		return c.inner.PostJSON(ctx, url, body)
	})
}
