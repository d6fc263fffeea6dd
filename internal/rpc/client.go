package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client issues JSON-RPC calls against a single node endpoint. Each view
// invocation builds fresh clients; no connection state is shared across
// fan-out iterations.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries int
}

// NewClient returns a client for the given RPC endpoint URL.
func NewClient(url string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		url:        url,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the endpoint this client talks to.
func (c *Client) URL() string { return c.url }

// Call executes a JSON-RPC method with simple exponential backoff retry.
// With maxRetries 0 (the default) every call is made exactly once.
func (c *Client) Call(ctx context.Context, method string, params interface{}) (*Response, error) {
	req := Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// Backoff: 100ms, 200ms, 400ms...
		if attempt < c.maxRetries {
			backoff := time.Duration(1<<attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrUnreachable, ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, body []byte) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrBadResponse, httpResp.StatusCode)
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrBadResponse, err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("%w: RPC error %d: %s", ErrBadResponse, resp.Error.Code, resp.Error.Message)
	}

	return &resp, nil
}
