package rpc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RestClient issues plain GETs against a node's REST endpoint.
type RestClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRestClient returns a client for the given REST base URL.
func NewRestClient(baseURL string, timeout time.Duration) *RestClient {
	return &RestClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Metrics fetches <base>/metrics and returns the Prometheus-style
// plaintext body verbatim. The metrics format is owned by the node; no
// parsing happens here.
func (c *RestClient) Metrics(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/metrics", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrBadResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return string(body), nil
}
