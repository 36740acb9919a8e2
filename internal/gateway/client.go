// Package gateway is the outer tier: it validates incoming requests and
// forwards the well-formed ones to the server tier unchanged.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Result carries the server tier's reply back through the gateway.
type Result struct {
	Status      int
	ContentType string
	Body        []byte
}

// Client forwards requests to the server tier.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Forward relays a request to the server tier, preserving the sharer header,
// and returns the reply as-is.
func (c *Client) Forward(ctx context.Context, method, path string, query url.Values, sharerID string, body []byte) (*Result, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sharerID != "" {
		req.Header.Set(sharerHeader, sharerID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forward request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Result{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
