// Package gateway is the shared HTTP transport for the onepay platform API.
// Every remote operation in the client funnels through Client.Do, which attaches
// the bearer credential, enforces JSON content typing and turns non-success
// responses into *APIError values carrying the server's own error message.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "http://localhost:8000/api/v1"

// Client issues requests against the platform API. It performs no retries and
// enforces no timeout of its own; deadlines come from the caller's context or
// the injected *http.Client.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option modifies a Client instance.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client (primarily for testing).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a Client for the given API base URL. An empty baseURL selects the
// local development default.
func New(baseURL string, options ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// BaseURL returns the API base the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues a single request. body, when non-nil, is serialized as JSON. token,
// when non-empty, is sent as a bearer credential. On a 2xx response the body is
// decoded into out (which may be nil when no response body is expected); any
// other status yields an *APIError holding the raw response text.
func (c *Client) Do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.Do] marshal request body")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "[Client.Do] build request")
	}

	req.Header.Set("Content-Type", "application/json")
	// Every call must reflect current server state.
	req.Header.Set("Cache-Control", "no-store")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug().Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "[Client.Do] request")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "[Client.Do] read response body")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			Detail:     extractDetail(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			Detail:     fmt.Sprintf("unexpected response shape: %v", err),
		}
	}
	return nil
}

// Get issues an authenticated or anonymous GET.
func (c *Client) Get(ctx context.Context, path, token string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, token, out)
}

// Post issues an authenticated or anonymous POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, token string, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, token, out)
}
