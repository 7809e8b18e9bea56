// Package client is a Go client for the gproxy HTTP API.
//
// Read-style calls never fail: on a transport error, timeout, non-2xx
// status or non-JSON response they return the caller's fallback value.
// Write-style calls return an error carrying the server's message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/gproxy/internal/logger"
)

// Login retry policy.
const (
	DefaultLoginTimeout = 10 * time.Second
	DefaultLoginRetries = 2
	DefaultLoginBackoff = time.Second
)

// Config holds client configuration.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:3001".
	BaseURL string
	// Timeout bounds every request. Zero means 30s.
	Timeout time.Duration
	// HTTPClient overrides the transport. Its Timeout is left as is.
	HTTPClient *http.Client

	// LoginTimeout, LoginRetries and LoginBackoff tune Login.
	// Zero values use the defaults; a negative LoginRetries disables retries.
	LoginTimeout time.Duration
	LoginRetries int
	LoginBackoff time.Duration
}

// Client calls a gproxy server.
type Client struct {
	baseURL    string
	httpClient *http.Client

	loginTimeout time.Duration
	loginRetries int
	loginBackoff time.Duration

	mu    sync.RWMutex
	token string
}

// New creates a client.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   hc,
		loginTimeout: cfg.LoginTimeout,
		loginRetries: cfg.LoginRetries,
		loginBackoff: cfg.LoginBackoff,
	}
	if c.loginTimeout <= 0 {
		c.loginTimeout = DefaultLoginTimeout
	}
	switch {
	case c.loginRetries == 0:
		c.loginRetries = DefaultLoginRetries
	case c.loginRetries < 0:
		c.loginRetries = 0
	}
	if c.loginBackoff <= 0 {
		c.loginBackoff = DefaultLoginBackoff
	}
	return c
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// RequestOptions describes one request.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Body is JSON-encoded when not nil.
	Body any
	// Header is merged over the defaults.
	Header http.Header
}

// APIError is a failed call as reported by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// ErrNotJSON is returned when a response is not JSON.
var ErrNotJSON = errors.New("response is not JSON")

// RequestJSON calls path and decodes the JSON response into a T.
// Any failure returns fallback; it never reports an error.
func RequestJSON[T any](ctx context.Context, c *Client, path string, opts RequestOptions, fallback T) T {
	var out T
	if err := c.do(ctx, path, opts, &out); err != nil {
		logger.Debug("request %s failed, using fallback: %v", path, err)
		return fallback
	}
	return out
}

// do sends one request and decodes a 2xx JSON body into out.
// Non-2xx responses become *APIError with the body's error message.
func (c *Client) do(ctx context.Context, path string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, vs := range opts.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp, respBody)}
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return ErrNotJSON
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} or falls back to the status text.
func errorMessage(resp *http.Response, body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}
