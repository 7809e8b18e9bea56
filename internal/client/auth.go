package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// LoginResponse is the /api/auth/login response.
type LoginResponse struct {
	Success bool           `json:"success"`
	User    domain.User    `json:"user"`
	Session domain.Session `json:"session"`
	Token   string         `json:"token"`
	Message string         `json:"message"`
}

// Login signs in and keeps the returned token for later calls.
//
// Each attempt is bounded by the login timeout. Transport failures and
// timeouts are retried with exponential backoff; a response from the
// server, successful or not, is final.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var lastErr error
	for attempt := 0; attempt <= c.loginRetries; attempt++ {
		if attempt > 0 {
			wait := c.loginBackoff << (attempt - 1)
			logger.Debug("login attempt %d failed, retrying in %s: %v", attempt, wait, lastErr)
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		res, err := c.loginOnce(ctx, body)
		if err == nil {
			c.SetToken(res.Token)
			return res, nil
		}
		if !retryable(ctx, err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("login failed after %d attempts: %w", c.loginRetries+1, lastErr)
}

func (c *Client) loginOnce(ctx context.Context, body any) (*LoginResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.loginTimeout)
	defer cancel()

	var res LoginResponse
	if err := c.do(attemptCtx, "/api/auth/login", RequestOptions{Method: http.MethodPost, Body: body}, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &APIError{Status: http.StatusOK, Message: res.Message}
	}
	return &res, nil
}

// retryable reports whether err came from the transport rather than the
// server, while the caller's context is still live.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr) && !errors.Is(err, ErrNotJSON)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// VerifyResponse is the /api/auth/verify response.
type VerifyResponse struct {
	Success bool        `json:"success"`
	Valid   bool        `json:"valid"`
	User    domain.User `json:"user"`
	Message string      `json:"message"`
}

// Verify checks the current token.
func (c *Client) Verify(ctx context.Context) (*VerifyResponse, error) {
	var res VerifyResponse
	if err := c.do(ctx, "/api/auth/verify", RequestOptions{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout ends the session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	var res struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := c.do(ctx, "/api/auth/logout", RequestOptions{Method: http.MethodPost}, &res)
	c.SetToken("")
	return err
}
