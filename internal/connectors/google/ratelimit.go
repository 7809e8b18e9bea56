package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// RateLimitConfig holds rate limiting configuration for a surface.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each Google surface.
// These are well below Google's actual limits to avoid hitting quotas.
var DefaultRateLimits = map[domain.Surface]RateLimitConfig{
	domain.SurfaceSheets: {RequestsPerSecond: 5.0, BurstSize: 10}, // 300 req/min/project
	domain.SurfaceDrive:  {RequestsPerSecond: 8.0, BurstSize: 10}, // Google allows 10/sec/user
}

// RateLimitsFromSettings returns per-surface limits, falling back to the
// defaults for any non-positive value.
func RateLimitsFromSettings(s domain.RateLimitSettings) map[domain.Surface]RateLimitConfig {
	pick := func(surface domain.Surface, rps float64, burst int) RateLimitConfig {
		cfg := DefaultRateLimits[surface]
		if rps > 0 {
			cfg.RequestsPerSecond = rps
		}
		if burst > 0 {
			cfg.BurstSize = burst
		}
		return cfg
	}
	return map[domain.Surface]RateLimitConfig{
		domain.SurfaceSheets: pick(domain.SurfaceSheets, s.SheetsRPS, s.SheetsBurst),
		domain.SurfaceDrive:  pick(domain.SurfaceDrive, s.DriveRPS, s.DriveBurst),
	}
}

// RateLimiter provides rate limiting for Google API requests.
// It uses a token bucket algorithm with optional backoff for 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	surface domain.Surface
}

// NewRateLimiter creates a new rate limiter for the specified surface.
func NewRateLimiter(surface domain.Surface) *RateLimiter {
	cfg, ok := DefaultRateLimits[surface]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}
	l := NewRateLimiterWithConfig(cfg)
	l.surface = surface
	return l
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Surface returns the surface this limiter guards, if known.
func (r *RateLimiter) Surface() domain.Surface {
	return r.surface
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError records a rate limit error and sets a backoff period.
// Call this when receiving a 429 response from Google APIs.
func (r *RateLimiter) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		// Default backoff: 60 seconds
		retryAfterSeconds = 60
	}

	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// Observe inspects the result of a call and starts a backoff on 429.
func (r *RateLimiter) Observe(err error) {
	if err != nil && IsRateLimited(err) {
		r.RecordRateLimitError(RetryAfter(err))
	}
}

// Allow checks if a request can be made immediately without blocking.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}

	return r.limiter.Allow()
}
