package google

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ClientFactory = (*Factory)(nil)

// Factory builds authorised Sheets and Drive clients from a service account credential.
// Each surface shares one rate limiter across every client the factory builds.
type Factory struct {
	sheetsLimiter *RateLimiter
	driveLimiter  *RateLimiter
	opts          []option.ClientOption
}

// NewFactory creates a factory with the given per-surface rate limits.
// Extra client options are passed to every service; tests use them to
// redirect calls with option.WithEndpoint and option.WithHTTPClient.
func NewFactory(limits domain.RateLimitSettings, opts ...option.ClientOption) *Factory {
	cfg := RateLimitsFromSettings(limits)

	sheetsLimiter := NewRateLimiterWithConfig(cfg[domain.SurfaceSheets])
	sheetsLimiter.surface = domain.SurfaceSheets
	driveLimiter := NewRateLimiterWithConfig(cfg[domain.SurfaceDrive])
	driveLimiter.surface = domain.SurfaceDrive

	return &Factory{
		sheetsLimiter: sheetsLimiter,
		driveLimiter:  driveLimiter,
		opts:          opts,
	}
}

// NewSheetsClient builds a Sheets client with the spreadsheets scope.
func (f *Factory) NewSheetsClient(ctx context.Context, cred domain.Credential) (driven.SheetsClient, error) {
	// The client outlives the request that triggered its construction.
	ctx = context.WithoutCancel(ctx)

	ts, err := NewTokenSource(ctx, cred, domain.SurfaceSheets.Scopes()...)
	if err != nil {
		return nil, err
	}
	svc, err := NewSheetsService(ctx, ts, f.opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewSheetsClient(svc, f.sheetsLimiter), nil
}

// NewDriveClient builds a Drive client with the drive and drive.file scopes.
func (f *Factory) NewDriveClient(ctx context.Context, cred domain.Credential) (driven.DriveClient, error) {
	ctx = context.WithoutCancel(ctx)

	ts, err := NewTokenSource(ctx, cred, domain.SurfaceDrive.Scopes()...)
	if err != nil {
		return nil, err
	}
	svc, err := NewDriveService(ctx, ts, f.opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return NewDriveClient(svc, f.driveLimiter), nil
}
