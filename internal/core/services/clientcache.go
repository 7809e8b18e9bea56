package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// ClientCache holds at most one authorised client per surface.
// The first call per surface builds the client; later calls return the same
// instance. Failed builds are not cached, so a later call retries.
type ClientCache struct {
	creds    driving.CredentialService
	factory  driven.ClientFactory
	observer driven.ProxyObserver

	sheets lazyClient[driven.SheetsClient]
	drive  lazyClient[driven.DriveClient]
}

// NewClientCache creates a cache. observer may be nil.
func NewClientCache(
	creds driving.CredentialService,
	factory driven.ClientFactory,
	observer driven.ProxyObserver,
) *ClientCache {
	return &ClientCache{
		creds:    creds,
		factory:  factory,
		observer: observer,
	}
}

// Configured reports whether a credential was resolved.
func (c *ClientCache) Configured() bool {
	_, ok := c.creds.Resolve()
	return ok
}

// Sheets returns the Sheets client, building it on first use.
func (c *ClientCache) Sheets(ctx context.Context) (driven.SheetsClient, error) {
	return c.sheets.get(func() (driven.SheetsClient, error) {
		cred, err := c.credential()
		if err != nil {
			return nil, err
		}
		client, err := c.factory.NewSheetsClient(ctx, cred)
		c.recordInit(domain.SurfaceSheets, err)
		return client, err
	})
}

// Drive returns the Drive client, building it on first use.
func (c *ClientCache) Drive(ctx context.Context) (driven.DriveClient, error) {
	return c.drive.get(func() (driven.DriveClient, error) {
		cred, err := c.credential()
		if err != nil {
			return nil, err
		}
		client, err := c.factory.NewDriveClient(ctx, cred)
		c.recordInit(domain.SurfaceDrive, err)
		return client, err
	})
}

func (c *ClientCache) credential() (domain.Credential, error) {
	cred, ok := c.creds.Resolve()
	if !ok {
		return domain.Credential{}, domain.NewError(domain.KindConfigMissing, domain.ErrConfigMissing.Error(), nil)
	}
	return cred, nil
}

func (c *ClientCache) recordInit(surface domain.Surface, err error) {
	outcome := driven.OutcomeSuccess
	if err != nil {
		outcome = driven.OutcomeError
		logger.Warn("%s client initialisation failed: %v", surface, err)
	} else {
		logger.Info("%s client initialised", surface)
	}
	if c.observer != nil {
		c.observer.ObserveClientInit(surface, outcome)
	}
}

// lazyClient memoises one successfully built value.
// The lock is held during build so concurrent first callers share one result.
type lazyClient[T any] struct {
	mu     sync.Mutex
	client T
	ready  bool
}

func (l *lazyClient[T]) get(build func() (T, error)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ready {
		return l.client, nil
	}

	client, err := build()
	if err != nil {
		var zero T
		return zero, err
	}
	l.client = client
	l.ready = true
	return client, nil
}
