package services

import (
	"context"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// proxyCall describes one forwarded API operation.
type proxyCall struct {
	surface domain.Surface
	op      string
	verb    string
}

// forward obtains the cached client and issues exactly one call on it.
// A missing credential is returned as is; every other failure becomes
// domain.Upstream with the call's verb.
func forward[C, T any](
	ctx context.Context,
	c proxyCall,
	observer driven.ProxyObserver,
	client func(context.Context) (C, error),
	do func(C) (T, error),
) (T, error) {
	var zero T

	cl, err := client(ctx)
	if err != nil {
		if domain.KindOf(err) == domain.KindConfigMissing {
			return zero, err
		}
		observe(observer, c, driven.OutcomeError)
		return zero, domain.Upstream(c.verb, err)
	}

	result, err := do(cl)
	if err != nil {
		observe(observer, c, driven.OutcomeError)
		logger.Debug("%s %s failed: %v", c.surface, c.op, err)
		return zero, domain.Upstream(c.verb, err)
	}

	observe(observer, c, driven.OutcomeSuccess)
	return result, nil
}

func observe(observer driven.ProxyObserver, c proxyCall, outcome driven.CallOutcome) {
	if observer != nil {
		observer.ObserveCall(c.surface, c.op, outcome)
	}
}

// none is the result type for calls that return only an error.
type none struct{}
