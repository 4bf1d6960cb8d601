package mock

import (
	"context"

	"github.com/fwojciec/ficbot"
)

var _ ficbot.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of ficbot.Fetcher.
type Fetcher struct {
	FetchFicFn func(ctx context.Context, link string) (*ficbot.Fic, error)
}

func (f *Fetcher) FetchFic(ctx context.Context, link string) (*ficbot.Fic, error) {
	return f.FetchFicFn(ctx, link)
}

var _ ficbot.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ficbot.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
