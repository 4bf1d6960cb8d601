package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/ficbot"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of links resolved at once.
const DefaultConcurrency = 4

// Resolver turns links into fics, looking them up in the fic database and
// downloading the ones it does not know yet.
type Resolver struct {
	Fics ficbot.FicService

	// Fetcher downloads unknown fics. When nil, only known fics resolve.
	Fetcher ficbot.Fetcher

	// Limiter throttles Fetcher per site. Optional.
	Limiter ficbot.DomainLimiter

	// Misses remembers links Fetcher reported as unknown so they are not
	// requested again. Optional.
	Misses ficbot.LinkFilter

	Concurrency int
	Logger      *slog.Logger
}

// Resolve returns the fics for links, in the order of the links. Links that
// fail to resolve are logged and skipped.
func (r *Resolver) Resolve(ctx context.Context, links []string) []*ficbot.Fic {
	normalized := make([]string, len(links))
	for i, link := range links {
		normalized[i] = ficbot.NormalizeLink(link)
	}
	normalized = ficbot.Uniq(normalized)

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*ficbot.Fic, len(normalized))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, link := range normalized {
		g.Go(func() error {
			fic, err := r.resolve(ctx, link)
			if err != nil {
				r.logger().Warn("resolve fic", "link", link, "error", err)
				return nil
			}
			results[i] = fic
			return nil
		})
	}
	_ = g.Wait()

	fics := make([]*ficbot.Fic, 0, len(results))
	for _, fic := range results {
		if fic != nil {
			fics = append(fics, fic)
		}
	}
	return fics
}

func (r *Resolver) resolve(ctx context.Context, link string) (*ficbot.Fic, error) {
	fic, err := r.Fics.FindFicByLink(ctx, link)
	if err == nil {
		found := *fic
		found.Link = link
		return &found, nil
	}
	if ficbot.ErrorCode(err) != ficbot.ENOTFOUND || r.Fetcher == nil {
		return nil, err
	}
	if r.Misses != nil && r.Misses.Test(link) {
		return nil, err
	}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx, ficbot.Host(link)); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	fetched, err := r.Fetcher.FetchFic(ctx, link)
	if err != nil {
		if r.Misses != nil && ficbot.ErrorCode(err) == ficbot.ENOTFOUND {
			r.Misses.Add(link)
		}
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if fetched.Link == "" {
		fetched.Link = link
	}
	fic = fetched.Normalize()
	if err := r.Fics.CreateFic(ctx, fic); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return fic, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
