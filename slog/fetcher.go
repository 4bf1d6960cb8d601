package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ficbot"
)

// Ensure LoggingFetcher implements ficbot.Fetcher.
var _ ficbot.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   ficbot.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next ficbot.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchFic delegates to the wrapped fetcher and logs the download.
func (f *LoggingFetcher) FetchFic(ctx context.Context, link string) (fic *ficbot.Fic, err error) {
	defer func(begin time.Time) {
		title := ""
		if fic != nil {
			title = fic.Title
		}
		f.logger.Info("fetch fic",
			"link", link,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchFic(ctx, link)
}
