package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ficbot"
)

// Ensure LoggingFicService implements ficbot.FicService.
var _ ficbot.FicService = (*LoggingFicService)(nil)

// LoggingFicService wraps a FicService, logging database loads at info
// level and lookups at debug level.
type LoggingFicService struct {
	next   ficbot.FicService
	logger *slog.Logger
}

// NewLoggingFicService creates a new LoggingFicService.
func NewLoggingFicService(next ficbot.FicService, logger *slog.Logger) *LoggingFicService {
	return &LoggingFicService{next: next, logger: logger}
}

func (s *LoggingFicService) CreateFic(ctx context.Context, fic *ficbot.Fic) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create fic",
			"key", fic.Key(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateFic(ctx, fic)
}

func (s *LoggingFicService) ReplaceFics(ctx context.Context, fics []*ficbot.Fic) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace fics",
			"count", len(fics),
			"written", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceFics(ctx, fics)
}

func (s *LoggingFicService) ReplaceAuthors(ctx context.Context, authors []*ficbot.Author) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace authors",
			"count", len(authors),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceAuthors(ctx, authors)
}

func (s *LoggingFicService) FindFicByLink(ctx context.Context, link string) (fic *ficbot.Fic, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find fic by link",
			"link", link,
			"found", fic != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindFicByLink(ctx, link)
}

func (s *LoggingFicService) FindFicsByAuthor(ctx context.Context, authorLink string) (fics []*ficbot.Fic, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find fics by author",
			"author", authorLink,
			"count", len(fics),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindFicsByAuthor(ctx, authorLink)
}

func (s *LoggingFicService) FindAuthors(ctx context.Context, query string) (authors []*ficbot.Author, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find authors",
			"query", query,
			"count", len(authors),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindAuthors(ctx, query)
}

func (s *LoggingFicService) Stats(ctx context.Context) (ficbot.Stats, error) {
	return s.next.Stats(ctx)
}
