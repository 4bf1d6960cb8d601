package mock

import (
	"context"

	"github.com/fwojciec/ficbot"
)

var _ ficbot.FicService = (*FicService)(nil)

// FicService is a mock implementation of ficbot.FicService.
type FicService struct {
	CreateFicFn        func(ctx context.Context, fic *ficbot.Fic) error
	ReplaceFicsFn      func(ctx context.Context, fics []*ficbot.Fic) (int, error)
	ReplaceAuthorsFn   func(ctx context.Context, authors []*ficbot.Author) error
	FindFicByLinkFn    func(ctx context.Context, link string) (*ficbot.Fic, error)
	FindFicsByAuthorFn func(ctx context.Context, authorLink string) ([]*ficbot.Fic, error)
	FindAuthorsFn      func(ctx context.Context, query string) ([]*ficbot.Author, error)
	StatsFn            func(ctx context.Context) (ficbot.Stats, error)
}

func (s *FicService) CreateFic(ctx context.Context, fic *ficbot.Fic) error {
	return s.CreateFicFn(ctx, fic)
}

func (s *FicService) ReplaceFics(ctx context.Context, fics []*ficbot.Fic) (int, error) {
	return s.ReplaceFicsFn(ctx, fics)
}

func (s *FicService) ReplaceAuthors(ctx context.Context, authors []*ficbot.Author) error {
	return s.ReplaceAuthorsFn(ctx, authors)
}

func (s *FicService) FindFicByLink(ctx context.Context, link string) (*ficbot.Fic, error) {
	return s.FindFicByLinkFn(ctx, link)
}

func (s *FicService) FindFicsByAuthor(ctx context.Context, authorLink string) ([]*ficbot.Fic, error) {
	return s.FindFicsByAuthorFn(ctx, authorLink)
}

func (s *FicService) FindAuthors(ctx context.Context, query string) ([]*ficbot.Author, error) {
	return s.FindAuthorsFn(ctx, query)
}

func (s *FicService) Stats(ctx context.Context) (ficbot.Stats, error) {
	return s.StatsFn(ctx)
}
