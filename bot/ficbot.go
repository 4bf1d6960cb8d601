// Package bot implements the fic bot and the moderation bot on top of the
// ficbot domain interfaces.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fwojciec/ficbot"
	"github.com/fwojciec/ficbot/render"
)

// FicBot answers messages that mention fics with summaries of them.
type FicBot struct {
	Messenger ficbot.Messenger
	Fics      ficbot.FicService
	Resolver  *Resolver
	Renderer  *render.Renderer

	// Prefix starts a command, as in "!fic <url>".
	Prefix string

	// SelfID is the bot's own user ID. Its messages are ignored.
	SelfID string

	// SuperAdmin may run the reload commands.
	SuperAdmin string

	// ReloadDB reloads the fic database. ReloadSubstitutions reloads the
	// substitution tables.
	ReloadDB            func(ctx context.Context) error
	ReloadSubstitutions func(ctx context.Context) error

	Logger *slog.Logger
}

// HandleMessage runs the command in msg, or summarizes the fics it links to.
func (b *FicBot) HandleMessage(ctx context.Context, msg *ficbot.Message) error {
	if msg.Author.ID == b.SelfID {
		return nil
	}
	content := strings.TrimSpace(msg.Content)
	if b.Prefix != "" && strings.HasPrefix(content, b.Prefix) {
		cmd := strings.TrimPrefix(content, b.Prefix)
		name, args, _ := strings.Cut(strings.TrimSpace(cmd), " ")
		args = strings.TrimSpace(args)
		switch name {
		case "fic":
			return b.fic(ctx, msg, args)
		case "author":
			return b.author(ctx, msg, args)
		case "status":
			status, err := b.Status(ctx)
			if err != nil {
				return err
			}
			return b.Messenger.Reply(ctx, msg, status)
		case "reload-db":
			if msg.Author.ID == b.SuperAdmin {
				return b.reload(ctx, msg, b.ReloadDB, "Database reloaded")
			}
		case "reload-subs":
			if msg.Author.ID == b.SuperAdmin {
				return b.reload(ctx, msg, b.ReloadSubstitutions, "Substitutions reloaded")
			}
		}
	}
	if !ficbot.HasLinks(content) {
		return nil
	}
	return b.expand(ctx, msg, ficbot.FindLinks(content))
}

// Status describes the contents of the fic database.
func (b *FicBot) Status(ctx context.Context) (string, error) {
	stats, err := b.Fics.Stats(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Serving %d links to %d fic by %d authors", stats.Links, stats.Fics, stats.Authors), nil
}

func (b *FicBot) fic(ctx context.Context, msg *ficbot.Message, args string) error {
	links := ficbot.FindLinks(args)
	if len(links) == 0 {
		return b.Messenger.Reply(ctx, msg, "Could not find any URLs of supported sites in "+strings.Join(strings.Fields(args), ", "))
	}
	return b.expand(ctx, msg, links)
}

var bracketedRE = regexp.MustCompile(`^<(.*)>$`)

func (b *FicBot) author(ctx context.Context, msg *ficbot.Message, args string) error {
	query := strings.TrimSpace(bracketedRE.ReplaceAllString(args, "$1"))
	if query == "" {
		return b.Messenger.Reply(ctx, msg, "Could not find a matching author for "+query)
	}
	authors, err := b.Fics.FindAuthors(ctx, query)
	if err != nil {
		return err
	}
	switch len(authors) {
	case 0:
		return b.Messenger.Reply(ctx, msg, "Could not find a matching author for "+query)
	case 1:
	default:
		if err := b.Messenger.SendMessage(ctx, msg.ChannelID, query+" can refer to multiple authors:"); err != nil {
			return err
		}
	}
	for _, a := range authors {
		fics, err := b.Fics.FindFicsByAuthor(ctx, a.Link)
		if err != nil {
			return err
		}
		if err := b.Messenger.SendEmbed(ctx, msg.ChannelID, b.Renderer.AuthorEmbed(ctx, a, fics)); err != nil {
			return err
		}
	}
	return nil
}

func (b *FicBot) reload(ctx context.Context, msg *ficbot.Message, fn func(context.Context) error, done string) error {
	if fn == nil {
		return ficbot.Errorf(ficbot.EINTERNAL, "reload not configured")
	}
	b.typing(ctx, msg.ChannelID)
	if err := fn(ctx); err != nil {
		return err
	}
	return b.Messenger.Reply(ctx, msg, done)
}

// expand posts a summary of each fic found at links.
func (b *FicBot) expand(ctx context.Context, msg *ficbot.Message, links []string) error {
	b.typing(ctx, msg.ChannelID)
	var errs []error
	for _, fic := range b.Resolver.Resolve(ctx, links) {
		if err := b.Messenger.SendEmbed(ctx, msg.ChannelID, b.Renderer.FicEmbed(ctx, fic)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *FicBot) typing(ctx context.Context, channelID string) {
	if err := b.Messenger.Typing(ctx, channelID); err != nil {
		b.logger().Debug("typing indicator", "channel", channelID, "error", err)
	}
}

func (b *FicBot) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}
