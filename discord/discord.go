// Package discord connects the bots to the chat gateway using discordgo.
package discord

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fwojciec/ficbot"
)

// DefaultHandlerTimeout bounds the time a bot may spend on one event.
const DefaultHandlerTimeout = 2 * time.Minute

// Intents are the gateway events the bots subscribe to.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// Ensure Gateway implements ficbot.Messenger at compile time.
var _ ficbot.Messenger = (*Gateway)(nil)

// Gateway is a bot session on the chat service.
type Gateway struct {
	session *discordgo.Session
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger for event handler failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithHandlerTimeout bounds the time spent handling a single event.
func WithHandlerTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// NewGateway creates a Gateway authenticating with the bot token. The
// connection is opened by Open.
func NewGateway(token string, opts ...Option) (*Gateway, error) {
	if token == "" {
		return nil, ficbot.Errorf(ficbot.EINVALID, "bot token required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = Intents

	g := &Gateway{
		session: session,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: DefaultHandlerTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Open connects to the gateway.
func (g *Gateway) Open() error {
	return g.session.Open()
}

// Close disconnects from the gateway.
func (g *Gateway) Close() error {
	return g.session.Close()
}

// SelfID returns the bot's own user ID once connected.
func (g *Gateway) SelfID() string {
	if g.session.State == nil || g.session.State.User == nil {
		return ""
	}
	return g.session.State.User.ID
}

// SetStatus shows text as the bot's activity.
func (g *Gateway) SetStatus(text string) error {
	return g.session.UpdateGameStatus(0, text)
}

// handle runs fn for one event with its own bounded context and logs
// any failure.
func (g *Gateway) handle(event string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		g.logger.Error("handle event", "event", event, "error", err)
	}
}

// OnReady calls fn with the bot's user ID whenever the session connects.
func (g *Gateway) OnReady(fn func(ctx context.Context, selfID string) error) {
	g.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		g.handle("ready", func(ctx context.Context) error {
			return fn(ctx, FromUser(r.User).ID)
		})
	})
}

// OnMessage calls fn for every message the bot can see, except its own.
func (g *Gateway) OnMessage(fn func(ctx context.Context, msg *ficbot.Message) error) {
	g.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
			return
		}
		g.handle("message", func(ctx context.Context) error {
			return fn(ctx, FromMessage(m.Message))
		})
	})
}

// OnReaction calls fn for every reaction added to a message by someone
// other than the bot.
func (g *Gateway) OnReaction(fn func(ctx context.Context, r *ficbot.Reaction) error) {
	g.session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if s.State.User != nil && r.UserID == s.State.User.ID {
			return
		}
		g.handle("reaction", func(ctx context.Context) error {
			return fn(ctx, FromReaction(r.MessageReaction, r.Member))
		})
	})
}

// OnMemberJoin calls fn when a user joins a guild.
func (g *Gateway) OnMemberJoin(fn func(ctx context.Context, guildID string, user ficbot.User) error) {
	g.session.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
		g.handle("member join", func(ctx context.Context) error {
			return fn(ctx, m.GuildID, FromUser(m.User))
		})
	})
}

// OnGuild calls fn for every guild the bot joins or reconnects to.
func (g *Gateway) OnGuild(fn func(ctx context.Context, guild *ficbot.Guild)) {
	g.session.AddHandler(func(_ *discordgo.Session, gc *discordgo.GuildCreate) {
		g.handle("guild", func(ctx context.Context) error {
			fn(ctx, FromGuild(gc.Guild))
			return nil
		})
	})
}

func (g *Gateway) SendMessage(ctx context.Context, channelID, content string) error {
	for _, part := range Split(content, MaxMessageLength) {
		if _, err := g.session.ChannelMessageSend(channelID, part, discordgo.WithContext(ctx)); err != nil {
			return wrap(err)
		}
	}
	return nil
}

func (g *Gateway) SendEmbed(ctx context.Context, channelID string, embed *ficbot.Embed) error {
	_, err := g.session.ChannelMessageSendEmbed(channelID, ToMessageEmbed(embed), discordgo.WithContext(ctx))
	return wrap(err)
}

// Reply answers msg, mentioning its author.
func (g *Gateway) Reply(ctx context.Context, msg *ficbot.Message, content string) error {
	if !msg.IsDirect() {
		content = msg.Author.Mention() + ", " + content
	}
	return g.SendMessage(ctx, msg.ChannelID, content)
}

func (g *Gateway) SendDirect(ctx context.Context, userID, content string) error {
	ch, err := g.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return wrap(err)
	}
	return g.SendMessage(ctx, ch.ID, content)
}

func (g *Gateway) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return wrap(g.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)))
}

func (g *Gateway) FindMessage(ctx context.Context, channelID, messageID string) (*ficbot.Message, error) {
	m, err := g.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return FromMessage(m), nil
}

func (g *Gateway) RemoveReaction(ctx context.Context, r *ficbot.Reaction) error {
	return wrap(g.session.MessageReactionRemove(r.ChannelID, r.MessageID, r.Emoji, r.User.ID, discordgo.WithContext(ctx)))
}

func (g *Gateway) Typing(ctx context.Context, channelID string) error {
	return wrap(g.session.ChannelTyping(channelID, discordgo.WithContext(ctx)))
}

// MemberGuilds checks each joined guild for the user's membership.
func (g *Gateway) MemberGuilds(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for _, guild := range g.session.State.Guilds {
		_, err := g.session.GuildMember(guild.ID, userID, discordgo.WithContext(ctx))
		switch {
		case err == nil:
			ids = append(ids, guild.ID)
		case ficbot.ErrorCode(wrap(err)) == ficbot.ENOTFOUND:
		default:
			return nil, wrap(err)
		}
	}
	return ids, nil
}

// wrap maps REST errors to ficbot error codes.
func wrap(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return err
	}
	msg := restErr.Error()
	if restErr.Message != nil && restErr.Message.Message != "" {
		msg = restErr.Message.Message
	}
	switch restErr.Response.StatusCode {
	case http.StatusNotFound:
		return ficbot.Errorf(ficbot.ENOTFOUND, "%s", msg)
	case http.StatusBadRequest:
		return ficbot.Errorf(ficbot.EINVALID, "%s", msg)
	}
	return err
}
