package bot

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/fwojciec/ficbot"
)

// Reply sent when a direct message cannot be tied to a single server.
const unknownServerMessage = "We were unable to determine exactly one server associated with you and this bot, the DM interface will be limited."

// server is a guild the moderation bot has joined, with its channels
// resolved to IDs.
type server struct {
	name       string
	moderation string
	welcome    string
}

// ModBot handles moderation commands, emoji reports and member welcomes.
type ModBot struct {
	Messenger ficbot.Messenger

	// Servers configures channels per guild name.
	Servers map[string]*ficbot.ServerConfig

	// SelfID is the bot's own user ID. Its messages are ignored.
	SelfID string

	Logger *slog.Logger

	mu   sync.RWMutex
	byID map[string]*server
}

// HandleGuild binds a joined guild to its configured channels.
func (b *ModBot) HandleGuild(ctx context.Context, g *ficbot.Guild) {
	srv := &server{name: g.Name}
	if conf, ok := b.Servers[g.Name]; ok {
		for _, ch := range g.Channels {
			switch ch.Name {
			case conf.Channels.Moderation:
				srv.moderation = ch.ID
			case conf.Channels.Welcome:
				srv.welcome = ch.ID
			}
		}
		b.logger().Info("joined server", "name", g.Name, "id", g.ID)
	} else {
		b.logger().Warn("unknown server", "name", g.Name, "id", g.ID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.byID == nil {
		b.byID = make(map[string]*server)
	}
	b.byID[g.ID] = srv
}

func (b *ModBot) server(guildID string) *server {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.byID[guildID]
}

var commandRE = regexp.MustCompile(`^/\w`)

// HandleMessage runs moderation commands: "/command" in guild channels, or
// any direct message.
func (b *ModBot) HandleMessage(ctx context.Context, msg *ficbot.Message) error {
	if msg.Author.ID == b.SelfID {
		return nil
	}
	content := strings.TrimSpace(msg.Content)
	switch {
	case commandRE.MatchString(content):
		return b.runCommand(ctx, msg, content[1:])
	case msg.IsDirect():
		return b.runCommand(ctx, msg, content)
	}
	return nil
}

// messageServer finds the server a message concerns. Direct messages
// belong to the one known server the author is a member of.
func (b *ModBot) messageServer(ctx context.Context, msg *ficbot.Message) (*server, error) {
	if !msg.IsDirect() {
		return b.server(msg.GuildID), nil
	}
	guilds, err := b.Messenger.MemberGuilds(ctx, msg.Author.ID)
	if err != nil {
		return nil, err
	}
	if len(guilds) != 1 {
		return nil, nil
	}
	return b.server(guilds[0]), nil
}

func (b *ModBot) runCommand(ctx context.Context, msg *ficbot.Message, cmd string) error {
	srv, err := b.messageServer(ctx, msg)
	if err != nil {
		return err
	}
	if srv == nil {
		b.sendDirect(ctx, msg.Author.ID, unknownServerMessage)
	}
	canReport := srv != nil && srv.moderation != ""

	args := strings.Fields(cmd)
	name := ""
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	switch {
	case name == "ping":
		reply := "I am alive"
		if srv != nil {
			reply += "\nYour server is " + srv.name
		}
		if len(args) > 0 {
			reply += "\nYour args were: " + strings.Join(args, "/")
		}
		return b.Messenger.Reply(ctx, msg, reply)
	case name == "report" && canReport:
		text := strings.Join(args, " ")
		where := ficbot.ChannelMention(msg.ChannelID, msg.IsDirect())
		b.logger().Info("report", "from", msg.Author.Tag(), "server", srv.name, "channel", msg.ChannelID, "text", text)
		return b.forward(ctx, msg, srv,
			fmt.Sprintf("@here **REPORT** from %s in %s: %s", msg.Author.Mention(), where, text),
			fmt.Sprintf("Report in %s has been received: %s", where, text))
	case name == "admin" && canReport:
		text := strings.Join(args, " ")
		where := ficbot.ChannelMention(msg.ChannelID, msg.IsDirect())
		b.logger().Info("admin message", "from", msg.Author.Tag(), "server", srv.name, "channel", msg.ChannelID, "text", text)
		return b.forward(ctx, msg, srv,
			fmt.Sprintf("Admin message from %s in %s: %s", msg.Author.Mention(), where, text),
			fmt.Sprintf("Message to admins sent from %s: %s", where, text))
	case name == "help" || msg.IsDirect():
		return b.Messenger.Reply(ctx, msg, usage(canReport))
	}
	return nil
}

// forward deletes msg from its channel, posts post to the moderation
// channel and acknowledges the author privately.
func (b *ModBot) forward(ctx context.Context, msg *ficbot.Message, srv *server, post, ack string) error {
	if !msg.IsDirect() {
		if err := b.Messenger.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
			b.logger().Warn("delete message", "channel", msg.ChannelID, "message", msg.ID, "error", err)
		}
	}
	if err := b.Messenger.SendMessage(ctx, srv.moderation, post); err != nil {
		return err
	}
	b.sendDirect(ctx, msg.Author.ID, ack)
	return nil
}

// HandleReaction treats any reaction in a guild channel as a report of the
// message it was added to.
func (b *ModBot) HandleReaction(ctx context.Context, r *ficbot.Reaction) error {
	if r.GuildID == "" || r.User.ID == b.SelfID {
		return nil
	}
	srv := b.server(r.GuildID)
	if srv == nil || srv.moderation == "" {
		b.logger().Warn("reaction on server without moderation channel", "guild", r.GuildID)
		return nil
	}
	msg, err := b.Messenger.FindMessage(ctx, r.ChannelID, r.MessageID)
	if err != nil {
		return err
	}

	where := ficbot.ChannelMention(r.ChannelID, false)
	report := fmt.Sprintf("Reporting %s saying “%s”", msg.Author.Mention(), msg.Content)
	b.logger().Info("emoji report", "from", r.User.Tag(), "server", srv.name, "channel", r.ChannelID, "message", r.MessageID)

	if err := b.Messenger.RemoveReaction(ctx, r); err != nil {
		return err
	}
	if err := b.Messenger.SendMessage(ctx, srv.moderation,
		fmt.Sprintf("@here **EMOJI REPORT** from %s in %s: %s", r.User.Mention(), where, report)); err != nil {
		return err
	}
	b.sendDirect(ctx, r.User.ID, fmt.Sprintf("Report in %s has been received: %s", where, report))
	return nil
}

// HandleMemberJoin welcomes a new member in the server's welcome channel.
func (b *ModBot) HandleMemberJoin(ctx context.Context, guildID string, user ficbot.User) error {
	srv := b.server(guildID)
	if srv == nil || srv.welcome == "" {
		return nil
	}
	return b.Messenger.SendMessage(ctx, srv.welcome, "Welcome to the server, "+user.Mention())
}

// sendDirect sends a direct message. Users may refuse direct messages, so
// failures are only logged.
func (b *ModBot) sendDirect(ctx context.Context, userID, content string) {
	if err := b.Messenger.SendDirect(ctx, userID, content); err != nil {
		b.logger().Debug("direct message", "user", userID, "error", err)
	}
}

func (b *ModBot) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func usage(canReport bool) string {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	if canReport {
		sb.WriteString("  report <text>  report inappropriate activity\n")
		sb.WriteString("  admin <text>   message the admins\n")
	}
	sb.WriteString("  help           show this help")
	return sb.String()
}
