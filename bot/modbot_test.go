package bot_test

import (
	"context"
	"testing"

	"github.com/fwojciec/ficbot"
	"github.com/fwojciec/ficbot/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModBot(rec *recorder) *bot.ModBot {
	b := &bot.ModBot{
		Messenger: rec.messenger(),
		Servers: map[string]*ficbot.ServerConfig{
			"Parahumans": {Channels: ficbot.ChannelsConfig{Moderation: "mods", Welcome: "welcome"}},
		},
		SelfID: "bot",
	}
	b.HandleGuild(context.Background(), &ficbot.Guild{
		ID:   "g1",
		Name: "Parahumans",
		Channels: []ficbot.Channel{
			{ID: "c1", Name: "general"},
			{ID: "c2", Name: "mods"},
			{ID: "c3", Name: "welcome"},
		},
	})
	return b
}

func TestModBot_HandleMessage(t *testing.T) {
	t.Parallel()

	t.Run("ping", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		b := newModBot(rec)

		err := b.HandleMessage(context.Background(), message("u1", "/ping a b"))

		require.NoError(t, err)
		assert.Equal(t, []sent{{"reply", "c1", "I am alive\nYour server is Parahumans\nYour args were: a/b"}}, rec.sent)
	})

	t.Run("report in channel", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		b := newModBot(rec)

		err := b.HandleMessage(context.Background(), message("u1", "/report spam in here"))

		require.NoError(t, err)
		assert.Equal(t, []string{"m1"}, rec.deleted)
		assert.Equal(t, []sent{
			{"message", "c2", "@here **REPORT** from <@u1> in <#c1>: spam in here"},
			{"direct", "u1", "Report in <#c1> has been received: spam in here"},
		}, rec.sent)
	})

	t.Run("report by direct message", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{guilds: []string{"g1"}}
		b := newModBot(rec)
		msg := message("u1", "report spam")
		msg.GuildID = ""

		err := b.HandleMessage(context.Background(), msg)

		require.NoError(t, err)
		assert.Empty(t, rec.deleted)
		assert.Equal(t, []sent{
			{"message", "c2", "@here **REPORT** from <@u1> in DM: spam"},
			{"direct", "u1", "Report in DM has been received: spam"},
		}, rec.sent)
	})

	t.Run("admin message", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		b := newModBot(rec)

		err := b.HandleMessage(context.Background(), message("u1", "/admin hello"))

		require.NoError(t, err)
		assert.Equal(t, []sent{
			{"message", "c2", "Admin message from <@u1> in <#c1>: hello"},
			{"direct", "u1", "Message to admins sent from <#c1>: hello"},
		}, rec.sent)
	})

	t.Run("direct message without a single server", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{guilds: []string{"g1", "g2"}}
		b := newModBot(rec)
		msg := message("u1", "report spam")
		msg.GuildID = ""

		err := b.HandleMessage(context.Background(), msg)

		require.NoError(t, err)
		require.Len(t, rec.sent, 2)
		assert.Equal(t, sent{"direct", "u1", "We were unable to determine exactly one server associated with you and this bot, the DM interface will be limited."}, rec.sent[0])
		assert.Equal(t, "reply", rec.sent[1].kind)
		assert.NotContains(t, rec.sent[1].content, "report")
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		b := newModBot(rec)

		err := b.HandleMessage(context.Background(), message("u1", "/help"))

		require.NoError(t, err)
		require.Len(t, rec.sent, 1)
		assert.Contains(t, rec.sent[0].content, "report <text>")
		assert.Contains(t, rec.sent[0].content, "admin <text>")
	})

	t.Run("ignores plain channel messages", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		b := newModBot(rec)

		require.NoError(t, b.HandleMessage(context.Background(), message("u1", "report spam")))
		require.NoError(t, b.HandleMessage(context.Background(), message("u1", "/unknown")))
		require.NoError(t, b.HandleMessage(context.Background(), message("u1", "/ not a command")))

		assert.Empty(t, rec.sent)
	})

	t.Run("ignores own messages", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		b := newModBot(rec)

		require.NoError(t, b.HandleMessage(context.Background(), message("bot", "/ping")))

		assert.Empty(t, rec.sent)
	})
}

func TestModBot_HandleReaction(t *testing.T) {
	t.Parallel()

	t.Run("reports the message", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{found: &ficbot.Message{
			ID:      "m9",
			Author:  ficbot.User{ID: "troll"},
			Content: "rude words",
		}}
		b := newModBot(rec)
		r := &ficbot.Reaction{MessageID: "m9", ChannelID: "c1", GuildID: "g1", User: ficbot.User{ID: "u1"}, Emoji: "🚩"}

		err := b.HandleReaction(context.Background(), r)

		require.NoError(t, err)
		assert.Equal(t, []*ficbot.Reaction{r}, rec.removed)
		assert.Equal(t, []sent{
			{"message", "c2", "@here **EMOJI REPORT** from <@u1> in <#c1>: Reporting <@troll> saying “rude words”"},
			{"direct", "u1", "Report in <#c1> has been received: Reporting <@troll> saying “rude words”"},
		}, rec.sent)
	})

	t.Run("ignores reactions outside guilds", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		b := newModBot(rec)

		err := b.HandleReaction(context.Background(), &ficbot.Reaction{MessageID: "m9", ChannelID: "d1", User: ficbot.User{ID: "u1"}})

		require.NoError(t, err)
		assert.Empty(t, rec.removed)
		assert.Empty(t, rec.sent)
	})

	t.Run("ignores unknown servers", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		b := newModBot(rec)
		b.HandleGuild(context.Background(), &ficbot.Guild{ID: "g2", Name: "Elsewhere"})

		err := b.HandleReaction(context.Background(), &ficbot.Reaction{MessageID: "m9", ChannelID: "c9", GuildID: "g2", User: ficbot.User{ID: "u1"}})

		require.NoError(t, err)
		assert.Empty(t, rec.sent)
	})
}

func TestModBot_HandleMemberJoin(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	b := newModBot(rec)

	err := b.HandleMemberJoin(context.Background(), "g1", ficbot.User{ID: "u7", Name: "newbie"})

	require.NoError(t, err)
	assert.Equal(t, []sent{{"message", "c3", "Welcome to the server, <@u7>"}}, rec.sent)
}
