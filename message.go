package ficbot

import "context"

// User is a chat user.
type User struct {
	ID            string
	Name          string
	Discriminator string
}

// Mention returns the markup that mentions the user in a message.
func (u User) Mention() string {
	return "<@" + u.ID + ">"
}

// Tag returns the user's display name, with discriminator when present.
func (u User) Tag() string {
	if u.Discriminator != "" && u.Discriminator != "0" {
		return u.Name + "#" + u.Discriminator
	}
	return u.Name
}

// ChannelMention returns the markup that links to a channel, or "DM" for
// direct messages.
func ChannelMention(channelID string, direct bool) string {
	if direct {
		return "DM"
	}
	return "<#" + channelID + ">"
}

// Message is a chat message delivered to a bot.
type Message struct {
	ID        string
	ChannelID string
	// GuildID is empty for direct messages.
	GuildID string
	Author  User
	Content string
}

// IsDirect reports whether the message was sent in a direct message.
func (m *Message) IsDirect() bool {
	return m.GuildID == ""
}

// Reaction is an emoji reaction added to a message.
type Reaction struct {
	MessageID string
	ChannelID string
	GuildID   string
	User      User
	Emoji     string
}

// Channel is a text channel of a guild.
type Channel struct {
	ID   string
	Name string
}

// Guild is a chat server the bot has joined.
type Guild struct {
	ID       string
	Name     string
	Channels []Channel
}

// Messenger sends and manages messages on the chat platform.
type Messenger interface {
	// SendMessage posts text to a channel.
	SendMessage(ctx context.Context, channelID, content string) error

	// SendEmbed posts a rich embed to a channel.
	SendEmbed(ctx context.Context, channelID string, embed *Embed) error

	// Reply answers msg in its channel.
	Reply(ctx context.Context, msg *Message, content string) error

	// SendDirect sends a direct message to a user.
	SendDirect(ctx context.Context, userID, content string) error

	// DeleteMessage removes a message.
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// FindMessage retrieves a message by ID.
	FindMessage(ctx context.Context, channelID, messageID string) (*Message, error)

	// RemoveReaction removes a user's reaction from a message.
	RemoveReaction(ctx context.Context, r *Reaction) error

	// Typing shows that the bot is working on a reply in a channel.
	Typing(ctx context.Context, channelID string) error

	// MemberGuilds returns the IDs of the joined guilds the user is a member of.
	MemberGuilds(ctx context.Context, userID string) ([]string, error)
}
