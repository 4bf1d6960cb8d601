package discord

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/fwojciec/ficbot"
)

// MaxMessageLength is the longest message content the chat accepts.
const MaxMessageLength = 2000

// ToMessageEmbed converts an embed to its wire form.
func ToMessageEmbed(e *ficbot.Embed) *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       ficbot.Truncate(e.Title, ficbot.MaxTitleLength),
		URL:         e.URL,
		Description: ficbot.Truncate(e.Description, ficbot.MaxDescriptionLength),
		Color:       e.Color,
	}
	if e.Author != "" {
		me.Author = &discordgo.MessageEmbedAuthor{Name: ficbot.Truncate(e.Author, ficbot.MaxTitleLength)}
	}
	if e.Thumbnail != "" {
		me.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.Thumbnail}
	}
	if !e.Timestamp.IsZero() {
		me.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}
	if e.Footer != "" {
		me.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	for _, f := range e.Fields {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{
			Name:   ficbot.Truncate(f.Name, ficbot.MaxTitleLength),
			Value:  ficbot.Truncate(f.Value, ficbot.MaxFieldValueLength),
			Inline: f.Inline,
		})
	}
	return me
}

// FromUser converts a chat user. A nil user converts to the zero User.
func FromUser(u *discordgo.User) ficbot.User {
	if u == nil {
		return ficbot.User{}
	}
	return ficbot.User{ID: u.ID, Name: u.Username, Discriminator: u.Discriminator}
}

// FromMessage converts a received message.
func FromMessage(m *discordgo.Message) *ficbot.Message {
	return &ficbot.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Author:    FromUser(m.Author),
		Content:   m.Content,
	}
}

// FromReaction converts an added reaction. The reacting user's name is
// taken from member when the event carries one.
func FromReaction(r *discordgo.MessageReaction, member *discordgo.Member) *ficbot.Reaction {
	user := ficbot.User{ID: r.UserID}
	if member != nil && member.User != nil {
		user = FromUser(member.User)
	}
	return &ficbot.Reaction{
		MessageID: r.MessageID,
		ChannelID: r.ChannelID,
		GuildID:   r.GuildID,
		User:      user,
		Emoji:     r.Emoji.APIName(),
	}
}

// FromGuild converts a guild and its text channels.
func FromGuild(g *discordgo.Guild) *ficbot.Guild {
	guild := &ficbot.Guild{ID: g.ID, Name: g.Name}
	for _, ch := range g.Channels {
		if ch == nil || ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		guild.Channels = append(guild.Channels, ficbot.Channel{ID: ch.ID, Name: ch.Name})
	}
	return guild
}

// Split breaks content into messages of at most limit characters, cutting
// at the last newline before the limit when there is one.
func Split(content string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(content) <= limit {
		return []string{content}
	}
	var parts []string
	runes := []rune(content)
	for len(runes) > limit {
		cut := limit
		if i := lastIndex(runes[:limit], '\n'); i > 0 {
			cut = i
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
		if len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	if rest := strings.TrimSpace(string(runes)); rest != "" {
		parts = append(parts, string(runes))
	}
	return parts
}

func lastIndex(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
