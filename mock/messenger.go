package mock

import (
	"context"

	"github.com/fwojciec/ficbot"
)

var _ ficbot.Messenger = (*Messenger)(nil)

// Messenger is a mock implementation of ficbot.Messenger.
type Messenger struct {
	SendMessageFn    func(ctx context.Context, channelID, content string) error
	SendEmbedFn      func(ctx context.Context, channelID string, embed *ficbot.Embed) error
	ReplyFn          func(ctx context.Context, msg *ficbot.Message, content string) error
	SendDirectFn     func(ctx context.Context, userID, content string) error
	DeleteMessageFn  func(ctx context.Context, channelID, messageID string) error
	FindMessageFn    func(ctx context.Context, channelID, messageID string) (*ficbot.Message, error)
	RemoveReactionFn func(ctx context.Context, r *ficbot.Reaction) error
	TypingFn         func(ctx context.Context, channelID string) error
	MemberGuildsFn   func(ctx context.Context, userID string) ([]string, error)
}

func (m *Messenger) SendMessage(ctx context.Context, channelID, content string) error {
	return m.SendMessageFn(ctx, channelID, content)
}

func (m *Messenger) SendEmbed(ctx context.Context, channelID string, embed *ficbot.Embed) error {
	return m.SendEmbedFn(ctx, channelID, embed)
}

func (m *Messenger) Reply(ctx context.Context, msg *ficbot.Message, content string) error {
	return m.ReplyFn(ctx, msg, content)
}

func (m *Messenger) SendDirect(ctx context.Context, userID, content string) error {
	return m.SendDirectFn(ctx, userID, content)
}

func (m *Messenger) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return m.DeleteMessageFn(ctx, channelID, messageID)
}

func (m *Messenger) FindMessage(ctx context.Context, channelID, messageID string) (*ficbot.Message, error) {
	return m.FindMessageFn(ctx, channelID, messageID)
}

func (m *Messenger) RemoveReaction(ctx context.Context, r *ficbot.Reaction) error {
	return m.RemoveReactionFn(ctx, r)
}

func (m *Messenger) Typing(ctx context.Context, channelID string) error {
	return m.TypingFn(ctx, channelID)
}

func (m *Messenger) MemberGuilds(ctx context.Context, userID string) ([]string, error) {
	return m.MemberGuildsFn(ctx, userID)
}
