package bot_test

import (
	"context"
	"sync"

	"github.com/fwojciec/ficbot"
	"github.com/fwojciec/ficbot/mock"
)

// sent is a message posted through the recording messenger.
type sent struct {
	kind    string
	target  string
	content string
}

// recorder records everything sent through its messenger.
type recorder struct {
	mu      sync.Mutex
	sent    []sent
	embeds  []*ficbot.Embed
	deleted []string
	removed []*ficbot.Reaction
	guilds  []string
	found   *ficbot.Message
}

func (r *recorder) add(kind, target, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{kind, target, content})
	return nil
}

func (r *recorder) messenger() *mock.Messenger {
	return &mock.Messenger{
		SendMessageFn: func(_ context.Context, channelID, content string) error {
			return r.add("message", channelID, content)
		},
		SendEmbedFn: func(_ context.Context, channelID string, embed *ficbot.Embed) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.embeds = append(r.embeds, embed)
			return nil
		},
		ReplyFn: func(_ context.Context, msg *ficbot.Message, content string) error {
			return r.add("reply", msg.ChannelID, content)
		},
		SendDirectFn: func(_ context.Context, userID, content string) error {
			return r.add("direct", userID, content)
		},
		DeleteMessageFn: func(_ context.Context, channelID, messageID string) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.deleted = append(r.deleted, messageID)
			return nil
		},
		FindMessageFn: func(_ context.Context, channelID, messageID string) (*ficbot.Message, error) {
			if r.found == nil {
				return nil, ficbot.Errorf(ficbot.ENOTFOUND, "message not found")
			}
			return r.found, nil
		},
		RemoveReactionFn: func(_ context.Context, reaction *ficbot.Reaction) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.removed = append(r.removed, reaction)
			return nil
		},
		TypingFn: func(context.Context, string) error { return nil },
		MemberGuildsFn: func(context.Context, string) ([]string, error) {
			return r.guilds, nil
		},
	}
}

func (r *recorder) all(kind string) []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []sent
	for _, s := range r.sent {
		if s.kind == kind {
			out = append(out, s)
		}
	}
	return out
}
