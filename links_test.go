package ficbot_test

import (
	"testing"

	"github.com/fwojciec/ficbot"
	"github.com/stretchr/testify/assert"
)

func TestFindLinks(t *testing.T) {
	t.Parallel()

	t.Run("finds supported links in order", func(t *testing.T) {
		t.Parallel()

		text := "check https://archiveofourown.org/works/123/chapters/456 and " +
			"https://www.fanfiction.net/s/789/2/Some-Title plus https://example.com/x"

		links := ficbot.FindLinks(text)

		assert.Equal(t, []string{
			"https://archiveofourown.org/works/123",
			"https://www.fanfiction.net/s/789",
		}, links)
	})

	t.Run("finds forum threads and posts", func(t *testing.T) {
		t.Parallel()

		links := ficbot.FindLinks("https://forums.spacebattles.com/threads/a-fic.1234/ " +
			"http://forums.sufficientvelocity.com/posts/99")

		assert.Equal(t, []string{
			"https://forums.spacebattles.com/threads/a-fic.1234",
			"http://forums.sufficientvelocity.com/posts/99",
		}, links)
	})

	t.Run("returns nothing without supported links", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ficbot.FindLinks("just chatting https://example.com"))
		assert.False(t, ficbot.HasLinks("just chatting"))
	})
}

func TestLinkSite(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://forums.spacebattles.com/threads/1":       "SB",
		"https://forums.sufficientvelocity.com/threads/1": "SV",
		"https://questionablequesting.com/threads/1":      "QQ",
		"https://archiveofourown.org/works/1":             "AO3",
		"https://www.fanfiction.net/s/1":                  "FF",
		"https://www.wattpad.com/story/1":                 "wattpad",
		"https://example.com":                             "link",
	}
	for link, want := range tests {
		assert.Equal(t, want, ficbot.LinkSite(link), link)
	}
}

func TestShortLink(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://forums.spacebattles.com/threads/some-fic.123/page-4#post-567": "https://forums.spacebattles.com/posts/567",
		"https://forums.spacebattles.com/threads/some-fic.123/":                "https://forums.spacebattles.com/threads/123",
		"https://forums.spacebattles.com/members/someone.42/":                  "https://forums.spacebattles.com/members/42",
		"https://archiveofourown.org/works/1/chapters/2":                       "https://archiveofourown.org/works/1",
		"https://forum.questionablequesting.com/threads/x.9":                   "https://questionablequesting.com/threads/9",
		"https://forums.sufficientvelocity.com/threads/x.9":                    "https://sufficientvelocity.com/threads/9",
		"https://www.fanfiction.net/s/123/4/Some-Title":                        "https://www.fanfiction.net/s/123/4",
	}
	for link, want := range tests {
		assert.Equal(t, want, ficbot.ShortLink(link), link)
	}
}

func TestNormalizeLink(t *testing.T) {
	t.Parallel()

	t.Run("forces https and drops chapters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://www.fanfiction.net/s/123", ficbot.NormalizeLink("http://www.fanfiction.net/s/123/4/Title"))
		assert.Equal(t, "https://archiveofourown.org/works/1", ficbot.NormalizeLink("url:https://archiveofourown.org/works/1/chapters/9?view_adult=true"))
	})

	t.Run("keeps forum post anchors", func(t *testing.T) {
		t.Parallel()

		got := ficbot.NormalizeLink("https://forums.spacebattles.com/threads/fic.1/#post-22")

		assert.Equal(t, "https://forums.spacebattles.com/posts/22", got)
	})

	t.Run("is stable", func(t *testing.T) {
		t.Parallel()

		once := ficbot.NormalizeLink("http://forums.spacebattles.com/threads/fic.1/")

		assert.Equal(t, once, ficbot.NormalizeLink(once))
	})
}

func TestHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "archiveofourown.org", ficbot.Host("https://archiveofourown.org/works/1"))
	assert.Empty(t, ficbot.Host("::not a url"))
}
