package ficbot_test

import (
	"testing"
	"time"

	"github.com/fwojciec/ficbot"
	"github.com/stretchr/testify/assert"
)

func TestFic_Key(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "url:https://a", (&ficbot.Fic{Identifiers: []string{"top:1", "url:https://a"}}).Key())
	assert.Equal(t, "top:1", (&ficbot.Fic{Identifiers: []string{"top:1"}}).Key())
	assert.Equal(t, "url:https://b", (&ficbot.Fic{Link: "https://b"}).Key())
}

func TestFic_Validate(t *testing.T) {
	t.Parallel()

	err := (&ficbot.Fic{Title: "x"}).Validate()

	assert.Equal(t, ficbot.EINVALID, ficbot.ErrorCode(err))
	assert.NoError(t, (&ficbot.Fic{Links: []string{"url:https://a"}}).Validate())
}

func TestFic_AllLinks(t *testing.T) {
	t.Parallel()

	fic := &ficbot.Fic{Link: "https://a", Links: []string{"url:https://a", "url:https://b"}}

	assert.Equal(t, []string{"https://a", "https://b"}, fic.AllLinks())
}

func TestFic_ChapterCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, (&ficbot.Fic{}).ChapterCount())

	fic := &ficbot.Fic{Chapters: []ficbot.Chapter{
		{Name: "1"}, {Name: "2", Type: "chapter"}, {Name: "Omake", Type: "omake"},
	}}
	assert.Equal(t, 2, fic.ChapterCount())
}

func TestFic_EnsureAuthors(t *testing.T) {
	t.Parallel()

	fic := &ficbot.Fic{Author: "someone", AuthorURL: "https://a/someone"}
	fic.EnsureAuthors()

	assert.Equal(t, []*ficbot.Author{{Name: "someone", Link: "https://a/someone"}}, fic.Authors)

	empty := &ficbot.Fic{}
	empty.EnsureAuthors()
	assert.NotNil(t, empty.Authors)
	assert.Empty(t, empty.Authors)
}

func TestFic_Normalize(t *testing.T) {
	t.Parallel()

	modified := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fetched := &ficbot.Fic{
		Title:    "A Fic",
		Link:     "https://archiveofourown.org/works/1",
		Modified: modified,
		Tags:     []string{"fandom:Worm", "status:complete"},
		Author:   "someone",
		Words:    1000,
	}

	fic := fetched.Normalize()

	assert.Equal(t, "Worm", fic.Fandom)
	assert.Equal(t, "Worm", fic.Collection)
	assert.Equal(t, "complete", fic.Status)
	assert.True(t, fic.IsComplete())
	assert.Equal(t, modified, fic.Created)
	assert.Equal(t, []string{"https://archiveofourown.org/works/1"}, fic.Links)
	assert.Len(t, fic.Authors, 1)
	assert.False(t, fic.IsTop())
}
