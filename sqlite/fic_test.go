package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/ficbot"
	"github.com/fwojciec/ficbot/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFic(id, title string, modified time.Time) *ficbot.Fic {
	link := "https://archiveofourown.org/works/" + id
	return &ficbot.Fic{
		Identifiers: []string{"url:" + link},
		Title:       title,
		Link:        link,
		Links:       []string{link, "url:https://forums.spacebattles.com/threads/" + title + "." + id + "/"},
		Fandom:      "Worm",
		Modified:    modified,
		Authors:     []*ficbot.Author{{Name: "Wildbow", Link: "https://archiveofourown.org/users/wildbow"}},
		Tags:        []string{"genre:Action"},
		Words:       1000,
	}
}

var (
	jan = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
)

func TestFicService_CreateFic(t *testing.T) {
	t.Parallel()

	t.Run("indexes every link", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.CreateFic(ctx, testFic("1", "worm", jan)))

		for _, link := range []string{
			"https://archiveofourown.org/works/1",
			"https://archiveofourown.org/works/1/chapters/42",
			"https://forums.spacebattles.com/threads/7",
			"https://forums.spacebattles.com/threads/1",
		} {
			if link == "https://forums.spacebattles.com/threads/7" {
				_, err := svc.FindFicByLink(ctx, link)
				assert.Equal(t, ficbot.ENOTFOUND, ficbot.ErrorCode(err), link)
				continue
			}
			fic, err := svc.FindFicByLink(ctx, link)
			require.NoError(t, err, link)
			assert.Equal(t, "worm", fic.Title)
			assert.Equal(t, jan, fic.Modified)
		}
	})

	t.Run("fills authors from legacy fields", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))
		ctx := context.Background()
		fic := testFic("1", "worm", jan)
		fic.Authors = nil
		fic.Author = "Wildbow"
		fic.AuthorURL = "https://www.parahumans.net"

		require.NoError(t, svc.CreateFic(ctx, fic))

		fics, err := svc.FindFicsByAuthor(ctx, "https://www.parahumans.net")
		require.NoError(t, err)
		require.Len(t, fics, 1)
		assert.Equal(t, []*ficbot.Author{{Name: "Wildbow", Link: "https://www.parahumans.net"}}, fics[0].Authors)
	})

	t.Run("rejects fics without links", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))

		err := svc.CreateFic(context.Background(), &ficbot.Fic{Title: "nowhere"})

		assert.Equal(t, ficbot.EINVALID, ficbot.ErrorCode(err))
	})

	t.Run("later fics own shared links", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))
		ctx := context.Background()
		first := testFic("1", "worm", jan)
		second := testFic("2", "ward", feb)
		second.Links = append(second.Links, "https://archiveofourown.org/works/1")

		require.NoError(t, svc.CreateFic(ctx, first))
		require.NoError(t, svc.CreateFic(ctx, second))

		fic, err := svc.FindFicByLink(ctx, "https://archiveofourown.org/works/1")
		require.NoError(t, err)
		assert.Equal(t, "ward", fic.Title)
	})
}

func TestFicService_FindFicByLink(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewFicService(setupTestDB(t))

	_, err := svc.FindFicByLink(context.Background(), "https://archiveofourown.org/works/404")

	assert.Equal(t, ficbot.ENOTFOUND, ficbot.ErrorCode(err))
}

func TestFicService_ReplaceFics(t *testing.T) {
	t.Parallel()

	t.Run("writes only changed records", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))
		ctx := context.Background()

		n, err := svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("1", "worm", jan), testFic("2", "ward", feb)})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		changed := testFic("2", "ward", feb)
		changed.Words = 2000
		n, err = svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("1", "worm", jan), changed})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		fic, err := svc.FindFicByLink(ctx, "https://archiveofourown.org/works/2")
		require.NoError(t, err)
		assert.Equal(t, 2000, fic.Words)
	})

	t.Run("removes fics missing from the new collection", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))
		ctx := context.Background()

		_, err := svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("1", "worm", jan), testFic("2", "ward", feb)})
		require.NoError(t, err)
		_, err = svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("2", "ward", feb)})
		require.NoError(t, err)

		_, err = svc.FindFicByLink(ctx, "https://archiveofourown.org/works/1")
		assert.Equal(t, ficbot.ENOTFOUND, ficbot.ErrorCode(err))
		_, err = svc.FindFicByLink(ctx, "https://forums.spacebattles.com/threads/1")
		assert.Equal(t, ficbot.ENOTFOUND, ficbot.ErrorCode(err))

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, ficbot.Stats{Links: 2, Fics: 1, Authors: 1}, stats)
	})

	t.Run("drops fics created since the last load", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))
		ctx := context.Background()

		_, err := svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("1", "worm", jan)})
		require.NoError(t, err)
		require.NoError(t, svc.CreateFic(ctx, testFic("3", "pact", feb)))

		_, err = svc.FindFicByLink(ctx, "https://archiveofourown.org/works/3")
		require.NoError(t, err)

		_, err = svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("1", "worm", jan)})
		require.NoError(t, err)

		_, err = svc.FindFicByLink(ctx, "https://archiveofourown.org/works/3")
		assert.Equal(t, ficbot.ENOTFOUND, ficbot.ErrorCode(err))
	})

	t.Run("invalid fic leaves collection untouched", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))
		ctx := context.Background()

		_, err := svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("1", "worm", jan)})
		require.NoError(t, err)

		_, err = svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("2", "ward", feb), {Title: "broken"}})
		require.Error(t, err)

		_, err = svc.FindFicByLink(ctx, "https://archiveofourown.org/works/1")
		require.NoError(t, err)
		_, err = svc.FindFicByLink(ctx, "https://archiveofourown.org/works/2")
		assert.Equal(t, ficbot.ENOTFOUND, ficbot.ErrorCode(err))
	})
}

func TestFicService_FindFicsByAuthor(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewFicService(setupTestDB(t))
	ctx := context.Background()
	other := testFic("3", "twig", feb)
	other.Authors = []*ficbot.Author{{Name: "Someone", Link: "https://example.com/someone"}}

	_, err := svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("1", "worm", jan), testFic("2", "ward", feb), other})
	require.NoError(t, err)

	fics, err := svc.FindFicsByAuthor(ctx, "https://archiveofourown.org/users/wildbow")

	require.NoError(t, err)
	require.Len(t, fics, 2)
	assert.Equal(t, "ward", fics[0].Title)
	assert.Equal(t, "worm", fics[1].Title)
}

func TestFicService_FindAuthors(t *testing.T) {
	t.Parallel()

	t.Run("matches link or name ignoring case", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.ReplaceAuthors(ctx, []*ficbot.Author{
			{
				Name:     "Wildbow",
				Link:     "https://archiveofourown.org/users/wildbow",
				Accounts: []*ficbot.Account{{Name: "wildbow", Link: "https://forums.spacebattles.com/members/1", Image: "https://example.com/a.png"}},
			},
			{Name: "Wildbow", Link: "https://forums.sufficientvelocity.com/members/2"},
			{Name: "Other", Link: "https://example.com/other"},
		}))

		byName, err := svc.FindAuthors(ctx, "wildbow")
		require.NoError(t, err)
		require.Len(t, byName, 2)
		assert.Equal(t, "https://example.com/a.png", byName[0].Accounts[0].Image)

		byLink, err := svc.FindAuthors(ctx, "https://example.com/other")
		require.NoError(t, err)
		require.Len(t, byLink, 1)
		assert.Equal(t, "Other", byLink[0].Name)
	})

	t.Run("falls back on credited authors", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.CreateFic(ctx, testFic("1", "worm", jan)))

		authors, err := svc.FindAuthors(ctx, "WILDBOW")

		require.NoError(t, err)
		assert.Equal(t, []*ficbot.Author{{Name: "Wildbow", Link: "https://archiveofourown.org/users/wildbow"}}, authors)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))

		authors, err := svc.FindAuthors(context.Background(), "nobody")

		require.NoError(t, err)
		assert.Empty(t, authors)
	})

	t.Run("replace rejects invalid authors", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewFicService(setupTestDB(t))

		err := svc.ReplaceAuthors(context.Background(), []*ficbot.Author{{Name: "no link"}})

		assert.Equal(t, ficbot.EINVALID, ficbot.ErrorCode(err))
	})
}

func TestFicService_Stats(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewFicService(setupTestDB(t))
	ctx := context.Background()
	_, err := svc.ReplaceFics(ctx, []*ficbot.Fic{testFic("1", "worm", jan), testFic("2", "ward", feb)})
	require.NoError(t, err)
	require.NoError(t, svc.ReplaceAuthors(ctx, []*ficbot.Author{
		{Name: "Wildbow", Link: "https://archiveofourown.org/users/wildbow"},
		{Name: "Other", Link: "https://example.com/other"},
	}))

	stats, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, ficbot.Stats{Links: 4, Fics: 2, Authors: 2}, stats)
}
