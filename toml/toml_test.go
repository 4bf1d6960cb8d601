package toml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/ficbot"
	"github.com/fwojciec/ficbot/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("merges file over defaults", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "bot.toml", `
token = "secret"
id = "42"
superadmin = "7"
converter = "commonmark"

[image_cache]
dir = "/srv/cache"
url = "https://img.example.com"

[servers.Parahumans.channels]
moderation = "mods"
welcome = "welcome"
`)

		cfg, err := toml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.Token)
		assert.Equal(t, "42", cfg.ID)
		assert.Equal(t, "7", cfg.SuperAdmin)
		assert.Equal(t, ficbot.ConverterCommonMark, cfg.Converter)
		assert.Equal(t, "/srv/cache", cfg.ImageCache.Dir)
		assert.Equal(t, "mods", cfg.Servers["Parahumans"].Channels.Moderation)
		assert.Equal(t, "welcome", cfg.Servers["Parahumans"].Channels.Welcome)

		assert.Equal(t, "./Fanfic.json", cfg.FanficDB)
		assert.Equal(t, "./substitutions", cfg.Substitutions)
		assert.Equal(t, "!", cfg.Prefix)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := toml.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))

		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		_, err := toml.DecodeConfig(strings.NewReader(`token = `))

		assert.Equal(t, ficbot.EINVALID, ficbot.ErrorCode(err))
	})
}

func TestLoadSubstitutions(t *testing.T) {
	t.Parallel()

	t.Run("reads one table per kind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "chars.toml", `
"Taylor Hebert" = "https://worm.fandom.com/wiki/Taylor_Hebert"
"Amy" = "https://worm.fandom.com/wiki/Amy_Dallon"
`)
		writeFile(t, dir, "xover.toml", `"Pact" = "https://pactwebserial.wordpress.com"`)

		subs, err := toml.LoadSubstitutions(dir)

		require.NoError(t, err)
		assert.Equal(t, "https://worm.fandom.com/wiki/Amy_Dallon", subs.Get(ficbot.SubstChars)["Amy"])
		assert.Len(t, subs.Get(ficbot.SubstChars), 2)
		assert.Equal(t, ficbot.LinkSet{"Pact": "https://pactwebserial.wordpress.com"}, subs.Get(ficbot.SubstXover))
	})

	t.Run("missing files yield empty tables", func(t *testing.T) {
		t.Parallel()

		subs, err := toml.LoadSubstitutions(t.TempDir())

		require.NoError(t, err)
		for _, kind := range ficbot.SubstitutionKinds {
			assert.NotNil(t, subs.Get(kind), kind)
			assert.Empty(t, subs.Get(kind), kind)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "tags.toml", `"broken" = `)

		_, err := toml.LoadSubstitutions(dir)

		assert.Equal(t, ficbot.EINVALID, ficbot.ErrorCode(err))
		assert.Contains(t, ficbot.ErrorMessage(err), "tags.toml")
	})
}
