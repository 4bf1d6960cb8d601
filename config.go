package ficbot

// Config holds the settings shared by the bots.
type Config struct {
	// Token authenticates the bot with the chat platform.
	Token string `toml:"token"`

	// ID is the bot's own user ID. Messages from it are ignored.
	ID string `toml:"id"`

	// SuperAdmin is the user allowed to run reload commands.
	SuperAdmin string `toml:"superadmin"`

	// Prefix starts fic bot commands, as in "!fic <url>".
	Prefix string `toml:"prefix"`

	// FanficDB is the line-delimited JSON file of fic records.
	FanficDB string `toml:"fanficdb"`

	// Authors is an optional line-delimited JSON file of author records.
	Authors string `toml:"authors"`

	// Substitutions is the directory of substitution tables.
	Substitutions string `toml:"substitutions"`

	// Database is the SQLite database path.
	Database string `toml:"database"`

	// Converter selects the HTML to Markdown engine: "discord" or "commonmark".
	Converter string `toml:"converter"`

	// FetchURL is the metadata service used to look up fics missing from
	// the database. Unknown fics are not looked up when empty.
	FetchURL string `toml:"fetch_url"`

	// FetchRate limits fic downloads per site, in requests per second.
	FetchRate float64 `toml:"fetch_rate"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	ImageCache ImageCacheConfig `toml:"image_cache"`

	// Servers configures the moderation bot per guild name.
	Servers map[string]*ServerConfig `toml:"servers"`
}

// ImageCacheConfig maps locally cached cover art to public URLs.
type ImageCacheConfig struct {
	Dir string `toml:"dir"`
	URL string `toml:"url"`
}

// ServerConfig names the moderation bot's channels in one guild.
type ServerConfig struct {
	Channels ChannelsConfig `toml:"channels"`
}

// ChannelsConfig holds channel names.
type ChannelsConfig struct {
	Moderation string `toml:"moderation"`
	Welcome    string `toml:"welcome"`
}

// Converter engines.
const (
	ConverterDiscord    = "discord"
	ConverterCommonMark = "commonmark"
)

// DefaultConfig returns the configuration used for settings missing from
// the config file.
func DefaultConfig() *Config {
	return &Config{
		Prefix:        "!",
		FanficDB:      "./Fanfic.json",
		Substitutions: "./substitutions",
		Database:      ":memory:",
		Converter:     ConverterDiscord,
		FetchRate:     1,
		LogLevel:      "info",
		Servers:       map[string]*ServerConfig{},
	}
}

// Environment variables that override configuration file settings.
const (
	EnvToken    = "FICBOT_TOKEN"
	EnvLogLevel = "FICBOT_LOG_LEVEL"
)

// ApplyEnv overrides settings with the environment variables set in
// getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate returns an error if the configuration cannot start a bot.
func (c *Config) Validate() error {
	if c.Token == "" {
		return Errorf(EINVALID, "token required")
	}
	switch c.Converter {
	case ConverterDiscord, ConverterCommonMark:
	default:
		return Errorf(EINVALID, "unknown converter %q", c.Converter)
	}
	if c.FetchRate < 0 {
		return Errorf(EINVALID, "fetch_rate must not be negative")
	}
	return nil
}
