package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ficbot"
	"github.com/fwojciec/ficbot/bloom"
	"github.com/fwojciec/ficbot/bot"
	"github.com/fwojciec/ficbot/discord"
	"github.com/fwojciec/ficbot/html"
	"github.com/fwojciec/ficbot/htmltomarkdown"
	fichttp "github.com/fwojciec/ficbot/http"
	"github.com/fwojciec/ficbot/render"
	ficslog "github.com/fwojciec/ficbot/slog"
	"github.com/fwojciec/ficbot/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads environment overrides of the config file.
	Getenv func(string) string

	Config   *ficbot.Config
	Logger   *slog.Logger
	DB       *sqlite.DB
	Fics     ficbot.FicService
	Renderer *render.Renderer
	Bot      *bot.FicBot

	// Misses holds links the metadata service did not know. It is
	// cleared whenever the fic database is reloaded.
	Misses *bloom.Filter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `arg:"" type:"path" help:"Path to the TOML config file"`
	Check  bool   `help:"Load the fic database and exit without connecting"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ficbot"),
		kong.Description("Chat bot that summarizes linked fan fiction"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no config file specified")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if err := m.Setup(ctx, cli.Config, stderr); err != nil {
		return err
	}
	defer m.Close()

	if cli.Check {
		status, err := m.Bot.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, status)
		return nil
	}

	return m.Serve(ctx)
}

// Setup loads the configuration, fic database and substitutions and builds
// the bot. Logs are written to logw.
func (m *Main) Setup(ctx context.Context, configPath string, logw io.Writer) error {
	cfg, err := loadConfig(configPath, m.Getenv)
	if err != nil {
		return err
	}
	m.Config = cfg

	m.Logger, err = ficslog.NewLogger(logw, cfg.LogLevel)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(cfg.Database)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", cfg.Database, err)
	}
	m.Fics = ficslog.NewLoggingFicService(sqlite.NewFicService(m.DB), m.Logger)

	m.Renderer = &render.Renderer{
		Converter:  ficslog.NewLoggingConverter(newConverter(cfg.Converter, m.Logger), m.Logger),
		ImageCache: cfg.ImageCache,
		Logger:     m.Logger,
	}

	resolver := &bot.Resolver{
		Fics:   m.Fics,
		Logger: m.Logger,
	}
	if cfg.FetchURL != "" {
		resolver.Fetcher = ficslog.NewLoggingFetcher(fichttp.NewFetcher(cfg.FetchURL), m.Logger)
		resolver.Limiter = bot.NewDomainLimiter(cfg.FetchRate)
		m.Misses = bloom.NewFilter(bloom.DefaultCapacity, bloom.DefaultFPRate)
		resolver.Misses = m.Misses
	}

	m.Bot = &bot.FicBot{
		Fics:                m.Fics,
		Resolver:            resolver,
		Renderer:            m.Renderer,
		Prefix:              cfg.Prefix,
		SelfID:              cfg.ID,
		SuperAdmin:          cfg.SuperAdmin,
		ReloadDB:            m.loadDB,
		ReloadSubstitutions: m.loadSubstitutions,
		Logger:              m.Logger,
	}

	if err := m.loadDB(ctx); err != nil {
		return err
	}
	return m.loadSubstitutions(ctx)
}

// Serve connects the bot to the chat gateway and handles messages until
// ctx is cancelled.
func (m *Main) Serve(ctx context.Context) error {
	gateway, err := discord.NewGateway(m.Config.Token, discord.WithLogger(m.Logger))
	if err != nil {
		return err
	}
	m.Bot.Messenger = gateway

	gateway.OnReady(func(ctx context.Context, selfID string) error {
		m.Logger.Info("logged in", "user", selfID)
		status, err := m.Bot.Status(ctx)
		if err != nil {
			return err
		}
		return gateway.SetStatus(status)
	})
	gateway.OnMessage(m.Bot.HandleMessage)

	if err := gateway.Open(); err != nil {
		return fmt.Errorf("failed to connect to chat gateway: %w", err)
	}
	defer gateway.Close()

	<-ctx.Done()
	m.Logger.Info("shutting down")
	return nil
}

// newConverter returns the HTML to Markdown engine named by engine.
func newConverter(engine string, logger *slog.Logger) ficbot.Converter {
	if engine == ficbot.ConverterCommonMark {
		return htmltomarkdown.NewConverter()
	}
	return html.NewConverter(html.WithLogger(logger))
}
