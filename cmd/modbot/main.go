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
	"github.com/fwojciec/ficbot/bot"
	"github.com/fwojciec/ficbot/discord"
	ficslog "github.com/fwojciec/ficbot/slog"
	"github.com/fwojciec/ficbot/toml"
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

	Config *ficbot.Config
	Logger *slog.Logger
	Bot    *bot.ModBot
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `arg:"" type:"path" help:"Path to the TOML config file"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("modbot"),
		kong.Description("Chat bot that relays reports to server moderators"),
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

	if err := m.Setup(cli.Config, stderr); err != nil {
		return err
	}
	return m.Serve(ctx)
}

// Setup loads the configuration and builds the bot. Logs are written to
// logw.
func (m *Main) Setup(configPath string, logw io.Writer) error {
	cfg, err := toml.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if m.Getenv != nil {
		cfg.ApplyEnv(m.Getenv)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.Config = cfg

	m.Logger, err = ficslog.NewLogger(logw, cfg.LogLevel)
	if err != nil {
		return err
	}

	m.Bot = &bot.ModBot{
		Servers: cfg.Servers,
		SelfID:  cfg.ID,
		Logger:  m.Logger,
	}
	return nil
}

// Serve connects the bot to the chat gateway and handles events until ctx
// is cancelled.
func (m *Main) Serve(ctx context.Context) error {
	gateway, err := discord.NewGateway(m.Config.Token, discord.WithLogger(m.Logger))
	if err != nil {
		return err
	}
	m.Bot.Messenger = gateway

	gateway.OnReady(func(_ context.Context, selfID string) error {
		m.Logger.Info("logged in", "user", selfID)
		return nil
	})
	gateway.OnGuild(m.Bot.HandleGuild)
	gateway.OnMessage(m.Bot.HandleMessage)
	gateway.OnReaction(m.Bot.HandleReaction)
	gateway.OnMemberJoin(m.Bot.HandleMemberJoin)

	if err := gateway.Open(); err != nil {
		return fmt.Errorf("failed to connect to chat gateway: %w", err)
	}
	defer gateway.Close()

	<-ctx.Done()
	m.Logger.Info("shutting down")
	return nil
}
