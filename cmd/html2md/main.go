package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ficbot"
	"github.com/fwojciec/ficbot/html"
	"github.com/fwojciec/ficbot/htmltomarkdown"
	ficslog "github.com/fwojciec/ficbot/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when no file is given.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	File   string `arg:"" optional:"" type:"path" help:"HTML file to convert (default: standard input)"`
	Engine string `short:"e" enum:"discord,commonmark" default:"discord" help:"Conversion engine (discord, commonmark)"`
	Debug  bool   `short:"d" help:"Log skipped tags and style properties to standard error"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("html2md"),
		kong.Description("Convert HTML to chat Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := "warn"
	if cli.Debug {
		level = "debug"
	}
	logger, err := ficslog.NewLogger(stderr, level)
	if err != nil {
		return err
	}

	in := m.Stdin
	if cli.File != "" {
		f, err := os.Open(cli.File)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var md string
	if cli.Engine == ficbot.ConverterCommonMark {
		src, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		md, err = htmltomarkdown.NewConverter().Convert(string(src))
		if err != nil {
			return err
		}
	} else {
		md, err = html.NewConverter(html.WithLogger(logger)).ConvertReader(in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	_, err = io.WriteString(stdout, md)
	return err
}
