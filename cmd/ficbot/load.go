package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/ficbot"
	"github.com/fwojciec/ficbot/ldjson"
	"github.com/fwojciec/ficbot/toml"
)

// loadConfig reads the config file, applies environment overrides and
// validates the result.
func loadConfig(path string, getenv func(string) string) (*ficbot.Config, error) {
	cfg, err := toml.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if getenv != nil {
		cfg.ApplyEnv(getenv)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDB replaces the stored fics and authors with the contents of the
// configured record files.
func (m *Main) loadDB(ctx context.Context) error {
	fics, err := readRecords(m.Config.FanficDB, ldjson.ReadFics)
	if err != nil {
		return err
	}
	if _, err := m.Fics.ReplaceFics(ctx, fics); err != nil {
		return err
	}

	var authors []*ficbot.Author
	if m.Config.Authors != "" {
		if authors, err = readRecords(m.Config.Authors, ldjson.ReadAuthors); err != nil {
			return err
		}
	}
	if err := m.Fics.ReplaceAuthors(ctx, authors); err != nil {
		return err
	}
	if m.Misses != nil {
		m.Misses.Reset()
	}

	stats, err := m.Fics.Stats(ctx)
	if err != nil {
		return err
	}
	m.Logger.Info("links under management", "links", stats.Links, "fics", stats.Fics, "authors", stats.Authors)
	return nil
}

// loadSubstitutions reloads the substitution tables used when rendering.
func (m *Main) loadSubstitutions(ctx context.Context) error {
	subs, err := toml.LoadSubstitutions(m.Config.Substitutions)
	if err != nil {
		return err
	}
	m.Renderer.SetSubstitutions(subs)
	return nil
}

func readRecords[T any](path string, read func(io.Reader) ([]*T, error)) ([]*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	records, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
