// Package toml loads the bot configuration and substitution tables from
// TOML files.
package toml

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/ficbot"
)

// LoadConfig reads the configuration file at path. Settings missing from
// the file keep their defaults.
func LoadConfig(path string) (*ficbot.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig reads a configuration from r over the defaults.
func DecodeConfig(r io.Reader) (*ficbot.Config, error) {
	cfg := ficbot.DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, ficbot.Errorf(ficbot.EINVALID, "config: %v", err)
	}
	if cfg.Servers == nil {
		cfg.Servers = map[string]*ficbot.ServerConfig{}
	}
	return cfg, nil
}

// LoadSubstitutions reads one table per substitution kind from
// <dir>/<kind>.toml, each a list of "phrase" = "url" pairs. Missing files
// yield empty tables.
func LoadSubstitutions(dir string) (ficbot.Substitutions, error) {
	subs := make(ficbot.Substitutions, len(ficbot.SubstitutionKinds))
	for _, kind := range ficbot.SubstitutionKinds {
		path := filepath.Join(dir, string(kind)+".toml")
		links := ficbot.LinkSet{}
		if _, err := toml.DecodeFile(path, &links); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, ficbot.Errorf(ficbot.EINVALID, "substitutions %s: %v", filepath.Base(path), err)
			}
			links = ficbot.LinkSet{}
		}
		subs[kind] = links
	}
	return subs, nil
}
