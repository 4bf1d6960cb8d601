// Package slog provides logging decorators for ficbot services.
package slog

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/ficbot"
)

// NewLogger returns a text logger writing to w at the named level: debug,
// info, warn or error.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, ficbot.Errorf(ficbot.EINVALID, "unknown log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
