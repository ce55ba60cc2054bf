// Package logging provides the shell's zerolog setup: console output in
// development, JSON in production, carried through context.Context.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls how the root logger is constructed.
type Config struct {
	Level  string // debug|info|warn|error
	Format string // console|json
}

// New builds a root zerolog.Logger from Config, writing to stderr.
func New(cfg Config) zerolog.Logger {
	return newFromWriter(cfg, os.Stderr)
}

func newFromWriter(cfg Config, w io.Writer) zerolog.Logger {
	level := parseLevel(cfg.Level)

	var out io.Writer = w
	if strings.EqualFold(cfg.Format, "console") || cfg.Format == "" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
