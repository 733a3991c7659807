// Package logger builds the application's slog logger from config options.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects level, destination and format. Unparseable values fall
// back to defaults with a warning instead of failing startup.
type Options struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New returns a logger and a closer for the underlying file, if any.
func New(options Options) (*slog.Logger, io.Closer) {
	lvl, ok := level(options.Level)
	if !ok {
		options.Level = ""
		logger, c := New(options)
		logger.Warn("could not parse logger level")
		return logger, c
	}
	opts := slog.HandlerOptions{Level: lvl}

	var output io.Writer
	closer := io.Closer(nopCloser{})
	switch options.File {
	case "", "-":
		output = os.Stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler), closer
	default:
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			options.File = ""
			logger, c := New(options)
			logger.Warn("could not open logger file", "err", err)
			return logger, c
		}
		output, closer = f, f
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts)), closer
	case "", "text":
		return slog.New(slog.NewTextHandler(output, &opts)), closer
	default:
		options.Format = "text"
		logger, c := New(options)
		logger.Warn("could not parse logger format")
		_ = closer.Close()
		return logger, c
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
