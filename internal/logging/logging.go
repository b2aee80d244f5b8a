// Package logging builds the diagnostic logger. The TUI owns the terminal,
// so there diagnostics go to a file or nowhere; the CLI writes to stderr.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/persons/internal/config"
)

// New returns a logger configured from cfg and a closer for its sink.
// fallback receives output when no file is configured.
func New(cfg config.LogConfig, fallback io.Writer, verbose bool) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if cfg.File == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		log.SetOutput(fallback)
		return log, nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
