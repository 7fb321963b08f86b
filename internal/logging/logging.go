// Package logging builds the structured logger used by every deskfolio
// command and keeps the recent entries a desktop shows in its log viewer.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
)

const stateFile = "deskfolio/deskfolio.log"

// ParseLevel converts a config or flag value into a log level.
func ParseLevel(s string) (log.Level, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Options selects where New writes.
type Options struct {
	// Stderr logs to standard error. Servers use it; the local TUI owns the
	// terminal and logs to a file instead.
	Stderr bool
	// Debug forces the debug level regardless of the config.
	Debug bool
	// Prefix is printed before every message.
	Prefix string
}

// New returns a logger configured from cfg. The returned closer releases the
// log file and is never nil.
func New(cfg config.LoggingConfig, opts Options) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nopCloser{}, err
	}
	if opts.Debug {
		level = log.DebugLevel
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if !opts.Stderr {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return nil, nopCloser{}, err
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything. Tests and the plain
// printer use it.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		var err error
		path, err = xdg.StateFile(stateFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve log path: %w", err)
		}
	}
	// #nosec G304 - the log path comes from the user's own config
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
