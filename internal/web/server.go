// Package web serves deskfolio desktops to browsers. sip provides the
// transport and the xterm.js client; each browser tab gets its own desktop.
package web

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"

	"github.com/Gaurav-Gosain/deskfolio/internal/server"
)

// Config holds the web server configuration.
type Config struct {
	Host           string // Host to bind to (default: "localhost")
	Port           string // Port to listen on (default: "7681")
	ReadOnly       bool   // If true, visitors can watch but not interact
	MaxConnections int    // Maximum concurrent connections (0 = unlimited)
	Debug          bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Host: "localhost",
		Port: "7681",
	}
}

// newSession builds the model for one browser tab. A desktop that cannot be
// built is replaced by a screen reporting the error.
func newSession(host *server.Host, n int64, width, height int) (tea.Model, []tea.ProgramOption) {
	d, opts, err := host.NewDesktop(width, height, "session", n)
	if err != nil {
		if host.Logger != nil {
			host.Logger.Error("web session refused", "session", n, "err", err)
		}
		return errorModel{err: err}, nil
	}
	return d, opts
}

// Serve runs the web server until ctx is cancelled.
func Serve(ctx context.Context, cfg Config, host *server.Host) error {
	sipConfig := sip.DefaultConfig()
	sipConfig.Host = cfg.Host
	sipConfig.Port = cfg.Port
	sipConfig.ReadOnly = cfg.ReadOnly
	sipConfig.MaxConnections = cfg.MaxConnections
	sipConfig.Debug = cfg.Debug

	// sip gives no signal when a tab closes, so a desktop must not hold
	// anything that only Cleanup releases.
	detached := host.Detached()

	var sessions atomic.Int64
	handler := func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		return newSession(detached, sessions.Add(1), pty.Width, pty.Height)
	}

	if host.Logger != nil {
		host.Logger.Info("starting web server", "addr", fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port),
			"read_only", cfg.ReadOnly, "max_connections", cfg.MaxConnections)
	}
	if err := sip.NewServer(sipConfig).Serve(ctx, handler); err != nil {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
