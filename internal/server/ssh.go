package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/deskfolio/internal/app"
)

const hostKeyFile = "deskfolio/host_key"

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string // Empty uses $XDG_DATA_HOME/deskfolio/host_key
	// MaxConnections caps concurrent sessions; 0 means unlimited.
	MaxConnections int
}

type desktopKey struct{}

// StartSSHServer serves one desktop per SSH session until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg SSHServerConfig, host *Host) error {
	hostKeyPath := cfg.KeyPath
	if hostKeyPath == "" {
		var err error
		hostKeyPath, err = xdg.DataFile(hostKeyFile)
		if err != nil {
			return fmt.Errorf("failed to resolve host key path: %w", err)
		}
	}

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(host.teaHandler),
			cleanupMiddleware,
			limitMiddleware(cfg.MaxConnections),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	logger := host.logger()
	errc := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", server.Addr, "host_key", hostKeyPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("SSH server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down SSH server")
	// ctx is already done; give Shutdown its own context.
	return server.Shutdown(context.Background())
}

// teaHandler creates a desktop for each SSH session.
func (h *Host) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := s.Pty()
	if !active {
		wish.Fatalln(s, "deskfolio needs a terminal, try ssh -t")
		return nil, nil
	}

	d, opts, err := h.NewDesktop(pty.Window.Width, pty.Window.Height,
		"user", s.User(), "remote", s.RemoteAddr().String())
	if err != nil {
		h.logger().Error("session refused", "user", s.User(), "err", err)
		wish.Fatalln(s, "failed to start the desktop")
		return nil, nil
	}
	s.Context().SetValue(desktopKey{}, d)
	return d, opts
}

// cleanupMiddleware releases the session's desktop once its program has
// exited, however the visitor left.
func cleanupMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		next(s)
		if d, ok := s.Context().Value(desktopKey{}).(*app.Desktop); ok {
			d.Cleanup()
		}
	}
}

// limitMiddleware refuses sessions beyond limit concurrent ones.
func limitMiddleware(limit int) wish.Middleware {
	var active atomic.Int64
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			if limit <= 0 {
				next(s)
				return
			}
			n := active.Add(1)
			defer active.Add(-1)
			if n > int64(limit) {
				wish.Fatalln(s, "deskfolio is full right now, try again in a minute")
				return
			}
			next(s)
		}
	}
}
