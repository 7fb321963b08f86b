// Package server serves deskfolio desktops to remote visitors over SSH and
// to browsers through sip.
package server

import (
	"fmt"
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
	"github.com/Gaurav-Gosain/deskfolio/internal/logging"
	"github.com/Gaurav-Gosain/deskfolio/internal/sysinfo"
)

var registerInput sync.Once

// Host holds what every served desktop shares: the loaded config, the CLI
// overrides, the config watcher and the host sampler.
type Host struct {
	Config    *config.UserConfig
	Overrides config.Overrides
	// Watcher may be nil, in which case desktops never reload.
	Watcher *config.Watcher
	Sampler *sysinfo.Sampler
	Logger  *log.Logger
}

// NewDesktop builds the desktop for one visitor with the given terminal
// size. keyvals tag the desktop's log lines with the visitor.
func (h *Host) NewDesktop(width, height int, keyvals ...any) (*app.Desktop, []tea.ProgramOption, error) {
	logger := h.logger()
	if len(keyvals) > 0 {
		logger = logger.With(keyvals...)
	}

	opts := app.Options{
		Config:    h.Config,
		Overrides: h.Overrides,
		Logger:    logger,
		Sampler:   h.Sampler,
		Width:     width,
		Height:    height,
	}
	if h.Watcher != nil {
		opts.Reloads, opts.Unsubscribe = h.Watcher.Subscribe()
	}

	d, err := app.NewDesktop(opts)
	if err != nil {
		if opts.Unsubscribe != nil {
			opts.Unsubscribe()
		}
		return nil, nil, fmt.Errorf("failed to create desktop: %w", err)
	}

	registerInput.Do(func() { app.SetInputHandler(input.HandleInput) })
	return d, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(input.Filter),
	}, nil
}

// Detached returns a copy of h without the config watcher. Desktops built
// from it hold no subscription, so they need no Cleanup to be released.
func (h *Host) Detached() *Host {
	c := *h
	c.Watcher = nil
	return &c
}

// Close stops the config watcher, if any.
func (h *Host) Close() error {
	if h.Watcher == nil {
		return nil
	}
	return h.Watcher.Close()
}

func (h *Host) logger() *log.Logger {
	if h.Logger == nil {
		return logging.Discard()
	}
	return h.Logger
}
