package server

import (
	"fmt"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/sysinfo"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// LoadConfig loads path, or the user's XDG config when path is empty, and
// applies the overrides. It returns the path the config came from.
func LoadConfig(path string, overrides config.Overrides) (*config.UserConfig, string, error) {
	var (
		cfg *config.UserConfig
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else if cfg, err = config.LoadUserConfig(); err == nil {
		path, err = config.GetConfigPath()
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyOverrides(overrides, cfg)
	return cfg, path, nil
}

// HostOptions describe the process-wide state NewHost prepares.
type HostOptions struct {
	Config    *config.UserConfig
	Path      string
	Overrides config.Overrides
	Logger    *log.Logger
	// Watch starts a config watcher on Path. A failure to watch is logged
	// and leaves the host without one.
	Watch bool
}

// NewHost prepares what every desktop of this process shares. The theme and
// glyph set are process-wide and only set here. The caller closes the host.
func NewHost(opts HostOptions) *Host {
	host := &Host{
		Config:    opts.Config,
		Overrides: opts.Overrides,
		Sampler:   sysinfo.NewSampler(),
		Logger:    opts.Logger,
	}
	logger := host.logger()

	config.UseASCIIOnly = opts.Config.Appearance.ASCIIOnly
	if err := theme.Initialize(opts.Config.Appearance.Theme); err != nil {
		logger.Warn("theme not applied", "theme", opts.Config.Appearance.Theme, "err", err)
	}
	for _, w := range opts.Config.Warnings {
		logger.Warn("config warning", "issue", w.String())
	}

	if !opts.Watch || opts.Path == "" {
		return host
	}
	watcher, err := config.Watch(opts.Path)
	if err != nil {
		logger.Warn("config hot reload disabled", "err", err)
		return host
	}
	host.Watcher = watcher
	logger.Debug("watching config", "path", opts.Path)
	return host
}
