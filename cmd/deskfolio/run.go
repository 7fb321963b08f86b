package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/logging"
	"github.com/Gaurav-Gosain/deskfolio/internal/server"
)

func overrides() config.Overrides {
	return config.Overrides{
		ASCIIOnly:    asciiOnly,
		BorderStyle:  borderStyle,
		HideClock:    hideClock,
		NoAnimations: noAnimations,
		ThemeName:    themeName,
		LogLevel:     logLevel,
		NoNudge:      noNudge,
	}
}

// loadConfig loads the config file with the flag overrides applied and
// returns the path it came from.
func loadConfig() (*config.UserConfig, string, error) {
	return server.LoadConfig(configFile, overrides())
}

func newHost(cfg *config.UserConfig, path string, logger *log.Logger) *server.Host {
	return server.NewHost(server.HostOptions{
		Config:    cfg,
		Path:      path,
		Overrides: overrides(),
		Logger:    logger,
		Watch:     true,
	})
}

func runLocal() error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	if plainMode || !term.IsTerminal(int(os.Stdout.Fd())) {
		width := 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		config.UseASCIIOnly = cfg.Appearance.ASCIIOnly
		return printPlain(os.Stdout, cfg, width)
	}

	logger, closer, err := logging.New(cfg.Logging, logging.Options{Debug: debugMode})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	host := newHost(cfg, path, logger)
	defer func() { _ = host.Close() }()

	desktop, opts, err := host.NewDesktop(0, 0)
	if err != nil {
		return err
	}
	p := tea.NewProgram(desktop, append(opts, tea.WithoutSignalHandler())...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.QuitMsg{})
		}
	}()

	logger.Info("desktop started", "config", path, "windows", len(desktop.Windows))
	finalModel, err := p.Run()
	if final, ok := finalModel.(*app.Desktop); ok {
		final.Cleanup()
	}
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(cmd *cobra.Command, sshHost, sshPort, sshKeyPath string, maxConnections int) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Logging, logging.Options{
		Stderr: true,
		Debug:  debugMode,
		Prefix: "ssh",
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	host := newHost(cfg, path, logger)
	defer func() { _ = host.Close() }()

	sshCfg := server.SSHServerConfig{
		Host:           cfg.Server.SSHHost,
		Port:           cfg.Server.SSHPort,
		KeyPath:        cfg.Server.HostKeyPath,
		MaxConnections: cfg.Server.MaxConnections,
	}
	if sshHost != "" {
		sshCfg.Host = sshHost
	}
	if sshPort != "" {
		sshCfg.Port = sshPort
	}
	if sshKeyPath != "" {
		sshCfg.KeyPath = sshKeyPath
	}
	if cmd.Flags().Changed("max-connections") {
		sshCfg.MaxConnections = maxConnections
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.StartSSHServer(ctx, sshCfg, host)
}
