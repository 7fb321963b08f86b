// Package main implements deskfolio-web, which serves the deskfolio desktop
// to browsers through sip.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/logging"
	"github.com/Gaurav-Gosain/deskfolio/internal/server"
	"github.com/Gaurav-Gosain/deskfolio/internal/web"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Command-line flags
var (
	webPort           string
	webHost           string
	webReadOnly       bool
	webMaxConnections int
	// desktop flags
	debugMode    bool
	configFile   string
	asciiOnly    bool
	themeName    string
	borderStyle  string
	noAnimations bool
	noNudge      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskfolio-web",
		Short: "Serve deskfolio in the browser",
		Long: `deskfolio-web - deskfolio in the browser

Serves the deskfolio desktop through the browser. Every tab gets its own
desktop. Powered by sip (github.com/Gaurav-Gosain/sip).

Unset flags fall back to the [server] section of the config file.`,
		Example: `  # Start web server on the configured port
  deskfolio-web

  # Bind to all interfaces for remote access
  deskfolio-web --host 0.0.0.0 --port 8080

  # Start with a specific theme
  deskfolio-web --theme dracula

  # Limit concurrent connections
  deskfolio-web --max-connections 10`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWebServer(cmd)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&webPort, "port", "", "Web server port")
	rootCmd.Flags().StringVar(&webHost, "host", "", "Web server host")
	rootCmd.Flags().BoolVar(&webReadOnly, "read-only", false, "Disable input from clients (view only)")
	rootCmd.Flags().IntVar(&webMaxConnections, "max-connections", 0, "Maximum concurrent connections (0 = unlimited)")

	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Config file to use instead of the XDG default")
	rootCmd.Flags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Unicode glyphs")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight)")
	rootCmd.Flags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, block, ascii")
	rootCmd.Flags().BoolVar(&noAnimations, "no-animations", false, "Disable collapse, expand and snap-back animations")
	rootCmd.Flags().BoolVar(&noNudge, "no-nudge", false, "Never show the engagement nudge")

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func runWebServer(cmd *cobra.Command) error {
	// stdout is not the visitor's terminal, so color detection would strip
	// every style. Force TrueColor before any style is rendered.
	lipgloss.Writer.Profile = colorprofile.TrueColor

	overrides := config.Overrides{
		ASCIIOnly:    asciiOnly,
		BorderStyle:  borderStyle,
		NoAnimations: noAnimations,
		ThemeName:    themeName,
		NoNudge:      noNudge,
	}

	cfg, path, err := server.LoadConfig(configFile, overrides)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Logging, logging.Options{
		Stderr: true,
		Debug:  debugMode,
		Prefix: "web",
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	// Browser sessions end without notice, so their desktops never hold a
	// watcher subscription. Edits to the config apply to the next restart.
	host := server.NewHost(server.HostOptions{
		Config:    cfg,
		Path:      path,
		Overrides: overrides,
		Logger:    logger,
	})
	defer func() { _ = host.Close() }()

	webCfg := web.DefaultConfig()
	if cfg.Server.WebHost != "" {
		webCfg.Host = cfg.Server.WebHost
	}
	if cfg.Server.WebPort != "" {
		webCfg.Port = cfg.Server.WebPort
	}
	webCfg.MaxConnections = cfg.Server.MaxConnections
	if webHost != "" {
		webCfg.Host = webHost
	}
	if webPort != "" {
		webCfg.Port = webPort
	}
	if cmd.Flags().Changed("max-connections") {
		webCfg.MaxConnections = webMaxConnections
	}
	webCfg.ReadOnly = webReadOnly
	webCfg.Debug = debugMode

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return web.Serve(ctx, webCfg, host)
}
