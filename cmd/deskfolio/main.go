// Package main implements deskfolio, a portfolio presented as a desktop of
// floating windows in the terminal. It runs locally or serves one desktop
// per SSH session.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode    bool
	configFile   string
	plainMode    bool
	asciiOnly    bool
	themeName    string
	borderStyle  string
	hideClock    bool
	noAnimations bool
	noNudge      bool
	logLevel     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskfolio",
		Short: "A portfolio you can drag around",
		Long: `deskfolio - a portfolio as a terminal desktop

Every panel of the portfolio is a floating window: drag it by its title bar,
resize it from any border or corner, minimize or maximize it. Windows dragged
too far glide back home.`,
		Example: `  # Run locally
  deskfolio

  # Print the panels without the desktop
  deskfolio --plain

  # Serve over SSH
  deskfolio ssh --port 2222

  # Edit configuration
  deskfolio config edit

  # List all keybindings
  deskfolio keybinds list`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file to use instead of the XDG default")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Unicode glyphs")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight)")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, block, ascii")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the clock in the status bar")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Disable collapse, expand and snap-back animations")
	rootCmd.PersistentFlags().BoolVar(&noNudge, "no-nudge", false, "Never show the engagement nudge")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&plainMode, "plain", false, "Print the panels as text instead of running the desktop")

	var sshPort, sshHost, sshKeyPath string
	var sshMaxConnections int

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve deskfolio over SSH",
		Long: `Serve deskfolio over SSH

Every SSH session gets its own desktop. The server generates a host key
automatically if none exists. Unset flags fall back to the [server] section
of the config file.`,
		Example: `  # Start SSH server on the configured port
  deskfolio ssh

  # Listen on all interfaces
  deskfolio ssh --host 0.0.0.0 --port 2222

  # Cap concurrent visitors
  deskfolio ssh --max-connections 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSSHServer(cmd, sshHost, sshPort, sshKeyPath, sshMaxConnections)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")
	sshCmd.Flags().IntVar(&sshMaxConnections, "max-connections", 0, "Maximum concurrent sessions (0 = unlimited)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage deskfolio configuration",
		Long:  `Manage the deskfolio configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the deskfolio configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running desktop picks up the
saved file without restarting.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the deskfolio configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration deskfolio would run with: the file merged with
the defaults and the command-line flags. Validation warnings are listed
after it.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfig()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configShowCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	rootCmd.AddCommand(sshCmd, configCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
