package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// printConfigPath prints the config file path
func printConfigPath() error {
	if configFile != "" {
		fmt.Println(configFile)
		return nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath := configFile
	if configPath == "" {
		var err error
		configPath, err = config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("could not determine config path: %w", err)
		}
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if err := config.WriteConfig(configPath, config.DefaultConfig()); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return errors.New("no editor found. Please set $EDITOR environment variable")
	}

	// #nosec G204 - the editor is the user's own choice
	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	// Report problems now rather than on the next start.
	if _, err := config.LoadFile(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return nil
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	path, err := config.ResetConfig()
	if err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", path)
	fmt.Println("\nYou can customize it with: deskfolio config edit")
	return nil
}

// showConfig prints the effective configuration as TOML.
func showConfig() error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim())
	fmt.Println(dim.Render("# " + path))
	fmt.Print(string(data))

	if len(cfg.Warnings) > 0 {
		warn := lipgloss.NewStyle().Foreground(theme.LogViewerWarn())
		fmt.Println()
		for _, w := range cfg.Warnings {
			fmt.Println(warn.Render("warning: " + w.String()))
		}
	}
	return nil
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings() error {
	userConfig, _, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
		userConfig = config.DefaultConfig()
	}
	config.UseASCIIOnly = userConfig.Appearance.ASCIIOnly

	writeKeybindingsTable(os.Stdout, config.NewKeybindRegistry(userConfig))
	return nil
}

const keybindingsNote = "Note: windows only move or resize with the mouse. Keys focus, minimize, maximize and close them."

// writeKeybindingsTable writes keybindings as one table per section.
func writeKeybindingsTable(w io.Writer, registry *config.KeybindRegistry) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.CLITableKey()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableKey())
	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim())

	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Render("deskfolio Keybindings"))
	fmt.Fprintln(w)

	for _, section := range config.GetKeybindings(registry) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
		if len(rows) == 0 {
			continue
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == 0:
					return keyStyle
				}
				return cellStyle
			})

		fmt.Fprintln(w, sectionStyle.Render(section.Title))
		fmt.Fprintln(w, t.Render())
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, dim.Italic(true).Render(keybindingsNote))
	fmt.Fprintln(w)
}
