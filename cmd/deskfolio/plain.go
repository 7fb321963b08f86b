package main

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
)

// printPlain writes every panel as a bordered block, one under the other.
// It is used with --plain and whenever stdout is not a terminal.
func printPlain(w io.Writer, cfg *config.UserConfig, width int) error {
	width = max(width, 20)

	title := lipgloss.NewStyle().Bold(true)
	box := lipgloss.NewStyle().
		Border(config.BorderForStyle(cfg.Appearance.BorderStyle)).
		Padding(0, 1).
		Width(width - 2) // room for the border

	var sb strings.Builder
	for i, p := range cfg.Panels {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(box.Render(title.Render(p.Title) + "\n\n" + strings.TrimRight(p.Body, "\n")))
		sb.WriteString("\n")
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to print panels: %w", err)
	}
	return nil
}
