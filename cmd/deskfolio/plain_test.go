package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
)

func TestPrintPlain(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.BorderStyle = "ascii"
	cfg.Panels = []config.Panel{
		{Title: "about", Body: "hello there"},
		{Title: "projects", Body: "deskfolio\n"},
	}

	var sb strings.Builder
	if err := printPlain(&sb, cfg, 40); err != nil {
		t.Fatalf("printPlain: %v", err)
	}
	out := ansi.Strip(sb.String())

	for _, want := range []string{"about", "hello there", "projects", "deskfolio"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "about") > strings.Index(out, "projects") {
		t.Error("panels printed out of order")
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if w := ansi.StringWidth(line); w > 40 {
			t.Errorf("line wider than the terminal (%d): %q", w, line)
		}
	}
}
