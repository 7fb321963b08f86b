package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"charm.land/log/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"debug", log.DebugLevel, false},
		{"INFO", log.InfoLevel, false},
		{" warn ", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskfolio.log")
	logger, closer, err := New(config.LoggingConfig{Level: "info", File: path}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("window opened", "title", "README.md")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := ansi.Strip(string(data))
	if !strings.Contains(out, "window opened") || !strings.Contains(out, "title=README.md") {
		t.Errorf("log file missing entry: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestNewDebugOverride(t *testing.T) {
	logger, closer, err := New(config.LoggingConfig{Level: "error"}, Options{Stderr: true, Debug: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, closer, err := New(config.LoggingConfig{Level: "chatty"}, Options{Stderr: true})
	if err == nil {
		t.Fatal("expected an error")
	}
	if closer == nil {
		t.Error("closer must never be nil")
	}
}

func TestRing(t *testing.T) {
	r := NewRing(3)
	now := time.Unix(0, 0)
	for i, msg := range []string{"a", "b", "c", "d"} {
		r.Add(now.Add(time.Duration(i)*time.Second), log.InfoLevel, msg)
	}

	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
	if got := r.Entries()[0].Message; got != "b" {
		t.Errorf("oldest = %q, want b", got)
	}

	r.Add(now, log.WarnLevel, "snap-back", "window", "w1", "dangling")
	last := r.Entries()[r.Len()-1]
	if last.Message != "snap-back window=w1 dangling" || last.Level != log.WarnLevel {
		t.Errorf("last = %+v", last)
	}
}

func TestNewRingMinimum(t *testing.T) {
	r := NewRing(0)
	r.Add(time.Now(), log.InfoLevel, "one")
	r.Add(time.Now(), log.InfoLevel, "two")
	if r.Len() != 1 || r.Entries()[0].Message != "two" {
		t.Errorf("entries = %+v", r.Entries())
	}
}
