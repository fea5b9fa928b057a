package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/lixenwraith/ttykit/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelWarn,
		"loud":  slog.LevelWarn,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestNewAutoNonTerminalIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "info", Format: "auto"}, &buf)
	log.Info("negotiated", "provider", "pty")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Expected JSON record, got %q: %v", buf.String(), err)
	}
	if rec["provider"] != "pty" {
		t.Errorf("Expected provider attr, got %v", rec["provider"])
	}
}

func TestNewTextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	log.Info("hidden")
	log.Warn("shown", "cause", "no tty")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info filtered at warn, got %q", out)
	}
	if !strings.Contains(out, `cause="no tty"`) {
		t.Errorf("Expected text attrs, got %q", out)
	}
}
