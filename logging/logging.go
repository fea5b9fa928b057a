// Package logging builds the slog logger ttykit reports through
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/ttykit/config"
)

// fdWriter is satisfied by *os.File
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// New creates a logger writing to w. Format "auto" picks slog.TextHandler
// when w is a terminal and slog.JSONHandler otherwise.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if useText(cfg.Format, w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

func useText(format string, w io.Writer) bool {
	switch strings.ToLower(format) {
	case "text":
		return true
	case "json":
		return false
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel maps debug, info, warn and error; anything else is warn
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
