// Package provider implements the backends a terminal can be negotiated from.
//
// Every provider reports unavailability as an error; none of them panics on
// a missing device or an unsupported platform.
package provider

import (
	"errors"
	"io"

	"github.com/lixenwraith/ttykit/terminal"
)

// Provider names
const (
	NamePty   = "pty"
	NameTcell = "tcell"
	NameExec  = "exec"
)

// ErrNotTerminal is returned when the process has no usable tty
var ErrNotTerminal = errors.New("provider: not a terminal")

// Request is what a provider opens a terminal from. In and Out are only used
// by non-system terminals.
type Request struct {
	terminal.Options

	In  io.Reader
	Out io.Writer
}

// Provider opens terminals from one backend
type Provider interface {
	Name() string

	// SystemTerminal opens a terminal that owns the process tty
	SystemTerminal(req Request) (terminal.Terminal, error)

	// Terminal opens a terminal over req.In and req.Out
	Terminal(req Request) (terminal.Terminal, error)
}

// Defaults returns the built-in providers keyed by name
func Defaults() map[string]Provider {
	return map[string]Provider{
		NamePty:   NewPty(),
		NameTcell: NewTcell(),
		NameExec:  NewExec(),
	}
}
