//go:build !(linux || darwin)

package provider

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/ttykit/terminal"
)

type ptyProvider struct{}

// NewPty returns the native provider, which has no backend on this platform
func NewPty() Provider { return ptyProvider{} }

func (ptyProvider) Name() string { return NamePty }

func (ptyProvider) SystemTerminal(Request) (terminal.Terminal, error) {
	return nil, fmt.Errorf("pty: %w", errors.ErrUnsupported)
}

func (ptyProvider) Terminal(Request) (terminal.Terminal, error) {
	return nil, fmt.Errorf("pty: %w", errors.ErrUnsupported)
}
