//go:build !(linux || darwin)

package provider

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/ttykit/terminal"
)

type tcellProvider struct{}

// NewTcell returns the tcell provider, which has no backend on this platform
func NewTcell() Provider { return tcellProvider{} }

func (tcellProvider) Name() string { return NameTcell }

func (tcellProvider) SystemTerminal(Request) (terminal.Terminal, error) {
	return nil, fmt.Errorf("tcell: %w", errors.ErrUnsupported)
}

func (tcellProvider) Terminal(Request) (terminal.Terminal, error) {
	return nil, fmt.Errorf("tcell: %w", errors.ErrUnsupported)
}
