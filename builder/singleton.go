package builder

import (
	"sync/atomic"

	"github.com/lixenwraith/ttykit/terminal"
)

// systemTerminal holds the live system terminal, if any
var systemTerminal atomic.Pointer[registered]

// registered releases the slot once the terminal is closed
type registered struct {
	terminal.Terminal
}

func (r *registered) Close() error {
	err := r.Terminal.Close()
	systemTerminal.CompareAndSwap(r, nil)
	return err
}

// register claims the slot for t. On conflict t is closed.
func register(t terminal.Terminal, causes []error) (terminal.Terminal, error) {
	r := &registered{Terminal: t}
	if !systemTerminal.CompareAndSwap(nil, r) {
		t.Close()
		return nil, &Error{Err: ErrSystemTerminalRunning, Causes: causes}
	}
	return r, nil
}

// Current returns the live system terminal, or nil
func Current() terminal.Terminal {
	if r := systemTerminal.Load(); r != nil {
		return r
	}
	return nil
}
