package terminal

import (
	"fmt"

	"github.com/lixenwraith/ttykit/charset"
)

// NewSystem opens a terminal over a backend that owns the process tty.
// The attributes in effect now are put back on Close. Options.Attributes and
// Options.Size are ignored. With NativeSignals, OS signals are routed to Raise.
func NewSystem(b Backend, opts Options) (Terminal, error) {
	orig, err := b.Attributes()
	if err != nil {
		return nil, fmt.Errorf("terminal: read attributes: %w", err)
	}

	t := newTerm(b, b.Output(), opts)
	t.restore = &orig

	in := newPump("input", opts.filter(b.Input()),
		charset.NewDecodingWriter(t.reader.sink(), t.enc), t.reader.fail, t.log)
	t.addPump(in, true)

	if rn, ok := b.(ResizeNotifier); ok {
		rn.NotifyResize(func() { t.Raise(SIGWINCH) })
	}
	if opts.NativeSignals {
		t.native = startNativeSignals(t.Raise, t.signals.get)
	}

	t.start(opts.Paused)
	return t, nil
}
