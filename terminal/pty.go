package terminal

import (
	"fmt"
	"io"

	"github.com/lixenwraith/ttykit/charset"
)

// NewPty opens a terminal on the slave side of a pty pair. Caller input is
// copied to the master and master output to out, so the kernel line
// discipline sits between them and the application. Pausing stops the copy
// of caller input.
func NewPty(b PtyBackend, in io.Reader, out io.Writer, opts Options) (Terminal, error) {
	if opts.Attributes != nil {
		if err := b.SetAttributes(*opts.Attributes); err != nil {
			return nil, fmt.Errorf("terminal: seed attributes: %w", err)
		}
	}
	if opts.Size != nil {
		if err := b.SetSize(*opts.Size); err != nil {
			return nil, fmt.Errorf("terminal: seed size: %w", err)
		}
	}

	t := newTerm(b, b.Output(), opts)

	t.addPump(newPump("slave", b.Input(),
		charset.NewDecodingWriter(t.reader.sink(), t.enc), t.reader.fail, t.log), false)
	if in != nil {
		t.addPump(newPump("input", opts.filter(in), b.Master(), nil, t.log), true)
	}
	if out != nil {
		t.addPump(newPump("output", b.Master(), out, nil, t.log), false)
	}

	t.start(opts.Paused)
	return t, nil
}
