package terminal

import (
	"io"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/charset"
)

// ProviderExternal names terminals built over caller streams
const ProviderExternal = "external"

// NewExternal opens a terminal over caller streams with an in-process line
// discipline. Attributes default to attr.Default and size to 0x0. It cannot
// fail: nothing beyond the streams is touched.
//
// Close does not close in. When in is not an *os.File (an io.Pipe, a net.Conn)
// the input goroutine stays blocked in Read until the next byte or until the
// caller closes in, so callers owning such a stream should close it after the
// terminal.
func NewExternal(in io.Reader, out io.Writer, opts Options) Terminal {
	a := attr.Default()
	if opts.Attributes != nil {
		a = *opts.Attributes
	}
	var s Size
	if opts.Size != nil {
		s = *opts.Size
	}

	b := newMemoryBackend(ProviderExternal, in, out, a, s)
	return newDisciplineTerm(b, opts, true)
}

// newDisciplineTerm wires a memory backend through the line discipline.
// Interactive terminals echo, post-process output and can pause.
func newDisciplineTerm(b *memoryBackend, opts Options, interactive bool) *termImpl {
	attrs := func() attr.Attributes {
		a, _ := b.Attributes()
		return a
	}

	out := b.Output()
	if interactive {
		out = &outputProcessor{w: out, attrs: attrs}
	}
	t := newTerm(b, out, opts)

	d := &discipline{
		attrs: attrs,
		raise: t.Raise,
		dst:   charset.NewDecodingWriter(t.reader.sink(), t.enc),
		log:   t.log,
	}
	if interactive {
		d.echo = t.out
	}

	t.addPump(newPump("input", opts.filter(b.Input()), d, t.reader.fail, t.log), interactive)
	t.start(opts.Paused && interactive)
	return t
}
