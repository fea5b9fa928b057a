package terminal

import (
	"io"
	"log/slog"
	"sync"

	"golang.org/x/text/encoding"

	"github.com/lixenwraith/ttykit/attr"
)

// Backend abstracts one source of terminal state: a real tty, a pty pair, a
// subprocess-driven tty or plain in-memory state. Implementations return
// errors, never panic, when the underlying device is gone.
type Backend interface {
	// Provider names the backend implementation
	Provider() string

	// Input yields bytes typed at the terminal
	Input() io.Reader

	// Output accepts bytes for display
	Output() io.Writer

	Attributes() (attr.Attributes, error)
	SetAttributes(a attr.Attributes) error

	Size() (Size, error)
	SetSize(s Size) error

	// Close releases the device. It need not restore attributes.
	Close() error
}

// ResizeNotifier is implemented by backends that observe window changes
// themselves rather than through SIGWINCH
type ResizeNotifier interface {
	NotifyResize(cb func())
}

// PtyBackend is a backend over a pseudo-terminal pair. Input, Output and the
// attribute calls address the slave side; Master faces the caller's streams.
type PtyBackend interface {
	Backend
	Master() io.ReadWriter
}

// Options carries what a terminal is opened with
type Options struct {
	Name string
	Type string

	// Encoding of the byte streams; nil means UTF-8
	Encoding encoding.Encoding

	// Handler is installed for every signal; nil means SigDefault
	Handler SignalHandler

	// NativeSignals routes OS signals to Raise (system terminals)
	NativeSignals bool

	// Paused opens the terminal with its input pump paused
	Paused bool

	// Attributes and Size seed non-system terminals; system terminals ignore them
	Attributes *attr.Attributes
	Size       *Size

	// InputFilter wraps the input source before the pump reads it
	InputFilter func(io.Reader) io.Reader

	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *Options) filter(r io.Reader) io.Reader {
	if o.InputFilter != nil {
		return o.InputFilter(r)
	}
	return r
}

// memoryBackend keeps attributes and size in memory over caller streams
type memoryBackend struct {
	provider string
	in       io.Reader
	out      io.Writer

	mu     sync.Mutex
	attrs  attr.Attributes
	size   Size
	sizeFn func() (Size, bool) // live size source; falls back to size
}

func newMemoryBackend(provider string, in io.Reader, out io.Writer, a attr.Attributes, s Size) *memoryBackend {
	return &memoryBackend{provider: provider, in: in, out: out, attrs: a, size: s}
}

func (b *memoryBackend) Provider() string  { return b.provider }
func (b *memoryBackend) Input() io.Reader  { return b.in }
func (b *memoryBackend) Output() io.Writer { return b.out }

func (b *memoryBackend) Attributes() (attr.Attributes, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attrs, nil
}

func (b *memoryBackend) SetAttributes(a attr.Attributes) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attrs = a
	return nil
}

func (b *memoryBackend) Size() (Size, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sizeFn != nil {
		if s, ok := b.sizeFn(); ok {
			return s, nil
		}
	}
	return b.size, nil
}

func (b *memoryBackend) SetSize(s Size) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.size = s
	b.sizeFn = nil
	return nil
}

// Close leaves caller streams open; their owner closes them
func (b *memoryBackend) Close() error { return nil }
