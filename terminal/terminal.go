package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/encoding"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/charset"
)

// Terminal is a live terminal handle.
// Once closed, every I/O, attribute and size call fails with ErrClosed.
type Terminal interface {
	Name() string
	Type() string
	// Provider names the backend that produced the terminal
	Provider() string
	Encoding() encoding.Encoding

	Reader() *NonBlockingReader
	Writer() io.Writer
	Flush() error

	// Pausing stops reading the input source; buffered input stays readable.
	// Terminals that cannot pause treat these as no-ops.
	CanPauseResume() bool
	Pause()
	// PauseWait pauses and waits for the input pump to go idle. If ctx ends
	// first it returns ctx.Err() and the terminal stays paused.
	PauseWait(ctx context.Context) error
	Resume()
	Paused() bool

	Attributes() (attr.Attributes, error)
	SetAttributes(a attr.Attributes) error
	// EnterRawMode applies raw attributes and returns the previous ones
	EnterRawMode() (attr.Attributes, error)
	Echo() (bool, error)
	// SetEcho toggles ECHO and returns the previous value
	SetEcho(enabled bool) (bool, error)

	Size() (Size, error)
	SetSize(s Size) error
	BufferSize() (Size, error)

	// Handle installs h for sig and returns the previous handler
	Handle(sig Signal, h SignalHandler) SignalHandler
	Raise(sig Signal)

	// CursorPosition asks the terminal where the cursor is. Unrelated input
	// read while waiting is handed to discard in order.
	CursorPosition(discard func(byte)) (Cursor, error)

	HasMouseSupport() bool
	// TrackMouse returns false without writing anything when unsupported
	TrackMouse(mode MouseTracking) bool
	// ReadMouseEvent decodes an SGR report whose ESC [ < prefix was consumed
	ReadMouseEvent() (MouseEvent, error)

	HasFocusSupport() bool
	TrackFocus(enabled bool) bool

	// Close restores what the terminal changed and releases the backend.
	// Safe to call multiple times.
	Close() error
}

// cursorQueryTimeout bounds the wait for a cursor position report
const cursorQueryTimeout = time.Second

// termImpl implements Terminal over a Backend
type termImpl struct {
	name    string
	typ     string
	enc     encoding.Encoding
	backend Backend
	log     *slog.Logger
	caps    capabilities

	reader  *NonBlockingReader
	out     *syncWriter // raw output shared with echo
	writer  *termWriter
	input   *pump // pausable input pump, nil when pausing is unsupported
	pumps   []*pump
	signals *signalTable
	native  *nativeRouter
	restore *attr.Attributes // attributes to put back on close

	cursorTimeout time.Duration

	closed atomic.Bool

	mu        sync.Mutex
	mouseMode MouseTracking
	focus     bool
	lastMouse MouseEvent
}

// newTerm builds the shared core; callers wire pumps before returning it
func newTerm(b Backend, out io.Writer, opts Options) *termImpl {
	t := &termImpl{
		name:          opts.Name,
		typ:           opts.Type,
		enc:           opts.Encoding,
		backend:       b,
		log:           opts.logger(),
		caps:          capabilitiesFor(opts.Type),
		reader:        newNonBlockingReader(),
		signals:       newSignalTable(opts.Handler),
		cursorTimeout: cursorQueryTimeout,
	}
	t.out = &syncWriter{w: out}
	t.writer = &termWriter{
		closed: &t.closed,
		buf:    bufio.NewWriter(charset.NewEncodingWriter(t.out, t.enc)),
	}
	return t
}

// addPump registers p for shutdown; pausable marks the pump Pause controls
func (t *termImpl) addPump(p *pump, pausable bool) {
	t.pumps = append(t.pumps, p)
	if pausable {
		t.input = p
	}
}

// start resumes every pump except a pausable one asked to open paused
func (t *termImpl) start(paused bool) {
	for _, p := range t.pumps {
		if p == t.input && paused {
			continue
		}
		p.resume()
	}
}

func (t *termImpl) Name() string                { return t.name }
func (t *termImpl) Type() string                { return t.typ }
func (t *termImpl) Provider() string            { return t.backend.Provider() }
func (t *termImpl) Encoding() encoding.Encoding { return t.enc }

func (t *termImpl) Reader() *NonBlockingReader { return t.reader }
func (t *termImpl) Writer() io.Writer          { return t.writer }

func (t *termImpl) Flush() error {
	return t.writer.Flush()
}

func (t *termImpl) CanPauseResume() bool { return t.input != nil }

func (t *termImpl) Pause() {
	if t.input != nil {
		t.input.pause()
	}
}

func (t *termImpl) PauseWait(ctx context.Context) error {
	if t.input == nil {
		return nil
	}
	return t.input.pauseWait(ctx)
}

func (t *termImpl) Resume() {
	if t.input != nil && !t.closed.Load() {
		t.input.resume()
	}
}

func (t *termImpl) Paused() bool {
	return t.input != nil && t.input.isPaused()
}

func (t *termImpl) Attributes() (attr.Attributes, error) {
	if t.closed.Load() {
		return attr.Attributes{}, ErrClosed
	}
	return t.backend.Attributes()
}

func (t *termImpl) SetAttributes(a attr.Attributes) error {
	if t.closed.Load() {
		return ErrClosed
	}
	return t.backend.SetAttributes(a)
}

func (t *termImpl) EnterRawMode() (attr.Attributes, error) {
	prev, err := t.Attributes()
	if err != nil {
		return attr.Attributes{}, err
	}
	if err := t.SetAttributes(prev.Raw()); err != nil {
		return attr.Attributes{}, fmt.Errorf("terminal: enter raw mode: %w", err)
	}
	return prev, nil
}

func (t *termImpl) Echo() (bool, error) {
	a, err := t.Attributes()
	if err != nil {
		return false, err
	}
	return a.LocalFlag(attr.ECHO), nil
}

func (t *termImpl) SetEcho(enabled bool) (bool, error) {
	a, err := t.Attributes()
	if err != nil {
		return false, err
	}
	prev := a.LocalFlag(attr.ECHO)
	if prev != enabled {
		a.SetLocalFlag(attr.ECHO, enabled)
		if err := t.SetAttributes(a); err != nil {
			return prev, err
		}
	}
	return prev, nil
}

func (t *termImpl) Size() (Size, error) {
	if t.closed.Load() {
		return Size{}, ErrClosed
	}
	return t.backend.Size()
}

func (t *termImpl) SetSize(s Size) error {
	if t.closed.Load() {
		return ErrClosed
	}
	return t.backend.SetSize(s)
}

// BufferSize equals Size; no backend models a scrollback buffer
func (t *termImpl) BufferSize() (Size, error) {
	return t.Size()
}

func (t *termImpl) Handle(sig Signal, h SignalHandler) SignalHandler {
	if h == nil {
		h = SigDefault
	}
	prev := t.signals.swap(sig, h)
	if t.native != nil {
		t.native.route(sig, h)
	}
	return prev
}

func (t *termImpl) Raise(sig Signal) {
	t.signals.raise(sig)
}

func (t *termImpl) HasMouseSupport() bool { return t.caps.mouse }
func (t *termImpl) HasFocusSupport() bool { return t.caps.focus }

// TrackMouse switches SGR mouse reporting
func (t *termImpl) TrackMouse(mode MouseTracking) bool {
	if !t.caps.mouse || t.closed.Load() {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed.Load() {
		return false
	}

	if err := t.writeRaw(mouseSequence(mode)); err != nil {
		t.log.Debug("mouse tracking write failed", "error", err)
	}
	t.mouseMode = mode
	return true
}

func (t *termImpl) TrackFocus(enabled bool) bool {
	if !t.caps.focus || t.closed.Load() {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed.Load() {
		return false
	}

	seq := csiFocusOff
	if enabled {
		seq = csiFocusOn
	}
	if err := t.writeRaw(seq); err != nil {
		t.log.Debug("focus tracking write failed", "error", err)
	}
	t.focus = enabled
	return true
}

// ReadMouseEvent reads "Btn;X;Y" up to the M/m terminator
func (t *termImpl) ReadMouseEvent() (MouseEvent, error) {
	if t.closed.Load() {
		return MouseEvent{}, ErrClosed
	}

	params := make([]byte, 0, 16)
	for len(params) < 32 {
		b, err := t.reader.ReadByte()
		if err != nil {
			return MouseEvent{}, err
		}
		if b != 'M' && b != 'm' {
			params = append(params, b)
			continue
		}

		btn, x, y, ok := parseSGRParams(params)
		if !ok {
			return MouseEvent{}, fmt.Errorf("terminal: malformed mouse report %q", params)
		}

		t.mu.Lock()
		ev := decodeSGRMouse(btn, x, y, b == 'm', t.lastMouse)
		t.lastMouse = ev
		t.mu.Unlock()
		return ev, nil
	}
	return MouseEvent{}, fmt.Errorf("terminal: mouse report too long %q", params)
}

// writeRaw writes control sequences ahead of anything buffered; caller holds mu
func (t *termImpl) writeRaw(seq []byte) error {
	if err := t.writer.flush(); err != nil {
		return err
	}
	_, err := t.out.Write(seq)
	return err
}

// Close runs the shutdown steps in order and reports every failure
func (t *termImpl) Close() error {
	t.mu.Lock()
	if t.closed.Load() {
		t.mu.Unlock()
		return nil
	}

	var errs []error

	// Disable tracking before anything else
	if t.mouseMode != MouseTrackOff {
		errs = append(errs, t.writeRaw(mouseSequence(MouseTrackOff)))
		t.mouseMode = MouseTrackOff
	}
	if t.focus {
		errs = append(errs, t.writeRaw(csiFocusOff))
		t.focus = false
	}
	errs = append(errs, t.writer.flush())

	t.closed.Store(true)
	t.mu.Unlock()

	// Handlers may call back into the terminal, so stop routing unlocked
	if t.native != nil {
		t.native.close()
	}
	for _, p := range t.pumps {
		p.close()
	}
	t.reader.Close()

	if t.restore != nil {
		if err := t.backend.SetAttributes(*t.restore); err != nil {
			t.log.Warn("failed to restore terminal attributes", "terminal", t.name, "error", err)
			errs = append(errs, fmt.Errorf("terminal: restore attributes: %w", err))
		}
	}

	errs = append(errs, t.backend.Close())
	return errors.Join(errs...)
}

// termWriter buffers application output until Flush
type termWriter struct {
	closed *atomic.Bool

	mu  sync.Mutex
	buf *bufio.Writer
}

func (w *termWriter) Write(p []byte) (int, error) {
	if w.closed.Load() {
		return 0, ErrClosed
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *termWriter) Flush() error {
	if w.closed.Load() {
		return ErrClosed
	}
	return w.flush()
}

func (w *termWriter) flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Flush()
}

// syncWriter serializes echo and application output
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
