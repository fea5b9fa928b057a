package terminal

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/ttykit/attr"
)

// lockedBuffer is a bytes.Buffer safe for pump goroutines
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// recorder is a comparable SignalHandler that remembers what it saw
type recorder struct {
	mu   sync.Mutex
	seen []Signal
}

func (r *recorder) Handle(sig Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, sig)
}

func (r *recorder) signals() []Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Signal(nil), r.seen...)
}

// waitFor polls cond for up to two seconds
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

// fakeBackend is an in-memory system backend that records its lifecycle
type fakeBackend struct {
	*memoryBackend
	closed   bool
	resizeCb func()
}

func newFakeBackend(in io.Reader, out io.Writer) *fakeBackend {
	return &fakeBackend{memoryBackend: newMemoryBackend("fake", in, out, attr.Default(), NewSize(80, 24))}
}

func (b *fakeBackend) Close() error {
	b.closed = true
	return nil
}

func (b *fakeBackend) NotifyResize(cb func()) {
	b.resizeCb = cb
}

// fakePty joins caller streams to a slave through plain pipes, no line discipline
type fakePty struct {
	*memoryBackend
	master io.ReadWriter
}

func (p *fakePty) Master() io.ReadWriter { return p.master }

type readWriter struct {
	io.Reader
	io.Writer
}
