package terminal

import (
	"io"
	"sync"
	"time"
)

// NonBlockingReader buffers terminal input delivered by a pump goroutine.
// Read blocks like any io.Reader; ReadTimeout, Peek and Available give
// bounded or non-blocking access. Bytes are returned in arrival order.
type NonBlockingReader struct {
	mu     sync.Mutex
	buf    []byte
	err    error         // sticky source error, reported once buf drains
	wake   chan struct{} // closed and replaced on every state change
	closed bool
}

func newNonBlockingReader() *NonBlockingReader {
	return &NonBlockingReader{wake: make(chan struct{})}
}

// Read blocks until at least one byte is buffered, the source ends or the
// reader is closed
func (r *NonBlockingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			return 0, ErrClosed
		}
		if len(r.buf) > 0 {
			n := copy(p, r.buf)
			r.buf = r.buf[n:]
			r.mu.Unlock()
			return n, nil
		}
		if r.err != nil {
			err := r.err
			r.mu.Unlock()
			return 0, err
		}
		wake := r.wake
		r.mu.Unlock()
		<-wake
	}
}

// ReadByte blocks for one byte
func (r *NonBlockingReader) ReadByte() (byte, error) {
	return r.next(0, true)
}

// ReadTimeout reads one byte, waiting at most d. A non-positive d blocks.
// ErrTimeout is returned when nothing arrives in time.
func (r *NonBlockingReader) ReadTimeout(d time.Duration) (byte, error) {
	return r.next(d, true)
}

// Peek is ReadTimeout without consuming the byte
func (r *NonBlockingReader) Peek(d time.Duration) (byte, error) {
	return r.next(d, false)
}

// Available returns the number of bytes readable without blocking
func (r *NonBlockingReader) Available() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf)
}

// Close discards buffered input and unblocks every waiting reader with ErrClosed
func (r *NonBlockingReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.buf = nil
	r.broadcast()
	return nil
}

func (r *NonBlockingReader) next(d time.Duration, consume bool) (byte, error) {
	var timeout <-chan time.Time
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			return 0, ErrClosed
		}
		if len(r.buf) > 0 {
			b := r.buf[0]
			if consume {
				r.buf = r.buf[1:]
			}
			r.mu.Unlock()
			return b, nil
		}
		if r.err != nil {
			err := r.err
			r.mu.Unlock()
			return 0, err
		}
		wake := r.wake
		r.mu.Unlock()

		select {
		case <-wake:
		case <-timeout:
			return 0, ErrTimeout
		}
	}
}

// feed appends input; called by pumps
func (r *NonBlockingReader) feed(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || len(p) == 0 {
		return
	}
	r.buf = append(r.buf, p...)
	r.broadcast()
}

// fail records the end of the source; buffered bytes are still delivered
func (r *NonBlockingReader) fail(err error) {
	if err == nil {
		err = io.EOF
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.err != nil {
		return
	}
	r.err = err
	r.broadcast()
}

// broadcast wakes all waiters; caller holds mu
func (r *NonBlockingReader) broadcast() {
	close(r.wake)
	r.wake = make(chan struct{})
}

// sink adapts the reader to io.Writer for use as a pump destination
func (r *NonBlockingReader) sink() io.Writer {
	return readerSink{r}
}

type readerSink struct {
	r *NonBlockingReader
}

func (s readerSink) Write(p []byte) (int, error) {
	s.r.mu.Lock()
	closed := s.r.closed
	s.r.mu.Unlock()
	if closed {
		return 0, ErrClosed
	}
	s.r.feed(p)
	return len(p), nil
}
