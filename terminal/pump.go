package terminal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/muesli/cancelreader"
)

// pump copies src to dst on its own goroutine and can be paused.
// File-backed sources read through a cancelreader so Pause and Close interrupt
// a pending read without consuming input. Other sources finish the read in
// flight, deliver it, then stop.
type pump struct {
	name string
	src  io.Reader
	dst  io.Writer
	done func(error) // called once when src ends or dst fails
	log  *slog.Logger

	mu      sync.Mutex
	paused  bool
	closed  bool
	running bool
	cancel  cancelreader.CancelReader
	idleCh  chan struct{} // closed when the current goroutine exits
}

type fder interface {
	Fd() uintptr
}

// newPump returns a paused pump; call resume to start copying
func newPump(name string, src io.Reader, dst io.Writer, done func(error), log *slog.Logger) *pump {
	idle := make(chan struct{})
	close(idle)
	return &pump{
		name:   name,
		src:    src,
		dst:    dst,
		done:   done,
		log:    log,
		paused: true,
		idleCh: idle,
	}
}

// resume starts copying unless closed
func (p *pump) resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || !p.paused {
		return
	}
	p.paused = false
	if p.running {
		// The old goroutine sees paused=false after its canceled read and
		// continues with a fresh reader
		return
	}
	p.running = true
	p.idleCh = make(chan struct{})
	p.cancel = p.newCancelReader()
	go p.run(p.idleCh)
}

// pause stops new reads; buffered output already delivered stays delivered
func (p *pump) pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.paused {
		return
	}
	p.paused = true
	if p.cancel != nil {
		p.cancel.Cancel()
	}
}

// pauseWait pauses and waits until the goroutine is idle or ctx ends.
// On interruption the pump stays paused.
func (p *pump) pauseWait(ctx context.Context) error {
	p.pause()

	p.mu.Lock()
	idle := p.idleCh
	p.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pump) isPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// close stops the pump for good. A read blocked on a non-file source ends
// when the backend closes that source.
func (p *pump) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.paused = true
	if p.cancel != nil {
		p.cancel.Cancel()
	}
}

// newCancelReader wraps file sources; caller holds mu
func (p *pump) newCancelReader() cancelreader.CancelReader {
	if _, ok := p.src.(fder); !ok {
		return nil
	}
	cr, err := cancelreader.NewReader(p.src)
	if err != nil {
		p.log.Debug("cancelable read unavailable", "pump", p.name, "error", err)
		return nil
	}
	return cr
}

func (p *pump) run(idle chan struct{}) {
	defer close(idle)

	buf := make([]byte, 4096)
	for {
		p.mu.Lock()
		if p.paused || p.closed {
			p.running = false
			if p.cancel != nil {
				p.cancel.Close()
				p.cancel = nil
			}
			p.mu.Unlock()
			return
		}
		cr := p.cancel
		p.mu.Unlock()

		var n int
		var err error
		if cr != nil {
			n, err = cr.Read(buf)
		} else {
			n, err = p.src.Read(buf)
		}

		if n > 0 {
			if _, werr := p.dst.Write(buf[:n]); werr != nil {
				p.finish(werr)
				return
			}
		}

		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) {
				p.mu.Lock()
				if !p.paused && !p.closed {
					// resumed while the cancel was in flight
					p.cancel.Close()
					p.cancel = p.newCancelReader()
				}
				p.mu.Unlock()
				continue
			}
			p.finish(err)
			return
		}
	}
}

// finish ends the pump after a source or destination failure
func (p *pump) finish(err error) {
	p.mu.Lock()
	closed := p.closed
	p.closed = true
	p.paused = true
	p.running = false
	if p.cancel != nil {
		p.cancel.Close()
		p.cancel = nil
	}
	p.mu.Unlock()

	if !closed && !errors.Is(err, io.EOF) && !errors.Is(err, ErrClosed) {
		p.log.Debug("pump stopped", "pump", p.name, "error", err)
	}
	if p.done != nil {
		p.done(err)
	}
}
