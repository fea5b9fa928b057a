//go:build unix

package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"

	"golang.org/x/sys/unix"
)

// osSignals maps terminal signals to their OS counterparts; SIGINFO is
// added on platforms that have it
var osSignals = map[Signal]os.Signal{
	SIGINT:   unix.SIGINT,
	SIGQUIT:  unix.SIGQUIT,
	SIGTSTP:  unix.SIGTSTP,
	SIGCONT:  unix.SIGCONT,
	SIGWINCH: unix.SIGWINCH,
}

// nativeRouter forwards OS signals to the terminal's signal table
type nativeRouter struct {
	raise func(Signal)

	mu     sync.Mutex
	sigCh  chan os.Signal
	stopCh chan struct{}
	doneCh chan struct{}
	routed map[Signal]bool
	closed bool
}

// startNativeSignals begins routing; handler reports the current handler per signal
func startNativeSignals(raise func(Signal), handler func(Signal) SignalHandler) *nativeRouter {
	r := &nativeRouter{
		raise:  raise,
		sigCh:  make(chan os.Signal, 8),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		routed: make(map[Signal]bool),
	}
	for _, sig := range Signals() {
		r.route(sig, handler(sig))
	}
	go r.watchLoop()
	return r
}

// route updates the OS disposition for sig after a handler change
func (r *nativeRouter) route(sig Signal, h SignalHandler) {
	osSig, ok := osSignals[sig]
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	if h == SigDefault {
		if r.routed[sig] {
			signal.Reset(osSig)
			delete(r.routed, sig)
		}
		return
	}
	signal.Notify(r.sigCh, osSig)
	r.routed[sig] = true
}

// close stops routing and restores default dispositions
func (r *nativeRouter) close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	signal.Stop(r.sigCh)
	for sig := range r.routed {
		signal.Reset(osSignals[sig])
	}
	r.routed = nil
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

// watchLoop dispatches received signals
func (r *nativeRouter) watchLoop() {
	defer close(r.doneCh)

	// Panic recovery for signal handlers
	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSIGNAL HANDLER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-r.stopCh:
			return
		case osSig := <-r.sigCh:
			for sig, s := range osSignals {
				if s == osSig {
					r.raise(sig)
					break
				}
			}
		}
	}
}
