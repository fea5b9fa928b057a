package terminal

import (
	"sync"
)

// Signal is a terminal-related signal
type Signal uint8

const (
	SIGINT Signal = iota
	SIGQUIT
	SIGTSTP
	SIGCONT
	SIGINFO
	SIGWINCH
	numSignals
)

var signalNames = [...]string{
	SIGINT: "INT", SIGQUIT: "QUIT", SIGTSTP: "TSTP",
	SIGCONT: "CONT", SIGINFO: "INFO", SIGWINCH: "WINCH",
}

func (s Signal) String() string {
	if int(s) < len(signalNames) {
		return signalNames[s]
	}
	return "UNKNOWN"
}

// Signals lists every signal a terminal dispatches
func Signals() []Signal {
	return []Signal{SIGINT, SIGQUIT, SIGTSTP, SIGCONT, SIGINFO, SIGWINCH}
}

// SignalHandler receives raised signals
type SignalHandler interface {
	Handle(sig Signal)
}

// SignalHandlerFunc adapts a function to SignalHandler
type SignalHandlerFunc func(sig Signal)

func (f SignalHandlerFunc) Handle(sig Signal) { f(sig) }

type builtinHandler string

func (builtinHandler) Handle(Signal) {}

func (h builtinHandler) String() string { return string(h) }

var (
	// SigDefault is the initial handler of every signal. Raise does nothing
	// with it; with native routing the OS default disposition applies.
	SigDefault SignalHandler = builtinHandler("SIG_DFL")

	// SigIgnore swallows the signal
	SigIgnore SignalHandler = builtinHandler("SIG_IGN")
)

func isBuiltin(h SignalHandler) bool {
	return h == SigDefault || h == SigIgnore
}

// signalTable holds one handler per signal
type signalTable struct {
	mu       sync.Mutex
	handlers [numSignals]SignalHandler
}

func newSignalTable(initial SignalHandler) *signalTable {
	if initial == nil {
		initial = SigDefault
	}
	st := &signalTable{}
	for i := range st.handlers {
		st.handlers[i] = initial
	}
	return st
}

// swap installs h and returns the previous handler; nil means SigDefault
func (st *signalTable) swap(sig Signal, h SignalHandler) SignalHandler {
	if h == nil {
		h = SigDefault
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if sig >= numSignals {
		return SigDefault
	}
	prev := st.handlers[sig]
	st.handlers[sig] = h
	return prev
}

func (st *signalTable) get(sig Signal) SignalHandler {
	st.mu.Lock()
	defer st.mu.Unlock()
	if sig >= numSignals {
		return SigDefault
	}
	return st.handlers[sig]
}

// raise runs the handler outside the lock so it may call back into the terminal
func (st *signalTable) raise(sig Signal) {
	if h := st.get(sig); !isBuiltin(h) {
		h.Handle(sig)
	}
}
