package builder

import (
	"errors"
	"strings"
)

var (
	// ErrNoTerminal means every strategy failed and dumb fallback was disabled
	ErrNoTerminal = errors.New("builder: unable to create a terminal")

	// ErrSystemTerminalRunning means another system terminal holds the process tty
	ErrSystemTerminalRunning = errors.New("builder: a system terminal is already running")
)

// Error is a negotiation failure with the errors of every strategy tried.
// errors.Is matches both Err and each cause.
type Error struct {
	Err    error
	Causes []error
}

func (e *Error) Error() string {
	if len(e.Causes) == 0 {
		return e.Err.Error()
	}
	msgs := make([]string, len(e.Causes))
	for i, c := range e.Causes {
		msgs[i] = c.Error()
	}
	return e.Err.Error() + " (" + strings.Join(msgs, "; ") + ")"
}

func (e *Error) Unwrap() []error {
	return append([]error{e.Err}, e.Causes...)
}
