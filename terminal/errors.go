package terminal

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrClosed is returned by every I/O, attribute and size call after Close
	ErrClosed = errors.New("terminal: closed")

	// ErrTimeout is returned when a timed read or a terminal query gets no reply
	ErrTimeout = fmt.Errorf("terminal: timeout: %w", os.ErrDeadlineExceeded)
)
