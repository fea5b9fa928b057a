// Package terminal provides terminal handles over interchangeable backends.
//
// A Terminal exposes:
//   - a non-blocking reader fed by a pausable pump goroutine
//   - a buffered writer with optional charset transcoding
//   - termios-style attributes and window size
//   - an in-process signal table with optional OS signal routing
//   - capability-gated mouse, focus and cursor position queries
//
// Four flavours share one implementation: system terminals that own the
// process tty, pty terminals over a fresh pseudo-terminal pair, external
// terminals over caller streams with an in-process line discipline, and dumb
// terminals over the process stdio.
//
// Close restores whatever the terminal changed on open. Defer RestoreOnPanic
// to get the same restore on a panicking goroutine.
package terminal
