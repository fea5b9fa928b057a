package terminal

import (
	"io"
	"os"
)

// EmergencyReset attempts to restore terminal to sane state.
// Call this from panic recovery if Close cannot be called normally.
func EmergencyReset(w io.Writer) {
	w.Write(mouseSequence(MouseTrackOff))
	w.Write(csiFocusOff)
	w.Write(csiCursorShow)
	w.Write(csiSGR0)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}

// RestoreOnPanic closes t while a panic unwinds, then re-panics. Use it
// directly in a defer statement:
//
//	defer terminal.RestoreOnPanic(t)
//
// If Close fails, EmergencyReset is applied to stdout.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}
	if t == nil || t.Close() != nil {
		EmergencyReset(os.Stdout)
	}
	panic(r)
}
