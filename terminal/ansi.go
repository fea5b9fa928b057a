package terminal

// Pre-allocated ANSI sequence fragments
var (
	csiSGR0       = []byte("\x1b[0m")
	csiCursorShow = []byte("\x1b[?25h")

	// Cursor position report request, answered with ESC [ row ; col R
	csiCursorReport = []byte("\x1b[6n")

	// Mouse tracking (X11 modes) and SGR extended coordinates
	csiMouseClickOn   = []byte("\x1b[?1000h")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseDragOn    = []byte("\x1b[?1002h")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseMotionOn  = []byte("\x1b[?1003h")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROn     = []byte("\x1b[?1006h")
	csiMouseSGROff    = []byte("\x1b[?1006l")

	// Focus in/out reporting
	csiFocusOn  = []byte("\x1b[?1004h")
	csiFocusOff = []byte("\x1b[?1004l")
)

// mouseSequence returns the bytes that switch tracking to mode.
// Disabling goes in reverse order of enabling.
func mouseSequence(mode MouseTracking) []byte {
	var seq []byte
	switch mode {
	case MouseTrackNormal:
		seq = append(seq, csiMouseSGROn...)
		seq = append(seq, csiMouseMotionOff...)
		seq = append(seq, csiMouseDragOff...)
		seq = append(seq, csiMouseClickOn...)
	case MouseTrackButton:
		seq = append(seq, csiMouseSGROn...)
		seq = append(seq, csiMouseMotionOff...)
		seq = append(seq, csiMouseDragOn...)
	case MouseTrackAny:
		seq = append(seq, csiMouseSGROn...)
		seq = append(seq, csiMouseMotionOn...)
	default:
		seq = append(seq, csiMouseMotionOff...)
		seq = append(seq, csiMouseDragOff...)
		seq = append(seq, csiMouseClickOff...)
		seq = append(seq, csiMouseSGROff...)
	}
	return seq
}
