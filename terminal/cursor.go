package terminal

import (
	"errors"
	"fmt"
	"strconv"
)

// CursorPosition sends a cursor position request and waits for the report.
// Input that is not part of the report goes to discard, in arrival order.
func (t *termImpl) CursorPosition(discard func(byte)) (Cursor, error) {
	if t.closed.Load() {
		return Cursor{}, ErrClosed
	}
	if !t.caps.cursor {
		return Cursor{}, errors.ErrUnsupported
	}

	t.mu.Lock()
	err := t.writeRaw(csiCursorReport)
	t.mu.Unlock()
	if err != nil {
		return Cursor{}, fmt.Errorf("terminal: cursor query: %w", err)
	}

	var pending []byte
	release := func(p []byte) {
		if discard == nil {
			return
		}
		for _, b := range p {
			discard(b)
		}
	}

	for {
		b, err := t.reader.ReadTimeout(t.cursorTimeout)
		if err != nil {
			release(pending)
			return Cursor{}, err
		}
		pending = append(pending, b)

		switch matchCursorReport(pending) {
		case reportPartial:
			continue
		case reportComplete:
			return parseCursorReport(pending)
		default:
			// A mismatching ESC may start the real report
			if b == 0x1b && len(pending) > 1 {
				release(pending[:len(pending)-1])
				pending = pending[len(pending)-1:]
				continue
			}
			release(pending)
			pending = pending[:0]
		}
	}
}

type reportMatch uint8

const (
	reportMismatch reportMatch = iota
	reportPartial
	reportComplete
)

// matchCursorReport checks p against ESC [ digits ; digits R
func matchCursorReport(p []byte) reportMatch {
	if p[0] != 0x1b {
		return reportMismatch
	}
	if len(p) == 1 {
		return reportPartial
	}
	if p[1] != '[' {
		return reportMismatch
	}

	field, digits := 0, 0
	for _, b := range p[2:] {
		switch {
		case b >= '0' && b <= '9':
			digits++
		case b == ';' && field == 0 && digits > 0:
			field, digits = 1, 0
		case b == 'R' && field == 1 && digits > 0:
			return reportComplete
		default:
			return reportMismatch
		}
	}
	return reportPartial
}

// parseCursorReport converts a matched 1-based report to a 0-based Cursor
func parseCursorReport(p []byte) (Cursor, error) {
	body := string(p[2 : len(p)-1])
	for i := 0; i < len(body); i++ {
		if body[i] != ';' {
			continue
		}
		row, err1 := strconv.Atoi(body[:i])
		col, err2 := strconv.Atoi(body[i+1:])
		if err := errors.Join(err1, err2); err != nil {
			return Cursor{}, fmt.Errorf("terminal: cursor report %q: %w", p, err)
		}
		return Cursor{X: col - 1, Y: row - 1}, nil
	}
	return Cursor{}, fmt.Errorf("terminal: cursor report %q", p)
}
