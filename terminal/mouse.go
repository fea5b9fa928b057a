package terminal

import (
	"fmt"
	"strings"
)

// MouseEventType is the kind of a mouse report
type MouseEventType uint8

const (
	MouseReleased MouseEventType = iota
	MousePressed
	MouseWheel
	MouseMoved
	MouseDragged
)

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseNoButton MouseButton = iota
	MouseButton1
	MouseButton2
	MouseButton3
	MouseWheelUp
	MouseWheelDown
)

// MouseModifiers is a bitset of keyboard modifiers held during a mouse event
type MouseModifiers uint8

const (
	MouseShift MouseModifiers = 1 << iota
	MouseAlt
	MouseControl
)

// MouseTracking selects which mouse events the terminal reports
type MouseTracking uint8

const (
	MouseTrackOff    MouseTracking = iota // no reports
	MouseTrackNormal                      // press and release
	MouseTrackButton                      // plus motion while a button is held
	MouseTrackAny                         // plus all motion
)

// MouseEvent is one decoded mouse report, 0-based coordinates
type MouseEvent struct {
	Type      MouseEventType
	Button    MouseButton
	Modifiers MouseModifiers
	X         int
	Y         int
}

func (t MouseEventType) String() string {
	switch t {
	case MouseReleased:
		return "Released"
	case MousePressed:
		return "Pressed"
	case MouseWheel:
		return "Wheel"
	case MouseMoved:
		return "Moved"
	case MouseDragged:
		return "Dragged"
	default:
		return "Unknown"
	}
}

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseButton1:
		return "Button1"
	case MouseButton2:
		return "Button2"
	case MouseButton3:
		return "Button3"
	case MouseWheelUp:
		return "WheelUp"
	case MouseWheelDown:
		return "WheelDown"
	default:
		return "NoButton"
	}
}

func (m MouseModifiers) String() string {
	var parts []string
	if m&MouseShift != 0 {
		parts = append(parts, "Shift")
	}
	if m&MouseAlt != 0 {
		parts = append(parts, "Alt")
	}
	if m&MouseControl != 0 {
		parts = append(parts, "Control")
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (m MouseTracking) String() string {
	switch m {
	case MouseTrackNormal:
		return "Normal"
	case MouseTrackButton:
		return "Button"
	case MouseTrackAny:
		return "Any"
	default:
		return "Off"
	}
}

func (e MouseEvent) String() string {
	return fmt.Sprintf("MouseEvent[type=%s, button=%s, modifiers=%s, x=%d, y=%d]",
		e.Type, e.Button, e.Modifiers, e.X, e.Y)
}

// decodeSGRMouse turns SGR (1006) parameters into an event.
// Coordinates arrive 1-based. Release reports with button code 3 reuse the
// button of the previous event.
func decodeSGRMouse(btn, x, y int, release bool, last MouseEvent) MouseEvent {
	ev := MouseEvent{X: x - 1, Y: y - 1}

	// Bits 0-1: button (0=left, 1=middle, 2=right, 3=none)
	// Bit 5 (32): motion
	// Bit 6 (64): scroll
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	if isScroll {
		ev.Type = MouseWheel
		if buttonID == 0 {
			ev.Button = MouseWheelUp
		} else {
			ev.Button = MouseWheelDown
		}
	} else {
		switch buttonID {
		case 0:
			ev.Button = MouseButton1
		case 1:
			ev.Button = MouseButton2
		case 2:
			ev.Button = MouseButton3
		case 3:
			ev.Button = MouseNoButton
		}

		switch {
		case release:
			ev.Type = MouseReleased
			if ev.Button == MouseNoButton {
				ev.Button = last.Button
			}
		case isMotion && ev.Button == MouseNoButton:
			ev.Type = MouseMoved
		case isMotion:
			ev.Type = MouseDragged
		default:
			ev.Type = MousePressed
		}
	}

	if btn&4 != 0 {
		ev.Modifiers |= MouseShift
	}
	if btn&8 != 0 {
		ev.Modifiers |= MouseAlt
	}
	if btn&16 != 0 {
		ev.Modifiers |= MouseControl
	}
	return ev
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0
	digits := 0

	for _, b := range data {
		if b == ';' {
			if digits == 0 {
				return 0, 0, 0, false
			}
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			digits = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			digits++
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		} else {
			return 0, 0, 0, false
		}
	}

	if state != 2 || digits == 0 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}
