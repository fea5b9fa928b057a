package terminal

import (
	"strings"
)

// capabilities gates optional features by terminal type
type capabilities struct {
	mouse  bool
	focus  bool
	cursor bool
}

// Type prefixes known to speak the relevant xterm extensions
var (
	mouseTypes  = []string{"xterm", "screen", "tmux", "rxvt", "alacritty", "kitty", "foot", "wezterm"}
	focusTypes  = []string{"xterm", "kitty", "foot", "alacritty", "wezterm"}
	cursorTypes = []string{"vt1", "vt2", "linux", "ansi"}
)

func capabilitiesFor(typ string) capabilities {
	typ = strings.ToLower(typ)
	if typ == "" || strings.HasPrefix(typ, "dumb") {
		return capabilities{}
	}
	mouse := hasAnyPrefix(typ, mouseTypes)
	return capabilities{
		mouse:  mouse,
		focus:  hasAnyPrefix(typ, focusTypes),
		cursor: mouse || hasAnyPrefix(typ, cursorTypes),
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
