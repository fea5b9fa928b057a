package attr

import (
	"strings"
	"testing"
)

func TestDisplayControlChar(t *testing.T) {
	tests := []struct {
		role  ControlChar
		value int
		want  string
	}{
		{VINTR, -1, "<undef>"},
		{VINTR, 3, "^C"},
		{VEOF, 4, "^D"},
		{VERASE, 127, "^?"},
		{VMIN, 1, "1"},
		{VTIME, 0, "0"},
		{VKILL, 'u', "u"},
		{VLNEXT, 0xe9, "\\u00e9"},
		{VSTATUS, 0, "^@"},
	}

	for _, tt := range tests {
		if got := DisplayControlChar(tt.role, tt.value); got != tt.want {
			t.Errorf("DisplayControlChar(%s, %d): expected %q, got %q", tt.role, tt.value, tt.want, got)
		}
	}
}

func TestAttributesString(t *testing.T) {
	var a Attributes
	a.SetLocalFlags(NewFlagSet(ISIG, ECHO))
	a.SetInputFlag(ICRNL, true)
	a.SetControlChar(VINTR, 3)
	a.SetControlChar(VMIN, 1)

	s := a.String()

	for _, part := range []string{
		"lflags: echo isig,",
		"iflags: icrnl,",
		"oflags: ,",
		"intr = ^C",
		"min = 1",
		"eof = <undef>",
	} {
		if !strings.Contains(s, part) {
			t.Errorf("Expected %q in %s", part, s)
		}
	}

	if s != a.String() {
		t.Error("Expected deterministic rendering")
	}
}
