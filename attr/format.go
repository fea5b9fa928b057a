package attr

import (
	"fmt"
	"strconv"
	"strings"
)

// String returns a debugging rendering; it is not a wire format
func (a *Attributes) String() string {
	var b strings.Builder
	b.WriteString("Attributes[lflags: ")
	b.WriteString(a.lflag.String())
	b.WriteString(", iflags: ")
	b.WriteString(a.iflag.String())
	b.WriteString(", oflags: ")
	b.WriteString(a.oflag.String())
	b.WriteString(", cflags: ")
	b.WriteString(a.cflag.String())
	b.WriteString(", cchars: ")
	for i, c := range ControlChars() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strings.TrimPrefix(c.String(), "v"))
		b.WriteString(" = ")
		b.WriteString(DisplayControlChar(c, a.ControlChar(c)))
	}
	b.WriteByte(']')
	return b.String()
}

// DisplayControlChar decodes a control char value for humans
func DisplayControlChar(c ControlChar, value int) string {
	switch {
	case value < 0:
		return "<undef>"
	case c == VMIN || c == VTIME:
		return strconv.Itoa(value)
	case value < 32:
		return "^" + string(rune(value+'@'))
	case value == 127:
		return "^?"
	case value >= 128:
		return fmt.Sprintf("\\u%04x", value)
	default:
		return string(rune(value))
	}
}
