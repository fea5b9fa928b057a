package terminal

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/lixenwraith/ttykit/attr"
)

const (
	// ProviderDumb names the last-resort terminal over process stdio
	ProviderDumb = "dumb"

	TypeDumb      = "dumb"
	TypeDumbColor = "dumb-color"
)

// NewDumb opens a minimal terminal over process stdio. Input passes through
// the signal and CR/NL parts of the line discipline; the real tty already
// echoes. Size comes from out when it is a tty, else from opts.Size (see
// SizeFromEnv), else 0x0. Dumb terminals cannot pause.
func NewDumb(in io.Reader, out io.Writer, opts Options) Terminal {
	a := attr.Default()
	if opts.Attributes != nil {
		a = *opts.Attributes
	}
	if opts.Type == "" {
		opts.Type = TypeDumb
	}
	var s Size
	if opts.Size != nil {
		s = *opts.Size
	}

	b := newMemoryBackend(ProviderDumb, in, out, a, s)
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		b.sizeFn = func() (Size, bool) {
			w, h, err := term.GetSize(fd)
			if err != nil {
				return Size{}, false
			}
			return NewSize(w, h), true
		}
	}
	return newDisciplineTerm(b, opts, false)
}

// SizeFromEnv reads COLUMNS and LINES; missing or invalid values are 0
func SizeFromEnv(getenv func(string) string) Size {
	cols, _ := strconv.Atoi(getenv("COLUMNS"))
	rows, _ := strconv.Atoi(getenv("LINES"))
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return NewSize(cols, rows)
}
