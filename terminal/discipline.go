package terminal

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/lixenwraith/ttykit/attr"
)

// discipline applies termios input processing for terminals without a
// kernel line discipline. Signal characters under ISIG are raised instead of
// delivered; CR and NL are translated per IGNCR, ICRNL and INLCR; ECHO copies
// delivered input to the echo writer.
type discipline struct {
	attrs func() attr.Attributes
	raise func(Signal)
	echo  io.Writer // nil disables echo
	dst   io.Writer
	log   *slog.Logger
}

func (d *discipline) Write(p []byte) (int, error) {
	a := d.attrs()
	pending := make([]byte, 0, len(p))

	for _, b := range p {
		if sig, ok := signalFor(&a, b); ok {
			if err := d.deliver(&a, pending); err != nil {
				return 0, err
			}
			pending = pending[:0]
			d.raise(sig)
			continue
		}
		if c, keep := translateInput(&a, b); keep {
			pending = append(pending, c)
		}
	}

	if err := d.deliver(&a, pending); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (d *discipline) deliver(a *attr.Attributes, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if d.echo != nil && a.LocalFlag(attr.ECHO) {
		if _, err := d.echo.Write(p); err != nil {
			d.log.Debug("echo write failed", "error", err)
		}
	}
	_, err := d.dst.Write(p)
	return err
}

// signalFor maps a control char to its signal when ISIG is set
func signalFor(a *attr.Attributes, b byte) (Signal, bool) {
	if !a.LocalFlag(attr.ISIG) {
		return 0, false
	}
	switch int(b) {
	case a.ControlChar(attr.VINTR):
		return SIGINT, true
	case a.ControlChar(attr.VQUIT):
		return SIGQUIT, true
	case a.ControlChar(attr.VSUSP):
		return SIGTSTP, true
	case a.ControlChar(attr.VSTATUS):
		return SIGINFO, true
	}
	return 0, false
}

func translateInput(a *attr.Attributes, b byte) (byte, bool) {
	switch {
	case b == '\r' && a.InputFlag(attr.IGNCR):
		return 0, false
	case b == '\r' && a.InputFlag(attr.ICRNL):
		return '\n', true
	case b == '\n' && a.InputFlag(attr.INLCR):
		return '\r', true
	}
	return b, true
}

// outputProcessor expands NL to CR NL under OPOST and ONLCR
type outputProcessor struct {
	w     io.Writer
	attrs func() attr.Attributes
}

var crlf = []byte("\r\n")

func (o *outputProcessor) Write(p []byte) (int, error) {
	a := o.attrs()
	if !a.OutputFlag(attr.OPOST) || !a.OutputFlag(attr.ONLCR) || bytes.IndexByte(p, '\n') < 0 {
		return o.w.Write(p)
	}
	if _, err := o.w.Write(bytes.ReplaceAll(p, []byte{'\n'}, crlf)); err != nil {
		return 0, err
	}
	return len(p), nil
}
