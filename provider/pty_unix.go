//go:build linux || darwin

package provider

import (
	"fmt"
	"io"
	"os"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/terminal"
)

type ptyProvider struct{}

// NewPty returns the native provider: termios ioctls on the process tty for
// system terminals and fresh pty pairs for the rest
func NewPty() Provider { return ptyProvider{} }

func (ptyProvider) Name() string { return NamePty }

func (ptyProvider) SystemTerminal(req Request) (terminal.Terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("pty: stdin: %w", ErrNotTerminal)
	}
	b := &ttyBackend{in: os.Stdin, out: os.Stdout, fd: fd}
	return terminal.NewSystem(b, req.Options)
}

func (ptyProvider) Terminal(req Request) (terminal.Terminal, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("pty: open pair: %w", err)
	}
	b := &pairBackend{master: master, slave: slave}

	t, err := terminal.NewPty(b, req.In, req.Out, req.Options)
	if err != nil {
		b.Close()
		return nil, err
	}
	return t, nil
}

// ttyBackend drives the process tty through ioctls
type ttyBackend struct {
	in  *os.File
	out *os.File
	fd  int
}

func (b *ttyBackend) Provider() string  { return NamePty }
func (b *ttyBackend) Input() io.Reader  { return b.in }
func (b *ttyBackend) Output() io.Writer { return b.out }

func (b *ttyBackend) Attributes() (attr.Attributes, error) {
	return attr.Get(b.fd)
}

func (b *ttyBackend) SetAttributes(a attr.Attributes) error {
	return attr.Set(b.fd, a)
}

func (b *ttyBackend) Size() (terminal.Size, error) {
	return getWinsize(b.fd)
}

func (b *ttyBackend) SetSize(s terminal.Size) error {
	return setWinsize(b.fd, s)
}

// Close leaves stdio open; the process owns it
func (b *ttyBackend) Close() error { return nil }

// pairBackend is a pty pair; the slave is the application side
type pairBackend struct {
	master *os.File
	slave  *os.File
}

func (b *pairBackend) Provider() string      { return NamePty }
func (b *pairBackend) Input() io.Reader      { return b.slave }
func (b *pairBackend) Output() io.Writer     { return b.slave }
func (b *pairBackend) Master() io.ReadWriter { return b.master }

func (b *pairBackend) Attributes() (attr.Attributes, error) {
	return attr.Get(int(b.slave.Fd()))
}

func (b *pairBackend) SetAttributes(a attr.Attributes) error {
	return attr.Set(int(b.slave.Fd()), a)
}

func (b *pairBackend) Size() (terminal.Size, error) {
	ws, err := pty.GetsizeFull(b.slave)
	if err != nil {
		return terminal.Size{}, err
	}
	return terminal.Size{Cols: ws.Cols, Rows: ws.Rows}, nil
}

func (b *pairBackend) SetSize(s terminal.Size) error {
	return pty.Setsize(b.slave, &pty.Winsize{Rows: s.Rows, Cols: s.Cols})
}

func (b *pairBackend) Close() error {
	errS := b.slave.Close()
	errM := b.master.Close()
	if errS != nil {
		return errS
	}
	return errM
}

func getWinsize(fd int) (terminal.Size, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return terminal.Size{}, err
	}
	return terminal.Size{Cols: ws.Col, Rows: ws.Row}, nil
}

func setWinsize(fd int, s terminal.Size) error {
	return unix.IoctlSetWinsize(fd, unix.TIOCSWINSZ, &unix.Winsize{Row: s.Rows, Col: s.Cols})
}
