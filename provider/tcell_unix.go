//go:build linux || darwin

package provider

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/terminal"
)

type tcellProvider struct{}

// NewTcell returns the provider built on tcell's Tty
func NewTcell() Provider { return tcellProvider{} }

func (tcellProvider) Name() string { return NameTcell }

func (tcellProvider) SystemTerminal(req Request) (terminal.Terminal, error) {
	b, err := openTcellBackend()
	if err != nil {
		return nil, err
	}
	t, err := terminal.NewSystem(b, req.Options)
	if err != nil {
		b.Close()
		return nil, err
	}
	return t, nil
}

func (tcellProvider) Terminal(Request) (terminal.Terminal, error) {
	return nil, fmt.Errorf("tcell: stream terminals: %w", errors.ErrUnsupported)
}

// tcellBackend reads and writes through a tcell Tty. Attribute ioctls go
// through a second descriptor on the same device.
type tcellBackend struct {
	tty tcell.Tty
	ctl *os.File
}

func openTcellBackend() (*tcellBackend, error) {
	ctl, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("tcell: %w: %w", ErrNotTerminal, err)
	}
	cooked, err := attr.Get(int(ctl.Fd()))
	if err != nil {
		ctl.Close()
		return nil, fmt.Errorf("tcell: read attributes: %w", err)
	}

	tty, err := tcell.NewDevTty()
	if err != nil {
		ctl.Close()
		return nil, fmt.Errorf("tcell: open tty: %w", err)
	}
	if err := tty.Start(); err != nil {
		tty.Close()
		ctl.Close()
		return nil, fmt.Errorf("tcell: start tty: %w", err)
	}

	// Start switches to raw mode; open in the user's mode instead
	if err := attr.Set(int(ctl.Fd()), cooked); err != nil {
		tty.Stop()
		tty.Close()
		ctl.Close()
		return nil, fmt.Errorf("tcell: reapply attributes: %w", err)
	}
	return &tcellBackend{tty: tty, ctl: ctl}, nil
}

func (b *tcellBackend) Provider() string  { return NameTcell }
func (b *tcellBackend) Input() io.Reader  { return b.tty }
func (b *tcellBackend) Output() io.Writer { return b.tty }

func (b *tcellBackend) Attributes() (attr.Attributes, error) {
	return attr.Get(int(b.ctl.Fd()))
}

func (b *tcellBackend) SetAttributes(a attr.Attributes) error {
	return attr.Set(int(b.ctl.Fd()), a)
}

func (b *tcellBackend) Size() (terminal.Size, error) {
	ws, err := b.tty.WindowSize()
	if err != nil {
		return terminal.Size{}, err
	}
	return terminal.NewSize(ws.Width, ws.Height), nil
}

func (b *tcellBackend) SetSize(s terminal.Size) error {
	return setWinsize(int(b.ctl.Fd()), s)
}

func (b *tcellBackend) NotifyResize(cb func()) {
	b.tty.NotifyResize(cb)
}

// Close wakes any pending read, then releases the tty
func (b *tcellBackend) Close() error {
	b.tty.NotifyResize(nil)
	b.tty.Drain()
	return errors.Join(b.tty.Stop(), b.tty.Close(), b.ctl.Close())
}
