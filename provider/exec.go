package provider

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/terminal"
)

// sttyRunner runs stty against the controlling tty and returns its stdout
type sttyRunner func(args ...string) (string, error)

type execProvider struct {
	run sttyRunner
}

// NewExec returns the provider that drives the process tty through stty
// subprocesses. It also serves POSIX emulation layers on Windows.
func NewExec() Provider { return execProvider{run: runStty} }

func (execProvider) Name() string { return NameExec }

func (p execProvider) SystemTerminal(req Request) (terminal.Terminal, error) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, fmt.Errorf("exec: stdin: %w", ErrNotTerminal)
	}
	b := &execBackend{in: os.Stdin, out: os.Stdout, run: p.run}
	// fail here rather than in the first attribute call
	if _, err := b.Attributes(); err != nil {
		return nil, err
	}
	return terminal.NewSystem(b, req.Options)
}

func (execProvider) Terminal(Request) (terminal.Terminal, error) {
	return nil, fmt.Errorf("exec: stream terminals: %w", errors.ErrUnsupported)
}

type execBackend struct {
	in  io.Reader
	out io.Writer
	run sttyRunner
}

func (b *execBackend) Provider() string  { return NameExec }
func (b *execBackend) Input() io.Reader  { return b.in }
func (b *execBackend) Output() io.Writer { return b.out }

func (b *execBackend) Attributes() (attr.Attributes, error) {
	out, err := b.run("-a")
	if err != nil {
		return attr.Attributes{}, err
	}
	return parseStty(out), nil
}

func (b *execBackend) SetAttributes(a attr.Attributes) error {
	current, err := b.Attributes()
	if err != nil {
		return err
	}
	args := sttyArgs(current, a)
	if len(args) == 0 {
		return nil
	}
	_, err = b.run(args...)
	return err
}

func (b *execBackend) Size() (terminal.Size, error) {
	out, err := b.run("-a")
	if err != nil {
		return terminal.Size{}, err
	}
	return parseSize(out)
}

func (b *execBackend) SetSize(s terminal.Size) error {
	_, err := b.run("columns", strconv.Itoa(int(s.Cols)), "rows", strconv.Itoa(int(s.Rows)))
	return err
}

func (b *execBackend) Close() error { return nil }

func runStty(args ...string) (string, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		// the emulation layer's shell owns /dev/tty
		cmd = exec.Command("sh", "-c", "stty "+shellJoin(args)+" < /dev/tty")
	} else {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return "", fmt.Errorf("exec: %w: %w", ErrNotTerminal, err)
		}
		defer tty.Close()
		cmd = exec.Command("stty", args...)
		cmd.Stdin = tty
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("exec: stty %s: %w", strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("exec: stty %s: %w: %s", strings.Join(args, " "), err, msg)
	}
	return stdout.String(), nil
}

func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
	}
	return strings.Join(quoted, " ")
}
