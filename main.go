// Command ttykit negotiates a terminal the way an application would and
// reports what it got. With --raw it echoes input in raw mode until q.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/builder"
	"github.com/lixenwraith/ttykit/charset"
	"github.com/lixenwraith/ttykit/config"
	"github.com/lixenwraith/ttykit/logging"
	"github.com/lixenwraith/ttykit/terminal"
)

type options struct {
	configPath string
	typ        string
	encoding   string
	disable    []string
	noDumb     bool
	raw        bool
	cursor     bool
	logLevel   string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options

	flagSet := pflag.NewFlagSet("ttykit", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/ttykit/config.toml)")
	flagSet.StringVarP(&opts.typ, "type", "t", "", "terminal type (default: $TERM)")
	flagSet.StringVarP(&opts.encoding, "encoding", "e", "", "stream charset (default: locale)")
	flagSet.StringSliceVar(&opts.disable, "disable", nil, "providers to skip: pty, tcell, exec")
	flagSet.BoolVar(&opts.noDumb, "no-dumb", false, "fail instead of falling back to a dumb terminal")
	flagSet.BoolVar(&opts.raw, "raw", false, "echo input in raw mode until q")
	flagSet.BoolVar(&opts.cursor, "cursor", false, "query the cursor position")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	b := builder.NewWithConfig(cfg).
		Name("ttykit").
		Type(opts.typ).
		Encoding(opts.encoding).
		Logger(logging.New(cfg.Log, os.Stderr))
	for _, name := range opts.disable {
		b.Provider(strings.TrimSpace(name), false)
	}
	if opts.noDumb {
		b.Dumb(false)
	}

	t, err := b.Build()
	if err != nil {
		return err
	}
	defer t.Close()
	defer terminal.RestoreOnPanic(t)

	out := termenv.NewOutput(t.Writer(), termenv.WithProfile(profileFor(t)))
	if err := report(out, t, opts.cursor); err != nil {
		return err
	}
	if opts.raw {
		return echoRaw(out, t)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// profileFor derives the colour profile from the negotiated type; dumb
// terminals only get colour when the heuristic said so
func profileFor(t terminal.Terminal) termenv.Profile {
	switch t.Type() {
	case terminal.TypeDumb:
		return termenv.Ascii
	case terminal.TypeDumbColor:
		return termenv.ANSI
	}
	return termenv.NewOutput(os.Stdout).EnvColorProfile()
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "256"
	case termenv.ANSI:
		return "16"
	default:
		return "none"
	}
}

func report(out *termenv.Output, t terminal.Terminal, cursor bool) error {
	label := func(s string) termenv.Style {
		return out.String(fmt.Sprintf("%-10s", s)).Bold().Foreground(out.Color("6"))
	}
	line := func(k string, v any) {
		fmt.Fprintf(out, "%s %v\r\n", label(k), v)
	}

	line("name", t.Name())
	line("type", t.Type())
	line("provider", t.Provider())
	line("encoding", charset.Name(t.Encoding()))
	line("colours", profileName(out.Profile))

	if size, err := t.Size(); err == nil {
		line("size", size)
	} else {
		line("size", out.String(err.Error()).Foreground(out.Color("1")))
	}

	a, err := t.Attributes()
	if err != nil {
		return err
	}
	line("iflags", a.InputFlags())
	line("oflags", a.OutputFlags())
	line("cflags", a.ControlFlags())
	line("lflags", a.LocalFlags())
	for _, c := range []attr.ControlChar{attr.VINTR, attr.VQUIT, attr.VSUSP, attr.VEOF, attr.VERASE} {
		line(strings.TrimPrefix(c.String(), "v"), attr.DisplayControlChar(c, a.ControlChar(c)))
	}

	line("mouse", t.HasMouseSupport())
	line("focus", t.HasFocusSupport())
	line("pause", t.CanPauseResume())

	if cursor {
		if err := t.Flush(); err != nil {
			return err
		}
		pos, err := t.CursorPosition(nil)
		if err != nil {
			line("cursor", out.String(err.Error()).Foreground(out.Color("1")))
		} else {
			line("cursor", pos)
		}
	}
	return t.Flush()
}

// echoRaw shows each input byte until q, EOF or ^D
func echoRaw(out *termenv.Output, t terminal.Terminal) error {
	prev, err := t.EnterRawMode()
	if err != nil {
		return err
	}
	defer t.SetAttributes(prev)

	fmt.Fprint(out, out.String("raw mode, q to quit").Faint(), "\r\n")
	if err := t.Flush(); err != nil {
		return err
	}

	r := t.Reader()
	for {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, terminal.ErrClosed) {
				return nil
			}
			return err
		}
		if c == 'q' || c == 4 {
			return nil
		}
		fmt.Fprintf(out, "%3d %-6s\r\n", c, attr.DisplayControlChar(attr.VINTR, int(c)))
		if err := t.Flush(); err != nil {
			return err
		}
	}
}
