// Package builder negotiates a terminal. It walks an ordered chain of
// providers, keeps the error of every strategy that fails, and falls back to
// a dumb terminal when nothing else works. At most one system terminal is
// live per process.
//
//	t, err := builder.New().Name("app").Build()
//	if err != nil {
//		return err
//	}
//	defer t.Close()
package builder

import (
	"io"
	"log/slog"
	"maps"
	"os"

	"golang.org/x/text/encoding"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/config"
	"github.com/lixenwraith/ttykit/logging"
	"github.com/lixenwraith/ttykit/provider"
	"github.com/lixenwraith/ttykit/sysenv"
	"github.com/lixenwraith/ttykit/terminal"
)

// DefaultName is used when no name is set
const DefaultName = "ttykit"

// DefaultType is used when neither config nor TERM names a type
const DefaultType = "ansi"

// Builder collects a terminal request. Setters return the builder; Build
// may be called more than once.
type Builder struct {
	cfg    *config.Config
	cfgErr error

	name     string
	in       io.Reader
	out      io.Writer
	system   *bool
	typ      string
	encName  string
	codepage int
	enc      encoding.Encoding

	providers map[string]provider.Provider
	enabled   map[string]bool
	dumb      config.Tristate
	dumbColor config.Tristate

	attrs         *attr.Attributes
	size          *terminal.Size
	nativeSignals *bool
	handler       terminal.SignalHandler
	paused        bool
	filter        func(io.Reader) io.Reader

	log *slog.Logger
	env sysenv.Env

	// process stdio for the dumb fallback
	stdin  io.Reader
	stdout io.Writer
}

// New starts from the config file and TTYKIT_* environment. A config that
// fails to load is reported at Build and defaults are used.
func New() *Builder {
	cfg, err := config.Load()
	if err != nil {
		b := NewWithConfig(config.DefaultConfig())
		b.cfgErr = err
		return b
	}
	return NewWithConfig(cfg)
}

// NewWithConfig starts from cfg
func NewWithConfig(cfg *config.Config) *Builder {
	return &Builder{
		cfg:       cfg,
		providers: provider.Defaults(),
		enabled:   make(map[string]bool),
		env:       sysenv.System{},
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
}

func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// Streams requests a terminal over in and out instead of the process tty
func (b *Builder) Streams(in io.Reader, out io.Writer) *Builder {
	b.in = in
	b.out = out
	return b
}

// System forces system or stream mode. Without it, system mode applies when
// no streams are given.
func (b *Builder) System(system bool) *Builder {
	b.system = &system
	return b
}

func (b *Builder) Type(typ string) *Builder {
	b.typ = typ
	return b
}

// Encoding selects the stream charset by name
func (b *Builder) Encoding(name string) *Builder {
	b.encName = name
	return b
}

// Charset selects the stream charset directly; it wins over Encoding
func (b *Builder) Charset(enc encoding.Encoding) *Builder {
	b.enc = enc
	return b
}

// Codepage selects a legacy Windows code page.
//
// Deprecated: use Encoding.
func (b *Builder) Codepage(cp int) *Builder {
	b.codepage = cp
	return b
}

// Provider enables or disables the named provider
func (b *Builder) Provider(name string, enabled bool) *Builder {
	b.enabled[name] = enabled
	return b
}

// Backend replaces the implementation registered under p.Name()
func (b *Builder) Backend(p provider.Provider) *Builder {
	b.providers = maps.Clone(b.providers)
	b.providers[p.Name()] = p
	return b
}

// Dumb allows (true) or forbids (false) the dumb fallback
func (b *Builder) Dumb(enabled bool) *Builder {
	b.dumb = config.Of(enabled)
	return b
}

// DumbColor overrides the colour heuristic for dumb terminals
func (b *Builder) DumbColor(color bool) *Builder {
	b.dumbColor = config.Of(color)
	return b
}

// Attributes seeds a stream terminal; system terminals ignore it
func (b *Builder) Attributes(a attr.Attributes) *Builder {
	b.attrs = &a
	return b
}

// Size seeds a stream terminal; system terminals ignore it
func (b *Builder) Size(s terminal.Size) *Builder {
	b.size = &s
	return b
}

func (b *Builder) NativeSignals(enabled bool) *Builder {
	b.nativeSignals = &enabled
	return b
}

func (b *Builder) SignalHandler(h terminal.SignalHandler) *Builder {
	b.handler = h
	return b
}

func (b *Builder) Paused(paused bool) *Builder {
	b.paused = paused
	return b
}

func (b *Builder) InputFilter(f func(io.Reader) io.Reader) *Builder {
	b.filter = f
	return b
}

func (b *Builder) Logger(l *slog.Logger) *Builder {
	b.log = l
	return b
}

// Env replaces the environment probes
func (b *Builder) Env(e sysenv.Env) *Builder {
	b.env = e
	return b
}

func (b *Builder) logger() *slog.Logger {
	if b.log != nil {
		return b.log
	}
	return logging.New(b.cfg.Log, os.Stderr)
}

func (b *Builder) providerEnabled(name string) bool {
	if v, ok := b.enabled[name]; ok {
		return v
	}
	switch name {
	case provider.NamePty:
		return b.cfg.Providers.Pty
	case provider.NameTcell:
		return b.cfg.Providers.Tcell
	case provider.NameExec:
		return b.cfg.Providers.Exec
	}
	return true
}

func (b *Builder) isSystem() bool {
	if b.system != nil {
		return *b.system
	}
	return b.in == nil && b.out == nil
}
