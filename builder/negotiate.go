package builder

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/lixenwraith/ttykit/charset"
	"github.com/lixenwraith/ttykit/config"
	"github.com/lixenwraith/ttykit/provider"
	"github.com/lixenwraith/ttykit/sysenv"
	"github.com/lixenwraith/ttykit/terminal"
)

// strategy is one attempt at opening a terminal
type strategy struct {
	name string
	try  func() (terminal.Terminal, error)
}

// Build negotiates a terminal from the request
func (b *Builder) Build() (terminal.Terminal, error) {
	log := b.logger()
	if b.cfgErr != nil {
		log.Warn("config not loaded, using defaults", "error", b.cfgErr)
	}

	typ := b.resolveType()
	enc, err := b.resolveEncoding()
	if err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}

	name := b.name
	if name == "" {
		name = DefaultName
	}
	nativeSignals := b.cfg.NativeSignals
	if b.nativeSignals != nil {
		nativeSignals = *b.nativeSignals
	}
	opts := terminal.Options{
		Name:          name,
		Type:          typ,
		Encoding:      enc,
		Handler:       b.handler,
		NativeSignals: nativeSignals,
		Paused:        b.paused,
		InputFilter:   b.filter,
		Logger:        log,
	}

	if b.isSystem() {
		if b.attrs != nil || b.size != nil {
			log.Warn("attributes and size are ignored for system terminals")
		}
		return b.buildSystem(opts, log)
	}

	if b.in == nil || b.out == nil {
		return nil, errors.New("builder: stream terminals need both input and output")
	}
	opts.Attributes = b.attrs
	opts.Size = b.size
	return b.buildStreams(opts, log), nil
}

func (b *Builder) resolveType() string {
	if b.typ != "" {
		return b.typ
	}
	if b.cfg.Type != "" {
		return b.cfg.Type
	}
	if v := b.env.Getenv("TERM"); v != "" {
		// the emulation layers advertise xterm but do 256 colours
		if v == "xterm" && sysenv.IsPosixEmulation(b.env) {
			return "xterm-256color"
		}
		return v
	}
	return DefaultType
}

func (b *Builder) resolveEncoding() (encoding.Encoding, error) {
	if b.enc != nil {
		return b.enc, nil
	}
	name := b.encName
	if name == "" {
		name = b.cfg.Encoding
	}
	cp := b.codepage
	if cp == 0 {
		cp = b.cfg.Codepage
	}
	return charset.Resolve(name, cp, b.env.Getenv)
}

func (b *Builder) buildSystem(opts terminal.Options, log *slog.Logger) (terminal.Terminal, error) {
	if Current() != nil {
		return nil, &Error{Err: ErrSystemTerminalRunning}
	}

	forcedDumb := opts.Type == terminal.TypeDumb || opts.Type == terminal.TypeDumbColor

	var (
		t      terminal.Terminal
		causes []error
	)
	if !forcedDumb {
		t, causes = b.runStrategies(b.systemStrategies(opts), log)
	}
	if t != nil {
		return register(t, causes)
	}

	dumb := b.dumb
	if !dumb.IsSet() {
		dumb = b.cfg.Dumb
	}
	if !forcedDumb && !dumb.Or(true) {
		return nil, &Error{Err: ErrNoTerminal, Causes: causes}
	}

	if !forcedDumb {
		opts.Type = b.dumbType()
		if !dumb.IsSet() {
			log.Warn("unable to create a system terminal, creating a dumb terminal",
				"type", opts.Type, "causes", errors.Join(causes...))
		}
	}
	size := terminal.SizeFromEnv(b.env.Getenv)
	opts.Size = &size
	return terminal.NewDumb(b.stdin, b.stdout, opts), nil
}

// systemStrategies lists the attempts in order. On Windows the POSIX
// emulation layer gets the first try.
func (b *Builder) systemStrategies(opts terminal.Options) []strategy {
	req := provider.Request{Options: opts}
	var order []string
	if b.env.GOOS() == "windows" {
		if sysenv.IsPosixEmulation(b.env) && b.env.Getenv("TERM") != "cygwin" {
			order = append(order, provider.NameExec)
		}
		order = append(order, provider.NamePty, provider.NameTcell)
	} else {
		order = []string{provider.NamePty, provider.NameTcell, provider.NameExec}
	}

	var out []strategy
	for _, name := range order {
		p, ok := b.providers[name]
		if !ok || !b.providerEnabled(name) {
			continue
		}
		out = append(out, strategy{name: name, try: func() (terminal.Terminal, error) {
			return p.SystemTerminal(req)
		}})
	}
	return out
}

// runStrategies returns the first success and the errors before it. On
// Windows every strategy runs and a later success replaces the earlier one,
// which is closed.
func (b *Builder) runStrategies(strategies []strategy, log *slog.Logger) (terminal.Terminal, []error) {
	replace := b.env.GOOS() == "windows"

	var (
		result terminal.Terminal
		causes []error
	)
	for _, s := range strategies {
		t, err := s.try()
		if err != nil {
			log.Debug("terminal strategy failed", "provider", s.name, "error", err)
			causes = append(causes, err)
			continue
		}
		if !replace {
			return t, causes
		}
		if result != nil {
			log.Debug("terminal replaced", "old", result.Provider(), "new", s.name)
			result.Close()
		}
		result = t
	}
	return result, causes
}

// dumbType applies the colour heuristic: explicit setting, then an Emacs
// inferior shell, then an IDEA run console
func (b *Builder) dumbType() string {
	color := b.dumbColor
	if !color.IsSet() {
		color = b.cfg.DumbColor
	}
	if !color.IsSet() {
		color = config.Of(b.env.Getenv("INSIDE_EMACS") != "" ||
			strings.Contains(b.env.ParentCommand(), "idea"))
	}
	if color.Or(false) {
		return terminal.TypeDumbColor
	}
	return terminal.TypeDumb
}

func (b *Builder) buildStreams(opts terminal.Options, log *slog.Logger) terminal.Terminal {
	req := provider.Request{Options: opts, In: b.in, Out: b.out}
	for _, name := range []string{provider.NamePty, provider.NameTcell} {
		p, ok := b.providers[name]
		if !ok || !b.providerEnabled(name) {
			continue
		}
		t, err := p.Terminal(req)
		if err == nil {
			return t
		}
		log.Debug("terminal strategy failed", "provider", name, "error", err)
	}
	return terminal.NewExternal(b.in, b.out, opts)
}
