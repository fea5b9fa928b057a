package builder

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/config"
	"github.com/lixenwraith/ttykit/provider"
	"github.com/lixenwraith/ttykit/sysenv"
	"github.com/lixenwraith/ttykit/terminal"
)

// fakeTerm reports its provider and whether it was closed
type fakeTerm struct {
	terminal.Terminal
	provider string
	closed   atomic.Bool
}

func (t *fakeTerm) Provider() string { return t.provider }

func (t *fakeTerm) Close() error {
	t.closed.Store(true)
	return t.Terminal.Close()
}

type fakeProvider struct {
	name string
	err  error

	mu     sync.Mutex
	calls  int
	opened []*fakeTerm
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) open(req provider.Request) (terminal.Terminal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	t := &fakeTerm{
		Terminal: terminal.NewExternal(strings.NewReader(""), io.Discard, req.Options),
		provider: p.name,
	}
	p.opened = append(p.opened, t)
	return t, nil
}

func (p *fakeProvider) SystemTerminal(req provider.Request) (terminal.Terminal, error) {
	return p.open(req)
}

func (p *fakeProvider) Terminal(req provider.Request) (terminal.Terminal, error) {
	return p.open(req)
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func failing(name string) *fakeProvider {
	return &fakeProvider{name: name, err: errors.New(name + ": unavailable")}
}

func working(name string) *fakeProvider {
	return &fakeProvider{name: name}
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestBuilder wires only the given providers and a fixed environment
func newTestBuilder(t *testing.T, env sysenv.Map, providers ...provider.Provider) *Builder {
	t.Helper()
	b := NewWithConfig(config.DefaultConfig()).Env(env).Logger(quiet)
	b.providers = make(map[string]provider.Provider)
	for _, p := range providers {
		b.Backend(p)
	}
	b.stdin = strings.NewReader("")
	b.stdout = io.Discard
	t.Cleanup(func() {
		if c := Current(); c != nil {
			c.Close()
		}
	})
	return b
}

func linuxEnv(vars map[string]string) sysenv.Map {
	return sysenv.Map{OS: "linux", Vars: vars}
}

func TestRunStrategiesCauses(t *testing.T) {
	errA := errors.New("a failed")
	want := terminal.NewExternal(strings.NewReader(""), io.Discard, terminal.Options{})
	defer want.Close()

	b := newTestBuilder(t, linuxEnv(nil))
	got, causes := b.runStrategies([]strategy{
		{name: "a", try: func() (terminal.Terminal, error) { return nil, errA }},
		{name: "b", try: func() (terminal.Terminal, error) { return want, nil }},
		{name: "c", try: func() (terminal.Terminal, error) {
			t.Error("Expected no strategy after the first success")
			return nil, nil
		}},
	}, quiet)

	if got != want {
		t.Errorf("Expected second strategy's terminal, got %v", got)
	}
	if len(causes) != 1 || causes[0] != errA {
		t.Errorf("Expected causes [%v], got %v", errA, causes)
	}
}

func TestSystemOrder(t *testing.T) {
	pty, tcell, exec := working(provider.NamePty), working(provider.NameTcell), working(provider.NameExec)
	b := newTestBuilder(t, linuxEnv(map[string]string{"TERM": "xterm"}), pty, tcell, exec)

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	if term.Provider() != provider.NamePty {
		t.Errorf("Expected pty, got %s", term.Provider())
	}
	if tcell.callCount() != 0 || exec.callCount() != 0 {
		t.Errorf("Expected later strategies untried, got tcell=%d exec=%d", tcell.callCount(), exec.callCount())
	}
	if term.Type() != "xterm" {
		t.Errorf("Expected type from TERM, got %s", term.Type())
	}
}

func TestSystemFallsThrough(t *testing.T) {
	pty, tcell := failing(provider.NamePty), working(provider.NameTcell)
	b := newTestBuilder(t, linuxEnv(nil), pty, tcell)

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	if term.Provider() != provider.NameTcell {
		t.Errorf("Expected tcell, got %s", term.Provider())
	}
	if term.Type() != DefaultType {
		t.Errorf("Expected %s without TERM, got %s", DefaultType, term.Type())
	}
}

func TestDisabledProviderSkipped(t *testing.T) {
	pty, tcell := working(provider.NamePty), working(provider.NameTcell)
	b := newTestBuilder(t, linuxEnv(nil), pty, tcell).Provider(provider.NamePty, false)

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	if pty.callCount() != 0 {
		t.Error("Expected disabled pty untried")
	}
	if term.Provider() != provider.NameTcell {
		t.Errorf("Expected tcell, got %s", term.Provider())
	}
}

func TestNoTerminal(t *testing.T) {
	pty, tcell, exec := failing(provider.NamePty), failing(provider.NameTcell), failing(provider.NameExec)
	b := newTestBuilder(t, linuxEnv(nil), pty, tcell, exec).Dumb(false)

	_, err := b.Build()
	if !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("Expected ErrNoTerminal, got %v", err)
	}
	for _, p := range []*fakeProvider{pty, tcell, exec} {
		if !errors.Is(err, p.err) {
			t.Errorf("Expected cause %v in %v", p.err, err)
		}
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if len(e.Causes) != 3 {
		t.Errorf("Expected 3 causes, got %d", len(e.Causes))
	}
	if !strings.Contains(e.Error(), "pty: unavailable") {
		t.Errorf("Expected causes in message, got %q", e.Error())
	}
}

func TestDumbFallback(t *testing.T) {
	tests := []struct {
		name  string
		env   sysenv.Map
		color *bool
		want  string
	}{
		{"plain", linuxEnv(nil), nil, terminal.TypeDumb},
		{"emacs", linuxEnv(map[string]string{"INSIDE_EMACS": "29.1,comint"}), nil, terminal.TypeDumbColor},
		{"idea", sysenv.Map{OS: "linux", Parent: "/opt/idea/jbr/bin/java -cp idea.jar"}, nil, terminal.TypeDumbColor},
		{"other parent", sysenv.Map{OS: "linux", Parent: "/bin/bash"}, nil, terminal.TypeDumb},
		{"override off", linuxEnv(map[string]string{"INSIDE_EMACS": "t"}), new(bool), terminal.TypeDumb},
		{"override on", linuxEnv(nil), func() *bool { v := true; return &v }(), terminal.TypeDumbColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder(t, tt.env, failing(provider.NamePty))
			if tt.color != nil {
				b.DumbColor(*tt.color)
			}
			term, err := b.Build()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			defer term.Close()

			if term.Provider() != terminal.ProviderDumb {
				t.Errorf("Expected dumb provider, got %s", term.Provider())
			}
			if term.Type() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, term.Type())
			}
			if Current() != nil {
				t.Error("Expected dumb terminal left unregistered")
			}
		})
	}
}

func TestDumbFallbackWarns(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	b := newTestBuilder(t, linuxEnv(nil), failing(provider.NamePty)).Logger(log)
	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	term.Close()

	if !strings.Contains(buf.String(), "creating a dumb terminal") || !strings.Contains(buf.String(), "pty: unavailable") {
		t.Errorf("Expected warning with causes, got %q", buf.String())
	}

	// explicitly requested dumb is not worth a warning
	buf.Reset()
	term, err = newTestBuilder(t, linuxEnv(nil), failing(provider.NamePty)).Logger(log).Dumb(true).Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	term.Close()
	if buf.Len() != 0 {
		t.Errorf("Expected no warning, got %q", buf.String())
	}
}

func TestForcedDumbType(t *testing.T) {
	pty := working(provider.NamePty)
	b := newTestBuilder(t, linuxEnv(nil), pty).Type(terminal.TypeDumbColor).Dumb(false)

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	if pty.callCount() != 0 {
		t.Error("Expected providers skipped for a dumb type")
	}
	if term.Type() != terminal.TypeDumbColor {
		t.Errorf("Expected %s, got %s", terminal.TypeDumbColor, term.Type())
	}
}

func TestDumbSizeFromEnv(t *testing.T) {
	env := linuxEnv(map[string]string{"COLUMNS": "100", "LINES": "40"})
	term, err := newTestBuilder(t, env).Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	size, err := term.Size()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if size != (terminal.Size{Cols: 100, Rows: 40}) {
		t.Errorf("Expected 100x40, got %v", size)
	}
}

func TestSingleton(t *testing.T) {
	pty := working(provider.NamePty)
	b := newTestBuilder(t, linuxEnv(nil), pty)

	first, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if Current() != first {
		t.Error("Expected first terminal registered")
	}

	if _, err := b.Build(); !errors.Is(err, ErrSystemTerminalRunning) {
		t.Errorf("Expected ErrSystemTerminalRunning, got %v", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Unexpected close error: %v", err)
	}
	if Current() != nil {
		t.Error("Expected slot released on close")
	}
	if err := first.Close(); err != nil {
		t.Errorf("Expected nil on second close, got %v", err)
	}

	second, err := b.Build()
	if err != nil {
		t.Fatalf("Expected build after release, got %v", err)
	}
	second.Close()
}

func TestSingletonConcurrent(t *testing.T) {
	pty := working(provider.NamePty)
	b := newTestBuilder(t, linuxEnv(nil), pty)

	const n = 16
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := b.Build()
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrSystemTerminalRunning):
				conflicts.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Fatalf("Expected exactly one live terminal, got %d", successes.Load())
	}
	if conflicts.Load() != n-1 {
		t.Errorf("Expected %d conflicts, got %d", n-1, conflicts.Load())
	}

	pty.mu.Lock()
	var open int
	for _, ft := range pty.opened {
		if !ft.closed.Load() {
			open++
		}
	}
	pty.mu.Unlock()
	if open != 1 {
		t.Errorf("Expected losers closed, %d terminals still open", open)
	}
}

func TestWindowsReplacement(t *testing.T) {
	env := sysenv.Map{OS: "windows", Cygwin: true, Vars: map[string]string{"TERM": "xterm"}}
	exec, pty, tcell := working(provider.NameExec), working(provider.NamePty), working(provider.NameTcell)
	b := newTestBuilder(t, env, exec, pty, tcell)

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	// every strategy runs and the last success wins
	if term.Provider() != provider.NameTcell {
		t.Errorf("Expected tcell, got %s", term.Provider())
	}
	if !exec.opened[0].closed.Load() || !pty.opened[0].closed.Load() {
		t.Error("Expected replaced terminals closed")
	}
	if term.Type() != "xterm-256color" {
		t.Errorf("Expected xterm promoted under emulation, got %s", term.Type())
	}
}

func TestWindowsCygwinTermSkipsExec(t *testing.T) {
	env := sysenv.Map{OS: "windows", Cygwin: true, Vars: map[string]string{"TERM": "cygwin"}}
	exec, pty := working(provider.NameExec), working(provider.NamePty)
	b := newTestBuilder(t, env, exec, pty)

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	if exec.callCount() != 0 {
		t.Error("Expected exec untried under TERM=cygwin")
	}
	if term.Provider() != provider.NamePty {
		t.Errorf("Expected pty, got %s", term.Provider())
	}
}

func TestStreamsExternalFallback(t *testing.T) {
	a := attr.Default()
	a.SetLocalFlag(attr.ECHO, false)
	size := terminal.Size{Cols: 90, Rows: 33}

	var out bytes.Buffer
	b := newTestBuilder(t, linuxEnv(nil), failing(provider.NamePty), failing(provider.NameTcell)).
		Streams(strings.NewReader(""), &out).
		Attributes(a).
		Size(size)

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	if term.Provider() != terminal.ProviderExternal {
		t.Errorf("Expected external, got %s", term.Provider())
	}
	got, err := term.Attributes()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != a {
		t.Errorf("Expected seeded attributes, got %s", got.String())
	}
	if s, _ := term.Size(); s != size {
		t.Errorf("Expected %v, got %v", size, s)
	}
	if Current() != nil {
		t.Error("Expected stream terminal left unregistered")
	}
}

func TestStreamsUsesProvider(t *testing.T) {
	tcell := working(provider.NameTcell)
	b := newTestBuilder(t, linuxEnv(nil), failing(provider.NamePty), tcell).
		Streams(strings.NewReader(""), io.Discard)

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	if term.Provider() != provider.NameTcell {
		t.Errorf("Expected tcell, got %s", term.Provider())
	}
}

func TestStreamsRequired(t *testing.T) {
	b := newTestBuilder(t, linuxEnv(nil)).System(false)
	if _, err := b.Build(); err == nil {
		t.Error("Expected error without streams")
	}
}

func TestSystemIgnoresSeedWithWarning(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBuilder(t, linuxEnv(nil), working(provider.NamePty)).
		Logger(slog.New(slog.NewTextHandler(&buf, nil))).
		Size(terminal.Size{Cols: 1, Rows: 1})

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	if !strings.Contains(buf.String(), "ignored for system terminals") {
		t.Errorf("Expected warning, got %q", buf.String())
	}
}

func TestEncodingResolution(t *testing.T) {
	b := newTestBuilder(t, linuxEnv(map[string]string{"LANG": "de_DE.ISO-8859-1"}), working(provider.NamePty))
	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	term.Close()
	if term.Encoding() == nil {
		t.Error("Expected locale encoding")
	}

	if _, err := newTestBuilder(t, linuxEnv(nil)).Encoding("no-such-charset").Build(); err == nil {
		t.Error("Expected error for unknown encoding")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Type = "vt220"
	cfg.Providers.Pty = false

	pty, tcell := working(provider.NamePty), working(provider.NameTcell)
	b := NewWithConfig(cfg).Env(linuxEnv(map[string]string{"TERM": "xterm"})).Logger(quiet)
	b.providers = map[string]provider.Provider{pty.name: pty, tcell.name: tcell}
	t.Cleanup(func() {
		if c := Current(); c != nil {
			c.Close()
		}
	})

	term, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer term.Close()

	if term.Type() != "vt220" {
		t.Errorf("Expected config type over TERM, got %s", term.Type())
	}
	if term.Provider() != provider.NameTcell {
		t.Errorf("Expected pty disabled by config, got %s", term.Provider())
	}
}
