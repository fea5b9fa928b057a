package provider

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/terminal"
)

const linuxStty = `speed 38400 baud; rows 24; columns 80; line = 0;
intr = ^C; quit = ^\; erase = ^?; kill = ^U; eof = ^D; eol = <undef>; eol2 = <undef>; swtch = <undef>; start = ^Q; stop = ^S; susp = ^Z; rprnt = ^R; werase = ^W; lnext = ^V; discard = ^O; min = 1; time = 0;
-parenb -parodd -cmspar cs8 -hupcl -cstopb cread -clocal -crtscts
-ignbrk -brkint -ignpar -parmrk -inpck -istrip -inlcr -igncr icrnl ixon -ixoff -iuclc -ixany -imaxbel iutf8
opost -olcuc -ocrnl onlcr -onocr -onlret -ofill -ofdel nl0 cr0 tab0 bs0 vt0 ff0
isig icanon iexten echo echoe echok -echonl -noflsh -xcase -tostop -echoprt echoctl echoke -flusho -extproc
`

const darwinStty = `speed 9600 baud; 50 rows; 120 columns;
lflags: icanon isig iexten echo echoe -echok echoke -echonl echoctl
	-echoprt -altwerase -noflsh -tostop -flusho pendin -nokerninfo
	-extproc
iflags: -istrip icrnl -inlcr -igncr ixon -ixoff ixany imaxbel iutf8
	-ignbrk brkint -inpck -ignpar -parmrk
oflags: opost onlcr -oxtabs -onocr -onlret
cflags: cread cs8 -parenb -parodd hupcl -clocal -cstopb -crtscts -dsrflow
	-dtrflow -mdmbuf
cchars: discard = ^O; dsusp = ^Y; eof = ^D; eol = <undef>;
	eol2 = <undef>; erase = ^?; intr = ^C; kill = ^U; lnext = ^V;
	min = 1; quit = ^\; reprint = ^R; start = ^Q; status = ^T;
	stop = ^S; susp = ^Z; time = 0; werase = ^W;
`

func TestParseSttyLinux(t *testing.T) {
	a := parseStty(linuxStty)

	if want := attr.NewFlagSet(attr.ICRNL, attr.IXON, attr.IUTF8); a.InputFlags() != want {
		t.Errorf("Expected input flags %q, got %q", want, a.InputFlags())
	}
	if want := attr.NewFlagSet(attr.OPOST, attr.ONLCR); a.OutputFlags() != want {
		t.Errorf("Expected output flags %q, got %q", want, a.OutputFlags())
	}
	if want := attr.NewFlagSet(attr.CS8, attr.CREAD); a.ControlFlags() != want {
		t.Errorf("Expected control flags %q, got %q", want, a.ControlFlags())
	}
	wantLocal := attr.NewFlagSet(attr.ISIG, attr.ICANON, attr.IEXTEN, attr.ECHO,
		attr.ECHOE, attr.ECHOK, attr.ECHOCTL, attr.ECHOKE)
	if a.LocalFlags() != wantLocal {
		t.Errorf("Expected local flags %q, got %q", wantLocal, a.LocalFlags())
	}

	chars := map[attr.ControlChar]int{
		attr.VINTR: 3, attr.VQUIT: 28, attr.VERASE: 127, attr.VKILL: 21,
		attr.VEOF: 4, attr.VEOL: attr.Undefined, attr.VEOL2: attr.Undefined,
		attr.VSTART: 17, attr.VSTOP: 19, attr.VSUSP: 26, attr.VREPRINT: 18,
		attr.VWERASE: 23, attr.VLNEXT: 22, attr.VDISCARD: 15, attr.VMIN: 1,
		attr.VTIME: 0, attr.VDSUSP: attr.Undefined, attr.VSTATUS: attr.Undefined,
	}
	for c, want := range chars {
		if got := a.ControlChar(c); got != want {
			t.Errorf("Expected %s = %d, got %d", c, want, got)
		}
	}
}

func TestParseSttyDarwin(t *testing.T) {
	a := parseStty(darwinStty)

	for _, f := range []attr.LocalFlag{attr.ICANON, attr.ISIG, attr.PENDIN, attr.ECHOKE} {
		if !a.LocalFlag(f) {
			t.Errorf("Expected %s set", f)
		}
	}
	for _, f := range []attr.LocalFlag{attr.ECHOK, attr.ALTWERASE, attr.NOKERNINFO} {
		if a.LocalFlag(f) {
			t.Errorf("Expected %s clear", f)
		}
	}
	if !a.InputFlag(attr.IXANY) || !a.InputFlag(attr.BRKINT) {
		t.Errorf("Expected ixany and brkint, got %q", a.InputFlags())
	}
	if a.OutputFlag(attr.OXTABS) {
		t.Error("Expected oxtabs clear")
	}
	if !a.ControlFlag(attr.HUPCL) {
		t.Error("Expected hupcl set")
	}

	if got := a.ControlChar(attr.VREPRINT); got != 18 {
		t.Errorf("Expected reprint 18, got %d", got)
	}
	if got := a.ControlChar(attr.VSTATUS); got != 20 {
		t.Errorf("Expected status 20, got %d", got)
	}
	if got := a.ControlChar(attr.VDSUSP); got != 25 {
		t.Errorf("Expected dsusp 25, got %d", got)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want terminal.Size
	}{
		{"linux", linuxStty, terminal.Size{Cols: 80, Rows: 24}},
		{"darwin", darwinStty, terminal.Size{Cols: 120, Rows: 50}},
		{"equals", "rows = 10; columns = 40;", terminal.Size{Cols: 40, Rows: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSize(tt.out)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	if _, err := parseSize("speed 38400 baud;"); err == nil {
		t.Error("Expected error for output without size")
	}
}

func TestParseControlChar(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"<UNDEF>", attr.Undefined},
		{"", attr.Undefined},
		{"DEL", 127},
		{"^?", 127},
		{"^C", 3},
		{`^\`, 28},
		{"M-^C", 131},
		{"M-^?", 255},
		{"M-A", 193},
		{"0177", 127},
		{"10", 10},
		{"A", 65},
		{"^", '^'},
	}
	for _, tt := range tests {
		if got := parseControlChar(tt.in); got != tt.want {
			t.Errorf("parseControlChar(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestFormatControlChar(t *testing.T) {
	tests := []struct {
		c    attr.ControlChar
		v    int
		want string
	}{
		{attr.VINTR, 3, "^C"},
		{attr.VERASE, 127, "^?"},
		{attr.VINTR, 0, "undef"},
		{attr.VEOF, 'a', "a"},
		{attr.VINTR, 131, "M-^C"},
		{attr.VERASE, 255, "M-^?"},
		{attr.VMIN, 5, "5"},
		{attr.VTIME, 0, "0"},
	}
	for _, tt := range tests {
		if got := formatControlChar(tt.c, tt.v); got != tt.want {
			t.Errorf("formatControlChar(%s, %d): expected %q, got %q", tt.c, tt.v, tt.want, got)
		}
	}

	// everything except literal lower-case survives the trip through stty
	for _, v := range []int{1, 3, 27, 28, 65, 127, 128, 131, 200, 255} {
		s := formatControlChar(attr.VINTR, v)
		if got := parseControlChar(strings.ToUpper(s)); got != v {
			t.Errorf("Expected %d back from %q, got %d", v, s, got)
		}
	}
}

func TestSttyArgs(t *testing.T) {
	current := parseStty(linuxStty)

	t.Run("raw", func(t *testing.T) {
		got := sttyArgs(current, current.Raw())
		want := []string{"-icrnl", "-ixon", "-echo", "-isig", "-icanon", "-iexten", "min", "0", "time", "1"}
		if !slices.Equal(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("unchanged", func(t *testing.T) {
		if got := sttyArgs(current, current); len(got) != 0 {
			t.Errorf("Expected no args, got %v", got)
		}
	})

	t.Run("char size", func(t *testing.T) {
		target := current
		target.SetControlFlag(attr.CS8, false)
		target.SetControlFlag(attr.CS7, true)
		got := sttyArgs(current, target)
		if !slices.Equal(got, []string{"cs7"}) {
			t.Errorf("Expected [cs7], got %v", got)
		}
	})

	t.Run("control chars", func(t *testing.T) {
		target := current
		target.SetControlChar(attr.VREPRINT, 0)
		target.SetControlChar(attr.VINTR, 131)
		target.SetControlChar(attr.VEOL, attr.Undefined)
		got := sttyArgs(current, target)
		want := []string{"rprnt", "undef", "intr", "M-^C"}
		if !slices.Equal(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})
}

type fakeStty struct {
	out   string
	err   error
	calls [][]string
}

func (f *fakeStty) run(args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func TestExecBackend(t *testing.T) {
	f := &fakeStty{out: linuxStty}
	b := &execBackend{run: f.run}

	a, err := b.Attributes()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !a.LocalFlag(attr.ICANON) {
		t.Error("Expected icanon from stty output")
	}

	f.calls = nil
	if err := b.SetAttributes(a); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(f.calls) != 1 {
		t.Errorf("Expected only the read for an unchanged set, got %v", f.calls)
	}

	f.calls = nil
	raw := a.Raw()
	if err := b.SetAttributes(raw); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(f.calls) != 2 || f.calls[1][0] != "-icrnl" {
		t.Errorf("Expected read then diff, got %v", f.calls)
	}

	size, err := b.Size()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if size != (terminal.Size{Cols: 80, Rows: 24}) {
		t.Errorf("Expected 80x24, got %v", size)
	}

	f.calls = nil
	if err := b.SetSize(terminal.Size{Cols: 100, Rows: 30}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{"columns", "100", "rows", "30"}
	if len(f.calls) != 1 || !slices.Equal(f.calls[0], want) {
		t.Errorf("Expected %v, got %v", want, f.calls)
	}
}

func TestExecBackendError(t *testing.T) {
	boom := errors.New("stty failed")
	b := &execBackend{run: (&fakeStty{err: boom}).run}

	if _, err := b.Attributes(); !errors.Is(err, boom) {
		t.Errorf("Expected runner error, got %v", err)
	}
	if err := b.SetAttributes(attr.Default()); !errors.Is(err, boom) {
		t.Errorf("Expected runner error, got %v", err)
	}
	if _, err := b.Size(); !errors.Is(err, boom) {
		t.Errorf("Expected runner error, got %v", err)
	}
}

func TestShellJoin(t *testing.T) {
	got := shellJoin([]string{"-echo", "intr", "it's"})
	want := `'-echo' 'intr' 'it'\''s'`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
