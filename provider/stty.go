package provider

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lixenwraith/ttykit/attr"
	"github.com/lixenwraith/ttykit/terminal"
)

// Patterns are compiled once per name; stty output is small and parsed rarely
func flagPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[\s;])(-?` + name + `)(?:[\s;]|$)`)
}

func controlCharPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`[\s;]` + name + `\s*[=:]\s*(.+?)[\s;]`)
}

var (
	inputPatterns       = compileFlags(attr.InputFlags())
	outputPatterns      = compileFlags(attr.OutputFlags())
	controlPatterns     = compileFlags(attr.ControlFlags())
	localPatterns       = compileFlags(attr.LocalFlags())
	controlCharPatterns = compileControlChars()
)

func compileFlags[F attr.Flag](flags []F) map[F]*regexp.Regexp {
	m := make(map[F]*regexp.Regexp, len(flags))
	for _, f := range flags {
		m[f] = flagPattern(f.String())
	}
	return m
}

func compileControlChars() map[attr.ControlChar]*regexp.Regexp {
	m := make(map[attr.ControlChar]*regexp.Regexp)
	for _, c := range attr.ControlChars() {
		name := sttyName(c)
		if c == attr.VREPRINT {
			name = "(?:reprint|rprnt)"
		}
		m[c] = controlCharPattern(name)
	}
	return m
}

// sttyName is the argument stty takes for control char role c
func sttyName(c attr.ControlChar) string {
	if c == attr.VREPRINT {
		return "rprnt"
	}
	return strings.TrimPrefix(c.String(), "v")
}

// parseStty reads attributes from `stty -a` output. Flags stty does not
// print are left clear; roles it does not print stay undefined.
func parseStty(out string) attr.Attributes {
	var a attr.Attributes
	a.SetInputFlags(parseFlags(out, inputPatterns))
	a.SetOutputFlags(parseFlags(out, outputPatterns))
	a.SetControlFlags(parseFlags(out, controlPatterns))
	a.SetLocalFlags(parseFlags(out, localPatterns))

	for c, re := range controlCharPatterns {
		m := re.FindStringSubmatch(out)
		if m == nil {
			continue
		}
		a.SetControlChar(c, parseControlChar(strings.ToUpper(m[1])))
	}
	return a
}

func parseFlags[F attr.Flag](out string, patterns map[F]*regexp.Regexp) attr.FlagSet[F] {
	var s attr.FlagSet[F]
	for f, re := range patterns {
		m := re.FindStringSubmatch(out)
		if m != nil && !strings.HasPrefix(m[1], "-") {
			s = s.With(f)
		}
	}
	return s
}

// parseControlChar decodes one stty control char value: <UNDEF>, DEL,
// octal, decimal, ^X, ^?, M-^X, M-^?, M-c or a literal char
func parseControlChar(s string) int {
	switch {
	case s == "":
		return attr.Undefined
	case s == "<UNDEF>":
		return attr.Undefined
	case strings.EqualFold(s, "DEL"):
		return 127
	case s[0] == '0':
		v, err := strconv.ParseInt(s, 8, 32)
		if err != nil {
			return attr.Undefined
		}
		return int(v)
	case s[0] >= '1' && s[0] <= '9':
		v, err := strconv.Atoi(s)
		if err != nil {
			return attr.Undefined
		}
		return v
	case s[0] == '^' && len(s) > 1:
		if s[1] == '?' {
			return 127
		}
		return int(s[1]) - 64
	case strings.HasPrefix(s, "M-") && len(s) > 2:
		if s[2] == '^' && len(s) > 3 {
			if s[3] == '?' {
				return 127 + 128
			}
			return int(s[3]) - 64 + 128
		}
		return int(s[2]) + 128
	default:
		return int(s[0])
	}
}

// formatControlChar is the inverse of parseControlChar for stty arguments
func formatControlChar(c attr.ControlChar, v int) string {
	if c == attr.VMIN || c == attr.VTIME {
		return strconv.Itoa(v)
	}
	if v == 0 {
		return "undef"
	}
	var b strings.Builder
	if v >= 128 {
		v -= 128
		b.WriteString("M-")
	}
	if v < 32 || v == 127 {
		v ^= 0x40
		b.WriteByte('^')
	}
	b.WriteByte(byte(v))
	return b.String()
}

// sttyArgs returns the arguments that move the terminal from current to
// target. Only differing flags and defined, differing control chars are
// listed; an empty result means nothing to do.
func sttyArgs(current, target attr.Attributes) []string {
	var args []string
	args = appendFlagArgs(args, current.InputFlags(), target.InputFlags(), attr.InputFlags())
	args = appendFlagArgs(args, current.OutputFlags(), target.OutputFlags(), attr.OutputFlags())
	args = appendFlagArgs(args, current.ControlFlags(), target.ControlFlags(), attr.ControlFlags())
	args = appendFlagArgs(args, current.LocalFlags(), target.LocalFlags(), attr.LocalFlags())

	for _, c := range attr.ControlChars() {
		v := target.ControlChar(c)
		if v < 0 || v == current.ControlChar(c) {
			continue
		}
		args = append(args, sttyName(c), formatControlChar(c, v))
	}
	return args
}

func appendFlagArgs[F attr.Flag](args []string, current, target attr.FlagSet[F], all []F) []string {
	for _, f := range all {
		on := target.Has(f)
		if on == current.Has(f) {
			continue
		}
		name := f.String()
		if on {
			args = append(args, name)
			continue
		}
		// character size is a field, stty only accepts setting it
		if isCharSize(name) {
			continue
		}
		args = append(args, "-"+name)
	}
	return args
}

func isCharSize(name string) bool {
	return len(name) == 3 && strings.HasPrefix(name, "cs")
}

var sizePatterns = map[string][]*regexp.Regexp{
	"rows":    sizeFieldPatterns("rows"),
	"columns": sizeFieldPatterns("columns"),
}

// Linux prints "rows 24", macOS "24 rows", some systems "rows = 24"
func sizeFieldPatterns(name string) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`\b([0-9]+)\s+` + name + `\b`),
		regexp.MustCompile(`\b` + name + `\s+([0-9]+)\b`),
		regexp.MustCompile(`\b` + name + `\s*=\s*([0-9]+)\b`),
	}
}

func parseSizeField(out, name string) (int, error) {
	for _, re := range sizePatterns[name] {
		if m := re.FindStringSubmatch(out); m != nil {
			return strconv.Atoi(m[1])
		}
	}
	return 0, fmt.Errorf("stty: %s not found", name)
}

// parseSize reads rows and columns from `stty -a` output
func parseSize(out string) (terminal.Size, error) {
	rows, err := parseSizeField(out, "rows")
	if err != nil {
		return terminal.Size{}, err
	}
	cols, err := parseSizeField(out, "columns")
	if err != nil {
		return terminal.Size{}, err
	}
	return terminal.NewSize(cols, rows), nil
}
