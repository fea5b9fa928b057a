// Package config loads ttykit settings from a TOML or YAML file and the
// TTYKIT_* environment. Later layers win: defaults, file, environment.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the negotiation defaults a builder starts from
type Config struct {
	// Type overrides TERM
	Type string `toml:"type" yaml:"type"`

	// Encoding is a charset name; Codepage a legacy Windows code page
	Encoding string `toml:"encoding" yaml:"encoding"`
	Codepage int    `toml:"codepage" yaml:"codepage"`

	Providers ProvidersConfig `toml:"providers" yaml:"providers"`

	Dumb      Tristate `toml:"dumb" yaml:"dumb"`
	DumbColor Tristate `toml:"dumb_color" yaml:"dumb_color"`

	NativeSignals bool `toml:"native_signals" yaml:"native_signals"`

	Log LogConfig `toml:"log" yaml:"log"`
}

// ProvidersConfig enables or disables each provider by name
type ProvidersConfig struct {
	Pty   bool `toml:"pty" yaml:"pty"`
	Tcell bool `toml:"tcell" yaml:"tcell"`
	Exec  bool `toml:"exec" yaml:"exec"`
}

// LogConfig selects the slog level and handler
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // auto, text, json
}

// DefaultConfig enables every provider and leaves dumb selection automatic
func DefaultConfig() *Config {
	return &Config{
		Providers: ProvidersConfig{
			Pty:   true,
			Tcell: true,
			Exec:  true,
		},
		NativeSignals: true,
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
	}
}

// Tristate is a setting that may be left to detection
type Tristate int8

const (
	Auto Tristate = iota
	True
	False
)

// Of converts a bool to a set Tristate
func Of(v bool) Tristate {
	if v {
		return True
	}
	return False
}

// IsSet reports an explicit value
func (t Tristate) IsSet() bool { return t != Auto }

// Or returns the explicit value, else def
func (t Tristate) Or(def bool) bool {
	switch t {
	case True:
		return true
	case False:
		return false
	default:
		return def
	}
}

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "auto"
	}
}

// ParseTristate accepts auto, an empty string, or anything strconv.ParseBool
// does, plus on/off and yes/no
func ParseTristate(s string) (Tristate, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "1", "t", "true", "on", "yes", "y":
		return True, nil
	case "0", "f", "false", "off", "no", "n":
		return False, nil
	}
	return Auto, fmt.Errorf("config: invalid tristate %q", s)
}

func (t Tristate) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tristate) UnmarshalText(text []byte) error {
	v, err := ParseTristate(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// UnmarshalYAML accepts YAML booleans as well as strings
func (t *Tristate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: line %d: tristate must be a scalar", value.Line)
	}
	return t.UnmarshalText([]byte(value.Value))
}

// BurntSushi/toml hands bare booleans to UnmarshalTOML rather than UnmarshalText
func (t *Tristate) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case bool:
		*t = Of(v)
		return nil
	case string:
		return t.UnmarshalText([]byte(v))
	}
	return fmt.Errorf("config: invalid tristate %v", v)
}
