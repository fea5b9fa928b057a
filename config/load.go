package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a config file syntax
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/ttykit/config.{toml,yaml,yml}
//  2. ~/.config/ttykit/config.{toml,yaml,yml}
//
// If no file exists, returns DefaultConfig() with environment overrides.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. The syntax
// follows the extension; anything but .yaml or .yml is read as TOML.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	cfg, err := LoadFromReader(f, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader reads configuration in the given format from an io.Reader
func LoadFromReader(r io.Reader, format Format) (*Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, err
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyEnvOverrides checks TTYKIT_* variables and overrides config values.
// Malformed values are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TTYKIT_TYPE"); v != "" {
		cfg.Type = v
	}
	if v := os.Getenv("TTYKIT_ENCODING"); v != "" {
		cfg.Encoding = v
	}
	if v := os.Getenv("TTYKIT_CODEPAGE"); v != "" {
		if cp, err := strconv.Atoi(v); err == nil {
			cfg.Codepage = cp
		}
	}

	envBool("TTYKIT_PROVIDER_PTY", &cfg.Providers.Pty)
	envBool("TTYKIT_PROVIDER_TCELL", &cfg.Providers.Tcell)
	envBool("TTYKIT_PROVIDER_EXEC", &cfg.Providers.Exec)
	envBool("TTYKIT_NATIVE_SIGNALS", &cfg.NativeSignals)

	envTristate("TTYKIT_DUMB", &cfg.Dumb)
	envTristate("TTYKIT_DUMB_COLOR", &cfg.DumbColor)

	if v := os.Getenv("TTYKIT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TTYKIT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseBool(v); err == nil {
			*dst = val
		}
	}
}

func envTristate(key string, dst *Tristate) {
	if v := os.Getenv(key); v != "" {
		if val, err := ParseTristate(v); err == nil {
			*dst = val
		}
	}
}

// configSearchPaths returns the ordered list of config file paths to try
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	defaultXDG := filepath.Join(home, ".config")

	dirs := []string{xdgConfigHome(defaultXDG)}
	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default
	if dirs[0] != defaultXDG {
		dirs = append(dirs, defaultXDG)
	}

	var paths []string
	for _, dir := range dirs {
		for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
			paths = append(paths, filepath.Join(dir, "ttykit", name))
		}
	}
	return paths
}

func xdgConfigHome(fallback string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return fallback
}
