// Package config loads the chordkb runtime configuration.
//
// Configuration is read from a TOML file, overlaid on [Default], then
// overridden by CHORDKB_* environment variables:
//
//	layout = "~/.config/chordkb/keys.chords"
//	scan_interval = "2ms"
//	max_depth = 8
//	watch = true
//
//	[log]
//	level = "info"
//	format = "text"
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/pkg"
)

// Environment variables read by [Config.ApplyEnvOverrides].
const (
	EnvLayout       = "CHORDKB_LAYOUT"
	EnvLogLevel     = "CHORDKB_LOG_LEVEL"
	EnvLogFormat    = "CHORDKB_LOG_FORMAT"
	EnvScanInterval = "CHORDKB_SCAN_INTERVAL"
	EnvMaxDepth     = "CHORDKB_MAX_DEPTH"
)

// Config is the runtime configuration.
type Config struct {
	// Layout is the path of the layout file. Empty selects the built-in
	// sample layout.
	Layout string `toml:"layout"`

	// ScanInterval is the switch sampling period.
	ScanInterval time.Duration `toml:"scan_interval"`

	// MaxDepth bounds chained layer delegation.
	MaxDepth int `toml:"max_depth"`

	// Watch reloads the layout file when it changes.
	Watch bool `toml:"watch"`

	Log LogConfig `toml:"log"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ScanInterval: 2 * time.Millisecond,
		MaxDepth:     chord.DefaultMaxDepth,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Dir returns the chordkb configuration directory.
func Dir() string {
	if dir := os.Getenv("CHORDKB_CONFIG_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "chordkb")
}

// Path returns the default configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the configuration at path, or at [Path] if path is empty.
// A missing file yields the defaults. Environment overrides are applied
// and the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
		cfg.Layout = resolvePath(filepath.Dir(path), cfg.Layout)
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies CHORDKB_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv(EnvLayout); v != "" {
		c.Layout = expandHome(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvScanInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvScanInterval, err)
		}
		c.ScanInterval = d
	}
	if v := os.Getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxDepth, err)
		}
		c.MaxDepth = n
	}
	return nil
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Unwrap lets callers match [pkg.ErrInvalidParameter].
func (e *ValidationError) Unwrap() error {
	return pkg.ErrInvalidParameter
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.ScanInterval <= 0 {
		fail("scan_interval", "must be positive, got %v", c.ScanInterval)
	} else if c.ScanInterval > time.Second {
		fail("scan_interval", "must not exceed 1s, got %v", c.ScanInterval)
	}
	if c.MaxDepth < 1 {
		fail("max_depth", "must be at least 1, got %d", c.MaxDepth)
	}
	if _, err := pkg.ParseLogLevel(c.Log.Level); err != nil {
		fail("log.level", "invalid log level: %s (valid: debug, info, warn, error)", c.Log.Level)
	}
	if _, err := parseLogFormat(c.Log.Format); err != nil {
		fail("log.format", "invalid log format: %s (valid: text, json)", c.Log.Format)
	}
	if c.Watch && c.Layout == "" {
		fail("watch", "requires a layout file")
	}
	return errors.Join(errs...)
}

// ApplyLogging configures the [pkg] logger from c.Log.
func (c *Config) ApplyLogging() error {
	level, err := pkg.ParseLogLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	format, err := parseLogFormat(c.Log.Format)
	if err != nil {
		return err
	}
	pkg.SetLogLevel(level)
	pkg.SetLogFormat(format)
	return nil
}

// LogLevel returns the parsed log level, or warn if it is invalid.
func (c *Config) LogLevel() slog.Level {
	level, err := pkg.ParseLogLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

// Save writes c to path as TOML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

func parseLogFormat(s string) (pkg.LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return pkg.LogFormatText, nil
	case "json":
		return pkg.LogFormatJSON, nil
	default:
		return pkg.LogFormatText, fmt.Errorf("log format %q: %w", s, pkg.ErrInvalidParameter)
	}
}

// resolvePath makes a layout path relative to the config file directory.
func resolvePath(dir, path string) string {
	if path == "" {
		return ""
	}
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
