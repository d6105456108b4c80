// Package config loads the rsc command-line configuration.
//
// Values are layered, lowest priority first: built-in defaults, the YAML
// config file (rsc.yaml, or --config), RSC_* environment variables, and
// finally flags that were set explicitly on the command line.
package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/prithivirajmurugan/rs-compiler/pkg/format"
	"github.com/prithivirajmurugan/rs-compiler/pkg/resolve"
	"github.com/prithivirajmurugan/rs-compiler/pkg/types"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose     bool              `koanf:"verbose" yaml:"verbose"`
	Output      string            `koanf:"output" yaml:"output"`
	IndentWidth int               `koanf:"indent_width" yaml:"indent_width"`
	Palette     map[string]string `koanf:"palette" yaml:"palette,omitempty"`
	// Globals types free variables for the types command and the REPL,
	// e.g. {"n": "int"}.
	Globals map[string]string `koanf:"globals" yaml:"globals,omitempty"`
	Serve   ServeConfig       `koanf:"serve" yaml:"serve"`
	Watch   WatchConfig       `koanf:"watch" yaml:"watch"`
	REPL    REPLConfig        `koanf:"repl" yaml:"repl"`
	Cache   CacheConfig       `koanf:"cache" yaml:"cache"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-" yaml:"-"`
}

// ServeConfig configures the playground server.
type ServeConfig struct {
	Addr            string        `koanf:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes" yaml:"max_body_bytes"`
}

// WatchConfig configures fmt --watch.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce" yaml:"debounce"`
}

// REPLConfig configures the interactive shell.
type REPLConfig struct {
	HistoryFile string `koanf:"history_file" yaml:"history_file"`
}

// CacheConfig configures the format cache used by fmt --check and --write.
type CacheConfig struct {
	// Path of the SQLite database; empty disables the cache.
	Path string `koanf:"path" yaml:"path"`
}

// Default configuration values.
const (
	DefaultOutput          = "auto" // ANSI on a terminal, plain otherwise
	DefaultIndentWidth     = 2
	DefaultAddr            = "127.0.0.1:8420"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
	DefaultDebounce        = 100 * time.Millisecond
)

// Outputs lists the accepted values of the output setting.
var Outputs = []string{"auto", "plain", "ansi", "html"}

// Validate checks the configuration for values no command can use.
func (c *Config) Validate() error {
	valid := false
	for _, o := range Outputs {
		if c.Output == o {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output %q (want one of %v)", c.Output, Outputs)
	}
	if c.IndentWidth < 0 {
		return fmt.Errorf("indent_width must not be negative, got %d", c.IndentWidth)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if _, err := c.FormatPalette(); err != nil {
		return err
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	return nil
}

// FormatPalette builds the ANSI palette from the configured overrides.
func (c *Config) FormatPalette() (format.Palette, error) {
	return format.ParsePalette(c.Palette)
}

// Bindings converts Globals into a resolver environment.
func (c *Config) Bindings() (resolve.Bindings, error) {
	names := make([]string, 0, len(c.Globals))
	for name := range c.Globals {
		names = append(names, name)
	}
	sort.Strings(names)

	env := make(resolve.Bindings, len(c.Globals))
	for _, name := range names {
		typ, ok := types.ParseName(c.Globals[name])
		if !ok {
			return nil, fmt.Errorf("globals: unknown type %q for %s", c.Globals[name], name)
		}
		env[name] = typ
	}
	return env, nil
}
