package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/dshills/ropecut/internal/config/loader"
	"github.com/dshills/ropecut/internal/engine"
	"github.com/dshills/ropecut/internal/engine/rope"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ROPECUT_"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the effective settings for a run.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Rope    RopeConfig    `toml:"rope"`
	History HistoryConfig `toml:"history"`
	Output  OutputConfig  `toml:"output"`
	Watch   WatchConfig   `toml:"watch"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// RopeConfig configures rope construction.
type RopeConfig struct {
	Construction string `toml:"construction"`
	Validate     bool   `toml:"validate"`
}

// HistoryConfig configures undo history.
type HistoryConfig struct {
	MaxEntries int `toml:"maxEntries"`
}

// OutputConfig configures result output.
type OutputConfig struct {
	Format string `toml:"format"`
	Digest bool   `toml:"digest"`
}

// WatchConfig configures the script watcher.
type WatchConfig struct {
	Debounce time.Duration `toml:"debounce"`
}

// Option configures Load.
type Option func(*options)

type options struct {
	envPrefix string
	overrides map[string]any
	required  bool
}

// WithEnvPrefix changes the environment variable prefix.
// An empty prefix disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithOverrides adds a top layer, typically built from command-line flags.
// Keys are dot-separated setting paths.
func WithOverrides(overrides map[string]any) Option {
	return func(o *options) {
		o.overrides = overrides
	}
}

// WithRequiredFile makes a missing config file an error.
func WithRequiredFile(required bool) Option {
	return func(o *options) {
		o.required = required
	}
}

// Default returns the built-in configuration.
func Default() Config {
	c, _ := decode(defaultConfig())
	return c
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"log": map[string]any{
			"level": "info",
		},
		"rope": map[string]any{
			"construction": rope.ConstructBalanced.String(),
			"validate":     false,
		},
		"history": map[string]any{
			"maxEntries": engine.DefaultMaxUndoEntries,
		},
		"output": map[string]any{
			"format": FormatText,
			"digest": false,
		},
		"watch": map[string]any{
			"debounce": "100ms",
		},
	}
}

// Load builds the effective configuration. path may be empty, in which case
// only defaults, environment and overrides apply.
func Load(fs afero.Fs, path string, opts ...Option) (Config, error) {
	o := options{envPrefix: EnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	merged := defaultConfig()

	if path != "" {
		data, err := loader.NewTOMLLoaderWithFS(fs, path).Load()
		if err != nil {
			return Config{}, err
		}
		if data == nil && o.required {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		merged = loader.DeepMerge(merged, data)
	}

	if o.envPrefix != "" {
		data, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	for key, val := range o.overrides {
		loader.SetPath(merged, key, val)
	}

	c, err := decode(merged)
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// decode converts a merged settings map into a Config.
func decode(m map[string]any) (Config, error) {
	var c Config
	fields := []struct {
		path string
		set  func(path string, v any) error
	}{
		{"log.level", stringInto(&c.Log.Level)},
		{"rope.construction", stringInto(&c.Rope.Construction)},
		{"rope.validate", boolInto(&c.Rope.Validate)},
		{"history.maxEntries", intInto(&c.History.MaxEntries)},
		{"output.format", stringInto(&c.Output.Format)},
		{"output.digest", boolInto(&c.Output.Digest)},
		{"watch.debounce", durationInto(&c.Watch.Debounce)},
	}

	var errs []error
	for _, f := range fields {
		if v, ok := loader.GetPath(m, f.path); ok {
			if err := f.set(f.path, v); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return c, errors.Join(errs...)
}

// Validate checks every setting and reports the first bad one.
func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}
	if _, err := rope.ParseConstruction(c.Rope.Construction); err != nil {
		return &ValidationError{Path: "rope.construction", Message: "must be balanced or merge", Value: c.Rope.Construction}
	}
	if c.History.MaxEntries <= 0 {
		return &ValidationError{Path: "history.maxEntries", Message: "must be positive", Value: c.History.MaxEntries}
	}
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return &ValidationError{Path: "output.format", Message: "must be text or json", Value: c.Output.Format}
	}
	if c.Watch.Debounce < 0 {
		return &ValidationError{Path: "watch.debounce", Message: "must not be negative", Value: c.Watch.Debounce}
	}
	return nil
}

// Construction returns the configured tree construction.
func (c Config) Construction() rope.Construction {
	con, _ := rope.ParseConstruction(c.Rope.Construction)
	return con
}

// EngineOptions returns the engine options the configuration implies.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithConstruction(c.Construction()),
		engine.WithValidation(c.Rope.Validate),
		engine.WithMaxUndoEntries(c.History.MaxEntries),
	}
}

// MarshalTOML renders the configuration as a TOML document.
func (c Config) MarshalTOML() ([]byte, error) {
	type plainWatch struct {
		Debounce string `toml:"debounce"`
	}
	type plain struct {
		Log     LogConfig     `toml:"log"`
		Rope    RopeConfig    `toml:"rope"`
		History HistoryConfig `toml:"history"`
		Output  OutputConfig  `toml:"output"`
		Watch   plainWatch    `toml:"watch"`
	}
	return toml.Marshal(plain{
		Log:     c.Log,
		Rope:    c.Rope,
		History: c.History,
		Output:  c.Output,
		Watch:   plainWatch{Debounce: c.Watch.Debounce.String()},
	})
}

func stringInto(dst *string) func(string, any) error {
	return func(path string, v any) error {
		s, ok := v.(string)
		if !ok {
			return &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
		}
		*dst = s
		return nil
	}
}

func boolInto(dst *bool) func(string, any) error {
	return func(path string, v any) error {
		switch val := v.(type) {
		case bool:
			*dst = val
		case int64:
			*dst = val != 0
		case int:
			*dst = val != 0
		default:
			return &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
		}
		return nil
	}
}

func intInto(dst *int) func(string, any) error {
	return func(path string, v any) error {
		switch val := v.(type) {
		case int:
			*dst = val
		case int64:
			*dst = int(val)
		case float64:
			*dst = int(val)
		default:
			return &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
		}
		return nil
	}
}

// durationInto accepts a duration string, a time.Duration, or an integer
// number of milliseconds.
func durationInto(dst *time.Duration) func(string, any) error {
	return func(path string, v any) error {
		switch val := v.(type) {
		case time.Duration:
			*dst = val
		case string:
			d, err := time.ParseDuration(val)
			if err != nil {
				return &ValidationError{Path: path, Message: "invalid duration", Value: val}
			}
			*dst = d
		case int64:
			*dst = time.Duration(val) * time.Millisecond
		case int:
			*dst = time.Duration(val) * time.Millisecond
		default:
			return &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
		}
		return nil
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
