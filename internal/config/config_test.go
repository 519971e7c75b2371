package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/dshills/ropecut/internal/engine"
	"github.com/dshills/ropecut/internal/engine/rope"
)

// noEnv keeps tests independent of the caller's environment.
var noEnv = WithEnvPrefix("")

func TestDefault(t *testing.T) {
	c := Default()
	if c.Log.Level != "info" {
		t.Errorf("Log.Level = %q", c.Log.Level)
	}
	if c.Construction() != rope.ConstructBalanced {
		t.Errorf("Construction = %s", c.Construction())
	}
	if c.History.MaxEntries != engine.DefaultMaxUndoEntries {
		t.Errorf("History.MaxEntries = %d", c.History.MaxEntries)
	}
	if c.Output.Format != FormatText {
		t.Errorf("Output.Format = %q", c.Output.Format)
	}
	if c.Watch.Debounce != 100*time.Millisecond {
		t.Errorf("Watch.Debounce = %v", c.Watch.Debounce)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/ropecut.toml", []byte(`
[log]
level = "debug"

[rope]
construction = "merge"
validate = true

[history]
maxEntries = 10

[output]
format = "json"
digest = true

[watch]
debounce = "1s"
`), 0o644)

	c, err := Load(fs, "/ropecut.toml", noEnv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Config{
		Log:     LogConfig{Level: "debug"},
		Rope:    RopeConfig{Construction: "merge", Validate: true},
		History: HistoryConfig{MaxEntries: 10},
		Output:  OutputConfig{Format: FormatJSON, Digest: true},
		Watch:   WatchConfig{Debounce: time.Second},
	}
	if c != want {
		t.Errorf("Load = %+v, want %+v", c, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	c, err := Load(fs, "/absent.toml", noEnv)
	if err != nil {
		t.Fatalf("optional missing file: %v", err)
	}
	if c != Default() {
		t.Errorf("expected defaults, got %+v", c)
	}

	_, err = Load(fs, "/absent.toml", noEnv, WithRequiredFile(true))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("required missing file error = %v, want ErrFileNotFound", err)
	}
}

func TestLoad_Layering(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/c.toml", []byte("[log]\nlevel = \"warn\"\n[output]\nformat = \"json\"\n"), 0o644)

	t.Setenv("ROPECUT_LOG_LEVEL", "error")
	t.Setenv("ROPECUT_HISTORY_MAX_ENTRIES", "7")

	c, err := Load(fs, "/c.toml", WithOverrides(map[string]any{
		"output.format": FormatText,
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Log.Level != "error" {
		t.Errorf("env should override file: Log.Level = %q", c.Log.Level)
	}
	if c.History.MaxEntries != 7 {
		t.Errorf("History.MaxEntries = %d, want 7", c.History.MaxEntries)
	}
	if c.Output.Format != FormatText {
		t.Errorf("override should win: Output.Format = %q", c.Output.Format)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
		path    string
	}{
		{"bad level", "[log]\nlevel = \"loud\"", ErrValidationFailed, "log.level"},
		{"bad construction", "[rope]\nconstruction = \"avl\"", ErrValidationFailed, "rope.construction"},
		{"zero history", "[history]\nmaxEntries = 0", ErrValidationFailed, "history.maxEntries"},
		{"bad format", "[output]\nformat = \"xml\"", ErrValidationFailed, "output.format"},
		{"bad debounce", "[watch]\ndebounce = \"soon\"", ErrValidationFailed, "watch.debounce"},
		{"wrong type", "[rope]\nvalidate = \"maybe\"", ErrTypeMismatch, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			_ = afero.WriteFile(fs, "/c.toml", []byte(tt.content), 0o644)

			_, err := Load(fs, "/c.toml", noEnv)
			if !errors.Is(err, tt.target) {
				t.Fatalf("error = %v, want %v", err, tt.target)
			}
			if tt.path == "" {
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestLoad_DurationForms(t *testing.T) {
	tests := []struct {
		override any
		want     time.Duration
	}{
		{"250ms", 250 * time.Millisecond},
		{2 * time.Second, 2 * time.Second},
		{int64(40), 40 * time.Millisecond},
	}
	for _, tt := range tests {
		c, err := Load(afero.NewMemMapFs(), "", noEnv, WithOverrides(map[string]any{"watch.debounce": tt.override}))
		if err != nil {
			t.Fatalf("Load(%v): %v", tt.override, err)
		}
		if c.Watch.Debounce != tt.want {
			t.Errorf("Debounce for %v = %v, want %v", tt.override, c.Watch.Debounce, tt.want)
		}
	}
}

func TestEngineOptions(t *testing.T) {
	c := Default()
	c.Rope.Construction = "merge"
	c.History.MaxEntries = 1

	e := engine.New(append(c.EngineOptions(), engine.WithContent("abcdef"))...)
	if e.Construction() != rope.ConstructMerge {
		t.Errorf("Construction = %s", e.Construction())
	}
	_ = e.Move(0, 0, 5)
	_ = e.Move(0, 0, 5)
	if e.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", e.UndoCount())
	}
}

func TestMarshalTOML(t *testing.T) {
	c := Default()
	c.Output.Format = FormatJSON

	data, err := c.MarshalTOML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "debounce = '100ms'") && !strings.Contains(string(data), `debounce = "100ms"`) {
		t.Errorf("rendered TOML missing debounce:\n%s", data)
	}

	var round map[string]any
	if err := toml.Unmarshal(data, &round); err != nil {
		t.Fatalf("rendered TOML does not parse: %v", err)
	}

	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/c.toml", data, 0o644)
	back, err := Load(fs, "/c.toml", noEnv)
	if err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Errorf("reloaded %+v, want %+v", back, c)
	}
}
