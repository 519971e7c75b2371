package script

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/dshills/ropecut/internal/engine"
)

// Op is one move: cut [I, J] and reinsert it after position K of the rest.
type Op struct {
	I int `toml:"i" yaml:"i" json:"i"`
	J int `toml:"j" yaml:"j" json:"j"`
	K int `toml:"k" yaml:"k" json:"k"`
}

// Script is an initial text and the moves to apply to it, in order.
type Script struct {
	Text string `toml:"text" yaml:"text" json:"text"`
	Ops  []Op   `toml:"ops" yaml:"ops" json:"ops"`
}

// Moves returns the operations as engine moves.
func (s *Script) Moves() []engine.Move {
	moves := make([]engine.Move, len(s.Ops))
	for idx, op := range s.Ops {
		moves[idx] = engine.Move{I: op.I, J: op.J, K: op.K}
	}
	return moves
}

// Format identifies a script encoding.
type Format string

// Supported formats.
const (
	FormatJudge Format = "judge"
	FormatTOML  Format = "toml"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatLua   Format = "lua"
)

// ParseFormat resolves a format name. Extensions with or without the
// leading dot are accepted too.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "judge", "txt", "text":
		return FormatJudge, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "lua":
		return FormatLua, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks a format by file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Decode reads a script in the given format. source names the input in
// errors.
func Decode(format Format, source string, r io.Reader) (*Script, error) {
	return DecodeContext(context.Background(), format, source, r)
}

// DecodeContext is Decode with a context that bounds Lua execution.
func DecodeContext(ctx context.Context, format Format, source string, r io.Reader) (*Script, error) {
	switch format {
	case FormatJudge:
		return decodeJudge(source, r)
	case FormatLua:
		return decodeLua(ctx, source, r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	switch format {
	case FormatTOML:
		return decodeTOML(source, data)
	case FormatYAML:
		return decodeYAML(source, data)
	case FormatJSON:
		return decodeJSON(source, data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Load reads the script at path, choosing the decoder by extension.
func Load(ctx context.Context, fs afero.Fs, path string) (*Script, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	return DecodeContext(ctx, format, path, f)
}
