package script

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/dshills/ropecut/internal/engine"
)

var helloOps = []Op{{I: 1, J: 1, K: 2}, {I: 6, J: 6, K: 7}}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"judge", FormatJudge, "hlelowrold\n2\n1 1 2\n6 6 7\n"},
		{"judge crlf", FormatJudge, "hlelowrold\r\n2\r\n1 1 2\r\n6 6 7\r\n"},
		{"judge blank lines", FormatJudge, "hlelowrold\n2\n\n1 1 2\n  6   6 7  \n"},
		{"toml", FormatTOML, `
text = "hlelowrold"

[[ops]]
i = 1
j = 1
k = 2

[[ops]]
i = 6
j = 6
k = 7
`},
		{"yaml", FormatYAML, `
text: hlelowrold
ops:
  - {i: 1, j: 1, k: 2}
  - i: 6
    j: 6
    k: 7
`},
		{"json arrays", FormatJSON, `{"text": "hlelowrold", "ops": [[1, 1, 2], [6, 6, 7]]}`},
		{"json mixed", FormatJSON, `{"text": "hlelowrold", "ops": [[1, 1, 2], {"i": 6, "j": 6, "k": 7}]}`},
		{"lua", FormatLua, `
text = "hlelowrold"
move(1, 1, 2)
move(6, 6, 7)
`},
		{"lua loop", FormatLua, `
text = "hlelowrold"
local ops = {{1, 1, 2}, {6, 6, 7}}
for _, op in ipairs(ops) do
  move(op[1], op[2], op[3])
end
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(tt.format, tt.name, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if s.Text != "hlelowrold" {
				t.Errorf("Text = %q", s.Text)
			}
			if !reflect.DeepEqual(s.Ops, helloOps) {
				t.Errorf("Ops = %v, want %v", s.Ops, helloOps)
			}

			e := engine.New(engine.WithContent(s.Text))
			if err := e.Apply(tt.name, s.Moves()); err != nil {
				t.Fatal(err)
			}
			if e.Text() != "helloworld" {
				t.Errorf("applied script gives %q", e.Text())
			}
		})
	}
}

func TestDecodeJudgeEdgeCases(t *testing.T) {
	s, err := Decode(FormatJudge, "t", strings.NewReader("abc\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Text != "abc" || len(s.Ops) != 0 {
		t.Errorf("text-only script = %+v", s)
	}

	s, err = Decode(FormatJudge, "t", strings.NewReader("a\n0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Text != "a" || len(s.Ops) != 0 {
		t.Errorf("zero-op script = %+v", s)
	}

	long := strings.Repeat("x", 200000)
	s, err = Decode(FormatJudge, "t", strings.NewReader(long+"\n1\n0 0 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Text) != len(long) {
		t.Errorf("long text truncated to %d", len(s.Text))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		line   int
	}{
		{"judge empty", FormatJudge, "", 0},
		{"judge bad count", FormatJudge, "abc\nmany\n", 2},
		{"judge negative count", FormatJudge, "abc\n-1\n", 2},
		{"judge short", FormatJudge, "abc\n2\n0 0 1\n", 3},
		{"judge two fields", FormatJudge, "abc\n1\n0 1\n", 3},
		{"judge not a number", FormatJudge, "abc\n1\n0 x 1\n", 3},
		{"toml", FormatTOML, "text = \n", 0},
		{"yaml", FormatYAML, "text: [unclosed\n", 0},
		{"json invalid", FormatJSON, `{"text": `, 0},
		{"json not object", FormatJSON, `[1, 2, 3]`, 0},
		{"json text type", FormatJSON, `{"text": 5}`, 0},
		{"json ops type", FormatJSON, `{"text": "a", "ops": {}}`, 0},
		{"json short op", FormatJSON, `{"text": "a", "ops": [[0, 0]]}`, 0},
		{"json float op", FormatJSON, `{"text": "a", "ops": [[0, 0.5, 0]]}`, 0},
		{"json missing key", FormatJSON, `{"text": "a", "ops": [{"i": 0, "j": 0}]}`, 0},
		{"lua syntax", FormatLua, `text = `, 0},
		{"lua runtime", FormatLua, `error("boom")`, 0},
		{"lua text type", FormatLua, `text = 5`, 0},
		{"lua bad move", FormatLua, `move("a", 1, 2)`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.format, "input", strings.NewReader(tt.input))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v (%T), want *ParseError", err, err)
			}
			if perr.Source != "input" {
				t.Errorf("Source = %q", perr.Source)
			}
			if tt.line > 0 && perr.Line != tt.line {
				t.Errorf("Line = %d, want %d", perr.Line, tt.line)
			}
			if perr.Error() == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestLuaSandbox(t *testing.T) {
	forbidden := []string{
		`io.open("/etc/passwd")`,
		`os.exit(1)`,
		`dofile("/tmp/x.lua")`,
		`load("return 1")()`,
		`require("os")`,
	}
	for _, code := range forbidden {
		if _, err := Decode(FormatLua, "sandbox", strings.NewReader(code)); err == nil {
			t.Errorf("%s: expected sandbox error", code)
		}
	}

	s, err := Decode(FormatLua, "len", strings.NewReader(`
text = string.rep("ab", 5)
move(0, 1, len() - 2)
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Ops) != 1 || s.Ops[0].K != 8 {
		t.Errorf("Ops = %v", s.Ops)
	}
}

func TestLuaContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := DecodeContext(ctx, FormatLua, "loop", strings.NewReader(`while true do end`))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want DeadlineExceeded", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatJudge},
		{".txt", FormatJudge},
		{"TOML", FormatTOML},
		{".yml", FormatYAML},
		{"yaml", FormatYAML},
		{".json", FormatJSON},
		{"lua", FormatLua},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat(".xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(.xml) error = %v", err)
	}
	if _, err := Decode(Format("xml"), "x", strings.NewReader("")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode(xml) error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/scripts/a.json", []byte(`{"text": "abcdef", "ops": [[0, 1, 1], [4, 5, 0]]}`), 0o644)
	_ = afero.WriteFile(fs, "/scripts/a", []byte("abcdef\n2\n0 1 1\n4 5 0\n"), 0o644)

	for _, path := range []string{"/scripts/a.json", "/scripts/a"} {
		s, err := Load(context.Background(), fs, path)
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		e := engine.New(engine.WithContent(s.Text))
		if err := e.Apply(path, s.Moves()); err != nil {
			t.Fatal(err)
		}
		if e.Text() != "efcabd" {
			t.Errorf("%s: got %q", path, e.Text())
		}
	}

	if _, err := Load(context.Background(), fs, "/scripts/missing.toml"); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(context.Background(), fs, "/scripts/a.xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("unknown extension error = %v", err)
	}
}

func TestEncodeJudge(t *testing.T) {
	s := &Script{Text: "hlelowrold", Ops: helloOps}
	var buf bytes.Buffer
	if err := EncodeJudge(&buf, s); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hlelowrold\n2\n1 1 2\n6 6 7\n" {
		t.Errorf("EncodeJudge = %q", buf.String())
	}

	back, err := Decode(FormatJudge, "buf", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, s) {
		t.Errorf("decoded %+v, want %+v", back, s)
	}
}
