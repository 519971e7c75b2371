package script

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

func decodeTOML(source string, data []byte) (*Script, error) {
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		perr := &ParseError{Source: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, _ = derr.Position()
		}
		return nil, perr
	}
	return &s, nil
}

func decodeYAML(source string, data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &ParseError{Source: source, Message: err.Error(), Err: err}
	}
	return &s, nil
}

// decodeJSON accepts ops as [i, j, k] arrays or {"i", "j", "k"} objects,
// mixed freely.
func decodeJSON(source string, data []byte) (*Script, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Source: source, Message: "invalid JSON"}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, &ParseError{Source: source, Message: "expected a JSON object"}
	}

	var s Script
	text := doc.Get("text")
	switch text.Type {
	case gjson.String:
		s.Text = text.Str
	case gjson.Null:
	default:
		return nil, &ParseError{Source: source, Message: "text must be a string"}
	}

	ops := doc.Get("ops")
	if ops.Exists() && !ops.IsArray() {
		return nil, &ParseError{Source: source, Message: "ops must be an array"}
	}

	var err error
	ops.ForEach(func(_, value gjson.Result) bool {
		var op Op
		op, err = jsonOp(value)
		if err != nil {
			err = &ParseError{Source: source, Message: fmt.Sprintf("ops[%d]: %v", len(s.Ops), err), Err: err}
			return false
		}
		s.Ops = append(s.Ops, op)
		return true
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func jsonOp(v gjson.Result) (Op, error) {
	var parts [3]gjson.Result
	switch {
	case v.IsArray():
		arr := v.Array()
		if len(arr) != 3 {
			return Op{}, fmt.Errorf("expected 3 integers, got %d", len(arr))
		}
		copy(parts[:], arr)
	case v.IsObject():
		parts = [3]gjson.Result{v.Get("i"), v.Get("j"), v.Get("k")}
	default:
		return Op{}, errors.New("expected array or object")
	}

	var out [3]int
	for idx, p := range parts {
		if p.Type != gjson.Number || p.Num != float64(int64(p.Num)) {
			return Op{}, fmt.Errorf("%c must be an integer", "ijk"[idx])
		}
		out[idx] = int(p.Int())
	}
	return Op{I: out[0], J: out[1], K: out[2]}, nil
}
