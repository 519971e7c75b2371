package script

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned for a format name or extension with no decoder.
var ErrUnknownFormat = errors.New("unknown script format")

// ParseError reports a script that could not be decoded.
type ParseError struct {
	Source  string // file path or "<stdin>"
	Line    int    // 1-based, 0 if unknown
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
