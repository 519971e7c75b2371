package rope

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange indicates a position outside the text.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownConstruction indicates an unrecognized construction name.
	ErrUnknownConstruction = errors.New("unknown construction")
)

// IndexError describes which argument of an operation was out of range.
// It matches ErrIndexOutOfRange with errors.Is.
type IndexError struct {
	Op    string
	Name  string
	Index int
	Min   int
	Max   int
}

func (e *IndexError) Error() string {
	if e.Max < e.Min {
		return fmt.Sprintf("rope: %s: %s=%d out of range (text is empty)", e.Op, e.Name, e.Index)
	}
	return fmt.Sprintf("rope: %s: %s=%d out of range [%d, %d]", e.Op, e.Name, e.Index, e.Min, e.Max)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
