package rope

import (
	"fmt"
	"strings"
)

// Construction selects how a rope's initial tree is built.
type Construction int

const (
	// ConstructBalanced links all vertices into a balanced tree in O(n).
	ConstructBalanced Construction = iota

	// ConstructMerge merges one singleton per byte onto the accumulated
	// tree, O(n log n) amortized.
	ConstructMerge
)

// String returns the construction name used in configuration.
func (c Construction) String() string {
	switch c {
	case ConstructBalanced:
		return "balanced"
	case ConstructMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// ParseConstruction parses a construction name.
func ParseConstruction(s string) (Construction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "balanced":
		return ConstructBalanced, nil
	case "merge":
		return ConstructMerge, nil
	default:
		return ConstructBalanced, fmt.Errorf("%w: %q", ErrUnknownConstruction, s)
	}
}

// Option configures a Rope during creation.
type Option func(*Rope)

// WithConstruction sets the construction strategy.
func WithConstruction(c Construction) Option {
	return func(r *Rope) {
		r.construction = c
	}
}

// WithValidation makes every Process validate the tree afterwards.
// Intended for tests and debugging; it costs O(n) per call.
func WithValidation(on bool) Option {
	return func(r *Rope) {
		r.validate = on
	}
}
