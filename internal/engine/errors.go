package engine

import (
	"errors"

	"github.com/dshills/ropecut/internal/engine/history"
	"github.com/dshills/ropecut/internal/engine/rope"
)

// Errors returned by engine operations.
var (
	// ErrIndexOutOfRange indicates a move or read position outside the text.
	ErrIndexOutOfRange = rope.ErrIndexOutOfRange

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
