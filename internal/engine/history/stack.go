package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/ropecut/internal/engine/rope"
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// entry is a recorded command.
type entry struct {
	command Command
	at      time.Time
}

func (e entry) info() OperationInfo {
	return OperationInfo{Description: e.command.Description(), Timestamp: e.at}
}

// History manages undo/redo state for a rope.
type History struct {
	mu sync.Mutex

	undo []entry
	redo []entry

	// Grouping state
	grouping bool
	group    *CompoundCommand

	maxEntries int
}

// NewHistory creates a history that keeps at most maxEntries undo entries.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Execute runs cmd against r and records it.
func (h *History) Execute(cmd Command, r *rope.Rope) error {
	if err := cmd.Execute(r); err != nil {
		return err
	}
	h.Push(cmd)
	return nil
}

// Push records an already executed command and clears the redo stack.
// While grouping, the command joins the open group instead.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		h.group.Add(cmd)
		return
	}
	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.undo = append(h.undo, entry{command: cmd, at: time.Now()})
	h.redo = nil
	h.trimLocked()
}

// trimLocked drops the oldest entries beyond maxEntries.
func (h *History) trimLocked() {
	if excess := len(h.undo) - h.maxEntries; excess > 0 {
		h.undo = append(h.undo[:0:0], h.undo[excess:]...)
	}
}

// Undo reverts the most recent command. The entry stays on the undo stack
// if reverting fails.
func (h *History) Undo(r *rope.Rope) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	e := h.undo[len(h.undo)-1]
	if err := e.command.Undo(r); err != nil {
		return err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, e)
	return nil
}

// Redo re-applies the most recently undone command.
func (h *History) Redo(r *rope.Rope) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	e := h.redo[len(h.redo)-1]
	if err := e.command.Execute(r); err != nil {
		return err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, e)
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.UndoCount() > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.RedoCount() > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo)
}

// BeginGroup starts a command group. Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.group = NewCompoundCommand(name)
}

// EndGroup closes the open group and records it as one entry.
// Empty groups are discarded.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false
	if !h.group.IsEmpty() {
		h.pushLocked(h.group)
	}
	h.group = nil
}

// CancelGroup drops the open group without recording it.
// Commands already executed still affect the rope.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.group = nil
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undo = nil
	h.redo = nil
	h.grouping = false
	h.group = nil
}

// UndoInfo describes the undo stack, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]OperationInfo, len(h.undo))
	for i, e := range h.undo {
		out[i] = e.info()
	}
	return out
}

// PeekUndo describes the next entry Undo would revert.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return OperationInfo{}, false
	}
	return h.undo[len(h.undo)-1].info(), true
}

// SetMaxEntries changes the undo limit, dropping the oldest entries if needed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the undo limit.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
