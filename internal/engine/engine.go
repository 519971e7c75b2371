package engine

import (
	"io"
	"sync"

	"github.com/OneOfOne/xxhash"

	"github.com/dshills/ropecut/internal/engine/history"
	"github.com/dshills/ropecut/internal/engine/rope"
)

// Re-export commonly used types for convenience.
type (
	// Move is a recorded cut-and-reinsert.
	Move = history.Move

	// Command is an undoable edit command.
	Command = history.Command

	// Construction selects how the initial tree is built.
	Construction = rope.Construction
)

// Re-export constants.
const (
	ConstructBalanced = rope.ConstructBalanced
	ConstructMerge    = rope.ConstructMerge
)

// Engine is a thread-safe facade over a rope with undo/redo history.
//
// The rope and its splay tree are not safe for concurrent use, and even
// reads restructure the tree, so every operation that touches the rope
// takes the write lock. The read lock only guards configuration.
type Engine struct {
	mu sync.RWMutex

	// Core components
	rope    *rope.Rope
	history *history.History

	// Configuration
	construction   Construction
	validate       bool
	maxUndoEntries int
	readOnly       bool

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.rope = rope.New(e.initContent, e.ropeOptions()...)
	e.initContent = ""
	return e
}

// NewFromReader creates an Engine holding everything readable from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	var err error
	e.rope, err = rope.FromReader(r, e.ropeOptions()...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		construction:   ConstructBalanced,
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

func (e *Engine) ropeOptions() []rope.Option {
	return []rope.Option{
		rope.WithConstruction(e.construction),
		rope.WithValidation(e.validate),
	}
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full content.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rope.Result()
}

// Len returns the content length in bytes.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rope.Len()
}

// IsEmpty returns true if the engine holds no text.
func (e *Engine) IsEmpty() bool {
	return e.Len() == 0
}

// Extract returns the inclusive range [i, j] without changing the text.
func (e *Engine) Extract(i, j int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rope.Extract(i, j)
}

// ByteAt returns the byte at pos.
func (e *Engine) ByteAt(pos int) (byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rope.ByteAt(pos)
}

// WriteTo writes the content to w.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rope.WriteTo(w)
}

// Digest returns the 64-bit xxhash of the content.
func (e *Engine) Digest() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := xxhash.New64()
	// hash.Hash never returns a write error.
	_, _ = e.rope.WriteTo(h)
	return h.Sum64()
}

// Height returns the height of the underlying tree.
func (e *Engine) Height() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rope.Height()
}

// Validate checks the underlying tree's invariants.
func (e *Engine) Validate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rope.Validate()
}

// ============================================================================
// Write Operations
// ============================================================================

// Move removes the inclusive range [i, j] and reinserts it after position
// k of the remaining text. The move is recorded for undo.
func (e *Engine) Move(i, j, k int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Execute(history.NewMoveCommand(i, j, k), e.rope)
}

// Apply performs moves in order as a single undo unit. If any move fails,
// the moves already applied are reverted and nothing is recorded.
func (e *Engine) Apply(name string, moves []Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	cmds := make([]Command, len(moves))
	for idx, m := range moves {
		cmds[idx] = &history.MoveCommand{Move: m}
	}
	return e.history.ExecuteGrouped(name, e.rope, cmds...)
}

// Execute runs an arbitrary command and records it.
func (e *Engine) Execute(cmd Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Execute(cmd, e.rope)
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the last move or group.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Undo(e.rope)
}

// Redo re-applies the last undone move or group.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Redo(e.rope)
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of redo entries.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// BeginUndoGroup groups subsequent moves into one undo unit.
func (e *Engine) BeginUndoGroup(name string) {
	e.history.BeginGroup(name)
}

// EndUndoGroup closes the current undo group.
func (e *Engine) EndUndoGroup() {
	e.history.EndGroup()
}

// ClearHistory drops all undo/redo entries.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// ============================================================================
// Configuration
// ============================================================================

// IsReadOnly returns true if the engine rejects writes.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

// Construction returns how the tree was built.
func (e *Engine) Construction() Construction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.construction
}

// Stats returns the underlying tree counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.rope.Stats()
	return Stats{
		Len:       e.rope.Len(),
		Vertices:  s.Vertices,
		Splays:    s.Splays,
		Rotations: s.Rotations,
		UndoDepth: e.history.UndoCount(),
	}
}

// Stats summarizes an engine for diagnostics and reports.
type Stats struct {
	Len       int
	Vertices  int
	Splays    uint64
	Rotations uint64
	UndoDepth int
}

// SetContent replaces the text and clears history.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	e.rope = rope.New(content, e.ropeOptions()...)
	e.history.Clear()
	return nil
}
