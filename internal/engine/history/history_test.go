package history

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/dshills/ropecut/internal/engine/rope"
)

func TestMoveInvert(t *testing.T) {
	tests := []struct {
		name string
		text string
		move Move
	}{
		{"forward", "abcdef", Move{I: 0, J: 1, K: 4}},
		{"backward", "abcdef", Move{I: 4, J: 5, K: 0}},
		{"swapped bounds", "abcdef", Move{I: 3, J: 1, K: 0}},
		{"single byte", "hlelowrold", Move{I: 1, J: 1, K: 2}},
		{"noop", "abcdef", Move{I: 2, J: 3, K: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rope.New(tt.text)
			if err := r.Process(tt.move.I, tt.move.J, tt.move.K); err != nil {
				t.Fatalf("Process: %v", err)
			}
			inv := tt.move.Invert()
			if err := r.Process(inv.I, inv.J, inv.K); err != nil {
				t.Fatalf("Process inverse %v: %v", inv, err)
			}
			if got := r.Result(); got != tt.text {
				t.Errorf("after inverse got %q, want %q", got, tt.text)
			}
		})
	}
}

func TestMoveInvertRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	text := "the quick brown fox jumps over the lazy dog"
	r := rope.New(text)

	for step := 0; step < 500; step++ {
		n := r.Len()
		i, j := rng.Intn(n), rng.Intn(n)
		m := Move{I: i, J: j, K: 0}
		m.K = rng.Intn(n - m.Width() + 1)

		before := r.Result()
		if err := r.Process(m.I, m.J, m.K); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		inv := m.Invert()
		if err := r.Process(inv.I, inv.J, inv.K); err != nil {
			t.Fatalf("step %d inverse: %v", step, err)
		}
		if r.Result() != before {
			t.Fatalf("step %d: inverse of %v did not restore text", step, m)
		}
		// Leave the move applied so later steps see varied text.
		if err := r.Process(m.I, m.J, m.K); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMoveHelpers(t *testing.T) {
	m := Move{I: 5, J: 2, K: 1}
	if n := m.Normalize(); n.I != 2 || n.J != 5 {
		t.Errorf("Normalize = %+v", n)
	}
	if m.Width() != 4 {
		t.Errorf("Width = %d, want 4", m.Width())
	}
	if m.IsNoop() {
		t.Error("move should not be a noop")
	}
	if !(Move{I: 3, J: 4, K: 3}).IsNoop() {
		t.Error("move in place should be a noop")
	}
	if s := (Move{I: 1, J: 2, K: 3}).String(); s != "1 2 3" {
		t.Errorf("String = %q", s)
	}
}

func TestHistoryUndoRedo(t *testing.T) {
	r := rope.New("abcdef")
	h := NewHistory(0)

	if err := h.Execute(NewMoveCommand(0, 1, 1), r); err != nil {
		t.Fatal(err)
	}
	if err := h.Execute(NewMoveCommand(4, 5, 0), r); err != nil {
		t.Fatal(err)
	}
	if got := r.Result(); got != "efcabd" {
		t.Fatalf("got %q, want efcabd", got)
	}

	if err := h.Undo(r); err != nil {
		t.Fatal(err)
	}
	if got := r.Result(); got != "cabdef" {
		t.Errorf("after undo got %q, want cabdef", got)
	}
	if err := h.Undo(r); err != nil {
		t.Fatal(err)
	}
	if got := r.Result(); got != "abcdef" {
		t.Errorf("after second undo got %q, want abcdef", got)
	}
	if err := h.Undo(r); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty error = %v, want ErrNothingToUndo", err)
	}

	if err := h.Redo(r); err != nil {
		t.Fatal(err)
	}
	if err := h.Redo(r); err != nil {
		t.Fatal(err)
	}
	if got := r.Result(); got != "efcabd" {
		t.Errorf("after redo got %q, want efcabd", got)
	}
	if err := h.Redo(r); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo on empty error = %v, want ErrNothingToRedo", err)
	}
}

func TestHistoryPushClearsRedo(t *testing.T) {
	r := rope.New("abcdef")
	h := NewHistory(10)

	_ = h.Execute(NewMoveCommand(0, 0, 5), r)
	_ = h.Undo(r)
	if !h.CanRedo() {
		t.Fatal("expected redo to be available")
	}
	_ = h.Execute(NewMoveCommand(1, 1, 0), r)
	if h.CanRedo() {
		t.Error("new command should clear redo stack")
	}
}

func TestHistoryFailedCommandNotRecorded(t *testing.T) {
	r := rope.New("abc")
	h := NewHistory(10)

	err := h.Execute(NewMoveCommand(0, 5, 0), r)
	if !errors.Is(err, rope.ErrIndexOutOfRange) {
		t.Fatalf("error = %v, want ErrIndexOutOfRange", err)
	}
	if h.CanUndo() {
		t.Error("failed command should not be recorded")
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	r := rope.New("abcdef")
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		if err := h.Execute(NewMoveCommand(0, 0, 5), r); err != nil {
			t.Fatal(err)
		}
	}
	if h.UndoCount() != 3 {
		t.Errorf("UndoCount = %d, want 3", h.UndoCount())
	}

	h.SetMaxEntries(1)
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount after shrink = %d, want 1", h.UndoCount())
	}
	if h.MaxEntries() != 1 {
		t.Errorf("MaxEntries = %d", h.MaxEntries())
	}
}

func TestHistoryGrouping(t *testing.T) {
	r := rope.New("hlelowrold")
	h := NewHistory(10)

	func() {
		defer h.GroupScope("fix typos").End()
		_ = h.Execute(NewMoveCommand(1, 1, 2), r)
		_ = h.Execute(NewMoveCommand(6, 6, 7), r)
	}()

	if got := r.Result(); got != "helloworld" {
		t.Fatalf("got %q", got)
	}
	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", h.UndoCount())
	}
	info, ok := h.PeekUndo()
	if !ok || info.Description != "fix typos" {
		t.Errorf("PeekUndo = %+v, %v", info, ok)
	}

	if err := h.Undo(r); err != nil {
		t.Fatal(err)
	}
	if got := r.Result(); got != "hlelowrold" {
		t.Errorf("after group undo got %q", got)
	}
}

func TestHistoryEmptyGroupDiscarded(t *testing.T) {
	h := NewHistory(10)
	h.BeginGroup("empty")
	if !h.IsGrouping() {
		t.Fatal("expected grouping")
	}
	h.EndGroup()
	if h.CanUndo() {
		t.Error("empty group should not be recorded")
	}
}

func TestExecuteGroupedRollsBack(t *testing.T) {
	r := rope.New("abcdef")
	h := NewHistory(10)

	err := h.ExecuteGrouped("batch", r,
		NewMoveCommand(0, 1, 4),
		NewMoveCommand(0, 0, 99),
	)
	if !errors.Is(err, rope.ErrIndexOutOfRange) {
		t.Fatalf("error = %v, want ErrIndexOutOfRange", err)
	}
	if got := r.Result(); got != "abcdef" {
		t.Errorf("partial batch not rolled back: %q", got)
	}
	if h.CanUndo() {
		t.Error("failed batch should not be recorded")
	}
}

func TestCheckpoint(t *testing.T) {
	r := rope.New("abcdef")
	h := NewHistory(10)

	_ = h.Execute(NewMoveCommand(0, 0, 5), r)
	cp := h.CreateCheckpoint()
	mark := r.Result()

	_ = h.Execute(NewMoveCommand(1, 2, 0), r)
	_ = h.Execute(NewMoveCommand(3, 5, 0), r)

	if err := h.UndoToCheckpoint(cp, r); err != nil {
		t.Fatal(err)
	}
	if got := r.Result(); got != mark {
		t.Errorf("got %q, want %q", got, mark)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
}

func TestHistoryClear(t *testing.T) {
	r := rope.New("abc")
	h := NewHistory(10)
	_ = h.Execute(NewMoveCommand(0, 0, 2), r)
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
	if len(h.UndoInfo()) != 0 {
		t.Error("UndoInfo should be empty")
	}
}
