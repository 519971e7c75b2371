package history

import "github.com/dshills/ropecut/internal/engine/rope"

// GroupScope closes a group when End is called, typically via defer:
//
//	defer h.GroupScope("apply").End()
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a new group and returns its scope.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End ends the group. Only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// ExecuteGrouped executes cmds as a single undo unit. If any command fails,
// the ones already executed are reverted and nothing is recorded.
func (h *History) ExecuteGrouped(name string, r *rope.Rope, cmds ...Command) error {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return h.Execute(cmds[0], r)
	}

	compound := NewCompoundCommand(name, cmds...)
	return h.Execute(compound, r)
}

// Checkpoint marks a depth of the undo stack.
type Checkpoint struct {
	depth int
}

// CreateCheckpoint returns a checkpoint at the current undo depth.
func (h *History) CreateCheckpoint() Checkpoint {
	return Checkpoint{depth: h.UndoCount()}
}

// UndoToCheckpoint undoes every entry recorded after cp.
func (h *History) UndoToCheckpoint(cp Checkpoint, r *rope.Rope) error {
	for h.UndoCount() > cp.depth {
		if err := h.Undo(r); err != nil {
			return err
		}
	}
	return nil
}
