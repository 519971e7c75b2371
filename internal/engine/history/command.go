package history

import (
	"fmt"

	"github.com/dshills/ropecut/internal/engine/rope"
)

// Command represents an edit that can be executed and undone against a rope.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(r *rope.Rope) error

	// Undo reverses the command and returns an error if it fails.
	Undo(r *rope.Rope) error

	// Description returns a human-readable description of the command.
	Description() string
}

// MoveCommand moves an inclusive range to after a position of the remainder.
type MoveCommand struct {
	Move Move
}

// NewMoveCommand creates a new move command.
func NewMoveCommand(i, j, k int) *MoveCommand {
	return &MoveCommand{Move: Move{I: i, J: j, K: k}}
}

// Execute applies the move.
func (c *MoveCommand) Execute(r *rope.Rope) error {
	return r.Process(c.Move.I, c.Move.J, c.Move.K)
}

// Undo applies the inverse move.
func (c *MoveCommand) Undo(r *rope.Rope) error {
	inv := c.Move.Invert()
	return r.Process(inv.I, inv.J, inv.K)
}

// Description returns a description of the move.
func (c *MoveCommand) Description() string {
	return "Move " + c.Move.String()
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(r *rope.Rope) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(r); err != nil {
			// On error, try to undo what we've done
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(r)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(r *rope.Rope) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(r); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
