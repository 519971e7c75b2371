package history

import (
	"fmt"
	"time"
)

// Move records one cut-and-reinsert: the inclusive range [I, J] is removed
// and reinserted after position K of the remaining text.
type Move struct {
	I, J, K int
}

// Normalize returns the move with I <= J.
func (m Move) Normalize() Move {
	if m.I > m.J {
		m.I, m.J = m.J, m.I
	}
	return m
}

// Width returns the number of bytes moved.
func (m Move) Width() int {
	n := m.Normalize()
	return n.J - n.I + 1
}

// Invert returns the move that restores the text as it was before m.
// After m the block occupies [K, K+Width-1]; cutting it back out leaves the
// same remainder, where it originally sat after position I.
func (m Move) Invert() Move {
	n := m.Normalize()
	return Move{I: n.K, J: n.K + n.Width() - 1, K: n.I}
}

// IsNoop returns true if the move leaves the text unchanged.
func (m Move) IsNoop() bool {
	n := m.Normalize()
	return n.K == n.I
}

// String returns the move in judge-format order.
func (m Move) String() string {
	return fmt.Sprintf("%d %d %d", m.I, m.J, m.K)
}

// OperationInfo provides read-only info about a history entry.
type OperationInfo struct {
	Description string    // Human-readable description
	Timestamp   time.Time // When the command was recorded
}
