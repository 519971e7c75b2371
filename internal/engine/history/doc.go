// Package history provides undo/redo for rope edits.
//
// Edits are Commands with Execute and Undo methods. A move of the range
// [i, j] to after position k of the remainder is undone by the move
// (k, k+width-1, i), so no text needs to be saved for undo.
//
// # History Stack
//
// The History type manages undo/redo stacks and command grouping:
//
//	h := history.NewHistory(1000) // Max 1000 undo entries
//
//	h.Execute(history.NewMoveCommand(0, 1, 1), r)
//	h.Undo(r)
//	h.Redo(r)
//
// # Command Grouping
//
// Multiple commands can be grouped as a single undo unit:
//
//	h.BeginGroup("apply script")
//	// ... multiple moves ...
//	h.EndGroup()
package history
