// Package engine provides the text engine behind ropecut.
//
// The engine combines a splay-tree rope with a command-based undo/redo
// history behind a single mutex, so callers on different goroutines see
// every move applied atomically.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - splay: arena-backed splay tree with order-statistic find, split and merge
//   - rope: byte sequence with Process(i, j, k) implemented by split/merge
//   - history: undo/redo stacks of moves, undone by their inverse move
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("hlelowrold"))
//
//	e.Move(1, 1, 2)
//	e.Move(6, 6, 7)
//	text := e.Text() // "helloworld"
//
//	e.Undo() // "hellowrold"
//
// # Batches
//
// Apply runs a list of moves as one undo unit and rolls back on failure:
//
//	err := e.Apply("script", []engine.Move{{I: 0, J: 1, K: 1}, {I: 4, J: 5, K: 0}})
//
// # Digest
//
// Digest returns the xxhash64 of the text, which is cheaper to compare
// than the text itself when checking two runs agree.
package engine
