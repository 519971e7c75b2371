// Package rope provides a mutable rope backed by an order-statistic splay tree.
//
// Every byte of the text is one vertex of a splay.Tree, ordered by position.
// Cutting a range out of the text and reinserting it elsewhere is done with
// two splits and two merges, so it costs amortized O(log n) and never copies
// the bytes being moved.
//
// Key features:
//   - O(n) balanced construction, or incremental merge construction
//   - Process moves an inclusive range to after any position of the remainder
//   - Extract and ByteAt read through splits, restoring the tree afterwards
//   - Out-of-range positions fail with ErrIndexOutOfRange and leave the text untouched
//
// Basic usage:
//
//	r := rope.New("abcdef")
//	_ = r.Process(0, 1, 1) // "cabdef"
//	_ = r.Process(4, 5, 0) // "efcabd"
//	text := r.Result()     // "efcabd"
//
// Positions are byte positions; no Unicode decoding is performed. A Rope is
// not safe for concurrent use, and even read methods restructure the tree.
// Wrap it in engine.Engine when several goroutines share a text.
package rope
