// Package splay implements an order-statistic splay tree over bytes.
//
// Vertices live in an arena owned by a Tree and are addressed by Ref, a small
// integer index. Slot 0 of the arena is reserved; the Nil Ref means "no child",
// "no parent" or "empty tree" depending on where it appears.
//
// Vertices are ordered by position only. Every vertex records the size of its
// subtree, so the k-th element of a sequence is located by descending on
// left-subtree sizes rather than by comparing keys. Splaying the accessed
// vertex to the root after each lookup gives amortized O(log n) cost for
// Find, Split and Merge.
//
// Basic usage:
//
//	t := splay.New()
//	root := t.Build([]byte("hello world"))
//	left, right := t.Split(root, 6) // "hello", " world"
//	root = t.Merge(right, left)     // " worldhello"
//
// A Tree is not safe for concurrent use. All operations, including Find,
// restructure the tree.
//
// Building with the splaydebug tag enables local invariant checks after every
// rotation and link change; violations panic.
package splay
