package rope

import "github.com/dshills/ropecut/internal/engine/splay"

// ByteIterator walks the bytes of a rope in order using an explicit stack.
//
// The iterator reads the tree as it was when Bytes was called. Any method
// that restructures the rope (Process, Extract, ByteAt) invalidates it.
type ByteIterator struct {
	tree    *splay.Tree
	stack   []splay.Ref
	cur     splay.Ref
	b       byte
	offset  int
	started bool
}

// Bytes returns an iterator over all bytes in the rope.
func (r *Rope) Bytes() *ByteIterator {
	return &ByteIterator{
		tree:   r.tree,
		stack:  make([]splay.Ref, 0, 32),
		cur:    r.root,
		offset: -1,
	}
}

// Next advances to the next byte.
// Returns true if there is a byte, false if iteration is complete.
func (it *ByteIterator) Next() bool {
	if it.started && len(it.stack) == 0 && it.cur == splay.Nil {
		return false
	}
	it.started = true

	for it.cur != splay.Nil {
		it.stack = append(it.stack, it.cur)
		it.cur = it.tree.Left(it.cur)
	}
	if len(it.stack) == 0 {
		return false
	}

	top := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	it.b = it.tree.Key(top)
	it.offset++
	it.cur = it.tree.Right(top)
	return true
}

// Byte returns the current byte.
func (it *ByteIterator) Byte() byte {
	return it.b
}

// Offset returns the 0-indexed position of the current byte.
func (it *ByteIterator) Offset() int {
	return it.offset
}
