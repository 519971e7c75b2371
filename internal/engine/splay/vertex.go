package splay

// Ref addresses a vertex in a Tree's arena.
type Ref int32

// Nil is the absent vertex. It doubles as the empty tree.
const Nil Ref = 0

// vertex is one arena slot. The Nil slot stays zeroed so that size(Nil) == 0
// can be read without a branch.
type vertex struct {
	key    byte
	size   int32
	left   Ref
	right  Ref
	parent Ref
}

// IsNil reports whether r is the absent vertex.
func (r Ref) IsNil() bool {
	return r == Nil
}
