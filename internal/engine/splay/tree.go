package splay

// Tree is an arena of vertices together with the splay operations over them.
// A single Tree may hold several disjoint trees at once (for example the two
// halves of a Split); each is identified by its root Ref.
type Tree struct {
	verts []vertex
	stats Stats
}

// New creates an empty arena.
func New() *Tree {
	return &Tree{verts: make([]vertex, 1, 64)}
}

// Reserve grows the arena so that n more vertices can be allocated without
// reallocating.
func (t *Tree) Reserve(n int) {
	if n <= 0 || cap(t.verts)-len(t.verts) >= n {
		return
	}
	grown := make([]vertex, len(t.verts), len(t.verts)+n)
	copy(grown, t.verts)
	t.verts = grown
}

// Reset releases every vertex. All previously returned Refs become invalid.
func (t *Tree) Reset() {
	t.verts = t.verts[:1]
	t.verts[0] = vertex{}
	t.stats = Stats{}
}

// NewVertex allocates a singleton tree holding key.
func (t *Tree) NewVertex(key byte) Ref {
	t.verts = append(t.verts, vertex{key: key, size: 1})
	return Ref(len(t.verts) - 1)
}

// Len returns the number of vertices allocated in the arena.
func (t *Tree) Len() int {
	return len(t.verts) - 1
}

// Size returns the number of vertices in the subtree rooted at r.
func (t *Tree) Size(r Ref) int {
	return int(t.verts[r].size)
}

// Key returns the byte stored at r.
func (t *Tree) Key(r Ref) byte {
	return t.verts[r].key
}

// Left returns the left child of r.
func (t *Tree) Left(r Ref) Ref {
	return t.verts[r].left
}

// Right returns the right child of r.
func (t *Tree) Right(r Ref) Ref {
	return t.verts[r].right
}

// Parent returns the parent of r, or Nil for a root.
func (t *Tree) Parent(r Ref) Ref {
	return t.verts[r].parent
}

// update recomputes the subtree size of r from its children.
func (t *Tree) update(r Ref) {
	v := &t.verts[r]
	v.size = 1 + t.verts[v.left].size + t.verts[v.right].size
}

// setLeft links c as the left child of p, repairing c's parent pointer.
func (t *Tree) setLeft(p, c Ref) {
	t.verts[p].left = c
	if c != Nil {
		t.verts[c].parent = p
	}
}

func (t *Tree) setRight(p, c Ref) {
	t.verts[p].right = c
	if c != Nil {
		t.verts[c].parent = p
	}
}
