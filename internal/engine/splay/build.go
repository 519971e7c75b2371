package splay

// Build allocates one vertex per byte of keys and links them into a perfectly
// balanced tree in O(n). The returned root's in-order sequence equals keys.
func (t *Tree) Build(keys []byte) Ref {
	if len(keys) == 0 {
		return Nil
	}
	t.Reserve(len(keys))

	base := Ref(len(t.verts))
	for _, k := range keys {
		t.verts = append(t.verts, vertex{key: k})
	}
	return t.link(base, 0, len(keys), Nil)
}

// link wires the vertices base+lo .. base+hi-1 into a balanced subtree under
// parent and returns its root. Recursion depth is log2 of the range length.
// All vertices must already be allocated so that v stays addressable.
func (t *Tree) link(base Ref, lo, hi int, parent Ref) Ref {
	if lo >= hi {
		return Nil
	}
	mid := lo + (hi-lo)/2
	r := base + Ref(mid)

	v := &t.verts[r]
	v.parent = parent
	v.size = int32(hi - lo)
	v.left = t.link(base, lo, mid, r)
	v.right = t.link(base, mid+1, hi, r)
	return r
}

// BuildByMerge appends each byte of keys as a singleton merged onto the
// accumulated tree. It costs O(n log n) amortized and leaves a left spine;
// Build is preferred, this mirrors the incremental construction path.
func (t *Tree) BuildByMerge(keys []byte) Ref {
	t.Reserve(len(keys))
	root := Nil
	for _, k := range keys {
		root = t.Merge(root, t.NewVertex(k))
	}
	return root
}
