package splay

// Find locates the k-th element (1-indexed) of the sequence rooted at root
// and splays the last vertex visited on the way down, which is the k-th
// element itself when it exists.
//
// found is Nil when k is outside [1, Size(root)]; newRoot is the root after
// splaying and must replace root in the caller either way. An empty tree
// returns (Nil, Nil).
func (t *Tree) Find(root Ref, k int) (found, newRoot Ref) {
	if root == Nil {
		return Nil, Nil
	}

	v, last := root, root
	for v != Nil {
		last = v
		ls := int(t.verts[t.verts[v].left].size)
		if k == ls+1 {
			found = v
			break
		}
		if k <= ls {
			v = t.verts[v].left
		} else {
			k -= ls + 1
			v = t.verts[v].right
		}
	}

	return found, t.Splay(root, last)
}

// Split partitions the sequence rooted at root into the elements before
// position k and the elements from position k onward (positions are
// 1-indexed). Either side may be Nil.
//
// k below 1 yields (Nil, root); k above Size(root) yields (root, Nil).
func (t *Tree) Split(root Ref, k int) (left, right Ref) {
	if root == Nil {
		return Nil, Nil
	}
	if k < 1 {
		k = 1
	}

	found, root := t.Find(root, k)
	if found == Nil {
		return root, Nil
	}

	left = t.verts[found].left
	if left != Nil {
		t.verts[found].left = Nil
		t.verts[left].parent = Nil
		t.update(found)
	}

	if debugChecks {
		t.assertRoot(left)
		t.assertRoot(found)
	}
	return left, found
}

// Merge concatenates two sequences. Every element of left must precede every
// element of right; both must be roots. A Nil argument returns the other one
// unchanged.
func (t *Tree) Merge(left, right Ref) Ref {
	if left == Nil {
		return right
	}
	if right == Nil {
		return left
	}
	if debugChecks {
		t.assertRoot(left)
		t.assertRoot(right)
	}

	m := right
	for t.verts[m].left != Nil {
		m = t.verts[m].left
	}
	root := t.Splay(right, m)

	t.setLeft(root, left)
	t.update(root)

	if debugChecks {
		t.assertLocal(root)
	}
	return root
}

// Min returns the first vertex of the sequence rooted at root without
// restructuring it.
func (t *Tree) Min(root Ref) Ref {
	if root == Nil {
		return Nil
	}
	for t.verts[root].left != Nil {
		root = t.verts[root].left
	}
	return root
}

// Max returns the last vertex of the sequence rooted at root without
// restructuring it.
func (t *Tree) Max(root Ref) Ref {
	if root == Nil {
		return Nil
	}
	for t.verts[root].right != Nil {
		root = t.verts[root].right
	}
	return root
}
