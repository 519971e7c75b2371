package splay

// rotate lifts x above its parent y. The subtree of x that sat between x and y
// in sequence order moves across to y, and y's old parent (if any) adopts x in
// y's place. Sizes are recomputed for y first, since it is now below x.
func (t *Tree) rotate(x Ref) {
	y := t.verts[x].parent
	z := t.verts[y].parent

	if t.verts[y].left == x {
		t.setLeft(y, t.verts[x].right)
		t.setRight(x, y)
	} else {
		t.setRight(y, t.verts[x].left)
		t.setLeft(x, y)
	}

	t.verts[x].parent = z
	if z != Nil {
		if t.verts[z].left == y {
			t.verts[z].left = x
		} else {
			t.verts[z].right = x
		}
	}

	t.update(y)
	t.update(x)
	t.stats.Rotations++

	if debugChecks {
		t.assertLocal(y)
		t.assertLocal(x)
	}
}

// isLeft reports whether r is the left child of its parent.
func (t *Tree) isLeft(r Ref) bool {
	p := t.verts[r].parent
	return p != Nil && t.verts[p].left == r
}

// Splay restructures the tree rooted at root so that v becomes its root, and
// returns v. Sequence order and subtree sizes are preserved. If v is Nil the
// tree is left alone and root is returned.
//
// Callers must use the returned Ref as the new root; the old root Ref still
// addresses a vertex but is no longer the top of the tree.
func (t *Tree) Splay(root, v Ref) Ref {
	if v == Nil {
		return root
	}
	t.stats.Splays++

	for {
		p := t.verts[v].parent
		if p == Nil {
			break
		}
		g := t.verts[p].parent
		switch {
		case g == Nil:
			// zig
			t.rotate(v)
		case t.isLeft(v) == t.isLeft(p):
			// zig-zig
			t.rotate(p)
			t.rotate(v)
		default:
			// zig-zag
			t.rotate(v)
			t.rotate(v)
		}
	}
	return v
}
