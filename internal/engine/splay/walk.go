package splay

// Walk visits the vertices of the tree rooted at root in sequence order,
// stopping early if fn returns false. It uses an explicit stack, so deep
// trees cannot overflow the goroutine stack. The tree must not be modified
// during the walk.
func (t *Tree) Walk(root Ref, fn func(Ref) bool) {
	stack := make([]Ref, 0, 32)
	cur := root
	for cur != Nil || len(stack) > 0 {
		for cur != Nil {
			stack = append(stack, cur)
			cur = t.verts[cur].left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			return
		}
		cur = t.verts[cur].right
	}
}

// AppendKeys appends the keys of the tree rooted at root to dst in sequence
// order and returns the extended slice.
func (t *Tree) AppendKeys(dst []byte, root Ref) []byte {
	t.Walk(root, func(r Ref) bool {
		dst = append(dst, t.verts[r].key)
		return true
	})
	return dst
}

// Height returns the number of vertices on the longest root-to-leaf path.
func (t *Tree) Height(root Ref) int {
	if root == Nil {
		return 0
	}

	type frame struct {
		ref   Ref
		depth int
	}
	height := 0
	stack := []frame{{root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > height {
			height = f.depth
		}
		v := t.verts[f.ref]
		if v.left != Nil {
			stack = append(stack, frame{v.left, f.depth + 1})
		}
		if v.right != Nil {
			stack = append(stack, frame{v.right, f.depth + 1})
		}
	}
	return height
}
