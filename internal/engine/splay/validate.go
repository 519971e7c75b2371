package splay

import "fmt"

// InvariantError reports a structural defect found by Validate.
type InvariantError struct {
	Ref    Ref
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("splay: vertex %d: %s", e.Ref, e.Reason)
}

// Validate checks every vertex reachable from root: subtree sizes must equal
// one plus the sizes of the children, and every child must point back at its
// parent. root itself must have no parent.
func (t *Tree) Validate(root Ref) error {
	if t.verts[Nil] != (vertex{}) {
		return &InvariantError{Ref: Nil, Reason: "nil slot was written"}
	}
	if root == Nil {
		return nil
	}
	if p := t.verts[root].parent; p != Nil {
		return &InvariantError{Ref: root, Reason: fmt.Sprintf("root has parent %d", p)}
	}

	var err error
	count := 0
	t.Walk(root, func(r Ref) bool {
		count++
		err = t.checkLocal(r)
		return err == nil
	})
	if err != nil {
		return err
	}
	if count != t.Size(root) {
		return &InvariantError{
			Ref:    root,
			Reason: fmt.Sprintf("size %d but %d vertices reachable", t.Size(root), count),
		}
	}
	return nil
}

// checkLocal verifies the size and parent links of r and its children.
func (t *Tree) checkLocal(r Ref) error {
	v := t.verts[r]
	want := 1 + t.verts[v.left].size + t.verts[v.right].size
	if v.size != want {
		return &InvariantError{Ref: r, Reason: fmt.Sprintf("size %d, want %d", v.size, want)}
	}
	if v.left != Nil && t.verts[v.left].parent != r {
		return &InvariantError{Ref: r, Reason: fmt.Sprintf("left child %d points at parent %d", v.left, t.verts[v.left].parent)}
	}
	if v.right != Nil && t.verts[v.right].parent != r {
		return &InvariantError{Ref: r, Reason: fmt.Sprintf("right child %d points at parent %d", v.right, t.verts[v.right].parent)}
	}
	return nil
}

func (t *Tree) assertLocal(r Ref) {
	if err := t.checkLocal(r); err != nil {
		panic(err)
	}
}

func (t *Tree) assertRoot(r Ref) {
	if r != Nil && t.verts[r].parent != Nil {
		panic(&InvariantError{Ref: r, Reason: "expected a root"})
	}
}
