package rope

import (
	"io"

	"github.com/dshills/ropecut/internal/engine/splay"
)

// writeChunk is the buffer size WriteTo flushes at.
const writeChunk = 32 * 1024

// Rope is a mutable byte sequence stored one byte per splay tree vertex.
// Operations modify the rope in place.
type Rope struct {
	tree *splay.Tree
	root splay.Ref

	construction Construction
	validate     bool
}

// New creates a rope holding text.
func New(text string, opts ...Option) *Rope {
	r := &Rope{}
	for _, opt := range opts {
		opt(r)
	}
	r.tree = newTree(len(text))
	r.root = r.build([]byte(text))
	return r
}

// newTree creates an arena sized for n vertices.
func newTree(n int) *splay.Tree {
	t := splay.New()
	t.Reserve(n)
	return t
}

// FromReader creates a rope from everything readable from rd.
func FromReader(rd io.Reader, opts ...Option) (*Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(rd); err != nil {
		return nil, err
	}
	return b.Build(opts...), nil
}

// build links keys into the rope's tree using the configured construction.
func (r *Rope) build(keys []byte) splay.Ref {
	if r.construction == ConstructMerge {
		return r.tree.BuildByMerge(keys)
	}
	return r.tree.Build(keys)
}

// Len returns the number of bytes in the rope.
func (r *Rope) Len() int {
	return r.tree.Size(r.root)
}

// IsEmpty returns true if the rope holds no bytes.
func (r *Rope) IsEmpty() bool {
	return r.root == splay.Nil
}

// Process removes the inclusive range [i, j] (0-indexed) and reinserts it
// immediately after position k of the remaining text, where k = 0 means the
// very beginning. i and j are swapped if i > j.
//
// Positions must satisfy 0 <= i <= j < Len() and 0 <= k <= Len()-(j-i+1);
// otherwise an *IndexError is returned and the rope is unchanged.
func (r *Rope) Process(i, j, k int) error {
	if i > j {
		i, j = j, i
	}
	if err := r.checkRange("process", i, j); err != nil {
		return err
	}
	width := j - i + 1
	if remaining := r.Len() - width; k < 0 || k > remaining {
		return &IndexError{Op: "process", Name: "k", Index: k, Min: 0, Max: remaining}
	}

	t := r.tree
	left, rest := t.Split(r.root, i+1)
	middle, right := t.Split(rest, width+1)
	remainder := t.Merge(left, right)

	before, after := t.Split(remainder, k+1)
	r.root = t.Merge(t.Merge(before, middle), after)

	if r.validate {
		return t.Validate(r.root)
	}
	return nil
}

// Extract returns the bytes in the inclusive range [i, j]. The range is cut
// out, read and merged back, so the text is unchanged afterwards.
func (r *Rope) Extract(i, j int) (string, error) {
	if i > j {
		i, j = j, i
	}
	if err := r.checkRange("extract", i, j); err != nil {
		return "", err
	}

	t := r.tree
	left, rest := t.Split(r.root, i+1)
	middle, right := t.Split(rest, j-i+2)

	out := t.AppendKeys(make([]byte, 0, j-i+1), middle)
	r.root = t.Merge(t.Merge(left, middle), right)
	return string(out), nil
}

// ByteAt returns the byte at pos (0-indexed).
// Returns 0 and false if pos is out of range.
func (r *Rope) ByteAt(pos int) (byte, bool) {
	if pos < 0 || pos >= r.Len() {
		return 0, false
	}
	var found splay.Ref
	found, r.root = r.tree.Find(r.root, pos+1)
	return r.tree.Key(found), true
}

// Result returns the full text. The walk is iterative, so arbitrarily
// unbalanced trees are safe to read.
func (r *Rope) Result() string {
	return string(r.tree.AppendKeys(make([]byte, 0, r.Len()), r.root))
}

// String returns the full text.
func (r *Rope) String() string {
	return r.Result()
}

// WriteTo writes the full text to w in bounded chunks.
func (r *Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var err error
	buf := make([]byte, 0, writeChunk)

	flush := func() bool {
		n, werr := w.Write(buf)
		total += int64(n)
		buf = buf[:0]
		err = werr
		return werr == nil
	}

	r.tree.Walk(r.root, func(ref splay.Ref) bool {
		buf = append(buf, r.tree.Key(ref))
		if len(buf) == cap(buf) {
			return flush()
		}
		return true
	})
	if err == nil && len(buf) > 0 {
		flush()
	}
	return total, err
}

// Height returns the height of the underlying tree.
// Useful for debugging and testing balance.
func (r *Rope) Height() int {
	return r.tree.Height(r.root)
}

// Validate checks the tree's size and parent invariants.
func (r *Rope) Validate() error {
	return r.tree.Validate(r.root)
}

// Stats returns counters from the underlying tree.
func (r *Rope) Stats() splay.Stats {
	return r.tree.Stats()
}

// checkRange validates an inclusive range with i <= j.
func (r *Rope) checkRange(op string, i, j int) error {
	n := r.Len()
	if i < 0 || i >= n {
		return &IndexError{Op: op, Name: "i", Index: i, Min: 0, Max: n - 1}
	}
	if j >= n {
		return &IndexError{Op: op, Name: "j", Index: j, Min: 0, Max: n - 1}
	}
	return nil
}
