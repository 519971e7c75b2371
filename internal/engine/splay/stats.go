package splay

// Stats holds counters for a Tree since creation or the last Reset.
type Stats struct {
	Vertices  int
	Splays    uint64
	Rotations uint64
}

// Stats returns a snapshot of the tree's counters.
func (t *Tree) Stats() Stats {
	s := t.stats
	s.Vertices = t.Len()
	return s
}
