package rope

import (
	"io"
	"strings"
)

// Builder accumulates text and builds a rope from it in one pass.
// The zero value is ready to use.
type Builder struct {
	buf []byte
}

// NewBuilder creates a new rope builder with room for size bytes.
func NewBuilder(size int) *Builder {
	return &Builder{buf: make([]byte, 0, size)}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	chunk := make([]byte, 64*1024) // 64KB read buffer

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			b.buf = append(b.buf, chunk[:n]...)
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Len returns the number of bytes written.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Build creates the rope from the accumulated bytes.
// After calling Build, the builder is reset.
func (b *Builder) Build(opts ...Option) *Rope {
	r := &Rope{}
	for _, opt := range opts {
		opt(r)
	}
	r.tree = newTree(len(b.buf))
	r.root = r.build(b.buf)
	b.Reset()
	return r
}

// String returns the accumulated text.
func (b *Builder) String() string {
	return string(b.buf)
}

// Repeat creates a rope by repeating s n times.
func Repeat(s string, n int, opts ...Option) *Rope {
	if n <= 0 || len(s) == 0 {
		return New("", opts...)
	}
	return New(strings.Repeat(s, n), opts...)
}
