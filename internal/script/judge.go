package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLine bounds a single judge-format line; the first line holds the
// whole text.
const maxLine = 64 * 1024 * 1024

// decodeJudge reads the judge format: the text on line 1, the operation
// count on line 2, then one "i j k" line per operation.
func decodeJudge(source string, r io.Reader) (*Script, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	line := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return strings.TrimRight(sc.Text(), "\r"), true
	}
	fail := func(msg string, err error) (*Script, error) {
		return nil, &ParseError{Source: source, Line: line, Message: msg, Err: err}
	}

	text, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return fail("reading text", err)
		}
		return fail("missing text line", nil)
	}

	countLine, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return fail("reading operation count", err)
		}
		// A bare text with no count is a script with no moves.
		return &Script{Text: text}, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil || n < 0 {
		return fail(fmt.Sprintf("invalid operation count %q", countLine), err)
	}

	ops := make([]Op, 0, min(n, 1<<20))
	for len(ops) < n {
		l, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return fail("reading operations", err)
			}
			return fail(fmt.Sprintf("expected %d operations, found %d", n, len(ops)), io.ErrUnexpectedEOF)
		}
		fields := strings.Fields(l)
		if len(fields) == 0 {
			continue
		}
		op, err := parseTriple(fields)
		if err != nil {
			return fail(err.Error(), err)
		}
		ops = append(ops, op)
	}

	return &Script{Text: text, Ops: ops}, nil
}

func parseTriple(fields []string) (Op, error) {
	if len(fields) != 3 {
		return Op{}, fmt.Errorf("expected 3 integers, got %d fields", len(fields))
	}
	var v [3]int
	for idx, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Op{}, fmt.Errorf("invalid integer %q", f)
		}
		v[idx] = n
	}
	return Op{I: v[0], J: v[1], K: v[2]}, nil
}

// EncodeJudge writes s in the judge format.
func EncodeJudge(w io.Writer, s *Script) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d\n", s.Text, len(s.Ops))
	for _, op := range s.Ops {
		fmt.Fprintf(bw, "%d %d %d\n", op.I, op.J, op.K)
	}
	return bw.Flush()
}
