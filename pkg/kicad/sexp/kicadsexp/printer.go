package kicadsexp

import (
	"bufio"
	"io"
	"strings"
)

const indentUnit = "  "

// Fprint writes s to w in KiCad's indented layout. Lists marked with Break
// print their leading elements inline, every following element on its own
// line one level deeper, and the closing parenthesis on a line of its own.
// A trailing newline is written after the top-level expression.
func Fprint(w io.Writer, s Sexp) error {
	bw := bufio.NewWriter(w)
	writeSexp(bw, s, 0)
	bw.WriteByte('\n')
	return bw.Flush()
}

// Sprint returns the indented form of s, as written by Fprint.
func Sprint(s Sexp) string {
	var sb strings.Builder
	_ = Fprint(&sb, s)
	return sb.String()
}

func writeSexp(w *bufio.Writer, s Sexp, depth int) {
	l, ok := s.(*List)
	if !ok {
		w.WriteString(s.String())
		return
	}
	if l.breakAt <= 0 || l.breakAt >= len(l.elements) {
		w.WriteString(l.String())
		return
	}

	w.WriteByte('(')
	for i, elem := range l.elements[:l.breakAt] {
		if i > 0 {
			w.WriteByte(' ')
		}
		writeSexp(w, elem, depth)
	}
	inner := strings.Repeat(indentUnit, depth+1)
	for _, elem := range l.elements[l.breakAt:] {
		w.WriteByte('\n')
		w.WriteString(inner)
		writeSexp(w, elem, depth+1)
	}
	w.WriteByte('\n')
	w.WriteString(strings.Repeat(indentUnit, depth))
	w.WriteByte(')')
}
