// Package kicadsexp models KiCad S-expressions as a small value tree.
// The same tree is produced by the reader and consumed by the printer, so
// footprint files can be built, written and read back with one set of types.
package kicadsexp

import (
	"strings"
)

// Sexp represents an S-expression node.
// It can be either a leaf (atom) or a list.
type Sexp interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// LeafCount returns the number of elements in a list (1 for atoms)
	LeafCount() int

	// Head returns the first element of a list (the atom itself for atoms)
	Head() Sexp

	// Tail returns the rest of the list after the first element (nil for atoms)
	Tail() Sexp

	// String returns the single-line textual form
	String() string
}

// Symbol represents a bare atom (keyword, number, identifier)
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) LeafCount() int { return 1 }
func (s Symbol) Head() Sexp     { return s }
func (s Symbol) Tail() Sexp     { return nil }
func (s Symbol) String() string { return string(s) }

// Quoted is an atom that is always written between double quotes.
// The value holds the unescaped text.
type Quoted string

func (q Quoted) IsLeaf() bool   { return true }
func (q Quoted) LeafCount() int { return 1 }
func (q Quoted) Head() Sexp     { return q }
func (q Quoted) Tail() Sexp     { return nil }
func (q Quoted) String() string { return quote(string(q)) }

// Atom returns s as a Symbol when it can be written bare, or as Quoted when
// it is empty or contains whitespace, parentheses, quotes or backslashes.
func Atom(s string) Sexp {
	if needsQuotes(s) {
		return Quoted(s)
	}
	return Symbol(s)
}

// Value returns the text of an atom without quoting. It returns false for lists.
func Value(s Sexp) (string, bool) {
	switch v := s.(type) {
	case Symbol:
		return string(v), true
	case Quoted:
		return string(v), true
	}
	return "", false
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, " \t\r\n()\"\\")
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

// List represents a list of S-expressions
type List struct {
	elements []Sexp
	// breakAt is the index of the first element printed on its own line by
	// the indenting printer. Zero keeps the list on one line.
	breakAt int
}

// NewList creates a list from the given elements.
func NewList(elements ...Sexp) *List {
	return &List{elements: elements}
}

// Node creates a list headed by a bare symbol, the usual shape of a KiCad
// token such as (layer F.Cu).
func Node(head string, elements ...Sexp) *List {
	l := &List{elements: make([]Sexp, 0, len(elements)+1)}
	l.elements = append(l.elements, Symbol(head))
	l.elements = append(l.elements, elements...)
	return l
}

// Append adds elements to the end of the list and returns it.
func (l *List) Append(elements ...Sexp) *List {
	l.elements = append(l.elements, elements...)
	return l
}

// Break marks elements from index i onward to be printed one per line.
func (l *List) Break(i int) *List {
	l.breakAt = i
	return l
}

// Elements returns the list items. The slice must not be modified.
func (l *List) Elements() []Sexp {
	return l.elements
}

func (l *List) IsLeaf() bool { return false }

func (l *List) LeafCount() int {
	return len(l.elements)
}

func (l *List) Head() Sexp {
	if len(l.elements) == 0 {
		return nil
	}
	return l.elements[0]
}

func (l *List) Tail() Sexp {
	if len(l.elements) <= 1 {
		return nil
	}
	return &List{elements: l.elements[1:]}
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(elem.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Get returns the element at the given index
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Len returns the number of elements in the list
func (l *List) Len() int {
	return len(l.elements)
}
