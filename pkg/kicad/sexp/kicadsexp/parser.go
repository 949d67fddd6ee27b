package kicadsexp

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/alecthomas/participle/v2"
)

// document is the grammar root: any number of top-level expressions.
type document struct {
	Exprs []*expr `parser:"@@*"`
}

type expr struct {
	List   *list   `parser:"  @@"`
	Quoted *string `parser:"| @String"`
	Symbol *string `parser:"| @Symbol"`
}

type list struct {
	Items []*expr `parser:"\"(\" @@* \")\""`
}

var (
	buildOnce sync.Once
	grammar   *participle.Parser[document]
	buildErr  error
)

func parser() (*participle.Parser[document], error) {
	buildOnce.Do(func() {
		grammar, buildErr = participle.Build[document](
			participle.Lexer(SexpLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
		)
		if buildErr != nil {
			buildErr = fmt.Errorf("failed to build parser: %w", buildErr)
		}
	})
	return grammar, buildErr
}

// Parse parses all top-level S-expressions from r.
func Parse(r io.Reader) ([]Sexp, error) {
	p, err := parser()
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return convert(doc.Exprs), nil
}

// ParseString parses S-expressions from a string
func ParseString(s string) ([]Sexp, error) {
	p, err := parser()
	if err != nil {
		return nil, err
	}
	doc, err := p.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return convert(doc.Exprs), nil
}

// ParseFile parses S-expressions from a file path
func ParseFile(filename string) ([]Sexp, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func convert(exprs []*expr) []Sexp {
	out := make([]Sexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, e.sexp())
	}
	return out
}

func (e *expr) sexp() Sexp {
	switch {
	case e.List != nil:
		return &List{elements: convert(e.List.Items)}
	case e.Quoted != nil:
		return Quoted(*e.Quoted)
	default:
		return Symbol(*e.Symbol)
	}
}
