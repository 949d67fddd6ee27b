package kicadsexp

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SexpLexer tokenizes KiCad S-expression text.
var SexpLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Double-quoted strings with backslash escapes
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	// Anything else up to whitespace, a parenthesis or a quote
	{Name: "Symbol", Pattern: `[^\s()"]+`},

	{Name: "Whitespace", Pattern: `\s+`},
})
