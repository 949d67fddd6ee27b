package kicadsexp

import (
	"testing"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFirst string
	}{
		{
			name:      "flat list",
			input:     "(layer F.Cu)",
			wantCount: 1,
			wantFirst: "(layer F.Cu)",
		},
		{
			name:      "nested with quoted string",
			input:     `(module R_0603 (layer F.Cu) (descr "Resistor SMD 0603"))`,
			wantCount: 1,
			wantFirst: `(module R_0603 (layer F.Cu) (descr "Resistor SMD 0603"))`,
		},
		{
			name:      "multiline and several roots",
			input:     "(a 1\n  (b 2)\n)\n(c)",
			wantCount: 2,
			wantFirst: "(a 1 (b 2))",
		},
		{
			name:      "escaped quote",
			input:     `(descr "3.5\" drive")`,
			wantCount: 1,
			wantFirst: `(descr "3.5\" drive")`,
		},
		{
			name:      "empty list",
			input:     "()",
			wantCount: 1,
			wantFirst: "()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sexps, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString() unexpected error: %v", err)
			}
			if len(sexps) != tt.wantCount {
				t.Fatalf("got %d expressions, want %d", len(sexps), tt.wantCount)
			}
			if got := sexps[0].String(); got != tt.wantFirst {
				t.Errorf("String() = %q, want %q", got, tt.wantFirst)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"(unterminated",
		"unexpected)",
		`(descr "open string)`,
	}
	for _, in := range inputs {
		if _, err := ParseString(in); err == nil {
			t.Errorf("ParseString(%q) expected error, got nil", in)
		}
	}
}

func TestQuotedAtomKeepsValue(t *testing.T) {
	sexps, err := ParseString(`(fp_text user "%R" (at 0 0))`)
	if err != nil {
		t.Fatalf("ParseString() unexpected error: %v", err)
	}
	l := sexps[0].(*List)
	q, ok := l.Get(2).(Quoted)
	if !ok {
		t.Fatalf("element 2 is %T, want Quoted", l.Get(2))
	}
	if string(q) != "%R" {
		t.Errorf("value = %q, want %%R", string(q))
	}
	if v, _ := Value(l.Get(1)); v != "user" {
		t.Errorf("Value() = %q, want user", v)
	}
}

func TestAtom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"REF**", "REF**"},
		{"1.5", "1.5"},
		{"", `""`},
		{"two words", `"two words"`},
		{"a(b)", `"a(b)"`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\path`, `"C:\\path"`},
	}
	for _, tt := range tests {
		if got := Atom(tt.in).String(); got != tt.want {
			t.Errorf("Atom(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSprintBreaks(t *testing.T) {
	text := Node("fp_text", Symbol("reference"), Symbol("REF**"),
		Node("at", Symbol("0"), Symbol("-2")),
		Node("layer", Symbol("F.SilkS")),
		Node("effects", Node("font", Node("size", Symbol("1"), Symbol("1")))),
	).Break(5)
	root := Node("module", Symbol("X"), Node("layer", Symbol("F.Cu"))).
		Append(Node("attr", Symbol("smd")), text).
		Break(3)

	want := "(module X (layer F.Cu)\n" +
		"  (attr smd)\n" +
		"  (fp_text reference REF** (at 0 -2) (layer F.SilkS)\n" +
		"    (effects (font (size 1 1)))\n" +
		"  )\n" +
		")\n"
	if got := Sprint(root); got != want {
		t.Errorf("Sprint() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintedOutputParsesBack(t *testing.T) {
	root := Node("model", Quoted("${KISYS3DMOD}/Connector.3dshapes/X.wrl"),
		Node("at", Node("xyz", Symbol("0"), Symbol("0"), Symbol("0"))),
	).Break(2)

	sexps, err := ParseString(Sprint(root))
	if err != nil {
		t.Fatalf("ParseString() unexpected error: %v", err)
	}
	if got, want := sexps[0].String(), root.String(); got != want {
		t.Errorf("round trip = %s, want %s", got, want)
	}
}
