package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	Ident
	AtKeyword
	String
	Number
	Delim
	Whitespace
	Comment
)

var kindNames = [...]string{
	EOF:        "EOF",
	Ident:      "IDENT",
	AtKeyword:  "ATKEYWORD",
	String:     "STRING",
	Number:     "NUMBER",
	Delim:      "DELIM",
	Whitespace: "WHITESPACE",
	Comment:    "COMMENT",
}

// String returns the uppercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("KIND(%d)", int(k))
	}
	return kindNames[k]
}

// Span marks the half-open byte range [Start, End) a token occupies in
// the source. Spans of consecutive tokens never overlap and their start
// offsets are strictly increasing.
type Span struct {
	Start int
	End   int
}

// Token is a single lexical unit of CSS text. Tokens are immutable once
// produced by the scanner.
//
// Value holds the kind-specific payload: the name of an Ident or
// AtKeyword (without the "@"), the content of a String (without its
// quotes, escapes kept verbatim), the numeric representation of a
// Number (without its unit), the single character of a Delim, the raw
// run of a Whitespace token, or a Comment including its "/*" and "*/"
// delimiters.
type Token struct {
	Kind   Kind
	Value  string
	Number float64 // parsed value, Number only
	Unit   string  // ident-like tail folded into a Number, "" when absent
	Ending byte    // quote character, String only
	Span   Span
}

// Text returns the token's lexeme as it appears in CSS text. Printing
// every token of a stream back to back (whitespace included)
// reconstructs an equivalent source.
func (t Token) Text() string {
	switch t.Kind {
	case AtKeyword:
		return "@" + t.Value
	case String:
		q := string(t.Ending)
		return q + t.Value + q
	case Number:
		return t.Value + t.Unit
	case EOF:
		return ""
	}
	return t.Value
}

// Fuses reports whether printing next directly after prev, with no
// separator, would change token identity on re-tokenization. The set is
// a conservative superset of the exact fusion pairs: every genuine
// fusion (ident·ident, ident·number, number·unit, number·number with a
// leading digit, dot or sign, a hyphen or "@" absorbing a following
// name, "/" opening a comment) answers true, and a handful of safe
// pairs such as an ident before "+3" answer true as well.
func Fuses(prev, next Token) bool {
	switch prev.Kind {
	case Ident, AtKeyword, Number:
		switch next.Kind {
		case Ident, Number:
			return true
		case Delim:
			// A trailing hyphen would be absorbed into the name.
			return next.Value == "-"
		}
	case Delim:
		switch prev.Value {
		case "-":
			return next.Kind == Ident || next.Kind == Number
		case "+", ".":
			return next.Kind == Number
		case "@":
			return next.Kind == Ident
		case "/":
			return next.Kind == Comment || (next.Kind == Delim && next.Value == "*")
		}
	}
	return false
}

// String returns a debug form such as `IDENT "color" [4..9)`.
func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("EOF [%d..%d)", t.Span.Start, t.Span.End)
	}
	return fmt.Sprintf("%s %q [%d..%d)", t.Kind, t.Text(), t.Span.Start, t.Span.End)
}
