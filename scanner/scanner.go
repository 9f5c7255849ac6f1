// Package scanner turns raw CSS bytes into a stream of tokens.
//
// The scanner makes a single forward pass over the input and cannot be
// restarted. Input is treated as a plain byte sequence: bytes outside
// the recognized ASCII punctuation (including any multi-byte encoding)
// pass through as name or string content.
package scanner

import (
	"fmt"
	"strconv"

	"cssmin/token"
)

// LexErrorKind classifies scanning failures.
type LexErrorKind int

const (
	// Unterminated marks a string or comment still open at end of input
	// (or, for strings, at a raw newline).
	Unterminated LexErrorKind = iota
)

// LexError is reported when the scanner cannot finish a token. The
// token stream ends early at the error; callers decide whether that is
// fatal.
type LexError struct {
	Kind   LexErrorKind
	Offset int
	What   string // "string" or "comment"
}

// Error returns the formatted string error message.
func (e *LexError) Error() string {
	return fmt.Sprintf("unterminated %s at offset %d", e.What, e.Offset)
}

// Scanner tokenizes a CSS source held in memory.
type Scanner struct {
	src []byte
	off int
	err *LexError
}

// New returns a new instance of Scanner reading from src.
func New(src []byte) *Scanner {
	return &Scanner{src: src}
}

// Err returns the lexical error that ended the stream early, if any.
func (s *Scanner) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// Scan returns the next token. After the end of input, or after a
// lexical error, it always returns an EOF token.
func (s *Scanner) Scan() token.Token {
	if s.err != nil || s.off >= len(s.src) {
		return token.Token{Kind: token.EOF, Span: token.Span{Start: s.off, End: s.off}}
	}

	start := s.off
	ch := s.src[s.off]

	switch {
	case isWhitespace(ch):
		return s.scanWhitespace(start)

	case ch == '"' || ch == '\'':
		return s.scanString(start)

	case ch == '/':
		if s.peekAt(1) == '*' {
			return s.scanComment(start)
		}
		return s.scanDelim(start)

	case ch == '@':
		if s.identAt(s.off + 1) {
			s.off++
			name := s.scanName()
			return token.Token{Kind: token.AtKeyword, Value: name, Span: token.Span{Start: start, End: s.off}}
		}
		return s.scanDelim(start)

	case ch == '+':
		if s.numberAt(s.off) {
			return s.scanNumeric(start)
		}
		return s.scanDelim(start)

	case ch == '-':
		if s.numberAt(s.off) {
			return s.scanNumeric(start)
		}
		if s.identAt(s.off) {
			return s.scanIdent(start)
		}
		return s.scanDelim(start)

	case ch == '.':
		if s.numberAt(s.off) {
			return s.scanNumeric(start)
		}
		return s.scanDelim(start)

	case isDigit(ch):
		return s.scanNumeric(start)

	case isNameStart(ch):
		return s.scanIdent(start)
	}

	return s.scanDelim(start)
}

// scanDelim consumes a single byte as a delimiter token.
func (s *Scanner) scanDelim(start int) token.Token {
	s.off++
	return token.Token{
		Kind:  token.Delim,
		Value: string(s.src[start:s.off]),
		Span:  token.Span{Start: start, End: s.off},
	}
}

// scanWhitespace consumes the current byte and all subsequent whitespace.
func (s *Scanner) scanWhitespace(start int) token.Token {
	for s.off < len(s.src) && isWhitespace(s.src[s.off]) {
		s.off++
	}
	return token.Token{
		Kind:  token.Whitespace,
		Value: string(s.src[start:s.off]),
		Span:  token.Span{Start: start, End: s.off},
	}
}

// scanString consumes a quoted string.
//
// All bytes and backslash-escaped bytes up to a matching, unescaped
// ending quote become the string's content, escapes kept verbatim. A
// raw newline or end of input before the closing quote is an
// Unterminated error.
func (s *Scanner) scanString(start int) token.Token {
	ending := s.src[s.off]
	s.off++
	for s.off < len(s.src) {
		ch := s.src[s.off]
		if ch == ending {
			s.off++
			return token.Token{
				Kind:   token.String,
				Value:  string(s.src[start+1 : s.off-1]),
				Ending: ending,
				Span:   token.Span{Start: start, End: s.off},
			}
		}
		if ch == '\n' {
			break
		}
		if ch == '\\' && s.off+1 < len(s.src) {
			s.off++
		}
		s.off++
	}
	s.err = &LexError{Kind: Unterminated, Offset: start, What: "string"}
	s.off = len(s.src)
	return token.Token{Kind: token.EOF, Span: token.Span{Start: s.off, End: s.off}}
}

// scanComment consumes all bytes up to "*/", inclusive.
// The full comment, delimiters included, becomes the token's value.
func (s *Scanner) scanComment(start int) token.Token {
	s.off += 2
	for s.off < len(s.src) {
		if s.src[s.off] == '*' && s.peekAt(1) == '/' {
			s.off += 2
			return token.Token{
				Kind:  token.Comment,
				Value: string(s.src[start:s.off]),
				Span:  token.Span{Start: start, End: s.off},
			}
		}
		s.off++
	}
	s.err = &LexError{Kind: Unterminated, Offset: start, What: "comment"}
	return token.Token{Kind: token.EOF, Span: token.Span{Start: s.off, End: s.off}}
}

// scanNumeric consumes a number: optional sign, digits, optional
// fraction, optional exponent, and an optional ident-like unit folded
// into the same token.
func (s *Scanner) scanNumeric(start int) token.Token {
	if ch := s.src[s.off]; ch == '+' || ch == '-' {
		s.off++
	}
	s.scanDigits()

	// Fractional part only when a digit follows the full stop.
	if s.off < len(s.src) && s.src[s.off] == '.' && isDigit(s.peekAt(1)) {
		s.off++
		s.scanDigits()
	}

	// Scientific notation (e0, e+0, e-0, E0, E+0, E-0). A bare "e" or
	// "e-" with no digit belongs to the unit instead.
	if ch := s.peekAt(0); ch == 'e' || ch == 'E' {
		if isDigit(s.peekAt(1)) {
			s.off++
			s.scanDigits()
		} else if p1 := s.peekAt(1); (p1 == '+' || p1 == '-') && isDigit(s.peekAt(2)) {
			s.off += 2
			s.scanDigits()
		}
	}

	repr := string(s.src[start:s.off])
	num, _ := strconv.ParseFloat(repr, 64)

	var unit string
	if s.identAt(s.off) {
		unit = s.scanName()
	}

	return token.Token{
		Kind:   token.Number,
		Value:  repr,
		Number: num,
		Unit:   unit,
		Span:   token.Span{Start: start, End: s.off},
	}
}

// scanDigits consumes a contiguous series of digits.
func (s *Scanner) scanDigits() {
	for s.off < len(s.src) && isDigit(s.src[s.off]) {
		s.off++
	}
}

// scanIdent consumes an ident token starting at the current offset.
func (s *Scanner) scanIdent(start int) token.Token {
	name := s.scanName()
	return token.Token{
		Kind:  token.Ident,
		Value: name,
		Span:  token.Span{Start: start, End: s.off},
	}
}

// scanName consumes contiguous name bytes from the current offset.
func (s *Scanner) scanName() string {
	start := s.off
	for s.off < len(s.src) && isName(s.src[s.off]) {
		s.off++
	}
	return string(s.src[start:s.off])
}

// peekAt returns the byte n positions past the current offset, or 0 at
// end of input.
func (s *Scanner) peekAt(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}
	return s.src[s.off+n]
}

// identAt reports whether an ident begins at offset i: a name-start
// byte, or one or two hyphens followed by a name-start byte.
func (s *Scanner) identAt(i int) bool {
	for i < len(s.src) && s.src[i] == '-' {
		i++
	}
	return i < len(s.src) && isNameStart(s.src[i])
}

// numberAt reports whether a number begins at offset i: an optional
// sign, then a digit or a full stop followed by a digit.
func (s *Scanner) numberAt(i int) bool {
	if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
		i++
	}
	if i < len(s.src) && s.src[i] == '.' {
		i++
	}
	return i < len(s.src) && isDigit(s.src[i])
}

// isWhitespace returns true if the byte is a space, tab, or newline.
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

// isLetter returns true if the byte is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if the byte is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isNameStart returns true if the byte can start a name. Bytes beyond
// ASCII are name content, which keeps multi-byte sequences intact.
func isNameStart(ch byte) bool {
	return isLetter(ch) || ch == '_' || ch >= 0x80
}

// isName returns true if the byte is a name code point.
func isName(ch byte) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}
