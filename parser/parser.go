// Package parser builds a syntax tree from a token stream.
//
// The grammar is delimiter-driven: a rule's prelude is everything up to
// the next "{" or ";" at the current nesting depth, so recursive
// descent over the brace structure needs no backtracking. The parser
// validates structure only; at-rule names and property names are
// preserved opaquely, never interpreted.
//
// There is no error recovery. A malformed construct aborts the whole
// parse, mirroring the reality that a minifier must not silently mangle
// invalid input.
package parser

import (
	"fmt"
	"strings"

	"cssmin/ast"
	"cssmin/token"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnbalancedBraces
	UnexpectedEOF
)

// Error represents a syntax error at a byte offset in the source.
type Error struct {
	Kind    ErrorKind
	Offset  int
	Message string
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
}

// Scanner represents a type that can produce a token stream. Err
// reports the lexical error that ended the stream early, if any.
type Scanner interface {
	Scan() token.Token
	Err() error
}

// TokenScanner is a Scanner over a fixed list of tokens.
type TokenScanner struct {
	i      int
	tokens []token.Token
}

// NewTokenScanner returns a new instance of TokenScanner.
func NewTokenScanner(tokens []token.Token) *TokenScanner {
	return &TokenScanner{tokens: tokens}
}

// Scan returns the next token, or EOF past the end of the list.
func (s *TokenScanner) Scan() token.Token {
	if s.i >= len(s.tokens) {
		var end int
		if n := len(s.tokens); n > 0 {
			end = s.tokens[n-1].Span.End
		}
		return token.Token{Kind: token.EOF, Span: token.Span{Start: end, End: end}}
	}
	tok := s.tokens[s.i]
	s.i++
	return tok
}

// Err always returns nil; a fixed token list has no lexical errors.
func (s *TokenScanner) Err() error { return nil }

// Parse consumes a token stream into a stylesheet. It fails with
// *Error on malformed structure, or surfaces the scanner's lexical
// error unchanged when the stream ended early.
func Parse(s Scanner) (*ast.StyleSheet, error) {
	p := &parser{s: s}
	ss := &ast.StyleSheet{}
	for {
		tok := p.next()
		switch {
		case tok.Kind == token.Whitespace || tok.Kind == token.Comment:
			// nop
		case tok.Kind == token.EOF:
			if err := p.s.Err(); err != nil {
				return nil, err
			}
			return ss, nil
		case tok.Kind == token.AtKeyword:
			r, err := p.parseAtRule(tok)
			if err != nil {
				return nil, err
			}
			ss.Rules = append(ss.Rules, r)
		case tok.Kind == token.Delim && tok.Value == "}":
			return nil, &Error{Kind: UnbalancedBraces, Offset: tok.Span.Start, Message: "unmatched '}'"}
		default:
			p.unread(tok)
			r, err := p.parseQualifiedRule()
			if err != nil {
				return nil, err
			}
			ss.Rules = append(ss.Rules, r)
		}
	}
}

// parser carries the stream plus a one-token pushback buffer.
type parser struct {
	s    Scanner
	look *token.Token
}

func (p *parser) next() token.Token {
	if p.look != nil {
		tok := *p.look
		p.look = nil
		return tok
	}
	return p.s.Scan()
}

func (p *parser) unread(tok token.Token) {
	p.look = &tok
}

// eofError surfaces a pending lexical error, or builds the parse error
// that applies at end of input.
func (p *parser) eofError(kind ErrorKind, off int, msg string) error {
	if err := p.s.Err(); err != nil {
		return err
	}
	return &Error{Kind: kind, Offset: off, Message: msg}
}

// parseQualifiedRule consumes a selector prelude up to "{" and then the
// declaration block.
func (p *parser) parseQualifiedRule() (*ast.QualifiedRule, error) {
	var prelude []token.Token
	for {
		tok := p.next()
		switch {
		case tok.Kind == token.EOF:
			return nil, p.eofError(UnexpectedEOF, tok.Span.Start, "unexpected EOF in selector")
		case tok.Kind == token.Delim && tok.Value == ";":
			return nil, &Error{Kind: UnexpectedToken, Offset: tok.Span.Start, Message: "unexpected ';' in selector"}
		case tok.Kind == token.Delim && tok.Value == "}":
			return nil, &Error{Kind: UnbalancedBraces, Offset: tok.Span.Start, Message: "unmatched '}'"}
		case tok.Kind == token.Delim && tok.Value == "{":
			selectors, err := splitSelectors(prelude, tok.Span.Start)
			if err != nil {
				return nil, err
			}
			decls, err := p.parseDeclarationBlock()
			if err != nil {
				return nil, err
			}
			return &ast.QualifiedRule{Selectors: selectors, Declarations: decls}, nil
		default:
			prelude = append(prelude, tok)
		}
	}
}

// parseDeclarationBlock consumes declarations up to the closing "}".
// The opening "{" has already been consumed.
func (p *parser) parseDeclarationBlock() ([]*ast.Declaration, error) {
	decls := []*ast.Declaration{}
	for {
		tok := p.next()
		switch {
		case tok.Kind == token.Whitespace || tok.Kind == token.Comment:
			// nop
		case tok.Kind == token.Delim && tok.Value == ";":
			// nop
		case tok.Kind == token.Delim && tok.Value == "}":
			return decls, nil
		case tok.Kind == token.EOF:
			return nil, p.eofError(UnbalancedBraces, tok.Span.Start, "unclosed block")
		default:
			p.unread(tok)
			toks, err := p.collectUntilSemicolonOrClose()
			if err != nil {
				return nil, err
			}
			d, err := parseDeclarationTokens(toks)
			if err != nil {
				return nil, err
			}
			decls = append(decls, d)
		}
	}
}

// collectUntilSemicolonOrClose gathers the tokens of one declaration.
// The ";" is consumed; a "}" is pushed back so the block loop can close.
func (p *parser) collectUntilSemicolonOrClose() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok := p.next()
		switch {
		case tok.Kind == token.EOF:
			return nil, p.eofError(UnbalancedBraces, tok.Span.Start, "unclosed block")
		case tok.Kind == token.Delim && tok.Value == ";":
			return toks, nil
		case tok.Kind == token.Delim && tok.Value == "}":
			p.unread(tok)
			return toks, nil
		default:
			toks = append(toks, tok)
		}
	}
}

// parseDeclarationTokens parses "property : value ... [!important]"
// from the collected tokens. Whitespace and comments are dropped from
// the value; they carry no meaning beyond separation, which the printer
// re-derives.
func parseDeclarationTokens(toks []token.Token) (*ast.Declaration, error) {
	i := 0
	for i < len(toks) && (toks[i].Kind == token.Whitespace || toks[i].Kind == token.Comment) {
		i++
	}
	if i >= len(toks) || toks[i].Kind != token.Ident {
		off := 0
		what := "EOF"
		if i < len(toks) {
			off = toks[i].Span.Start
			what = fmt.Sprintf("%q", toks[i].Text())
		}
		return nil, &Error{Kind: UnexpectedToken, Offset: off, Message: "expected property name, got " + what}
	}
	d := &ast.Declaration{Property: toks[i].Value}
	i++
	for i < len(toks) && (toks[i].Kind == token.Whitespace || toks[i].Kind == token.Comment) {
		i++
	}
	if i >= len(toks) || toks[i].Kind != token.Delim || toks[i].Value != ":" {
		off := 0
		what := "EOF"
		if i < len(toks) {
			off = toks[i].Span.Start
			what = fmt.Sprintf("%q", toks[i].Text())
		} else if len(toks) > 0 {
			off = toks[len(toks)-1].Span.End
		}
		return nil, &Error{Kind: UnexpectedToken, Offset: off, Message: "expected ':' after property name, got " + what}
	}
	i++
	for ; i < len(toks); i++ {
		if toks[i].Kind == token.Whitespace || toks[i].Kind == token.Comment {
			continue
		}
		d.Value = append(d.Value, toks[i])
	}
	d.Value, d.Important = cutImportant(d.Value)
	return d, nil
}

// cutImportant strips a trailing case-insensitive "!important" from the
// value and reports whether it was present.
func cutImportant(values []token.Token) ([]token.Token, bool) {
	n := len(values)
	if n < 2 {
		return values, false
	}
	bang, ident := values[n-2], values[n-1]
	if bang.Kind == token.Delim && bang.Value == "!" &&
		ident.Kind == token.Ident && strings.EqualFold(ident.Value, "important") {
		return values[:n-2], true
	}
	return values, false
}

// parseAtRule consumes an at-rule. The at-keyword token has already
// been consumed. A prelude followed by ";" is a statement at-rule;
// followed by "{" it is a block at-rule. EOF and an enclosing "}" also
// terminate a statement at-rule, so minified output that drops an
// optional trailing ";" re-parses.
func (p *parser) parseAtRule(at token.Token) (*ast.AtRule, error) {
	r := &ast.AtRule{Name: at.Value}
	var prelude []token.Token
	for {
		tok := p.next()
		switch {
		case tok.Kind == token.EOF:
			if err := p.s.Err(); err != nil {
				return nil, err
			}
			r.Prelude = normalizePrelude(prelude)
			return r, nil
		case tok.Kind == token.Delim && tok.Value == ";":
			r.Prelude = normalizePrelude(prelude)
			return r, nil
		case tok.Kind == token.Delim && tok.Value == "}":
			// The brace belongs to the enclosing block; push it back so
			// the block loop can close (or, at top level, fail).
			p.unread(tok)
			r.Prelude = normalizePrelude(prelude)
			return r, nil
		case tok.Kind == token.Delim && tok.Value == "{":
			r.Prelude = normalizePrelude(prelude)
			block, err := p.parseAtBlock()
			if err != nil {
				return nil, err
			}
			r.Block = block
			return r, nil
		default:
			prelude = append(prelude, tok)
		}
	}
}

// parseAtBlock consumes the contents of an at-rule block up to the
// closing "}". Each item is disambiguated by its terminator: an item
// reaching "{" first is a nested rule, an item reaching ";" or the
// closing "}" first is a declaration.
func (p *parser) parseAtBlock() (*ast.Block, error) {
	b := &ast.Block{}
	for {
		tok := p.next()
		switch {
		case tok.Kind == token.Whitespace || tok.Kind == token.Comment:
			// nop
		case tok.Kind == token.Delim && tok.Value == ";":
			// nop
		case tok.Kind == token.Delim && tok.Value == "}":
			return b, nil
		case tok.Kind == token.EOF:
			return nil, p.eofError(UnbalancedBraces, tok.Span.Start, "unclosed block")
		case tok.Kind == token.AtKeyword:
			r, err := p.parseAtRule(tok)
			if err != nil {
				return nil, err
			}
			b.Items = append(b.Items, r)
		default:
			p.unread(tok)
			item, err := p.parseAtBlockItem()
			if err != nil {
				return nil, err
			}
			b.Items = append(b.Items, item)
		}
	}
}

// parseAtBlockItem reads tokens up to the first "{", ";" or "}" and
// finishes the item as a nested rule or a declaration accordingly.
func (p *parser) parseAtBlockItem() (ast.Node, error) {
	var toks []token.Token
	for {
		tok := p.next()
		switch {
		case tok.Kind == token.EOF:
			return nil, p.eofError(UnbalancedBraces, tok.Span.Start, "unclosed block")
		case tok.Kind == token.Delim && tok.Value == "{":
			selectors, err := splitSelectors(toks, tok.Span.Start)
			if err != nil {
				return nil, err
			}
			decls, err := p.parseDeclarationBlock()
			if err != nil {
				return nil, err
			}
			return &ast.QualifiedRule{Selectors: selectors, Declarations: decls}, nil
		case tok.Kind == token.Delim && tok.Value == ";":
			return parseDeclarationTokens(toks)
		case tok.Kind == token.Delim && tok.Value == "}":
			p.unread(tok)
			return parseDeclarationTokens(toks)
		default:
			toks = append(toks, tok)
		}
	}
}

// splitSelectors splits a qualified-rule prelude on top-level commas
// and flattens each selector to its minimal text. braceOff is the
// offset of the opening brace, used when the prelude is empty.
func splitSelectors(prelude []token.Token, braceOff int) ([]string, error) {
	var selectors []string
	var group []token.Token
	flush := func(at int) error {
		text := selectorText(group)
		if text == "" {
			return &Error{Kind: UnexpectedToken, Offset: at, Message: "empty selector"}
		}
		selectors = append(selectors, text)
		group = group[:0]
		return nil
	}
	for _, tok := range prelude {
		if tok.Kind == token.Delim && tok.Value == "," {
			if err := flush(tok.Span.Start); err != nil {
				return nil, err
			}
			continue
		}
		group = append(group, tok)
	}
	if err := flush(braceOff); err != nil {
		return nil, err
	}
	return selectors, nil
}

// selectorText flattens selector tokens to text. Whitespace is the
// descendant combinator, so a single space survives between tokens
// unless it sits next to an explicit combinator (">", "+", "~") or a
// bracket edge, where it is insignificant. A comment with no adjacent
// whitespace separates tokens without combining them, so it vanishes
// unless its neighbors would fuse.
func selectorText(toks []token.Token) string {
	var buf strings.Builder
	pendingSpace := false
	pendingComment := false
	var prev token.Token
	havePrev := false
	for _, tok := range toks {
		switch tok.Kind {
		case token.Whitespace:
			if havePrev {
				pendingSpace = true
			}
		case token.Comment:
			pendingComment = true
		default:
			if havePrev {
				if pendingSpace && !suppressSelectorSpace(prev, tok) {
					buf.WriteByte(' ')
				} else if !pendingSpace && pendingComment && token.Fuses(prev, tok) {
					buf.WriteByte(' ')
				}
			}
			pendingSpace = false
			pendingComment = false
			buf.WriteString(tok.Text())
			prev = tok
			havePrev = true
		}
	}
	return buf.String()
}

// suppressSelectorSpace reports whether whitespace between two selector
// tokens carries no meaning and can be dropped.
func suppressSelectorSpace(prev, next token.Token) bool {
	if prev.Kind == token.Delim {
		switch prev.Value {
		case ">", "+", "~", "(", "[", "=":
			return true
		}
	}
	if next.Kind == token.Delim {
		switch next.Value {
		case ">", "+", "~", ")", "]", "=":
			return true
		}
	}
	return false
}

// normalizePrelude trims whitespace at both ends of an at-rule prelude
// and collapses whitespace runs into single tokens. Comments count as
// whitespace here: prelude whitespace is content, so a separator slot
// stays a separator.
func normalizePrelude(prelude []token.Token) []token.Token {
	var out []token.Token
	for _, tok := range prelude {
		switch tok.Kind {
		case token.Whitespace, token.Comment:
			if len(out) == 0 || out[len(out)-1].Kind == token.Whitespace {
				continue
			}
			out = append(out, token.Token{Kind: token.Whitespace, Value: " ", Span: tok.Span})
		default:
			out = append(out, tok)
		}
	}
	for len(out) > 0 && out[len(out)-1].Kind == token.Whitespace {
		out = out[:len(out)-1]
	}
	return out
}
