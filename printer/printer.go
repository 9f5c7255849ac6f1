// Package printer serializes a syntax tree back to CSS with all
// insignificant whitespace and every comment eliminated.
//
// The only cross-token memory is the previously emitted value token,
// threaded through each declaration as a local: a separating space is
// re-inserted exactly where omitting it would fuse two tokens into a
// different one (see token.Fuses). Printing never fails on a well-formed
// tree, and concurrent prints of independent trees need no coordination.
//
// Declared policies, fixed so output is byte-stable:
//   - the trailing ";" of the last declaration in a block is always
//     omitted, as is the ";" of a statement at-rule in final position;
//   - at-rule preludes keep their (normalized) single-space separators
//     and are preceded by one space after the at-keyword name;
//   - "!important" prints with no internal whitespace.
package printer

import (
	"bytes"

	"cssmin/ast"
	"cssmin/token"
)

// Print serializes the stylesheet to minified CSS.
func Print(ss *ast.StyleSheet) []byte {
	var buf bytes.Buffer
	for i, r := range ss.Rules {
		printRule(&buf, r, i == len(ss.Rules)-1)
	}
	return buf.Bytes()
}

func printRule(buf *bytes.Buffer, r ast.Rule, last bool) {
	switch r := r.(type) {
	case *ast.QualifiedRule:
		for i, sel := range r.Selectors {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(sel)
		}
		buf.WriteByte('{')
		for i, d := range r.Declarations {
			if i > 0 {
				buf.WriteByte(';')
			}
			printDeclaration(buf, d)
		}
		buf.WriteByte('}')

	case *ast.AtRule:
		buf.WriteByte('@')
		buf.WriteString(r.Name)
		if len(r.Prelude) > 0 {
			buf.WriteByte(' ')
			printPrelude(buf, r.Prelude)
		}
		if r.Block == nil {
			// The semicolon is a separator; in final position the
			// statement at-rule is already delimited by end of input
			// or the enclosing "}".
			if !last {
				buf.WriteByte(';')
			}
			return
		}
		buf.WriteByte('{')
		printBlockItems(buf, r.Block.Items)
		buf.WriteByte('}')
	}
}

// printBlockItems prints mixed at-rule block content. A declaration
// keeps its ";" whenever anything follows it, so the next item cannot
// be misread as part of its value.
func printBlockItems(buf *bytes.Buffer, items []ast.Node) {
	for i, item := range items {
		last := i == len(items)-1
		switch item := item.(type) {
		case *ast.Declaration:
			printDeclaration(buf, item)
			if !last {
				buf.WriteByte(';')
			}
		case ast.Rule:
			printRule(buf, item, last)
		}
	}
}

// printDeclaration prints "property:value" with fusion-avoiding spaces
// between value tokens and a normalized "!important" when set.
func printDeclaration(buf *bytes.Buffer, d *ast.Declaration) {
	buf.WriteString(d.Property)
	buf.WriteByte(':')
	var prev token.Token
	for i, tok := range d.Value {
		if i > 0 && token.Fuses(prev, tok) {
			buf.WriteByte(' ')
		}
		buf.WriteString(tok.Text())
		prev = tok
	}
	if d.Important {
		buf.WriteString("!important")
	}
}

// printPrelude prints at-rule prelude tokens. Prelude whitespace is
// content: the parser has already collapsed it, one token per
// separator slot.
func printPrelude(buf *bytes.Buffer, prelude []token.Token) {
	for _, tok := range prelude {
		if tok.Kind == token.Whitespace {
			buf.WriteByte(' ')
			continue
		}
		buf.WriteString(tok.Text())
	}
}
