// Package ast defines the syntax tree produced by the parser.
//
// The tree is built once, is immutable afterward, and every node is
// owned by exactly one parent: a StyleSheet owns its Rules, an AtRule
// owns its prelude tokens and optional Block, and a QualifiedRule owns
// its Declarations. No cycles, no sharing.
package ast

import (
	"bytes"
	"strings"

	"cssmin/token"
)

// Node represents a node in the CSS abstract syntax tree.
type Node interface {
	node()
	String() string
}

func (_ *StyleSheet) node()    {}
func (_ *AtRule) node()        {}
func (_ *QualifiedRule) node() {}
func (_ *Block) node()         {}
func (_ *Declaration) node()   {}

// StyleSheet represents a top-level CSS stylesheet: an ordered sequence
// of rules.
type StyleSheet struct {
	Rules []Rule
}

func (s *StyleSheet) String() string {
	var buf bytes.Buffer
	for i, r := range s.Rules {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(r.String())
	}
	return buf.String()
}

// Rule represents a qualified rule or at-rule.
type Rule interface {
	Node
	rule()
}

func (_ *AtRule) rule()        {}
func (_ *QualifiedRule) rule() {}

// QualifiedRule represents a selector list plus a declaration block.
// It always has at least one selector.
type QualifiedRule struct {
	Selectors    []string
	Declarations []*Declaration
}

func (r *QualifiedRule) String() string {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(r.Selectors, ", "))
	buf.WriteString(" {")
	for _, d := range r.Declarations {
		buf.WriteString(" " + d.String() + ";")
	}
	buf.WriteString(" }")
	return buf.String()
}

// AtRule represents a rule starting with an "@" symbol. A nil Block
// marks a statement at-rule (terminated by a semicolon); a statement
// at-rule never contains declarations. At-rule names are not
// interpreted, only their structure is.
type AtRule struct {
	Name    string
	Prelude []token.Token
	Block   *Block
}

func (r *AtRule) String() string {
	var buf bytes.Buffer
	buf.WriteString("@" + r.Name)
	if len(r.Prelude) > 0 {
		buf.WriteString(" ")
		for _, t := range r.Prelude {
			buf.WriteString(t.Text())
		}
	}
	if r.Block != nil {
		buf.WriteString(" " + r.Block.String())
	} else {
		buf.WriteString(";")
	}
	return buf.String()
}

// Block represents the {}-block of an at-rule. Items holds nested rules
// and declarations in source order; @media carries rules, @font-face
// carries declarations, and either may mix.
type Block struct {
	Items []Node
}

func (b *Block) String() string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for _, item := range b.Items {
		buf.WriteString(" " + item.String())
		if _, ok := item.(*Declaration); ok {
			buf.WriteString(";")
		}
	}
	buf.WriteString(" }")
	return buf.String()
}

// Declaration represents a single property/value pair. Value holds the
// significant tokens only: whitespace and comments are dropped when the
// declaration is parsed.
type Declaration struct {
	Property  string
	Value     []token.Token
	Important bool
}

func (d *Declaration) String() string {
	var buf bytes.Buffer
	buf.WriteString(d.Property + ": ")
	for i, t := range d.Value {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(t.Text())
	}
	if d.Important {
		buf.WriteString(" !important")
	}
	return buf.String()
}
