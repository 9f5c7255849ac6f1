package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cssmin/ast"
	"cssmin/token"
)

// Ensure that nodes render a readable debug form.
func TestNode_String(t *testing.T) {
	decl := &ast.Declaration{
		Property: "color",
		Value:    []token.Token{{Kind: token.Ident, Value: "red"}},
	}
	assert.Equal(t, "color: red", decl.String())

	important := &ast.Declaration{
		Property:  "width",
		Value:     []token.Token{{Kind: token.Number, Value: "10", Unit: "px"}},
		Important: true,
	}
	assert.Equal(t, "width: 10px !important", important.String())

	rule := &ast.QualifiedRule{
		Selectors:    []string{"a", "b"},
		Declarations: []*ast.Declaration{decl},
	}
	assert.Equal(t, "a, b { color: red; }", rule.String())

	stmt := &ast.AtRule{
		Name:    "import",
		Prelude: []token.Token{{Kind: token.String, Value: "x.css", Ending: '"'}},
	}
	assert.Equal(t, `@import "x.css";`, stmt.String())

	block := &ast.AtRule{
		Name:    "media",
		Prelude: []token.Token{{Kind: token.Ident, Value: "print"}},
		Block:   &ast.Block{Items: []ast.Node{rule}},
	}
	assert.Equal(t, "@media print { a, b { color: red; } }", block.String())

	sheet := &ast.StyleSheet{Rules: []ast.Rule{stmt, rule}}
	assert.Equal(t, "@import \"x.css\";\na, b { color: red; }", sheet.String())
}
