package cssmin

import (
	"cssmin/ast"
	"cssmin/parser"
	"cssmin/printer"
	"cssmin/scanner"
)

// Minify tokenizes, parses and reprints src with whitespace and
// comments eliminated. On a lexical or syntax error it returns the
// error unchanged and no partial output.
//
// Independent calls share no state and are safe to run concurrently.
func Minify(src []byte) ([]byte, error) {
	sheet, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return printer.Print(sheet), nil
}

// MinifyString is Minify for string input and output.
func MinifyString(src string) (string, error) {
	out, err := Minify([]byte(src))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Parse tokenizes and parses src into a syntax tree. Most callers want
// Minify; Parse is exposed for tools that inspect the tree.
func Parse(src []byte) (*ast.StyleSheet, error) {
	return parser.Parse(scanner.New(src))
}
