package cssmin_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cssmin"
	"cssmin/ast"
	"cssmin/parser"
)

// corpus holds valid inputs exercising every construct the pipeline
// understands; the property tests below run over all of them.
var corpus = []string{
	``,
	`a{}`,
	`a,   b {  color : red ;  }`,
	`/* c */ .x{margin:0px}`,
	"a {\n\tmargin : 0 auto ;\n\tpadding : 0 ;\n}",
	`a { color: red !important }`,
	`h1 , h2 > p , ul li { font : 12px / 1.5 "Fira Sans" , serif }`,
	`@import url( "screen.css" ) screen ;`,
	`@charset "utf-8";`,
	`@media screen and (max-width: 600px) { .nav { display : none } a { color : red } }`,
	`@font-face { font-family : "Mono" ; src : local( "Mono" ) }`,
	`@media print { @page { margin : 1cm } }`,
	`@media x { @import "y"; }`,
	`@supports ( display : grid ) { main { display : grid } }`,
	`.a[href = "x"] + .b { background : url( "x.png" ) no-repeat }`,
}

func TestMinify_Literals(t *testing.T) {
	out, err := cssmin.Minify([]byte(`a,   b {  color : red ;  }`))
	require.NoError(t, err)
	assert.Equal(t, `a,b{color:red}`, string(out))

	out, err = cssmin.Minify([]byte(`/* c */ .x{margin:0px}`))
	require.NoError(t, err)
	assert.Equal(t, `.x{margin:0px}`, string(out))
}

func TestMinify_EmptyInput(t *testing.T) {
	out, err := cssmin.Minify(nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	s, err := cssmin.MinifyString("")
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestMinify_MalformedInput(t *testing.T) {
	_, err := cssmin.Minify([]byte(`a { color: red`))
	require.Error(t, err)
	var perr *parser.Error
	require.True(t, errors.As(err, &perr), "got %T: %v", err, err)
	assert.Equal(t, parser.UnbalancedBraces, perr.Kind)
}

// Minifying already-minified output must be a fixed point.
func TestMinify_Idempotent(t *testing.T) {
	for _, src := range corpus {
		once, err := cssmin.MinifyString(src)
		require.NoError(t, err, "input: %q", src)
		twice, err := cssmin.MinifyString(once)
		require.NoError(t, err, "minified: %q", once)
		assert.Equal(t, once, twice, "input: %q", src)
	}
}

// Minification only removes bytes: whitespace, comments, optional
// semicolons. Output never grows.
func TestMinify_SizeNonIncrease(t *testing.T) {
	for _, src := range corpus {
		out, err := cssmin.Minify([]byte(src))
		require.NoError(t, err, "input: %q", src)
		assert.LessOrEqual(t, len(out), len(src), "input: %q", src)
	}
}

// Minification changes bytes, not structure: the minified output parses
// to the same rules, selectors and declarations as the input.
func TestMinify_StructurePreserved(t *testing.T) {
	for _, src := range corpus {
		before, err := cssmin.Parse([]byte(src))
		require.NoError(t, err, "input: %q", src)

		out, err := cssmin.Minify([]byte(src))
		require.NoError(t, err, "input: %q", src)
		after, err := cssmin.Parse(out)
		require.NoError(t, err, "minified: %q", out)

		assertSameStructure(t, before, after, src)
	}
}

func assertSameStructure(t *testing.T, before, after *ast.StyleSheet, src string) {
	t.Helper()
	require.Equal(t, len(before.Rules), len(after.Rules), "rule count, input: %q", src)
	for i := range before.Rules {
		assertSameRule(t, before.Rules[i], after.Rules[i], src)
	}
}

func assertSameRule(t *testing.T, before, after ast.Rule, src string) {
	t.Helper()
	switch b := before.(type) {
	case *ast.QualifiedRule:
		a, ok := after.(*ast.QualifiedRule)
		require.True(t, ok, "rule kind changed, input: %q", src)
		assert.Equal(t, b.Selectors, a.Selectors, "input: %q", src)
		require.Equal(t, len(b.Declarations), len(a.Declarations), "input: %q", src)
		for i := range b.Declarations {
			assertSameDeclaration(t, b.Declarations[i], a.Declarations[i], src)
		}
	case *ast.AtRule:
		a, ok := after.(*ast.AtRule)
		require.True(t, ok, "rule kind changed, input: %q", src)
		assert.Equal(t, b.Name, a.Name, "input: %q", src)
		require.Equal(t, b.Block == nil, a.Block == nil, "input: %q", src)
		if b.Block != nil {
			require.Equal(t, len(b.Block.Items), len(a.Block.Items), "input: %q", src)
			for i := range b.Block.Items {
				switch bi := b.Block.Items[i].(type) {
				case *ast.Declaration:
					ai, ok := a.Block.Items[i].(*ast.Declaration)
					require.True(t, ok, "block item kind changed, input: %q", src)
					assertSameDeclaration(t, bi, ai, src)
				case ast.Rule:
					ai, ok := a.Block.Items[i].(ast.Rule)
					require.True(t, ok, "block item kind changed, input: %q", src)
					assertSameRule(t, bi, ai, src)
				}
			}
		}
	}
}

func assertSameDeclaration(t *testing.T, before, after *ast.Declaration, src string) {
	t.Helper()
	assert.Equal(t, before.Property, after.Property, "input: %q", src)
	assert.Equal(t, before.Important, after.Important, "input: %q", src)
	require.Equal(t, len(before.Value), len(after.Value), "value length for %q, input: %q", before.Property, src)
	for i := range before.Value {
		assert.Equal(t, before.Value[i].Kind, after.Value[i].Kind, "input: %q", src)
		assert.Equal(t, before.Value[i].Text(), after.Value[i].Text(), "input: %q", src)
	}
}

func TestMinify_ErrorsHaveNoOutput(t *testing.T) {
	out, err := cssmin.Minify([]byte(`a { content: "oops`))
	require.Error(t, err)
	assert.Nil(t, out)
}

func BenchmarkMinify(b *testing.B) {
	src := []byte(`@media screen and (max-width: 600px) {
	.nav , .sidebar {  display : none ; }
	main {  margin : 0 auto ;  padding : 1.5em 2em ;  color : #333 ; }
}
a:hover { text-decoration : underline !important ; } /* tail comment */`)
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := cssmin.Minify(src); err != nil {
			b.Fatal(err)
		}
	}
}
