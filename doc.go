/*
Package cssmin implements a small CSS minifier: a scanner, a parser and
a minifying printer, composed by Minify.

This package is meant to be a low-level building block for tools that
need fast whitespace/comment elimination without a full CSSOM. It
changes bytes, not structure: re-parsing minified output yields the same
rules, selectors and declarations as the input.


# Basics

Minification occurs in three steps. First the scanner breaks the raw
bytes into tokens: identifiers, at-keywords, strings, numbers with
their units folded in, delimiters, whitespace runs and comments. The
tokens feed a parser which builds a tree of rules based on the brace
structure, and finally the printer walks that tree and serializes it
with every comment and every insignificant space removed.

The parser is strict. Input a minifier would have to guess about --
unbalanced braces, a missing colon, a selector-less rule -- aborts the
whole run with a typed error instead of producing mangled output.


# Abstract syntax tree

At the top level there is a StyleSheet, a sequence of rules. A rule is
either a qualified rule (a selector list plus a declaration block, such
as "a,b{color:red}") or an at-rule (an "@" name with a prelude and
either a ";" or a block, such as "@import" or "@media"). At-rule names
are treated as plain data: the parser preserves unknown at-rules
opaquely and only understands their structure.


# What is not here

Full CSS conformance is out of scope: url() and unicode-range tokens
are not specialized, escapes pass through verbatim, and there are no
semantic optimizations (shorthand merging, unused-selector removal).
The core performs no I/O; reading files, timing runs and reporting
sizes belong to cmd/cssmin.
*/
package cssmin
