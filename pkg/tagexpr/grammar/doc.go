// Package grammar implements the formal tag expression grammar.
//
// The grammar, from lowest to highest precedence:
//
//	OrExpr    = OrExpr "||" AndExpr | AndExpr
//	AndExpr   = AndExpr "," RangeExpr | RangeExpr
//	RangeExpr = Ident ".." Ident | Ident
//
// An Ident is a run of letters, digits 0-9, '.', '_' and '-' that never
// begins an operator. Whitespace and // line comments between tokens are
// ignored.
//
// Left recursion is expressed as repetition and folded left so that repeated
// applications of one operator produce a single n-ary node:
//
//	a||b||c  ->  Or(a, b, c)
//	a,b||c   ->  Or(And(a, b), c)
//
// The lexer is a set of regular expressions, which cannot express the
// "not followed by another dot" condition on a trailing '.'. An identifier
// ending in a single dot, such as "a.", is therefore rejected here and
// recovered by the fallback parser, which yields the same tree.
//
// A Grammar is immutable once built and safe for concurrent use.
package grammar
