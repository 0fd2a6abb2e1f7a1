// Package ast provides the Abstract Syntax Tree (AST) definitions for tag
// expressions.
//
// A tag expression combines atomic tags (identifiers such as 39500 or
// 79500.099) with three operators:
//
//	a..b    inclusive range between two tags
//	a,b     conjunction
//	a||b    disjunction
//
// # Core Types
//
// Node: sealed interface implemented by the four node kinds
//
// Tag: an atomic identifier
//
// Range: an inclusive range whose endpoints are always *Tag
//
// And: an n-ary conjunction, never containing an *And as a direct child
//
// Or: an n-ary disjunction, never containing an *Or as a direct child
//
// # Basic Usage
//
// Inspect a parsed tree with a type switch:
//
//	switch n := node.(type) {
//	case *ast.Tag:
//	    fmt.Println("tag", n.Value)
//	case *ast.Range:
//	    fmt.Println("range", n.From.Value, n.To.Value)
//	case *ast.And:
//	    fmt.Println("and of", len(n.Children))
//	case *ast.Or:
//	    fmt.Println("or of", len(n.Children))
//	}
//
// Or walk it with a Visitor:
//
//	err := ast.Walk(node, visitor)
//
// # Generic Form
//
// ToValue converts a tree into the generic ordered shape consumed by the
// highlight package and by example tables:
//
//	{"type": "RANGE", "from": {"type": "TAG", "value": "39500"}, "to": {...}}
//
// FromValue performs the reverse conversion.
//
// # Immutability
//
// Nodes are built bottom-up by the parsers and must be treated as immutable
// once returned. Each node is owned by exactly one parent.
package ast
