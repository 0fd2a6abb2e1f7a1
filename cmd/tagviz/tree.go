package main

import (
	"github.com/charmbracelet/lipgloss/tree"

	"mercator-hq/tagviz/pkg/tagexpr/ast"
)

// renderTree draws a tag expression as an outline, one node per line.
func renderTree(n ast.Node) string {
	if n == nil {
		return "(empty)"
	}
	return buildTree(n).String()
}

func buildTree(n ast.Node) *tree.Tree {
	switch v := n.(type) {
	case *ast.And:
		return composite(string(ast.KindAnd), v.Children)
	case *ast.Or:
		return composite(string(ast.KindOr), v.Children)
	}
	return tree.Root(label(n))
}

func composite(kind string, children []ast.Node) *tree.Tree {
	t := tree.Root(kind)
	for _, child := range children {
		switch child.(type) {
		case *ast.And, *ast.Or:
			t.Child(buildTree(child))
		default:
			t.Child(label(child))
		}
	}
	return t
}

func label(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Tag:
		return "TAG " + v.Value
	case *ast.Range:
		return "RANGE " + ast.String(v)
	}
	return ast.String(n)
}
