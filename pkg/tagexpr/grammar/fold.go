package grammar

import "mercator-hq/tagviz/pkg/tagexpr/ast"

func fold(expr *orExpr) ast.Node {
	var node ast.Node
	for i, term := range expr.Terms {
		right := foldAnd(term)
		if i == 0 {
			node = right
			continue
		}
		node = buildOr(node, right)
	}
	return node
}

func foldAnd(expr *andExpr) ast.Node {
	var node ast.Node
	for i, term := range expr.Terms {
		right := foldRange(term)
		if i == 0 {
			node = right
			continue
		}
		node = buildAnd(node, right)
	}
	return node
}

func foldRange(expr *rangeExpr) ast.Node {
	if expr.To == nil {
		return ast.NewTag(expr.From)
	}
	return ast.NewRange(expr.From, *expr.To)
}

// buildOr extends left when it is already a disjunction.
func buildOr(left, right ast.Node) ast.Node {
	if or, ok := left.(*ast.Or); ok {
		or.Children = append(or.Children, right)
		return or
	}
	return ast.NewOr(left, right)
}

// buildAnd extends left when it is already a conjunction.
func buildAnd(left, right ast.Node) ast.Node {
	if and, ok := left.(*ast.And); ok {
		and.Children = append(and.Children, right)
		return and
	}
	return ast.NewAnd(left, right)
}
