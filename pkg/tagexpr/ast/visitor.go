package ast

// Visitor provides an interface for traversing a tag expression tree.
// Implement this interface to perform operations on nodes
// (validation, statistics, rendering, etc.).
type Visitor interface {
	VisitTag(*Tag) error
	VisitRange(*Range) error
	VisitAnd(*And) error
	VisitOr(*Or) error
}

// Walk traverses the tree depth-first, visiting a node before its children.
// It returns the first error encountered, or nil if traversal completes.
// Range endpoints are visited as tags. Nil nodes are skipped.
func Walk(n Node, visitor Visitor) error {
	if isNil(n) {
		return nil
	}
	switch v := n.(type) {
	case *Tag:
		return visitor.VisitTag(v)
	case *Range:
		if err := visitor.VisitRange(v); err != nil {
			return err
		}
		if v.From != nil {
			if err := visitor.VisitTag(v.From); err != nil {
				return err
			}
		}
		if v.To != nil {
			if err := visitor.VisitTag(v.To); err != nil {
				return err
			}
		}
		return nil
	case *And:
		if err := visitor.VisitAnd(v); err != nil {
			return err
		}
		return walkChildren(v.Children, visitor)
	case *Or:
		if err := visitor.VisitOr(v); err != nil {
			return err
		}
		return walkChildren(v.Children, visitor)
	}
	return nil
}

func walkChildren(children []Node, visitor Visitor) error {
	for _, child := range children {
		if err := Walk(child, visitor); err != nil {
			return err
		}
	}
	return nil
}

// Stats counts nodes by kind. It implements Visitor.
type Stats struct {
	Tags   int
	Ranges int
	Ands   int
	Ors    int
	Depth  int // Maximum nesting depth, 1 for a single tag
}

func (s *Stats) VisitTag(*Tag) error     { s.Tags++; return nil }
func (s *Stats) VisitRange(*Range) error { s.Ranges++; return nil }
func (s *Stats) VisitAnd(*And) error     { s.Ands++; return nil }
func (s *Stats) VisitOr(*Or) error       { s.Ors++; return nil }

// Collect returns statistics for the tree rooted at n.
func Collect(n Node) Stats {
	var s Stats
	_ = Walk(n, &s)
	s.Depth = depth(n)
	return s
}

func depth(n Node) int {
	if isNil(n) {
		return 0
	}
	switch v := n.(type) {
	case *Tag:
		return 1
	case *Range:
		return 2
	case *And:
		return 1 + maxDepth(v.Children)
	case *Or:
		return 1 + maxDepth(v.Children)
	}
	return 0
}

func maxDepth(children []Node) int {
	m := 0
	for _, c := range children {
		if d := depth(c); d > m {
			m = d
		}
	}
	return m
}
