package ast

import "strings"

// Kind identifies the variant of a Node.
type Kind string

const (
	KindTag   Kind = "TAG"   // Atomic identifier
	KindRange Kind = "RANGE" // Inclusive range between two tags
	KindAnd   Kind = "AND"   // Conjunction of two or more children
	KindOr    Kind = "OR"    // Disjunction of two or more children
)

// Operator text used when rendering expressions.
const (
	OrOperator    = "||"
	AndOperator   = ","
	RangeOperator = ".."
)

// Node is a node of a tag expression tree.
// The set of implementations is closed: *Tag, *Range, *And and *Or.
type Node interface {
	// Kind returns the variant of the node.
	Kind() Kind

	node()
}

// Tag represents an atomic identifier.
type Tag struct {
	Value string // Raw matched text
}

// Range represents an inclusive range between two atomic tags.
type Range struct {
	From *Tag
	To   *Tag
}

// And represents a flattened conjunction.
type And struct {
	Children []Node
}

// Or represents a flattened disjunction.
type Or struct {
	Children []Node
}

func (*Tag) Kind() Kind   { return KindTag }
func (*Range) Kind() Kind { return KindRange }
func (*And) Kind() Kind   { return KindAnd }
func (*Or) Kind() Kind    { return KindOr }

func (*Tag) node()   {}
func (*Range) node() {}
func (*And) node()   {}
func (*Or) node()    {}

// NewTag returns a tag node with the given value.
func NewTag(value string) *Tag {
	return &Tag{Value: value}
}

// NewRange returns a range node between two tag values.
func NewRange(from, to string) *Range {
	return &Range{From: NewTag(from), To: NewTag(to)}
}

// NewAnd returns a conjunction of the given children.
// Children are used as given; callers building trees from operator
// applications should use the parser's fold rules instead.
func NewAnd(children ...Node) *And {
	return &And{Children: children}
}

// NewOr returns a disjunction of the given children.
func NewOr(children ...Node) *Or {
	return &Or{Children: children}
}

// String renders a node back to canonical expression text.
// A nil node renders as the empty string.
func String(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Tag:
		sb.WriteString(v.Value)
	case *Range:
		writeNode(sb, v.From)
		sb.WriteString(RangeOperator)
		writeNode(sb, v.To)
	case *And:
		for i, child := range v.Children {
			if i > 0 {
				sb.WriteString(AndOperator)
			}
			writeNode(sb, child)
		}
	case *Or:
		for i, child := range v.Children {
			if i > 0 {
				sb.WriteString(OrOperator)
			}
			writeNode(sb, child)
		}
	}
}

// Clone returns a deep copy of n. Nil nodes, typed or not, are returned as is.
func Clone(n Node) Node {
	if isNil(n) {
		return n
	}
	switch v := n.(type) {
	case *Tag:
		return &Tag{Value: v.Value}
	case *Range:
		return &Range{From: cloneTag(v.From), To: cloneTag(v.To)}
	case *And:
		return &And{Children: cloneChildren(v.Children)}
	case *Or:
		return &Or{Children: cloneChildren(v.Children)}
	default:
		return nil
	}
}

func cloneTag(t *Tag) *Tag {
	if t == nil {
		return nil
	}
	return &Tag{Value: t.Value}
}

func cloneChildren(children []Node) []Node {
	out := make([]Node, len(children))
	for i, child := range children {
		out[i] = Clone(child)
	}
	return out
}
