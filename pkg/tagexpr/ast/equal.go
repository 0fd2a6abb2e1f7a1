package ast

import (
	"fmt"
)

// Equal reports whether a and b are structurally equal.
// Comparison is deep and order-sensitive; a nil node equals only nil.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *Tag:
		y, ok := b.(*Tag)
		return ok && x.Value == y.Value
	case *Range:
		y, ok := b.(*Range)
		return ok && Equal(tagOrNil(x.From), tagOrNil(y.From)) && Equal(tagOrNil(x.To), tagOrNil(y.To))
	case *And:
		y, ok := b.(*And)
		return ok && equalChildren(x.Children, y.Children)
	case *Or:
		y, ok := b.(*Or)
		return ok && equalChildren(x.Children, y.Children)
	}
	return false
}

func equalChildren(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// tagOrNil keeps a nil *Tag from becoming a non-nil Node interface.
func tagOrNil(t *Tag) Node {
	if t == nil {
		return nil
	}
	return t
}

func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Tag:
		return v == nil
	case *Range:
		return v == nil
	case *And:
		return v == nil
	case *Or:
		return v == nil
	}
	return false
}

// Validate checks the structural invariants of a tree: composite nodes have
// at least two children, no And directly contains an And, no Or directly
// contains an Or, and range endpoints are present.
func Validate(n Node) error {
	return validate(n, "$")
}

func validate(n Node, path string) error {
	if isNil(n) {
		return fmt.Errorf("%s: nil node", path)
	}
	switch v := n.(type) {
	case *Tag:
		return nil
	case *Range:
		if v.From == nil || v.To == nil {
			return fmt.Errorf("%s: range endpoint is nil", path)
		}
		return nil
	case *And:
		if len(v.Children) < 2 {
			return fmt.Errorf("%s: AND has %d children, want at least 2", path, len(v.Children))
		}
		for i, child := range v.Children {
			if _, nested := child.(*And); nested {
				return fmt.Errorf("%s.children[%d]: AND directly inside AND", path, i)
			}
			if err := validate(child, fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	case *Or:
		if len(v.Children) < 2 {
			return fmt.Errorf("%s: OR has %d children, want at least 2", path, len(v.Children))
		}
		for i, child := range v.Children {
			if _, nested := child.(*Or); nested {
				return fmt.Errorf("%s.children[%d]: OR directly inside OR", path, i)
			}
			if err := validate(child, fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%s: unknown node type %T", path, n)
}
