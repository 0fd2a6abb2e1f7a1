package ast

import (
	"bytes"
	"encoding/json"
	"fmt"

	"mercator-hq/tagviz/pkg/ordered"
)

// Field names of the generic form.
const (
	FieldType     = "type"
	FieldValue    = "value"
	FieldFrom     = "from"
	FieldTo       = "to"
	FieldChildren = "children"
)

// ToValue converts a tree into its generic ordered form. The "type" key
// always comes first, followed by "value", "from"/"to" or "children".
// A nil node converts to nil.
func ToValue(n Node) any {
	if isNil(n) {
		return nil
	}
	switch v := n.(type) {
	case *Tag:
		return ordered.New(
			ordered.Pair{Key: FieldType, Value: string(KindTag)},
			ordered.Pair{Key: FieldValue, Value: v.Value},
		)
	case *Range:
		return ordered.New(
			ordered.Pair{Key: FieldType, Value: string(KindRange)},
			ordered.Pair{Key: FieldFrom, Value: ToValue(tagOrNil(v.From))},
			ordered.Pair{Key: FieldTo, Value: ToValue(tagOrNil(v.To))},
		)
	case *And:
		return ordered.New(
			ordered.Pair{Key: FieldType, Value: string(KindAnd)},
			ordered.Pair{Key: FieldChildren, Value: childValues(v.Children)},
		)
	case *Or:
		return ordered.New(
			ordered.Pair{Key: FieldType, Value: string(KindOr)},
			ordered.Pair{Key: FieldChildren, Value: childValues(v.Children)},
		)
	}
	return nil
}

func childValues(children []Node) []any {
	out := make([]any, len(children))
	for i, child := range children {
		out[i] = ToValue(child)
	}
	return out
}

func (t *Tag) MarshalJSON() ([]byte, error)   { return marshalNode(t) }
func (r *Range) MarshalJSON() ([]byte, error) { return marshalNode(r) }
func (a *And) MarshalJSON() ([]byte, error)   { return marshalNode(a) }
func (o *Or) MarshalJSON() ([]byte, error)    { return marshalNode(o) }

// marshalNode encodes the generic form without HTML escaping, so tags such
// as "a<b" read the same as when the generic form is encoded directly.
func marshalNode(n Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ToValue(n)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (t *Tag) MarshalYAML() (interface{}, error)   { return ToValue(t), nil }
func (r *Range) MarshalYAML() (interface{}, error) { return ToValue(r), nil }
func (a *And) MarshalYAML() (interface{}, error)   { return ToValue(a), nil }
func (o *Or) MarshalYAML() (interface{}, error)    { return ToValue(o), nil }

// FromValue converts the generic form back into a typed tree.
// It accepts *ordered.Map, map[string]any and the map shapes produced by
// YAML and JSON decoders. Anything it cannot interpret, including nil,
// becomes an empty Tag.
func FromValue(v any) Node {
	get, ok := accessor(v)
	if !ok {
		return &Tag{}
	}
	kind, _ := get(FieldType)
	switch Kind(asString(kind)) {
	case KindTag:
		value, _ := get(FieldValue)
		return &Tag{Value: asString(value)}
	case KindRange:
		from, _ := get(FieldFrom)
		to, _ := get(FieldTo)
		return &Range{From: tagValue(from), To: tagValue(to)}
	case KindAnd:
		children, _ := get(FieldChildren)
		return &And{Children: fromList(children)}
	case KindOr:
		children, _ := get(FieldChildren)
		return &Or{Children: fromList(children)}
	}
	return &Tag{}
}

type getter func(key string) (any, bool)

func accessor(v any) (getter, bool) {
	switch m := v.(type) {
	case *ordered.Map:
		if m == nil {
			return nil, false
		}
		return m.Get, true
	case map[string]any:
		return func(key string) (any, bool) {
			val, ok := m[key]
			return val, ok
		}, true
	case map[any]any:
		return func(key string) (any, bool) {
			val, ok := m[key]
			return val, ok
		}, true
	}
	return nil, false
}

// tagValue reads the "value" of a range endpoint.
func tagValue(v any) *Tag {
	get, ok := accessor(v)
	if !ok {
		return &Tag{}
	}
	value, _ := get(FieldValue)
	return &Tag{Value: asString(value)}
}

func fromList(v any) []Node {
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []*ordered.Map:
		items = make([]any, len(list))
		for i, m := range list {
			items[i] = m
		}
	default:
		return nil
	}
	out := make([]Node, len(items))
	for i, item := range items {
		out[i] = FromValue(item)
	}
	return out
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case json.Number:
		return s.String()
	case bool, int, int64, float64:
		return fmt.Sprint(s)
	}
	return ""
}
