package highlight

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"mercator-hq/tagviz/pkg/ordered"
)

// ErrCycle reports a value that refers to itself.
var ErrCycle = errors.New("value contains a cycle")

// Serialize renders value as indented JSON text using indentSize spaces per
// level. Objects built as *ordered.Map keep insertion order; Go maps are
// written with sorted keys. A string is a JSON string scalar; []byte and
// json.RawMessage are taken as JSON text and re-indented.
func Serialize(value any, indentSize int) (string, error) {
	if indentSize < 1 {
		return "", fmt.Errorf("indent size must be positive, got %d", indentSize)
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		if err := checkCycles(reflect.ValueOf(value), make(map[uintptr]bool)); err != nil {
			return "", err
		}
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(value); err != nil {
			return "", err
		}
		raw = bytes.TrimRight(buf.Bytes(), "\n")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", fmt.Errorf("invalid JSON text: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", indentSize)); err != nil {
		return "", err
	}
	return out.String(), nil
}

// checkCycles walks containers that a custom marshaler would otherwise
// recurse through without bound. Only the current path is tracked, so shared
// subtrees are allowed.
func checkCycles(v reflect.Value, path map[uintptr]bool) error {
	if !v.IsValid() {
		return nil
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		return checkCycles(v.Elem(), path)
	}

	if m, ok := asOrderedMap(v); ok {
		if m == nil {
			return nil
		}
		ptr := reflect.ValueOf(m).Pointer()
		if path[ptr] {
			return fmt.Errorf("%w via *ordered.Map", ErrCycle)
		}
		path[ptr] = true
		defer delete(path, ptr)
		for _, p := range m.Pairs() {
			if err := checkCycles(reflect.ValueOf(p.Value), path); err != nil {
				return err
			}
		}
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		ptr := v.Pointer()
		if path[ptr] {
			return fmt.Errorf("%w via %s", ErrCycle, v.Type())
		}
		path[ptr] = true
		defer delete(path, ptr)
		return checkCycles(v.Elem(), path)
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		ptr := v.Pointer()
		if path[ptr] {
			return fmt.Errorf("%w via %s", ErrCycle, v.Type())
		}
		path[ptr] = true
		defer delete(path, ptr)
		iter := v.MapRange()
		for iter.Next() {
			if err := checkCycles(iter.Value(), path); err != nil {
				return err
			}
		}
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return nil
		}
		ptr := v.Pointer()
		if path[ptr] {
			return fmt.Errorf("%w via %s", ErrCycle, v.Type())
		}
		path[ptr] = true
		defer delete(path, ptr)
		for i := 0; i < v.Len(); i++ {
			if err := checkCycles(v.Index(i), path); err != nil {
				return err
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := checkCycles(v.Index(i), path); err != nil {
				return err
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := checkCycles(v.Field(i), path); err != nil {
				return err
			}
		}
	}
	return nil
}

func asOrderedMap(v reflect.Value) (*ordered.Map, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	m, ok := v.Interface().(*ordered.Map)
	return m, ok
}
