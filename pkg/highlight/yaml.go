package highlight

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"

	"gopkg.in/yaml.v3"

	"mercator-hq/tagviz/pkg/ordered"
)

// MaxYAMLDepth bounds nesting, including followed aliases.
const MaxYAMLDepth = 256

var jsonNumber = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?$`)

// FromYAML converts a decoded YAML (or JSON) document into values that
// Serialize renders in source order: mappings become *ordered.Map, sequences
// []any, and numbers json.Number so their text is kept.
func FromYAML(n *yaml.Node) (any, error) {
	return fromYAML(n, 0)
}

func fromYAML(n *yaml.Node, depth int) (any, error) {
	if n == nil {
		return nil, nil
	}
	if depth > MaxYAMLDepth {
		return nil, fmt.Errorf("line %d: nesting deeper than %d", n.Line, MaxYAMLDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAML(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromYAML(n.Alias, depth+1)
	case yaml.MappingNode:
		m := &ordered.Map{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := mappingKey(n.Content[i])
			if err != nil {
				return nil, err
			}
			if key == "<<" && n.Content[i].ShortTag() == "!!merge" {
				if err := mergeInto(m, n.Content[i+1], depth+1); err != nil {
					return nil, err
				}
				continue
			}
			v, err := fromYAML(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAML(c, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func mappingKey(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping keys must be scalars", n.Line)
	}
	return n.Value, nil
}

// mergeInto applies a "<<" merge key. Keys already present are kept.
func mergeInto(m *ordered.Map, n *yaml.Node, depth int) error {
	v, err := fromYAML(n, depth)
	if err != nil {
		return err
	}
	var sources []*ordered.Map
	switch src := v.(type) {
	case *ordered.Map:
		sources = append(sources, src)
	case []any:
		for _, item := range src {
			if sm, ok := item.(*ordered.Map); ok {
				sources = append(sources, sm)
			}
		}
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
	}
	for _, src := range sources {
		for _, p := range src.Pairs() {
			if _, exists := m.Get(p.Key); !exists {
				m.Set(p.Key, p.Value)
			}
		}
	}
	return nil
}

func scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int", "!!float":
		if jsonNumber.MatchString(n.Value) {
			return json.Number(n.Value), nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			// No JSON form; keep the source text.
			return n.Value, nil
		}
		return v, nil
	}
	return n.Value, nil
}
