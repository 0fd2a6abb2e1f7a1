package tagexpr

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mercator-hq/tagviz/pkg/tagexpr/ast"
	tagerrors "mercator-hq/tagviz/pkg/tagexpr/errors"
	"mercator-hq/tagviz/pkg/tagexpr/grammar"
)

// Example pairs an expression with its precomputed tree.
type Example struct {
	Text string
	AST  ast.Node
}

// Examples is an ordered example table. Lookups are exact, byte-for-byte
// matches on Text; the first matching entry wins.
type Examples []Example

// DefaultExamples returns the built-in example table.
func DefaultExamples() Examples {
	return Examples{
		{
			Text: "39500||39520||79500.099",
			AST:  ast.NewOr(ast.NewTag("39500"), ast.NewTag("39520"), ast.NewTag("79500.099")),
		},
		{
			Text: "95150.700.1000 || 95150.700.1010",
			AST:  ast.NewOr(ast.NewTag("95150.700.1000"), ast.NewTag("95150.700.1010")),
		},
		{
			Text: "39500..39600",
			AST:  ast.NewRange("39500", "39600"),
		},
		{
			Text: "95000.699,95150.700.1000",
			AST:  ast.NewAnd(ast.NewTag("95000.699"), ast.NewTag("95150.700.1000")),
		},
		{
			Text: "39500..39600||79500.099",
			AST:  ast.NewOr(ast.NewRange("39500", "39600"), ast.NewTag("79500.099")),
		},
		{
			Text: "asmir||titouan||john..robert",
			AST:  ast.NewOr(ast.NewTag("asmir"), ast.NewTag("titouan"), ast.NewRange("john", "robert")),
		},
		{
			Text: "39500..39600||79500.099,80000",
			AST: ast.NewOr(
				ast.NewRange("39500", "39600"),
				ast.NewAnd(ast.NewTag("79500.099"), ast.NewTag("80000")),
			),
		},
	}
}

// DefaultAST returns the tree of the first built-in example.
func DefaultAST() ast.Node {
	return DefaultExamples()[0].AST
}

// Lookup returns a fresh copy of the tree registered for text.
func (e Examples) Lookup(text string) (ast.Node, bool) {
	for _, ex := range e {
		if ex.Text == text {
			return ast.Clone(ex.AST), true
		}
	}
	return nil, false
}

// Texts returns the example expressions in table order.
func (e Examples) Texts() []string {
	texts := make([]string, len(e))
	for i, ex := range e {
		texts[i] = ex.Text
	}
	return texts
}

type exampleFile struct {
	Examples []exampleEntry `yaml:"examples"`
}

type exampleEntry struct {
	Text string    `yaml:"text"`
	AST  yaml.Node `yaml:"ast"`
}

// LoadExamples reads an example table from a YAML file of the form:
//
//	examples:
//	  - text: "39500..39600"
//	    ast:
//	      type: RANGE
//	      from: {type: TAG, value: "39500"}
//	      to: {type: TAG, value: "39600"}
//
// An entry without an ast is parsed with the grammar at load time.
func LoadExamples(path string) (Examples, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &tagerrors.Error{
			Type:     tagerrors.ErrorTypeIO,
			Message:  fmt.Sprintf("failed to read examples file: %v", err),
			Location: tagerrors.Location{File: path},
			Cause:    err,
		}
	}
	examples, err := ParseExamples(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return examples, nil
}

// ParseExamples parses an example table from YAML bytes.
func ParseExamples(data []byte) (Examples, error) {
	var file exampleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("invalid examples YAML: %w", err)
	}

	examples := make(Examples, 0, len(file.Examples))
	seen := make(map[string]bool, len(file.Examples))
	for i, entry := range file.Examples {
		if entry.Text == "" {
			return nil, fmt.Errorf("example %d: text is required", i)
		}
		if seen[entry.Text] {
			return nil, fmt.Errorf("example %d: duplicate text %q", i, entry.Text)
		}
		seen[entry.Text] = true

		node, err := exampleAST(entry)
		if err != nil {
			return nil, fmt.Errorf("example %d (%q): %w", i, entry.Text, err)
		}
		examples = append(examples, Example{Text: entry.Text, AST: node})
	}
	return examples, nil
}

func exampleAST(entry exampleEntry) (ast.Node, error) {
	if entry.AST.Kind == 0 {
		return grammar.Default().Parse(entry.Text)
	}

	value, err := yamlValue(&entry.AST, 0)
	if err != nil {
		return nil, err
	}
	if err := checkKinds(value); err != nil {
		return nil, err
	}
	node := ast.FromValue(value)
	if err := ast.Validate(node); err != nil {
		return nil, err
	}
	return node, nil
}

const maxYAMLDepth = 64

// yamlValue converts a YAML node to generic maps and slices. Scalars keep
// their source text so that tags like 95150.700 are not reformatted.
func yamlValue(n *yaml.Node, depth int) (any, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("line %d: nesting deeper than %d", n.Line, maxYAMLDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0], depth+1)
	case yaml.AliasNode:
		return yamlValue(n.Alias, depth+1)
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := yamlValue(c, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// checkKinds rejects nodes whose type is missing or unknown, which
// ast.FromValue would otherwise turn into empty tags.
func checkKinds(v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("ast node must be a mapping, got %T", v)
	}
	kind, _ := m[ast.FieldType].(string)
	switch ast.Kind(kind) {
	case ast.KindTag:
		return nil
	case ast.KindRange:
		for _, key := range []string{ast.FieldFrom, ast.FieldTo} {
			if err := checkKinds(m[key]); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		return nil
	case ast.KindAnd, ast.KindOr:
		children, ok := m[ast.FieldChildren].([]any)
		if !ok {
			return fmt.Errorf("%s node needs a children list", kind)
		}
		for i, child := range children {
			if err := checkKinds(child); err != nil {
				return fmt.Errorf("children[%d]: %w", i, err)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown node type %q", kind)
}
