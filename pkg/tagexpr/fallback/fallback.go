// Package fallback implements a tolerant, hand-written tag expression parser.
//
// It is used when the grammar rejects an input. The parser never fails: it
// splits on every "||", then on every ",", then reads each remaining segment
// as a range (split at the first "..") or a tag. There is no grouping
// construct, so every operator occurrence is a split point.
//
// For every input the grammar accepts, except those containing // comments,
// Parse returns a structurally equal tree.
package fallback

import (
	"strings"

	"mercator-hq/tagviz/pkg/tagexpr/ast"
)

// Parse parses input into a best-effort tree.
// It returns nil only when input is empty or whitespace.
func Parse(input string) ast.Node {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	if children := parseSegments(splitOperator(input, ast.OrOperator), parseAnd); len(children) > 0 {
		return collapse(children, func(c []ast.Node) ast.Node { return &ast.Or{Children: c} })
	}
	return parseAnd(input)
}

// parseAnd handles one OR segment.
func parseAnd(segment string) ast.Node {
	if strings.TrimSpace(segment) == "" {
		return nil
	}

	if children := parseSegments(splitCommas(segment), parseRangeOrTag); len(children) > 0 {
		return collapse(children, func(c []ast.Node) ast.Node { return &ast.And{Children: c} })
	}
	return parseRangeOrTag(segment)
}

// parseRangeOrTag handles one AND segment.
func parseRangeOrTag(segment string) ast.Node {
	trimmed := strings.TrimSpace(segment)
	if trimmed == "" {
		return nil
	}

	if i := strings.Index(trimmed, ast.RangeOperator); i >= 0 {
		from := strings.TrimSpace(trimmed[:i])
		to := strings.TrimSpace(trimmed[i+len(ast.RangeOperator):])
		if from != "" && to != "" {
			return ast.NewRange(from, to)
		}
	}
	return ast.NewTag(trimmed)
}

// parseSegments parses each non-blank segment. It returns nil when the
// input had no split points, so the caller can fall through to the next pass.
func parseSegments(segments []string, parse func(string) ast.Node) []ast.Node {
	if len(segments) < 2 {
		return nil
	}
	var children []ast.Node
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if node := parse(seg); node != nil {
			children = append(children, node)
		}
	}
	return children
}

func collapse(children []ast.Node, wrap func([]ast.Node) ast.Node) ast.Node {
	if len(children) == 1 {
		return children[0]
	}
	return wrap(children)
}

// splitOperator splits s at every non-overlapping occurrence of op,
// scanning left to right.
func splitOperator(s, op string) []string {
	return strings.Split(s, op)
}

// splitCommas splits s at every comma. A ".." token is consumed as a unit
// while scanning, so the dots of a range are never split points.
func splitCommas(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], ast.RangeOperator):
			i++
		case s[i] == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
