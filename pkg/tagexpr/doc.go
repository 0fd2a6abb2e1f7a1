// Package tagexpr parses tag expressions such as "39500..39600||79500.099,80000".
//
// Parsing is resolved in a fixed order:
//
//  1. Blank input yields no expression (a nil node, not an error).
//  2. Input that exactly matches an entry of the example table yields a copy
//     of that entry's tree. Near matches fall through.
//  3. The formal grammar (package grammar) parses the input.
//  4. When the grammar rejects the input or faults, the tolerant fallback
//     parser (package fallback) produces a best-effort tree.
//
// No step panics past Parse. The Result reports which step produced the tree,
// and keeps the grammar diagnostic when the fallback was used.
//
// # Basic Usage
//
//	node := tagexpr.ParseExpression("a,b||c")
//	// Or(And(a, b), c)
//
// With configuration:
//
//	p := tagexpr.NewParser().
//	    WithExamples(examples).
//	    WithLogger(logger.Slog()).
//	    WithMetrics(collector)
//	res := p.Parse(input)
//	if res.Source == tagexpr.SourceFallback {
//	    log.Printf("recovered: %v", res.Err)
//	}
package tagexpr
