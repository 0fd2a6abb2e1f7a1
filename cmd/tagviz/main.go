// Tagviz parses tag expressions and colorizes structured text.
//
// A tag expression combines tags with "||" (or), "," (and) and ".."
// (inclusive range), e.g. "39500..39600||79500.099,80000". Tagviz resolves
// expressions into trees and renders them as colorized JSON, YAML or a tree.
//
// Usage:
//
//	# Parse an expression
//	tagviz parse "a..b||c,d"
//
//	# Parse every line of a file and show which parser produced each tree
//	tagviz parse --file queries.tags --source
//
//	# Report expressions the grammar rejects
//	tagviz lint --file queries.tags
//
//	# Colorize any JSON or YAML document
//	tagviz highlight doc.json --palette monokai
//
//	# Re-render a file whenever it changes
//	tagviz watch --file queries.tags
package main

func main() {
	Execute()
}
