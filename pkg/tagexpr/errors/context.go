package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LocationAt computes the line and column of a byte offset within input.
// Columns count runes, not bytes.
func LocationAt(input string, offset int) Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(input) {
		offset = len(input)
	}
	prefix := input[:offset]
	line := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return Location{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(prefix[lineStart:]) + 1,
	}
}

// ExtractContext renders the line of input holding loc, preceded by up to
// contextLines lines, with a caret under the failing column.
func ExtractContext(input string, loc Location, contextLines int) string {
	if !loc.IsValid() {
		return ""
	}
	lines := strings.Split(input, "\n")
	errorLine := loc.Line - 1
	if errorLine >= len(lines) {
		return ""
	}

	startLine := errorLine - contextLines
	if startLine < 0 {
		startLine = 0
	}

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", errorLine+1))

	for i := startLine; i <= errorLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, lines[i]))
	}
	if loc.Column > 0 {
		sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", loc.Column-1)))
	}

	return sb.String()
}

// WithContext fills in the context and, when absent, the suggestion of err.
func WithContext(err *Error, input string) *Error {
	if err.Location.IsValid() {
		err.Context = ExtractContext(input, err.Location, 1)
	}
	if err.Suggestion == "" {
		err.Suggestion = Suggest(input)
	}
	return err
}
