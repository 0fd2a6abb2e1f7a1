package errors

import (
	"fmt"
	"strings"
)

// ErrorType says which stage of parsing produced a diagnostic.
type ErrorType string

const (
	ErrorTypeSyntax   ErrorType = "syntax"   // lexer rejected the input
	ErrorTypeNoMatch  ErrorType = "nomatch"  // tokens fit no grammar rule
	ErrorTypeInternal ErrorType = "internal" // recovered parser panic
	ErrorTypeIO       ErrorType = "io"
)

// Location is a position inside an expression or expression file.
// Offset is 0-based; Line and Column are 1-based.
type Location struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (l Location) String() string {
	name := l.File
	if name == "" {
		name = "<input>"
	}
	return name + ":" + fmt.Sprint(l.Line) + ":" + fmt.Sprint(l.Column)
}

// IsValid reports whether the location has a line number.
func (l Location) IsValid() bool { return l.Line > 0 }

// Error is a parse diagnostic. Context holds the rendered source lines
// produced by ExtractContext.
type Error struct {
	Type       ErrorType
	Message    string
	Location   Location
	Context    string
	Suggestion string
	Cause      error
}

// Error renders the diagnostic over several lines:
//
//	[nomatch] unexpected token ","
//	  --> <input>:1:4
//	  |
//	-> 1 | a||,b
//	  |
//	  = suggestion: ...
func (e *Error) Error() string {
	lines := []string{"[" + string(e.Type) + "] " + e.Message}
	if e.Location.IsValid() {
		lines = append(lines, "  --> "+e.Location.String())
	}
	if e.Context != "" {
		lines = append(lines, "  |", strings.TrimSuffix(e.Context, "\n"), "  |")
	}
	if e.Suggestion != "" {
		lines = append(lines, "  = suggestion: "+e.Suggestion)
	}
	return strings.Join(lines, "\n") + "\n"
}

func (e *Error) Unwrap() error { return e.Cause }

// Short is the one-line "line:col: message" form.
func (e *Error) Short() string {
	if e.Location.IsValid() {
		return fmt.Sprintf("%d:%d: %s", e.Location.Line, e.Location.Column, e.Message)
	}
	return e.Message
}
