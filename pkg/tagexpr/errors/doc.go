// Package errors provides rich diagnostics for tag expression parsing.
//
// Grammar mismatches never reach end callers of the parse façade, which
// recovers through the fallback parser. The diagnostics are still kept on the
// parse result so that tooling such as the lint command can explain what the
// grammar rejected and how to fix it.
//
// # Error Types
//
// ErrorTypeSyntax: the input could not be tokenized (unknown characters)
//
// ErrorTypeNoMatch: the tokens do not form a valid expression
//
// ErrorTypeInternal: the grammar parser faulted and was recovered
//
// ErrorTypeIO: reading an expression or example file failed
//
// # Basic Usage
//
//	err := &errors.Error{
//	    Type:     errors.ErrorTypeNoMatch,
//	    Message:  `unexpected token ","`,
//	    Location: errors.Location{Offset: 3, Line: 1, Column: 4},
//	}
//	err = errors.WithContext(err, input)
//
// # Error Format
//
//	[nomatch] unexpected token ","
//	  --> <input>:1:4
//	  |
//	-> 1 | a||,b
//	     |    ^
//	  |
//	  = suggestion: remove the operator or add a tag on both sides
//
// # Suggestions
//
// Suggest recognizes common mistakes such as a single "|", "&&" or "..."
// and operators with a missing operand.
package errors
