// Package highlight colours structured data for display.
//
// Colorize works in four steps:
//
//  1. Serialize the value to indented JSON text. Insertion order is kept for
//     *ordered.Map values, which includes tag expression trees.
//  2. Tokenize the text. At every position each matcher looks ahead and the
//     earliest match wins; ties go to string, then number, boolean/null,
//     punctuation, bracket and whitespace, in that order.
//  3. Classify strings followed by ':' as keys, and split literals into
//     booleans and null.
//  4. Map categories to the slots of a Palette.
//
// The built-in palettes are light, dark (the default), monokai and customDark.
//
// # Basic Usage
//
//	spans := highlight.Colorize(node, highlight.Options{IndentSize: 2})
//	err := highlight.RenderANSI(os.Stdout, spans, highlight.RenderOptions{
//	    Palette: highlight.DefaultPalette(),
//	    Profile: highlight.DetectProfile(),
//	})
//
// Documents read from YAML or JSON keep their key order when converted with
// FromYAML first.
//
// A value that cannot be serialized, for example because it refers to itself,
// produces a single Diagnostic span instead of an error.
package highlight
