package highlight

import "fmt"

// DefaultIndentSize is used when Options.IndentSize is zero.
const DefaultIndentSize = 2

// Recorder receives tokenizer statistics. *metrics.Collector implements it.
type Recorder interface {
	RecordTokens(category string, n int)
	RecordColorizeFailure()
}

// Options configures Colorize.
type Options struct {
	IndentSize int      // Spaces per nesting level; 0 means DefaultIndentSize
	Palette    Palette  // Zero value means the default palette
	Metrics    Recorder // Optional
}

func (o Options) withDefaults() Options {
	if o.IndentSize == 0 {
		o.IndentSize = DefaultIndentSize
	}
	if o.Palette.Name == "" && o.Palette.Text == "" {
		o.Palette = DefaultPalette()
	}
	return o
}

// Span is a token with its resolved colour.
type Span struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Slot     Slot     `json:"slot"`
	Color    string   `json:"color"`
}

// Colorize serializes value and returns its coloured spans. If value cannot
// be serialized, the result is a single Diagnostic span in the palette's null
// colour describing the failure. Colorize never panics.
func Colorize(value any, opts Options) (spans []Span) {
	opts = opts.withDefaults()
	defer func() {
		if r := recover(); r != nil {
			spans = diagnostic(fmt.Errorf("panic: %v", r), opts)
		}
	}()

	text, err := Serialize(value, opts.IndentSize)
	if err != nil {
		return diagnostic(err, opts)
	}
	return colorizeTokens(Tokenize(text), opts)
}

// ColorizeText colours already-serialized text.
func ColorizeText(text string, opts Options) []Span {
	opts = opts.withDefaults()
	return colorizeTokens(Tokenize(text), opts)
}

func colorizeTokens(tokens []Token, opts Options) []Span {
	spans := make([]Span, len(tokens))
	counts := make(map[Category]int)
	for i, tok := range tokens {
		slot := tok.Category.Slot()
		spans[i] = Span{
			Text:     tok.Text,
			Category: tok.Category,
			Slot:     slot,
			Color:    opts.Palette.Color(slot),
		}
		counts[tok.Category]++
	}
	if opts.Metrics != nil {
		for c, n := range counts {
			opts.Metrics.RecordTokens(string(c), n)
		}
	}
	return spans
}

func diagnostic(err error, opts Options) []Span {
	if opts.Metrics != nil {
		opts.Metrics.RecordColorizeFailure()
	}
	return []Span{{
		Text:     "JSON formatting error: " + err.Error(),
		Category: CategoryDiagnostic,
		Slot:     SlotNull,
		Color:    opts.Palette.Null,
	}}
}

// Text concatenates the span texts.
func Text(spans []Span) string {
	n := 0
	for _, s := range spans {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
