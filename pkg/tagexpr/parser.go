package tagexpr

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mercator-hq/tagviz/pkg/tagexpr/ast"
	tagerrors "mercator-hq/tagviz/pkg/tagexpr/errors"
	"mercator-hq/tagviz/pkg/tagexpr/fallback"
	"mercator-hq/tagviz/pkg/tagexpr/grammar"
)

// Source identifies which resolution step produced a parse result.
type Source string

const (
	SourceEmpty    Source = "empty"    // Blank input, no expression
	SourceExample  Source = "example"  // Exact match in the example table
	SourceGrammar  Source = "grammar"  // Formal grammar
	SourceFallback Source = "fallback" // Tolerant hand-written parser
)

// DefaultMaxInputLength is the input size above which the grammar is skipped.
const DefaultMaxInputLength = 4096

var (
	// ErrInputTooLong reports that the grammar was skipped for a long input.
	ErrInputTooLong = errors.New("input exceeds maximum length for grammar parsing")

	// ErrParserFault reports a recovered panic inside a parser.
	ErrParserFault = errors.New("parser fault")
)

// Grammar parses an expression strictly. *grammar.Grammar implements it.
type Grammar interface {
	Parse(input string) (ast.Node, error)
}

// Recorder receives parse statistics. *metrics.Collector implements it.
type Recorder interface {
	RecordParse(source string, duration time.Duration)
	RecordGrammarFailure()
	RecordRecoveredPanic()
}

type noopRecorder struct{}

func (noopRecorder) RecordParse(string, time.Duration) {}
func (noopRecorder) RecordGrammarFailure()             {}
func (noopRecorder) RecordRecoveredPanic()             {}

// Result is the outcome of parsing one expression.
type Result struct {
	Node   ast.Node // nil for blank input
	Source Source
	Err    error // Why the grammar was not used, when Source is SourceFallback
}

// Parser resolves tag expressions into trees.
// A Parser is safe for concurrent use once configured.
type Parser struct {
	grammar        Grammar
	examples       Examples
	maxInputLength int
	logger         *slog.Logger
	metrics        Recorder
}

// NewParser creates a parser using the shared grammar and the built-in examples.
func NewParser() *Parser {
	return &Parser{
		grammar:        grammar.Default(),
		examples:       DefaultExamples(),
		maxInputLength: DefaultMaxInputLength,
		logger:         slog.Default(),
		metrics:        noopRecorder{},
	}
}

// WithGrammar sets the grammar used before falling back.
func (p *Parser) WithGrammar(g Grammar) *Parser {
	if g != nil {
		p.grammar = g
	}
	return p
}

// WithExamples replaces the example table. An empty table disables the
// example shortcut.
func (p *Parser) WithExamples(examples Examples) *Parser {
	p.examples = examples
	return p
}

// WithMaxInputLength sets the length above which inputs go straight to the
// fallback parser. Zero means unlimited.
func (p *Parser) WithMaxInputLength(n int) *Parser {
	p.maxInputLength = n
	return p
}

// WithLogger sets the logger.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithMetrics sets the statistics recorder.
func (p *Parser) WithMetrics(r Recorder) *Parser {
	if r != nil {
		p.metrics = r
	}
	return p
}

// Examples returns the parser's example table.
func (p *Parser) Examples() Examples {
	return p.examples
}

// Parse resolves input in order: blank input, example table, grammar,
// fallback. It never panics.
func (p *Parser) Parse(input string) (res Result) {
	start := time.Now()
	defer func() {
		p.metrics.RecordParse(string(res.Source), time.Since(start))
	}()

	if strings.TrimSpace(input) == "" {
		return Result{Source: SourceEmpty}
	}

	if node, ok := p.examples.Lookup(input); ok {
		return Result{Node: node, Source: SourceExample}
	}

	var err error
	if p.maxInputLength > 0 && len(input) > p.maxInputLength {
		err = fmt.Errorf("%w: %d > %d bytes", ErrInputTooLong, len(input), p.maxInputLength)
	} else {
		var node ast.Node
		node, err = p.parseGrammar(input)
		if err == nil {
			return Result{Node: node, Source: SourceGrammar}
		}
		p.metrics.RecordGrammarFailure()
	}

	p.logger.Debug("grammar not used, parsing with fallback",
		"expression", input,
		"reason", shortError(err),
	)
	return Result{Node: p.parseFallback(input), Source: SourceFallback, Err: err}
}

// ParseExpression returns only the tree of Parse.
func (p *Parser) ParseExpression(input string) ast.Node {
	return p.Parse(input).Node
}

func (p *Parser) parseGrammar(input string) (node ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			node, err = nil, p.recovered("grammar", input, r)
		}
	}()
	return p.grammar.Parse(input)
}

func (p *Parser) parseFallback(input string) (node ast.Node) {
	defer func() {
		if r := recover(); r != nil {
			_ = p.recovered("fallback", input, r)
			node = nil
		}
	}()
	return fallback.Parse(input)
}

func (p *Parser) recovered(stage, input string, r any) error {
	p.metrics.RecordRecoveredPanic()
	p.logger.Warn("recovered parser panic",
		"stage", stage,
		"expression", input,
		"panic", fmt.Sprint(r),
	)
	return &tagerrors.Error{
		Type:    tagerrors.ErrorTypeInternal,
		Message: fmt.Sprintf("%s parser panic: %v", stage, r),
		Cause:   ErrParserFault,
	}
}

func shortError(err error) string {
	var diag *tagerrors.Error
	if errors.As(err, &diag) {
		return diag.Short()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

var defaultParser = NewParser()

// ParseExpression parses input with a parser using the shared grammar and
// the built-in example table.
func ParseExpression(input string) ast.Node {
	return defaultParser.ParseExpression(input)
}
