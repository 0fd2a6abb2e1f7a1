package grammar

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"mercator-hq/tagviz/pkg/tagexpr/ast"
	tagerrors "mercator-hq/tagviz/pkg/tagexpr/errors"
)

// ErrNoMatch reports that the input does not conform to the grammar.
var ErrNoMatch = errors.New("input does not match the tag expression grammar")

var tokens = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n\r\x{2028}\x{2029}]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Or", Pattern: `\|\|`},
	{Name: "And", Pattern: `,`},
	{Name: "Range", Pattern: `\.\.`},
	{Name: "Ident", Pattern: `(?:\.?[\p{L}0-9_-])+|\.`},
})

type orExpr struct {
	Terms []*andExpr `@@ ( "||" @@ )*`
}

type andExpr struct {
	Terms []*rangeExpr `@@ ( "," @@ )*`
}

type rangeExpr struct {
	From string  `@Ident`
	To   *string `( ".." @Ident )?`
}

// Grammar parses tag expressions.
type Grammar struct {
	parser *participle.Parser[orExpr]
}

// New builds a grammar.
func New() (*Grammar, error) {
	p, err := participle.Build[orExpr](
		participle.Lexer(tokens),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build tag expression grammar: %w", err)
	}
	return &Grammar{parser: p}, nil
}

// MustNew is like New but panics on error.
func MustNew() *Grammar {
	g, err := New()
	if err != nil {
		panic(err)
	}
	return g
}

var defaultGrammar = MustNew()

// Default returns a shared, read-only grammar instance.
func Default() *Grammar {
	return defaultGrammar
}

// EBNF returns the grammar in EBNF notation.
func (g *Grammar) EBNF() string {
	return g.parser.String()
}

// Parse parses input into a tree.
//
// When input does not match, the returned error satisfies
// errors.Is(err, ErrNoMatch) and errors.As into a *tagerrors.Error carrying
// the failing position.
func (g *Grammar) Parse(input string) (ast.Node, error) {
	expr, err := g.parser.ParseString("", input)
	if err != nil {
		return nil, diagnose(input, err)
	}
	return fold(expr), nil
}

// diagnose converts a participle error into a located diagnostic.
func diagnose(input string, err error) error {
	diag := &tagerrors.Error{
		Type:    tagerrors.ErrorTypeNoMatch,
		Message: err.Error(),
		Cause:   errors.Join(ErrNoMatch, err),
	}

	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		diag.Type = tagerrors.ErrorTypeSyntax
	}

	var perr participle.Error
	if errors.As(err, &perr) {
		diag.Message = perr.Message()
		diag.Location = tagerrors.LocationAt(input, perr.Position().Offset)
	}

	return tagerrors.WithContext(diag, input)
}
