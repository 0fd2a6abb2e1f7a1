package logging

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// Context keys double as the attribute names written to the log.
const (
	RunIDKey      contextKey = "run_id"
	SourceFileKey contextKey = "source_file"
	ExpressionKey contextKey = "expression"
)

// contextFields is the order fields are emitted in.
var contextFields = []contextKey{RunIDKey, SourceFileKey, ExpressionKey}

// maxExpressionField caps the expression recorded in log lines, in runes.
const maxExpressionField = 120

// NewRunID returns a fresh identifier for one CLI invocation or watch cycle.
func NewRunID() string { return uuid.NewString() }

func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

func WithSourceFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, SourceFileKey, path)
}

func WithExpression(ctx context.Context, expr string) context.Context {
	return context.WithValue(ctx, ExpressionKey, expr)
}

func GetRunID(ctx context.Context) string      { return stringValue(ctx, RunIDKey) }
func GetSourceFile(ctx context.Context) string { return stringValue(ctx, SourceFileKey) }
func GetExpression(ctx context.Context) string { return stringValue(ctx, ExpressionKey) }

func stringValue(ctx context.Context, key contextKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// extractContextFields returns the non-empty context fields as slog
// key-value pairs.
func extractContextFields(ctx context.Context) []any {
	var out []any
	for _, key := range contextFields {
		v := stringValue(ctx, key)
		if v == "" {
			continue
		}
		if key == ExpressionKey {
			v = truncate(v, maxExpressionField)
		}
		out = append(out, string(key), v)
	}
	return out
}

func truncate(s string, max int) string {
	if r := []rune(s); len(r) > max {
		return string(r[:max]) + "..."
	}
	return s
}
