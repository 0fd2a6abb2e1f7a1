package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestLocationAt(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		want   Location
	}{
		{"start", "a||b", 0, Location{Offset: 0, Line: 1, Column: 1}},
		{"middle", "a||b", 3, Location{Offset: 3, Line: 1, Column: 4}},
		{"second line", "a,\nb||", 5, Location{Offset: 5, Line: 2, Column: 3}},
		{"clamped", "ab", 10, Location{Offset: 2, Line: 1, Column: 3}},
		{"runes", "é,|", 3, Location{Offset: 3, Line: 1, Column: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocationAt(tt.input, tt.offset); got != tt.want {
				t.Errorf("LocationAt() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractContext(t *testing.T) {
	got := ExtractContext("a||,b", Location{Line: 1, Column: 4}, 1)
	want := "-> 1 | a||,b\n     |    ^\n"
	if got != want {
		t.Errorf("ExtractContext() =\n%q\nwant\n%q", got, want)
	}

	if got := ExtractContext("a", Location{}, 1); got != "" {
		t.Errorf("ExtractContext() with invalid location = %q, want empty", got)
	}
}

func TestExtractContext_MultiLine(t *testing.T) {
	got := ExtractContext("a,\nb||", Location{Line: 2, Column: 4}, 1)
	if !strings.Contains(got, "   1 | a,\n") {
		t.Errorf("context missing previous line:\n%s", got)
	}
	if !strings.Contains(got, "-> 2 | b||\n") {
		t.Errorf("context missing error line:\n%s", got)
	}
}

func TestError_Format(t *testing.T) {
	err := WithContext(&Error{
		Type:     ErrorTypeNoMatch,
		Message:  `unexpected token ","`,
		Location: Location{Offset: 3, Line: 1, Column: 4},
	}, "a||,b")

	msg := err.Error()
	for _, want := range []string{
		"[nomatch] unexpected token \",\"",
		"--> <input>:1:4",
		"-> 1 | a||,b",
		"= suggestion: two operators in a row",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() missing %q:\n%s", want, msg)
		}
	}

	if got, want := err.Short(), `1:4: unexpected token ","`; got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Type: ErrorTypeInternal, Message: "parser fault", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a||b", ""},
		{"(a||b),c", "parentheses"},
		{"a&&b", "'&&'"},
		{"a...b", "exactly two dots"},
		{"a|b", "'|'"},
		{"a||", "operator"},
		{",a", "operator"},
		{"a,,b", "two operators in a row"},
		{"a , || b", "two operators in a row"},
		{"a..b..c", "single tags"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Suggest(tt.input)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Suggest(%q) = %q, want empty", tt.input, got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Suggest(%q) = %q, want containing %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSuggestOperator(t *testing.T) {
	tests := []struct {
		unknown string
		want    string
	}{
		{"|", "Did you mean '||'?"},
		{";", "Did you mean ','?"},
		{"...", "Did you mean '..'?"},
		{"&&&&&", "Valid operators"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SuggestOperator(tt.unknown); got != tt.want && !strings.Contains(got, tt.want) {
			t.Errorf("SuggestOperator(%q) = %q, want %q", tt.unknown, got, tt.want)
		}
	}
}
