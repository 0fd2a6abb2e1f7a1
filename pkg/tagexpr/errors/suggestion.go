package errors

import (
	"fmt"
	"strings"
)

var operators = []string{"||", ",", ".."}

// Suggest returns a fix for the most likely mistake in input, or "" when
// nothing obvious is wrong.
func Suggest(input string) string {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return ""
	case strings.ContainsAny(trimmed, "()"):
		return "parentheses are not supported; operator precedence is '..' then ',' then '||'"
	case strings.Contains(trimmed, "&&"):
		return "use ',' for AND instead of '&&'"
	case strings.Contains(trimmed, "..."):
		return "a range uses exactly two dots, e.g. '39500..39600'"
	case hasSinglePipe(trimmed):
		return "use '||' for OR instead of '|'"
	case startsWithOperator(trimmed) || endsWithOperator(trimmed):
		return "remove the operator or add a tag on both sides"
	case hasEmptyOperand(trimmed):
		return "two operators in a row; add a tag between them"
	case strings.Count(trimmed, "..") > 1 && !strings.Contains(trimmed, ",") && !strings.Contains(trimmed, "||"):
		return "range endpoints must be single tags; combine ranges with ',' or '||'"
	}
	return ""
}

// SuggestOperator suggests the closest valid operator for an unknown one.
func SuggestOperator(unknown string) string {
	if unknown == "" {
		return ""
	}

	minDistance := 1000
	var bestMatch string
	for _, op := range operators {
		if dist := levenshteinDistance(unknown, op); dist < minDistance {
			minDistance = dist
			bestMatch = op
		}
	}

	if minDistance <= 2 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return fmt.Sprintf("Valid operators: %s", strings.Join(operators, " "))
}

func hasSinglePipe(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '|' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '|' {
			i++
			continue
		}
		return true
	}
	return false
}

func startsWithOperator(s string) bool {
	return strings.HasPrefix(s, "||") || strings.HasPrefix(s, ",") || strings.HasPrefix(s, "..")
}

func endsWithOperator(s string) bool {
	return strings.HasSuffix(s, "||") || strings.HasSuffix(s, ",") || strings.HasSuffix(s, "..")
}

func hasEmptyOperand(s string) bool {
	compact := strings.Join(strings.Fields(s), "")
	for _, pair := range []string{"||||", "||,", ",||", ",,", "..,", ",..", "..||", "||.."} {
		if strings.Contains(compact, pair) {
			return true
		}
	}
	return false
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len1][len2]
}
