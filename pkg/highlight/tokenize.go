package highlight

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category classifies a token.
type Category string

const (
	CategoryKey         Category = "key"
	CategoryString      Category = "string"
	CategoryNumber      Category = "number"
	CategoryBoolean     Category = "boolean"
	CategoryNull        Category = "null"
	CategoryPunctuation Category = "punctuation"
	CategoryBracket     Category = "bracket"
	CategoryWhitespace  Category = "whitespace"
	CategoryPlain       Category = "plain"      // Text no matcher claimed
	CategoryDiagnostic  Category = "diagnostic" // Serialization failure message
)

// Slot returns the palette slot used for a category.
func (c Category) Slot() Slot {
	switch c {
	case CategoryKey:
		return SlotKey
	case CategoryString:
		return SlotString
	case CategoryNumber:
		return SlotNumber
	case CategoryBoolean:
		return SlotBoolean
	case CategoryNull, CategoryDiagnostic:
		return SlotNull
	case CategoryPunctuation:
		return SlotPunctuation
	case CategoryBracket:
		return SlotBracket
	}
	return SlotText
}

// Token is a classified slice of the input text.
type Token struct {
	Text     string
	Category Category
	Offset   int // Byte offset in the input
}

// matcher finds the first match at or after start, returning its bounds
// relative to text, or -1.
type matcher struct {
	category Category
	find     func(text string, start int) (int, int)
}

func regexpMatcher(c Category, re *regexp.Regexp) matcher {
	return matcher{
		category: c,
		find: func(text string, start int) (int, int) {
			loc := re.FindStringIndex(text[start:])
			if loc == nil {
				return -1, -1
			}
			return start + loc[0], start + loc[1]
		},
	}
}

var (
	stringPattern      = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)
	numberPattern      = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	literalPattern     = regexp.MustCompile(`true|false|null`)
	punctuationPattern = regexp.MustCompile(`[,:]`)
	bracketPattern     = regexp.MustCompile(`[\[\]{}]`)
	whitespacePattern  = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
)

// matchers in priority order; earlier entries win ties.
var matchers = []matcher{
	regexpMatcher(CategoryString, stringPattern),
	regexpMatcher(CategoryNumber, numberPattern),
	{category: CategoryBoolean, find: findLiteral},
	regexpMatcher(CategoryPunctuation, punctuationPattern),
	regexpMatcher(CategoryBracket, bracketPattern),
	regexpMatcher(CategoryWhitespace, whitespacePattern),
}

// findLiteral finds true, false or null as a whole word. Word boundaries are
// checked against the full text, not the remaining suffix.
func findLiteral(text string, start int) (int, int) {
	for pos := start; pos < len(text); {
		loc := literalPattern.FindStringIndex(text[pos:])
		if loc == nil {
			return -1, -1
		}
		s, e := pos+loc[0], pos+loc[1]
		if !isWordByteBefore(text, s) && !isWordByteAt(text, e) {
			return s, e
		}
		pos = s + 1
	}
	return -1, -1
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isWordByteBefore(text string, i int) bool {
	return i > 0 && isWordByte(text[i-1])
}

func isWordByteAt(text string, i int) bool {
	return i < len(text) && isWordByte(text[i])
}

// Tokenize splits text into classified tokens. At each position every
// matcher searches forward and the earliest match wins, ties going to the
// matcher listed first: string, number, boolean/null, punctuation, bracket,
// whitespace. Unclaimed text becomes Plain tokens, so concatenating the
// token texts always reproduces text.
func Tokenize(text string) []Token {
	var tokens []Token
	// next[i] caches matcher i's first match at or after the cursor; it stays
	// valid until the cursor passes its start.
	type span struct{ start, end int }
	next := make([]span, len(matchers))
	for i := range next {
		next[i] = span{start: -2}
	}

	cursor := 0
	for cursor < len(text) {
		best := -1
		bestStart, bestEnd := -1, -1
		for i, m := range matchers {
			if next[i].start == -2 || (next[i].start >= 0 && next[i].start < cursor) {
				s, e := m.find(text, cursor)
				next[i] = span{start: s, end: e}
			}
			s, e := next[i].start, next[i].end
			if s < 0 || e == s {
				continue
			}
			if best < 0 || s < bestStart {
				best, bestStart, bestEnd = i, s, e
			}
		}

		if best < 0 {
			tokens = append(tokens, Token{Text: text[cursor:], Category: CategoryPlain, Offset: cursor})
			break
		}
		if bestStart > cursor {
			tokens = append(tokens, Token{Text: text[cursor:bestStart], Category: CategoryPlain, Offset: cursor})
		}

		tok := Token{Text: text[bestStart:bestEnd], Category: matchers[best].category, Offset: bestStart}
		switch tok.Category {
		case CategoryString:
			if followedByColon(text, bestEnd) {
				tok.Category = CategoryKey
			}
		case CategoryBoolean:
			if tok.Text == "null" {
				tok.Category = CategoryNull
			}
		}
		tokens = append(tokens, tok)
		cursor = bestEnd
	}
	return tokens
}

// followedByColon reports whether the next non-whitespace rune at or after
// i is ':'.
func followedByColon(text string, i int) bool {
	rest := strings.TrimLeftFunc(text[i:], unicode.IsSpace)
	r, _ := utf8.DecodeRuneInString(rest)
	return r == ':'
}
