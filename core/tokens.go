package core

import (
	"strings"
	"unicode"
)

// MinTokenLength is the shortest token kept by tokenization.
const MinTokenLength = 3

// Tokenize normalizes text into an ordered sequence of unique lowercase word
// tokens: the input is lowercased, every non-word rune is replaced with a
// space, the result is split on whitespace, tokens shorter than
// MinTokenLength are dropped, and duplicates are removed preserving
// first-occurrence order. Empty input yields an empty sequence.
func Tokenize(text string) []string {
	return TokenizeRaw(strings.ToLower(text))
}

// TokenizeRaw tokenizes like Tokenize but does not lowercase the input.
// It exists for case-sensitive query matching; indexed tokens always come
// from Tokenize.
func TokenizeRaw(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if IsWordRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) < MinTokenLength {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// IsWordRune reports whether r is part of a word token: a letter, a digit,
// or an underscore. The matcher uses it for word-boundary checks so that
// whole-word matching agrees with tokenization.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
