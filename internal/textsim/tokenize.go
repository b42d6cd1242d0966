// Package textsim implements the bag-of-words similarity used for case
// retrieval: tokenization, a per-query vector space with smoothed IDF,
// max-normalized TF-IDF vectors and cosine ranking.
package textsim

import (
	"strings"
	"unicode"
)

// MinTokenLen is the shortest token kept by Tokenize.
const MinTokenLen = 3

// Tokenize lowercases text, replaces every character outside [a-z0-9] and
// whitespace with a space, splits on whitespace and drops tokens shorter
// than MinTokenLen. Empty input yields an empty (nil) slice.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= MinTokenLen {
			tokens = append(tokens, f)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
