package search

import (
	"strings"
	"unicode"
)

// tokenDelimiters defines characters that separate tokens within names and
// email addresses.
const tokenDelimiters = "@.-_+'"

// Tokenize splits a string into searchable tokens.
// Splits on: @ . - _ + ' and whitespace.
// Lowercases all tokens, drops tokens < 2 chars.
func Tokenize(s string) []string {
	s = strings.ToLower(s)

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(tokenDelimiters, r) || unicode.IsSpace(r)
	})

	result := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) >= 2 {
			result = append(result, t)
		}
	}
	return result
}
