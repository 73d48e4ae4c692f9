package evaluation

import (
	"strings"
	"unicode/utf8"
)

// Tokenize lower-cases text, splits it on whitespace, and drops tokens
// shorter than three characters (articles and preposition noise). It is
// total: empty input yields an empty slice.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) > 2 {
			words = append(words, field)
		}
	}
	return words
}
