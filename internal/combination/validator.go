package combination

import (
	"strings"
	"unicode/utf8"
)

const maxResultTokens = 3

// TokenCount returns the number of whitespace separated tokens in s.
func TokenCount(s string) int {
	return len(strings.Fields(s))
}

// IsEchoOfInputs reports whether candidate contains both inputs, ignoring case, and is
// shorter than len(first)+len(second)+2 characters, i.e. it is the inputs glued together.
func IsEchoOfInputs(candidate, first, second string) bool {
	lower := strings.ToLower(candidate)
	if !strings.Contains(lower, strings.ToLower(first)) || !strings.Contains(lower, strings.ToLower(second)) {
		return false
	}
	return utf8.RuneCountInString(candidate) < utf8.RuneCountInString(first)+utf8.RuneCountInString(second)+2
}

// IsRejected reports whether candidate must not be returned as a combination of first and second.
func IsRejected(candidate, first, second string) bool {
	return TokenCount(candidate) > maxResultTokens || IsEchoOfInputs(candidate, first, second)
}
