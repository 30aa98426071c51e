package combination

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Pair is an unordered pair of normalized concept names.
type Pair struct {
	First  string
	Second string
}

// NewPair normalizes both names and rejects blank ones.
func NewPair(first, second string) (Pair, error) {
	if strings.TrimSpace(first) == "" || strings.TrimSpace(second) == "" {
		return Pair{}, fmt.Errorf("%w: both words are required", ErrInvalidInput)
	}
	return Pair{
		First:  Normalize(first),
		Second: Normalize(second),
	}, nil
}

// Key identifies the pair regardless of order.
func (p Pair) Key() string {
	if p.First > p.Second {
		return p.Second + "\x00" + p.First
	}
	return p.First + "\x00" + p.Second
}

func (p Pair) String() string {
	return p.First + " + " + p.Second
}

// Normalize trims and lower-cases name, then upper-cases its first letter.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	return capitalizeFirst(strings.ToLower(strings.TrimSpace(name)))
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
