package grounder

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalizer converts a text to the form used as an index key.
// It must be deterministic and safe for concurrent use.
type Normalizer func(string) string

// Normalize is the default Normalizer. It decomposes the text (NFKD),
// removes combining marks, folds case, replaces everything except letters
// and digits with spaces and collapses runs of spaces.
func Normalize(s string) string {
	s = norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			space = false
		default:
			if !space {
				b.WriteByte(' ')
				space = true
			}
		}
	}
	res := strings.TrimRight(b.String(), " ")
	return cases.Fold().String(res)
}

// wordCount counts space-separated words of a normalized text.
func wordCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, " ") + 1
}
