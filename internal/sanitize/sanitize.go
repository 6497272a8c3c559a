// Package sanitize normalizes free text into the lowercase alphabetic form
// used for citation identifiers and title comparisons.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes accented letters and drops the combining marks,
// so "Müller" folds to "Muller" instead of being split at the umlaut.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var letterRun = regexp.MustCompile(`[a-z]+`)

// Text returns s lowercased with punctuation, line breaks and digits removed,
// reduced to space-separated runs of ASCII letters.
//
// Punctuation and digits are deleted rather than replaced, so "O'Brien"
// becomes "obrien" and "abc2def" becomes "abcdef". Anything else that is not
// an ASCII letter separates tokens. The result is idempotent.
func Text(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}

	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\r' || r == '\n':
			return -1
		case unicode.IsDigit(r):
			return -1
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			return -1
		}
		return r
	}, s)

	return strings.Join(letterRun.FindAllString(s, -1), " ")
}

// FirstToken returns the sanitized form of the first whitespace-separated
// token of s, or "" if s has none.
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return Text(fields[0])
}
