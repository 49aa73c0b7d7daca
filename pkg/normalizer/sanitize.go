package normalizer

import (
	"regexp"
	"strings"
)

// fenceRe matches a markdown code fence that wraps the whole string.
var fenceRe = regexp.MustCompile("(?is)^```(?:json)?\\s*(.*?)\\s*```$")

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\ufeff':
		return true
	}
	return false
}

// Sanitize cleans a raw completion: it unwraps a surrounding code fence,
// removes zero-width characters, collapses whitespace runs and trims.
// It never fails and is idempotent.
func Sanitize(raw string) string {
	s := strings.TrimFunc(raw, func(r rune) bool {
		return isZeroWidth(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	s = strings.Map(func(r rune) rune {
		if isZeroWidth(r) {
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}
