package normalizer

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// paddedIntRe finds zero-padded integer literals on hour/minute keys,
// which are not valid JSON numbers.
var paddedIntRe = regexp.MustCompile(`"(hour|minute)"\s*:\s*0*(\d+)`)

// Extract takes the greedy first-'{' to last-'}' substring of a sanitized
// completion, repairs padded hour/minute literals and parses it into a
// Candidate. Multiple top-level objects are not separated.
func Extract(sanitized string) (Candidate, error) {
	start := strings.IndexByte(sanitized, '{')
	if start < 0 {
		return nil, &Error{Kind: ErrNoJSONFound}
	}

	fragment := sanitized[start:]
	if end := strings.LastIndexByte(sanitized, '}'); end > start {
		fragment = sanitized[start : end+1]
	}
	fragment = repairNumbers(fragment)

	if !gjson.Valid(fragment) {
		return nil, &Error{Kind: ErrMalformedJSON, Fragment: fragment}
	}
	obj, ok := gjson.Parse(fragment).Value().(map[string]any)
	if !ok {
		return nil, &Error{Kind: ErrMalformedJSON, Fragment: fragment}
	}

	return Candidate(obj), nil
}

func repairNumbers(s string) string {
	return paddedIntRe.ReplaceAllString(s, `"$1":$2`)
}
