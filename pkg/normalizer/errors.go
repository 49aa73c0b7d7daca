package normalizer

import (
	"errors"
	"fmt"
)

var (
	ErrNoJSONFound   = errors.New("no JSON object found in completion")
	ErrMalformedJSON = errors.New("malformed JSON in completion")
	ErrMissingTitle  = errors.New("task title is missing")
)

// Error is a terminal normalization failure. Kind is one of the
// sentinels above; Fragment holds the text that failed to parse and
// Input the user's original text.
type Error struct {
	Kind     error
	Fragment string
	Input    string
}

func (e *Error) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("%v: %q", e.Kind, truncate(e.Fragment, 120))
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
