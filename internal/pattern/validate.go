package pattern

import (
	"regexp"
)

// Validate checks that raw compiles as a regular expression. No matching is
// performed; the check only surfaces standard regex diagnostics before the
// expansion grammar is applied.
func Validate(raw string) error {
	if _, err := regexp.Compile(raw); err != nil {
		return &InvalidPatternError{Pattern: raw, Err: err}
	}
	return nil
}
