package pattern

import (
	"fmt"
	"strings"
)

// InvalidPatternError is returned when the raw pattern is rejected by the
// host regular-expression compiler.
type InvalidPatternError struct {
	Pattern string // Raw pattern as supplied by the user
	Err     error  // Underlying regexp/syntax diagnostic
}

// Error implements the error interface for InvalidPatternError.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid regex pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying syntax diagnostic.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// PatternSyntaxError reports a failure of the expansion grammar: unbalanced
// brackets, malformed quantifiers, unsupported constructs, or a placeholder
// used without a wordlist.
type PatternSyntaxError struct {
	Pos     int    // Rune offset into the pattern where the problem was found
	Message string // Human-readable description
	Err     error  // Underlying cause (optional)
}

func newSyntaxError(pos int, format string, args ...interface{}) *PatternSyntaxError {
	return &PatternSyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface for PatternSyntaxError.
func (e *PatternSyntaxError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("pattern syntax error at position %d: %s", e.Pos, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying cause for error wrapping support.
func (e *PatternSyntaxError) Unwrap() error {
	return e.Err
}

// InvalidClassError reports a character class that cannot be expanded into
// an alphabet.
type InvalidClassError struct {
	Class  string // Class text as written, e.g. "[z-a]" or "\q"
	Reason string
}

// Error implements the error interface for InvalidClassError.
func (e *InvalidClassError) Error() string {
	return fmt.Sprintf("invalid character class %s: %s", e.Class, e.Reason)
}
