// Package pattern turns an expansion pattern into an ordered sequence of atoms.
//
// The grammar is a small subset of regular expressions: literal characters,
// bracket expressions ("[a-z]", "[^0-9]"), shorthand classes ("\w", "\d",
// "\s" and their complements), bounded quantifiers ("{m}", "{m,n}", "?"),
// and the "/x" placeholder that is later filled from a wordlist.
//
// Parsing is gated by Validate, which compiles the raw pattern with the
// standard regexp/syntax package so users get familiar diagnostics for
// malformed input before the expansion grammar is applied.
package pattern

import (
	"fmt"
	"strings"
)

// PlaceholderToken is the pattern token substituted with wordlist entries.
const PlaceholderToken = "/x"

// Kind discriminates the variants of Atom.
type Kind int

const (
	// KindLiteral contributes one fixed character.
	KindLiteral Kind = iota
	// KindClass contributes one character drawn from an alphabet.
	KindClass
	// KindPlaceholder contributes one whole word from the wordlist.
	KindPlaceholder
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindClass:
		return "class"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Repetition is the inclusive occurrence range attached to an atom.
// A bare atom has Repetition{Min: 1, Max: 1}.
type Repetition struct {
	Min int
	Max int
}

// Once is the repetition of an unquantified atom.
var Once = Repetition{Min: 1, Max: 1}

// String renders the repetition in quantifier syntax.
func (r Repetition) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("{%d}", r.Min)
	}
	return fmt.Sprintf("{%d,%d}", r.Min, r.Max)
}

// Atom is one discrete unit of a parsed pattern.
type Atom struct {
	Kind Kind
	// Char is set for KindLiteral.
	Char rune
	// Alphabet is set for KindClass: distinct runes in ascending order.
	Alphabet []rune
	// Text is the source text the atom was parsed from, without quantifier.
	Text string
	Rep  Repetition
}

// Literal returns a literal atom repeated once.
func Literal(c rune) Atom {
	return Atom{Kind: KindLiteral, Char: c, Text: string(c), Rep: Once}
}

// Class returns a class atom over the given alphabet repeated once.
func Class(text string, alphabet []rune) Atom {
	return Atom{Kind: KindClass, Alphabet: alphabet, Text: text, Rep: Once}
}

// Placeholder returns a placeholder atom repeated once.
func Placeholder() Atom {
	return Atom{Kind: KindPlaceholder, Text: PlaceholderToken, Rep: Once}
}

// String renders the atom for diagnostics, e.g. "class [ao]{0,2} (2 chars)".
func (a Atom) String() string {
	var sb strings.Builder
	sb.WriteString(a.Kind.String())
	sb.WriteString(" ")
	sb.WriteString(a.Text)
	if a.Rep != Once {
		sb.WriteString(a.Rep.String())
	}
	if a.Kind == KindClass {
		sb.WriteString(fmt.Sprintf(" (%d chars)", len(a.Alphabet)))
	}
	return sb.String()
}

// Sequence is an ordered, immutable list of atoms produced by Parse.
type Sequence []Atom

// Placeholders returns the number of placeholder atoms in the sequence.
func (s Sequence) Placeholders() int {
	n := 0
	for _, a := range s {
		if a.Kind == KindPlaceholder {
			n++
		}
	}
	return n
}
