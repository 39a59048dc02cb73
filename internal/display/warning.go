package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/wordexpand/internal/pattern"
)

// maxListed caps the number of items printed under a warning
const maxListed = 5

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related atoms or words (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Items) > 0 {
		shown := w.Items
		if len(shown) > maxListed {
			shown = shown[:maxListed]
		}
		for i, item := range shown {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, item))
		}
		if hidden := len(w.Items) - len(shown); hidden > 0 {
			b.WriteString(fmt.Sprintf("      ... and %d more\n", hidden))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnRepetitionExceedsClass reports a class quantified beyond its size.
// Characters are not reused within one occurrence, so lengths above the
// class size contribute nothing.
func WarnRepetitionExceedsClass(atom pattern.Atom) Warning {
	size := len(atom.Alphabet)
	w := Warning{
		Title: "Repetition exceeds class size",
		Items: []string{atom.String()},
	}
	if atom.Rep.Min > size {
		w.Message = fmt.Sprintf("%s%s has only %d characters, so the pattern produces no candidates",
			atom.Text, atom.Rep, size)
		w.Suggestion = fmt.Sprintf("Lower the minimum repetition to %d or less", size)
	} else {
		w.Message = fmt.Sprintf("lengths above %d produce no candidates for %s", size, atom.Text)
		w.Suggestion = fmt.Sprintf("Use {%d,%d} to state the reachable range", atom.Rep.Min, size)
	}
	return w
}

// WarnDuplicateWords reports words that appear more than once. Duplicates
// yield identical candidates that are removed from the output.
func WarnDuplicateWords(path string, duplicates []string) Warning {
	return Warning{
		Title:   "Wordlist contains duplicate words",
		Message: fmt.Sprintf("%d words in %s appear more than once", len(duplicates), path),
		Items:   duplicates,
	}
}

// WarnEmptyWordlist reports a wordlist without any words
func WarnEmptyWordlist(path string) Warning {
	return Warning{
		Title:      "Wordlist contains no words",
		Message:    fmt.Sprintf("%s has no non-blank lines, so the pattern produces no candidates", path),
		Suggestion: "Check the file format: .txt, .md and .yaml are supported",
	}
}

// Diagnose returns warnings for legal but likely unintended patterns and
// wordlists. wordlistPath is empty when no wordlist was supplied.
func Diagnose(atoms pattern.Sequence, words []string, wordlistPath string) []Warning {
	var warnings []Warning

	for _, atom := range atoms {
		if atom.Kind == pattern.KindClass && atom.Rep.Max > len(atom.Alphabet) {
			warnings = append(warnings, WarnRepetitionExceedsClass(atom))
		}
	}

	if wordlistPath == "" {
		return warnings
	}
	if len(words) == 0 {
		return append(warnings, WarnEmptyWordlist(wordlistPath))
	}
	if dups := duplicates(words); len(dups) > 0 {
		warnings = append(warnings, WarnDuplicateWords(wordlistPath, dups))
	}
	return warnings
}

// duplicates returns the sorted set of words occurring more than once
func duplicates(words []string) []string {
	counts := make(map[string]int, len(words))
	for _, word := range words {
		counts[word]++
	}
	var dups []string
	for word, n := range counts {
		if n > 1 {
			dups = append(dups, word)
		}
	}
	sort.Strings(dups)
	return dups
}
