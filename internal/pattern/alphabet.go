package pattern

import (
	"sort"
	"unicode"
)

const (
	digitChars      = "0123456789"
	letterChars     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	punctuation     = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	whitespaceChars = " \t\n\r\f\v"
)

// printable is the character domain used for complemented classes.
var printable = digitChars + letterChars + punctuation + whitespaceChars

// shorthandClasses maps a shorthand escape letter to its alphabet.
var shorthandClasses = map[rune][]rune{
	'd': sortedUnique([]rune(digitChars)),
	'w': sortedUnique([]rune(letterChars + digitChars + "_")),
	's': sortedUnique([]rune(whitespaceChars)),
	'D': complement(digitChars),
	'W': complement(letterChars + digitChars + "_"),
	'S': complement(whitespaceChars),
}

// controlEscapes are escapes that denote a single control character.
var controlEscapes = map[rune]rune{
	't': '\t',
	'n': '\n',
	'r': '\r',
	'f': '\f',
	'v': '\v',
}

// Printable returns the sorted character domain used for complements.
func Printable() []rune {
	return sortedUnique([]rune(printable))
}

// ResolveShorthand expands a shorthand class letter (the character after the
// backslash) into its alphabet.
func ResolveShorthand(letter rune) ([]rune, error) {
	alphabet, ok := shorthandClasses[letter]
	if !ok {
		return nil, &InvalidClassError{Class: `\` + string(letter), Reason: "unknown shorthand class"}
	}
	return append([]rune(nil), alphabet...), nil
}

// classItem is one element of a bracket expression body.
type classItem struct {
	char   rune
	set    []rune // non-nil for shorthand classes
	hyphen bool   // unescaped '-'
}

// ResolveBracket expands the body of a bracket expression (the text between
// '[' and ']') into a deduplicated alphabet sorted by code point.
// A leading '^' negates the class against the printable domain.
func ResolveBracket(body string) ([]rune, error) {
	class := "[" + body + "]"
	runes := []rune(body)

	negate := false
	if len(runes) > 0 && runes[0] == '^' {
		negate = true
		runes = runes[1:]
	}

	items, err := scanClassItems(runes, class)
	if err != nil {
		return nil, err
	}

	var chars []rune
	for i := 0; i < len(items); i++ {
		item := items[i]
		if item.set != nil {
			chars = append(chars, item.set...)
			continue
		}

		// A '-' between two single characters forms a range, and a '-' may
		// itself be the start of one ("--/"). Anywhere else it is literal.
		if i+2 < len(items) && items[i+1].hyphen {
			end := items[i+2]
			if end.set != nil {
				return nil, &InvalidClassError{Class: class, Reason: "range endpoint cannot be a class"}
			}
			if item.char > end.char {
				return nil, &InvalidClassError{
					Class:  class,
					Reason: "inverted range " + string(item.char) + "-" + string(end.char),
				}
			}
			for c := item.char; c <= end.char; c++ {
				chars = append(chars, c)
			}
			i += 2
			continue
		}

		chars = append(chars, item.char)
	}

	if negate {
		excluded := make(map[rune]bool, len(chars))
		for _, c := range chars {
			excluded[c] = true
		}
		chars = chars[:0]
		for _, c := range Printable() {
			if !excluded[c] {
				chars = append(chars, c)
			}
		}
	}

	if len(chars) == 0 {
		return nil, &InvalidClassError{Class: class, Reason: "class matches no characters"}
	}

	return sortedUnique(chars), nil
}

func scanClassItems(runes []rune, class string) ([]classItem, error) {
	items := make([]classItem, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '\\':
			if i+1 >= len(runes) {
				return nil, &InvalidClassError{Class: class, Reason: "trailing backslash"}
			}
			i++
			item, err := resolveEscape(runes[i])
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case '-':
			items = append(items, classItem{char: c, hyphen: true})
		default:
			items = append(items, classItem{char: c})
		}
	}
	return items, nil
}

// resolveEscape interprets the character following a backslash.
func resolveEscape(c rune) (classItem, error) {
	if set, ok := shorthandClasses[c]; ok {
		return classItem{set: set}, nil
	}
	if ctrl, ok := controlEscapes[c]; ok {
		return classItem{char: ctrl}, nil
	}
	if unicode.IsLetter(c) || unicode.IsDigit(c) {
		return classItem{}, &InvalidClassError{Class: `\` + string(c), Reason: "unknown escape"}
	}
	return classItem{char: c}, nil
}

func complement(exclude string) []rune {
	skip := make(map[rune]bool, len(exclude))
	for _, c := range exclude {
		skip[c] = true
	}
	var out []rune
	for _, c := range printable {
		if !skip[c] {
			out = append(out, c)
		}
	}
	return sortedUnique(out)
}

func sortedUnique(chars []rune) []rune {
	seen := make(map[rune]bool, len(chars))
	out := make([]rune, 0, len(chars))
	for _, c := range chars {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
