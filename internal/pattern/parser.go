package pattern

import (
	"strconv"
	"strings"
	"unicode"
)

// Options controls parsing.
type Options struct {
	// AllowPlaceholder permits "/x" tokens. It is false when no wordlist
	// was supplied.
	AllowPlaceholder bool
}

// Compile validates raw against the regex compiler and then parses it.
func Compile(raw string, opts Options) (Sequence, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	return Parse(raw, opts)
}

type parser struct {
	pattern []rune
	pos     int
	opts    Options
	atoms   Sequence
	// quantified is true when the last atom already carries a quantifier.
	quantified bool
}

// Parse scans raw left to right and returns its atom sequence.
func Parse(raw string, opts Options) (Sequence, error) {
	p := &parser{pattern: []rune(raw), opts: opts}
	for p.pos < len(p.pattern) {
		if err := p.step(); err != nil {
			return nil, err
		}
	}
	return p.atoms, nil
}

func (p *parser) push(a Atom) {
	p.atoms = append(p.atoms, a)
	p.quantified = false
}

func (p *parser) step() error {
	start := p.pos
	ch := p.pattern[p.pos]

	switch ch {
	case '\\':
		if p.pos+1 >= len(p.pattern) {
			return newSyntaxError(start, "trailing backslash")
		}
		esc := p.pattern[p.pos+1]
		p.pos += 2
		return p.escape(esc)

	case '[':
		return p.bracket()

	case ']':
		return newSyntaxError(start, "unbalanced ']'")

	case '/':
		if p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] == 'x' {
			if !p.opts.AllowPlaceholder {
				return newSyntaxError(start, "placeholder %s requires a wordlist", PlaceholderToken)
			}
			p.pos += 2
			p.push(Placeholder())
			return nil
		}
		p.pos++
		p.push(Literal(ch))
		return nil

	case '{':
		rep, err := p.quantifier()
		if err != nil {
			return err
		}
		return p.attach(start, rep)

	case '?':
		p.pos++
		return p.attach(start, Repetition{Min: 0, Max: 1})

	case '*', '+':
		return newSyntaxError(start, "unbounded quantifier %q is not supported, use {m,n}", ch)

	case '(', ')', '|':
		return newSyntaxError(start, "groups and alternation are not supported")

	case '^', '$':
		return newSyntaxError(start, "anchor %q is not supported", ch)
	}

	p.pos++
	p.push(Literal(ch))
	return nil
}

func (p *parser) escape(esc rune) error {
	text := `\` + string(esc)
	if _, ok := shorthandClasses[esc]; ok {
		alphabet, err := ResolveShorthand(esc)
		if err != nil {
			return err
		}
		p.push(Class(text, alphabet))
		return nil
	}
	if ctrl, ok := controlEscapes[esc]; ok {
		a := Literal(ctrl)
		a.Text = text
		p.push(a)
		return nil
	}
	if unicode.IsLetter(esc) || unicode.IsDigit(esc) {
		return &InvalidClassError{Class: text, Reason: "unknown shorthand class"}
	}
	a := Literal(esc)
	a.Text = text
	p.push(a)
	return nil
}

// bracket consumes a bracket expression starting at '['.
// A ']' directly after '[' or '[^' is a literal member.
func (p *parser) bracket() error {
	start := p.pos
	i := p.pos + 1
	if i < len(p.pattern) && p.pattern[i] == '^' {
		i++
	}
	if i < len(p.pattern) && p.pattern[i] == ']' {
		i++
	}
	for i < len(p.pattern) && p.pattern[i] != ']' {
		if p.pattern[i] == '\\' {
			i++
		}
		i++
	}
	if i >= len(p.pattern) {
		text := string(p.pattern[start:])
		return &PatternSyntaxError{
			Pos:     start,
			Message: "unbalanced '['",
			Err:     &InvalidClassError{Class: text, Reason: "missing closing ]"},
		}
	}

	body := string(p.pattern[start+1 : i])
	alphabet, err := ResolveBracket(body)
	if err != nil {
		return err
	}
	p.pos = i + 1
	p.push(Class("["+body+"]", alphabet))
	return nil
}

// quantifier consumes "{m}" or "{m,n}" starting at '{'.
func (p *parser) quantifier() (Repetition, error) {
	start := p.pos
	end := -1
	for i := p.pos + 1; i < len(p.pattern); i++ {
		if p.pattern[i] == '}' {
			end = i
			break
		}
	}
	if end < 0 {
		return Repetition{}, newSyntaxError(start, "unterminated quantifier")
	}

	text := string(p.pattern[start+1 : end])
	p.pos = end + 1

	parts := strings.Split(text, ",")
	if len(parts) > 2 {
		return Repetition{}, newSyntaxError(start, "malformed quantifier {%s}", text)
	}
	min, err := parseBound(parts[0])
	if err != nil {
		return Repetition{}, newSyntaxError(start, "malformed quantifier {%s}", text)
	}
	max := min
	if len(parts) == 2 {
		if parts[1] == "" {
			return Repetition{}, newSyntaxError(start, "unbounded quantifier {%s} is not supported", text)
		}
		max, err = parseBound(parts[1])
		if err != nil {
			return Repetition{}, newSyntaxError(start, "malformed quantifier {%s}", text)
		}
	}
	if min > max {
		return Repetition{}, newSyntaxError(start, "quantifier {%s} has min greater than max", text)
	}
	return Repetition{Min: min, Max: max}, nil
}

func parseBound(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// attach sets rep on the most recent atom.
func (p *parser) attach(pos int, rep Repetition) error {
	if len(p.atoms) == 0 {
		return newSyntaxError(pos, "quantifier has nothing to repeat")
	}
	if p.quantified {
		return newSyntaxError(pos, "quantifier cannot follow another quantifier")
	}
	p.atoms[len(p.atoms)-1].Rep = rep
	p.quantified = true
	return nil
}
