package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Atoms(t *testing.T) {
	atoms, err := Parse("h[ao]{0,2}t", Options{})
	require.NoError(t, err)
	require.Len(t, atoms, 3)

	assert.Equal(t, KindLiteral, atoms[0].Kind)
	assert.Equal(t, 'h', atoms[0].Char)
	assert.Equal(t, Once, atoms[0].Rep)

	assert.Equal(t, KindClass, atoms[1].Kind)
	assert.Equal(t, "ao", string(atoms[1].Alphabet))
	assert.Equal(t, Repetition{Min: 0, Max: 2}, atoms[1].Rep)
	assert.Equal(t, "[ao]", atoms[1].Text)

	assert.Equal(t, KindLiteral, atoms[2].Kind)
	assert.Equal(t, 't', atoms[2].Char)
}

func TestParse_Quantifiers(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    Repetition
	}{
		{name: "exact", pattern: "a{3}", want: Repetition{Min: 3, Max: 3}},
		{name: "range", pattern: "a{1,4}", want: Repetition{Min: 1, Max: 4}},
		{name: "zero", pattern: "a{0}", want: Repetition{Min: 0, Max: 0}},
		{name: "optional", pattern: "a?", want: Repetition{Min: 0, Max: 1}},
		{name: "multi digit", pattern: `\d{10,12}`, want: Repetition{Min: 10, Max: 12}},
		{name: "on placeholder", pattern: "/x{2}", want: Repetition{Min: 2, Max: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atoms, err := Parse(tt.pattern, Options{AllowPlaceholder: true})
			require.NoError(t, err)
			require.Len(t, atoms, 1)
			assert.Equal(t, tt.want, atoms[0].Rep)
		})
	}
}

func TestParse_Placeholders(t *testing.T) {
	atoms, err := Parse("0/x1/x2", Options{AllowPlaceholder: true})
	require.NoError(t, err)
	require.Len(t, atoms, 5)

	kinds := make([]Kind, len(atoms))
	for i, a := range atoms {
		kinds[i] = a.Kind
	}
	assert.Equal(t, []Kind{KindLiteral, KindPlaceholder, KindLiteral, KindPlaceholder, KindLiteral}, kinds)
	assert.Equal(t, 2, atoms.Placeholders())
}

func TestParse_SlashWithoutX(t *testing.T) {
	atoms, err := Parse("a/b", Options{})
	require.NoError(t, err)
	require.Len(t, atoms, 3)
	assert.Equal(t, '/', atoms[1].Char)
}

func TestParse_Escapes(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		kind    Kind
		char    rune
		size    int
	}{
		{name: "digit class", pattern: `\d`, kind: KindClass, size: 10},
		{name: "word class", pattern: `\w`, kind: KindClass, size: 63},
		{name: "escaped dot", pattern: `\.`, kind: KindLiteral, char: '.'},
		{name: "escaped brace", pattern: `\{`, kind: KindLiteral, char: '{'},
		{name: "escaped backslash", pattern: `\\`, kind: KindLiteral, char: '\\'},
		{name: "tab", pattern: `\t`, kind: KindLiteral, char: '\t'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atoms, err := Parse(tt.pattern, Options{})
			require.NoError(t, err)
			require.Len(t, atoms, 1)
			assert.Equal(t, tt.kind, atoms[0].Kind)
			if tt.kind == KindLiteral {
				assert.Equal(t, tt.char, atoms[0].Char)
			} else {
				assert.Len(t, atoms[0].Alphabet, tt.size)
			}
		})
	}
}

func TestParse_BracketWithLeadingCloser(t *testing.T) {
	atoms, err := Parse("[]a]", Options{})
	require.NoError(t, err)
	require.Len(t, atoms, 1)
	assert.Equal(t, "]a", string(atoms[0].Alphabet))
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		opts    Options
	}{
		{name: "unterminated bracket", pattern: "[ab"},
		{name: "stray closing bracket", pattern: "ab]"},
		{name: "min greater than max", pattern: "a{3,1}"},
		{name: "non numeric quantifier", pattern: "a{x}"},
		{name: "negative quantifier", pattern: "a{-1}"},
		{name: "unterminated quantifier", pattern: "a{2"},
		{name: "unbounded quantifier", pattern: "a{2,}"},
		{name: "too many bounds", pattern: "a{1,2,3}"},
		{name: "nothing to repeat", pattern: "{2}"},
		{name: "double quantifier", pattern: "a{1}{2}"},
		{name: "star", pattern: "a*"},
		{name: "plus", pattern: "a+"},
		{name: "group", pattern: "(ab)"},
		{name: "alternation", pattern: "a|b"},
		{name: "anchor", pattern: "^ab"},
		{name: "trailing backslash", pattern: `ab\`},
		{name: "placeholder without wordlist", pattern: "a/x", opts: Options{AllowPlaceholder: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atoms, err := Parse(tt.pattern, tt.opts)
			require.Error(t, err)
			assert.Nil(t, atoms)

			var syntaxErr *PatternSyntaxError
			assert.True(t, errors.As(err, &syntaxErr), "expected PatternSyntaxError, got %T: %v", err, err)
		})
	}
}

func TestParse_UnterminatedBracketWrapsClassError(t *testing.T) {
	_, err := Parse("x[ab", Options{})
	require.Error(t, err)

	var syntaxErr *PatternSyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, syntaxErr.Pos)

	var classErr *InvalidClassError
	assert.True(t, errors.As(err, &classErr))
}

func TestParse_ClassErrors(t *testing.T) {
	for _, p := range []string{"[z-a]", `\q`, `a\9`} {
		t.Run(p, func(t *testing.T) {
			_, err := Parse(p, Options{})
			require.Error(t, err)
			var classErr *InvalidClassError
			assert.True(t, errors.As(err, &classErr), "expected InvalidClassError, got %T", err)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	atoms, err := Parse("", Options{})
	require.NoError(t, err)
	assert.Empty(t, atoms)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		pattern string
		wantErr bool
	}{
		{pattern: "h[ao]{0,2}t", wantErr: false},
		{pattern: `0/x1/x2`, wantErr: false},
		{pattern: `\w{2}`, wantErr: false},
		{pattern: "[ab", wantErr: true},
		{pattern: "a(b", wantErr: true},
		{pattern: "a{2}{3}", wantErr: true},
		{pattern: "*a", wantErr: true},
		{pattern: `\q`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			err := Validate(tt.pattern)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var invalid *InvalidPatternError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.pattern, invalid.Pattern)
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestCompile_ValidatesBeforeParsing(t *testing.T) {
	_, err := Compile("[ab", Options{})
	require.Error(t, err)

	var invalid *InvalidPatternError
	assert.True(t, errors.As(err, &invalid))

	var syntaxErr *PatternSyntaxError
	assert.False(t, errors.As(err, &syntaxErr))
}

func TestAtomString(t *testing.T) {
	atoms, err := Parse("a[bc]{1,2}/x", Options{AllowPlaceholder: true})
	require.NoError(t, err)

	assert.Equal(t, "literal a", atoms[0].String())
	assert.Equal(t, "class [bc]{1,2} (2 chars)", atoms[1].String())
	assert.Equal(t, "placeholder /x", atoms[2].String())
}
