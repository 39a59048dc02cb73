package pattern

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveShorthand(t *testing.T) {
	tests := []struct {
		letter rune
		size   int
		has    []rune
		hasNot []rune
	}{
		{letter: 'd', size: 10, has: []rune("059"), hasNot: []rune("a_ ")},
		{letter: 'w', size: 63, has: []rune("aZ0_"), hasNot: []rune("- \t")},
		{letter: 's', size: 6, has: []rune(" \t\n\r\f\v"), hasNot: []rune("a0")},
		{letter: 'D', size: 90, has: []rune("a!~ "), hasNot: []rune("0123456789")},
		{letter: 'W', size: 37, has: []rune("-!@ \t"), hasNot: []rune("aZ0_")},
		{letter: 'S', size: 94, has: []rune("a0!~"), hasNot: []rune(" \t\n")},
	}

	for _, tt := range tests {
		t.Run(string(tt.letter), func(t *testing.T) {
			alphabet, err := ResolveShorthand(tt.letter)
			require.NoError(t, err)
			assert.Len(t, alphabet, tt.size)
			assert.True(t, sort.SliceIsSorted(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] }))
			for _, c := range tt.has {
				assert.Contains(t, alphabet, c)
			}
			for _, c := range tt.hasNot {
				assert.NotContains(t, alphabet, c)
			}
		})
	}
}

func TestResolveShorthand_Unknown(t *testing.T) {
	_, err := ResolveShorthand('q')
	require.Error(t, err)

	var classErr *InvalidClassError
	require.True(t, errors.As(err, &classErr))
	assert.Equal(t, `\q`, classErr.Class)
}

func TestResolveShorthand_ReturnsCopy(t *testing.T) {
	first, err := ResolveShorthand('d')
	require.NoError(t, err)
	first[0] = 'x'

	second, err := ResolveShorthand('d')
	require.NoError(t, err)
	assert.Equal(t, '0', second[0])
}

func TestResolveBracket(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "single chars", body: "ao", want: "ao"},
		{name: "sorted output", body: "oa", want: "ao"},
		{name: "deduplicated", body: "abab", want: "ab"},
		{name: "range", body: "a-e", want: "abcde"},
		{name: "range and chars", body: "x0-2a", want: "012ax"},
		{name: "overlapping ranges", body: "a-cb-d", want: "abcd"},
		{name: "leading hyphen literal", body: "-a", want: "-a"},
		{name: "trailing hyphen literal", body: "a-", want: "-a"},
		{name: "escaped hyphen", body: `a\-c`, want: "-ac"},
		{name: "shorthand inside", body: `\dx`, want: "0123456789x"},
		{name: "escaped bracket", body: `\]`, want: "]"},
		{name: "control escape", body: `\t`, want: "\t"},
		{name: "single char range", body: "a-a", want: "a"},
		{name: "hyphen starts range", body: "--/", want: "-./"},
		{name: "hyphen range after range", body: "a-c--/", want: "-./abc"},
		{name: "double hyphen literal", body: "--", want: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBracket(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestResolveBracket_Negated(t *testing.T) {
	got, err := ResolveBracket("^a-z")
	require.NoError(t, err)

	assert.Len(t, got, len(Printable())-26)
	assert.NotContains(t, got, 'm')
	assert.Contains(t, got, 'M')
	assert.Contains(t, got, '0')
}

func TestResolveBracket_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "inverted range", body: "z-a"},
		{name: "empty", body: ""},
		{name: "unknown escape", body: `\q`},
		{name: "trailing backslash", body: `a\`},
		{name: "class as range endpoint", body: `a-\d`},
		{name: "inverted range to hyphen", body: "a--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveBracket(tt.body)
			require.Error(t, err)
			var classErr *InvalidClassError
			assert.True(t, errors.As(err, &classErr), "expected InvalidClassError, got %T", err)
		})
	}
}

func TestPrintable(t *testing.T) {
	p := Printable()
	assert.Len(t, p, 100)
	assert.Equal(t, '\t', p[0])
	assert.Equal(t, '~', p[len(p)-1])
}
