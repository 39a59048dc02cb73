package enumerate

import (
	"errors"
	"math/big"
	"sort"
	"strings"
	"testing"

	"github.com/harrison/wordexpand/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string, placeholders bool) pattern.Sequence {
	t.Helper()
	atoms, err := pattern.Compile(raw, pattern.Options{AllowPlaceholder: placeholders})
	require.NoError(t, err)
	return atoms
}

func expandPattern(t *testing.T, raw string, words []string) []string {
	t.Helper()
	got, err := NewEngine(words, 0).Expand(mustParse(t, raw, words != nil))
	require.NoError(t, err)
	return got
}

func assertStrictlySorted(t *testing.T, got []string) {
	t.Helper()
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i], "output not strictly ascending at index %d", i)
	}
}

func TestExpand_RepeatedClassHasNoRepeatedChars(t *testing.T) {
	got := expandPattern(t, "h[ao]{0,2}t", nil)

	assert.Equal(t, []string{"haot", "hat", "hoat", "hot", "ht"}, got)
	assert.NotContains(t, got, "haat")
	assert.NotContains(t, got, "hoot")
}

func TestExpand_PlaceholdersDrawWithReplacement(t *testing.T) {
	got := expandPattern(t, "0/x1/x2", []string{"cat", "dog"})

	assert.Equal(t, []string{
		"0cat1cat2",
		"0cat1dog2",
		"0dog1cat2",
		"0dog1dog2",
	}, got)
}

func TestExpand_WordlistOrderDoesNotAffectOutput(t *testing.T) {
	a := expandPattern(t, "/x-/x", []string{"zeta", "alpha", "mid"})
	b := expandPattern(t, "/x-/x", []string{"mid", "zeta", "alpha"})
	assert.Equal(t, a, b)
	assert.Len(t, a, 9)
	assertStrictlySorted(t, a)
}

func TestExpand_ProductWithoutQuantifiers(t *testing.T) {
	tests := []struct {
		pattern string
		count   int
		length  int
	}{
		{pattern: "abc", count: 1, length: 3},
		{pattern: "[ab][xyz]c", count: 6, length: 3},
		{pattern: `\d\d`, count: 100, length: 2},
		{pattern: `[a-c]-[0-1]`, count: 6, length: 3},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := expandPattern(t, tt.pattern, nil)
			assert.Len(t, got, tt.count)
			for _, s := range got {
				assert.Len(t, s, tt.length)
			}
			assertStrictlySorted(t, got)
		})
	}
}

func TestExpand_PermutationCounts(t *testing.T) {
	// k!/(k-r)! candidates of length r, none for r > k
	got := expandPattern(t, "[abcd]{0,6}", nil)

	byLength := map[int]int{}
	for _, s := range got {
		byLength[len(s)]++
	}
	assert.Equal(t, map[int]int{0: 1, 1: 4, 2: 12, 3: 24, 4: 24}, byLength)
	assertStrictlySorted(t, got)

	for _, s := range got {
		seen := map[rune]bool{}
		for _, c := range s {
			assert.False(t, seen[c], "%q repeats %q", s, c)
			seen[c] = true
		}
	}
}

func TestExpand_RepetitionBeyondAlphabetIsEmpty(t *testing.T) {
	got := expandPattern(t, "x[ab]{3}y", nil)
	assert.Empty(t, got)
}

func TestExpand_RangeStartingWithHyphen(t *testing.T) {
	assert.Equal(t, []string{"-", ".", "/"}, expandPattern(t, "[--/]", nil))
}

func TestExpand_LiteralRepetition(t *testing.T) {
	assert.Equal(t, []string{"aa", "aaa"}, expandPattern(t, "a{2,3}", nil))
	assert.Equal(t, []string{"ab", "b"}, expandPattern(t, "a?b", nil))
}

func TestExpand_ZeroRepetitionContributesEmptyString(t *testing.T) {
	assert.Equal(t, []string{"ac"}, expandPattern(t, "a[xyz]{0}c", nil))
}

func TestExpand_RepeatedPlaceholder(t *testing.T) {
	got := expandPattern(t, "/x{2}", []string{"a", "b", "c"})
	assert.Len(t, got, 9)
	assert.Contains(t, got, "aa")
	assertStrictlySorted(t, got)
}

func TestExpand_Deduplicates(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		words   []string
		want    []string
	}{
		{
			name:    "duplicate words",
			pattern: "/x",
			words:   []string{"a", "a", "b"},
			want:    []string{"a", "b"},
		},
		{
			name:    "ambiguous concatenation",
			pattern: "/x/x",
			words:   []string{"a", "aa"},
			want:    []string{"aa", "aaa", "aaaa"},
		},
		{
			name:    "optional atoms collide",
			pattern: "a?a?",
			want:    []string{"", "a", "aa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandPattern(t, tt.pattern, tt.words))
		})
	}
}

func TestExpand_PlaceholderCountsWithDistinctWords(t *testing.T) {
	// w^p for p independent placeholders
	words := []string{"x", "y", "z"}
	for p := 1; p <= 3; p++ {
		raw := strings.Repeat("/x", p)
		got := expandPattern(t, raw, words)
		want := 1
		for i := 0; i < p; i++ {
			want *= len(words)
		}
		assert.Len(t, got, want, "pattern %s", raw)
	}
}

func TestExpand_EmptyWordlist(t *testing.T) {
	got, err := NewEngine([]string{}, 0).Expand(mustParse(t, "a/x", true))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpand_EmptyPattern(t *testing.T) {
	assert.Equal(t, []string{""}, expandPattern(t, "", nil))
}

func TestExpand_SortsByCodePoint(t *testing.T) {
	got := expandPattern(t, "[aZ_0]", nil)
	assert.Equal(t, []string{"0", "Z", "_", "a"}, got)
	assert.True(t, sort.StringsAreSorted(got))
}

func TestExpand_MaxCandidates(t *testing.T) {
	atoms := mustParse(t, `\d{2}`, false)

	_, err := NewEngine(nil, 50).Expand(atoms)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyCandidates))

	got, err := NewEngine(nil, 90).Expand(atoms)
	require.NoError(t, err)
	assert.Len(t, got, 90)
}

func TestCandidates_StopsEarly(t *testing.T) {
	engine := NewEngine(nil, 0)
	n := 0
	for range engine.Candidates(mustParse(t, `\w{3}`, false)) {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestPermutations(t *testing.T) {
	assert.Equal(t, []string{"ab", "ac", "ba", "bc", "ca", "cb"}, Permutations([]rune("abc"), 2))
	assert.Equal(t, []string{""}, Permutations([]rune("abc"), 0))
	assert.Nil(t, Permutations([]rune("ab"), 3))
}

func TestWordProduct(t *testing.T) {
	assert.Equal(t, []string{"aa", "ab", "ba", "bb"}, WordProduct([]string{"a", "b"}, 2))
	assert.Equal(t, []string{""}, WordProduct(nil, 0))
	assert.Nil(t, WordProduct(nil, 1))
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		pattern string
		words   int
		want    int64
	}{
		{pattern: "abc", want: 1},
		{pattern: `\d{0,3}`, want: 1 + 10 + 90 + 720},
		{pattern: "[ab]{3}", want: 0},
		{pattern: "a{2,4}", want: 3},
		{pattern: "0/x1/x2", words: 2, want: 4},
		{pattern: "/x{0,2}", words: 3, want: 1 + 3 + 9},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := Estimate(mustParse(t, tt.pattern, true), tt.words)
			assert.Equal(t, 0, got.Cmp(big.NewInt(tt.want)), "got %s, want %d", got, tt.want)
		})
	}
}

func TestEstimate_MatchesExpandWithoutCollisions(t *testing.T) {
	atoms := mustParse(t, `[a-e]{1,3}\d`, false)
	got, err := NewEngine(nil, 0).Expand(atoms)
	require.NoError(t, err)
	assert.Equal(t, int64(len(got)), Estimate(atoms, 0).Int64())
}

func TestEstimate_Large(t *testing.T) {
	// P(63,20)^2 does not fit in 64 bits
	got := Estimate(mustParse(t, `\w{20}\w{20}`, false), 0)
	assert.Greater(t, got.BitLen(), 64)
}
