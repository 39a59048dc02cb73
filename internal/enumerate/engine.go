// Package enumerate composes a parsed atom sequence into the complete,
// sorted set of candidate strings.
//
// Each atom contributes a set of substrings for its position:
//   - a literal repeats its character r times for every r in its repetition range
//   - a class contributes every arrangement of r distinct alphabet characters
//     (permutations without replacement), so "[ao]{2}" yields "ao" and "oa"
//     but never "aa"
//   - a placeholder contributes r words drawn independently from the wordlist
//
// Across atoms the contributions are combined as a full cartesian product.
// The result is materialized, deduplicated and sorted before it is returned;
// memory use is proportional to the number of candidates.
package enumerate

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"sort"
	"strings"

	"github.com/harrison/wordexpand/internal/pattern"
)

// ErrTooManyCandidates is returned when the estimated candidate count
// exceeds the engine's configured limit.
var ErrTooManyCandidates = errors.New("too many candidates")

// Engine expands atom sequences against an optional wordlist.
type Engine struct {
	words []string
	// maxCandidates caps the estimated output size (0 = unlimited).
	maxCandidates uint64
}

// NewEngine creates an Engine. words may be nil when the pattern has no
// placeholders. maxCandidates of 0 disables the size guard.
func NewEngine(words []string, maxCandidates uint64) *Engine {
	return &Engine{
		words:         words,
		maxCandidates: maxCandidates,
	}
}

// Expand returns every candidate for atoms, deduplicated and sorted in
// ascending byte order (code-point order for UTF-8).
func (e *Engine) Expand(atoms pattern.Sequence) ([]string, error) {
	if e.maxCandidates > 0 {
		estimate := Estimate(atoms, len(e.words))
		if estimate.Cmp(new(big.Int).SetUint64(e.maxCandidates)) > 0 {
			return nil, fmt.Errorf("%w: pattern expands to up to %s candidates, limit is %d",
				ErrTooManyCandidates, estimate.String(), e.maxCandidates)
		}
	}

	seen := make(map[string]struct{})
	for candidate := range e.Candidates(atoms) {
		seen[candidate] = struct{}{}
	}

	result := make([]string, 0, len(seen))
	for candidate := range seen {
		result = append(result, candidate)
	}
	sort.Strings(result)
	return result, nil
}

// Candidates yields every composed candidate in composition order. The
// sequence may contain duplicates and is not sorted; Expand is the
// materializing, ordered view.
func (e *Engine) Candidates(atoms pattern.Sequence) iter.Seq[string] {
	return func(yield func(string) bool) {
		parts := make([][]string, len(atoms))
		for i, atom := range atoms {
			parts[i] = e.contributions(atom)
			if len(parts[i]) == 0 {
				return
			}
		}
		product(parts, yield)
	}
}

// contributions returns the substrings one atom may contribute.
func (e *Engine) contributions(atom pattern.Atom) []string {
	var out []string
	for r := atom.Rep.Min; r <= atom.Rep.Max; r++ {
		if r == 0 {
			out = append(out, "")
			continue
		}
		switch atom.Kind {
		case pattern.KindLiteral:
			out = append(out, strings.Repeat(string(atom.Char), r))
		case pattern.KindClass:
			out = append(out, Permutations(atom.Alphabet, r)...)
		case pattern.KindPlaceholder:
			out = append(out, WordProduct(e.words, r)...)
		}
	}
	return out
}

// product yields the concatenation of one element from each part, for every
// combination, varying the last part fastest.
func product(parts [][]string, yield func(string) bool) {
	idx := make([]int, len(parts))
	var sb strings.Builder
	for {
		sb.Reset()
		for i, part := range parts {
			sb.WriteString(part[idx[i]])
		}
		if !yield(sb.String()) {
			return
		}

		i := len(parts) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(parts[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return
		}
	}
}

// Permutations returns every ordered arrangement of r distinct elements of
// alphabet. It returns nil when r exceeds len(alphabet). For a sorted
// alphabet the arrangements come out in ascending order.
func Permutations(alphabet []rune, r int) []string {
	if r > len(alphabet) || r < 0 {
		return nil
	}
	var out []string
	used := make([]bool, len(alphabet))
	buf := make([]rune, 0, r)

	var walk func()
	walk = func() {
		if len(buf) == r {
			out = append(out, string(buf))
			return
		}
		for i, c := range alphabet {
			if used[i] {
				continue
			}
			used[i] = true
			buf = append(buf, c)
			walk()
			buf = buf[:len(buf)-1]
			used[i] = false
		}
	}
	walk()
	return out
}

// WordProduct returns every concatenation of r words, each drawn from the
// full wordlist with replacement.
func WordProduct(words []string, r int) []string {
	if r == 0 {
		return []string{""}
	}
	if len(words) == 0 {
		return nil
	}
	parts := make([][]string, r)
	for i := range parts {
		parts[i] = words
	}
	var out []string
	product(parts, func(s string) bool {
		out = append(out, s)
		return true
	})
	return out
}
