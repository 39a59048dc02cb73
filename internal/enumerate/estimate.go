package enumerate

import (
	"math/big"

	"github.com/harrison/wordexpand/internal/pattern"
)

// Estimate returns the number of composition paths for atoms given a
// wordlist of wordCount entries. It is an upper bound on the size of the
// deduplicated output and is computed without enumerating.
func Estimate(atoms pattern.Sequence, wordCount int) *big.Int {
	total := big.NewInt(1)
	for _, atom := range atoms {
		total.Mul(total, AtomCount(atom, wordCount))
		if total.Sign() == 0 {
			break
		}
	}
	return total
}

// AtomCount returns how many substrings a single atom contributes.
func AtomCount(atom pattern.Atom, wordCount int) *big.Int {
	sum := new(big.Int)
	for r := atom.Rep.Min; r <= atom.Rep.Max; r++ {
		switch atom.Kind {
		case pattern.KindLiteral:
			sum.Add(sum, big.NewInt(1))
		case pattern.KindClass:
			sum.Add(sum, permutationCount(len(atom.Alphabet), r))
		case pattern.KindPlaceholder:
			sum.Add(sum, new(big.Int).Exp(big.NewInt(int64(wordCount)), big.NewInt(int64(r)), nil))
		}
	}
	return sum
}

// permutationCount returns k!/(k-r)!, or 0 when r > k.
func permutationCount(k, r int) *big.Int {
	if r > k {
		return new(big.Int)
	}
	n := big.NewInt(1)
	for i := 0; i < r; i++ {
		n.Mul(n, big.NewInt(int64(k-i)))
	}
	return n
}
