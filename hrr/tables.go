package hrr

import (
	"fmt"
	"math"
	"math/cmplx"

	"hrr-numbers/primes"
)

// table is indexed [row][slot]; there are max(p)+1 rows and one slot per
// basis prime.
type table [][]complex128

func newTable(rows, slots int) table {
	t := make(table, rows)
	for r := range t {
		t[r] = make([]complex128, slots)
	}
	return t
}

// unit returns exp(2πi·frac).
func unit(frac float64) complex128 {
	return cmplx.Rect(1, 2*math.Pi*frac)
}

// buildTables samples the isomorphism between the multiplicative group of
// F_p and the additive group Z/(p-1) at every exponent k, for every prime.
//
// Row k of mul holds g^k mod p in residue phase, exp(2πi·g^k/p); row k of
// add holds the exponent k as exp(2πi·k/(p-1)). Zero has no discrete log:
// the first and last rows of mul are pinned to phase 1 (the encoding of
// residue 0) and pair with the zero rows of add.
func buildTables(ps []int64) (mul, add table, gens []int64, err error) {
	rows := int(ps[len(ps)-1]) + 1
	mul = newTable(rows, len(ps))
	add = newTable(rows, len(ps))
	gens = make([]int64, len(ps))

	for i, p := range ps {
		g, err := primes.PrimitiveRoot(p)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("hrr: generator for %d: %w", p, err)
		}
		gens[i] = g
		pw := primes.Powers(g, p)

		mul[0][i] = 1
		for k := 1; k < int(p); k++ {
			mul[k][i] = unit(float64(pw[k-1]) / float64(p))
			add[k][i] = unit(float64(k) / float64(p-1))
		}
		mul[rows-1][i] = 1
	}
	return mul, add, gens, nil
}
