package primes

import (
	"errors"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/ring"
)

var (
	// ErrNotPrime is returned when a primitive root is requested for a
	// modulus whose multiplicative group is not cyclic of order p-1.
	ErrNotPrime = errors.New("primes: modulus is not prime")
	// ErrNoInverse is returned by ModInverse when gcd(a, m) != 1.
	ErrNoInverse = errors.New("primes: no modular inverse")
)

// PrimitiveRoot returns the smallest generator of the multiplicative group
// of the prime field F_p. The group of F_2 is trivial and its generator is 1.
//
// A candidate g is a generator iff g^((p-1)/q) != 1 mod p for every prime
// factor q of p-1, so each candidate costs a handful of modular
// exponentiations rather than a walk over the whole group.
func PrimitiveRoot(p int64) (int64, error) {
	if p == 2 {
		return 1, nil
	}
	if p < 2 {
		return 0, fmt.Errorf("%w: %d", ErrNotPrime, p)
	}
	order := uint64(p - 1)
	factors := DistinctFactors(p - 1)
	for g := int64(2); g < p; g++ {
		if isGenerator(uint64(g), uint64(p), order, factors) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrNotPrime, p)
}

func isGenerator(g, p, order uint64, factors []int64) bool {
	// Fermat: a composite p fails here for most g, and PrimitiveRoot
	// reports it once every candidate is exhausted.
	if ring.ModExp(g, order, p) != 1 {
		return false
	}
	for _, q := range factors {
		if ring.ModExp(g, order/uint64(q), p) == 1 {
			return false
		}
	}
	return true
}

// Powers lists g^1, g^2, ..., g^(p-1) mod p. For a generator g this is a
// permutation of the nonzero residues, and entry k-1 is the element whose
// discrete log is k. For p = 2 the list is [1].
func Powers(g, p int64) []int64 {
	if p == 2 {
		return []int64{1}
	}
	out := make([]int64, p-1)
	acc := int64(1)
	for k := range out {
		acc = acc * g % p
		out[k] = acc
	}
	return out
}

// DiscreteLogs inverts a power list: logs[v] = k with g^k = v, for every
// nonzero residue v. logs[0] is -1 since zero has no discrete log.
func DiscreteLogs(powers []int64, p int64) []int64 {
	logs := make([]int64, p)
	logs[0] = -1
	for k, v := range powers {
		logs[v] = int64(k + 1)
	}
	return logs
}
