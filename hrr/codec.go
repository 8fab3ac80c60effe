package hrr

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"

	"hrr-numbers/measure"
)

// PhaseVector holds one complex component per basis prime. Component i
// encodes a residue modulo p_i by its angle; its magnitude is 1 for freshly
// encoded values and shrinks as cleanup blends rows.
type PhaseVector []complex128

// Clone returns a copy of v.
func (v PhaseVector) Clone() PhaseVector {
	return append(PhaseVector(nil), v...)
}

// Encode returns the handle for n. It requires |n| < M and returns a
// *RangeError otherwise. Negative n is stored as its non-negative residues,
// so it decodes to n + M.
func (b *Basis) Encode(n int64) (Number, error) {
	if n <= -b.modulus || n >= b.modulus {
		return Number{}, &RangeError{N: n, M: b.modulus}
	}
	measure.Global.Add(measure.Encodes, 1)

	v := make(PhaseVector, len(b.primes))
	for i, p := range b.primes {
		r := ((n % p) + p) % p
		v[i] = unit(float64(r) / float64(p))
	}
	return Number{basis: b, vec: v}, nil
}

// MustEncode is like Encode but panics on error.
func (b *Basis) MustEncode(n int64) Number {
	x, err := b.Encode(n)
	if err != nil {
		panic(err)
	}
	return x
}

// Wrap binds a copy of v to the basis. It fails with ErrLength when v does
// not have one component per prime.
func (b *Basis) Wrap(v PhaseVector) (Number, error) {
	if len(v) != len(b.primes) {
		return Number{}, fmt.Errorf("%w: got %d components, want %d", ErrLength, len(v), len(b.primes))
	}
	return Number{basis: b, vec: v.Clone()}, nil
}

// Residues measures the angle of every component and rounds it to the
// nearest residue: r_i = round(p_i·θ_i/2π) mod p_i with θ_i in [0, 2π).
// A zero component reads as residue 0.
func (b *Basis) Residues(v PhaseVector) []int64 {
	b.mustLen(v)
	out := make([]int64, len(v))
	for i, p := range b.primes {
		theta := cmplx.Phase(v[i])
		if theta < 0 {
			theta += 2 * math.Pi
		}
		r := int64(math.RoundToEven(float64(p)*theta/(2*math.Pi))) % p
		out[i] = r
	}
	return out
}

// Decode returns the integer in [0, M) whose residues v encodes, by the
// Chinese Remainder Theorem. Decode never fails; after multiplications it
// may return a plausible but wrong value.
func (b *Basis) Decode(v PhaseVector) int64 {
	measure.Global.Add(measure.Decodes, 1)
	r := b.Residues(v)
	if len(r) == 1 {
		return r[0]
	}
	return b.reconstruct(r)
}

// reconstruct sums r_i·(M/p_i)·inv_i mod M.
func (b *Basis) reconstruct(r []int64) int64 {
	var (
		acc  = new(big.Int)
		term = new(big.Int)
	)
	for i, ri := range r {
		term.SetInt64(ri)
		term.Mul(term, b.crt[i])
		acc.Add(acc, term)
	}
	return acc.Mod(acc, big.NewInt(b.modulus)).Int64()
}

func (b *Basis) mustLen(v PhaseVector) {
	if len(v) != len(b.primes) {
		panic(fmt.Sprintf("hrr: phase vector has %d components, basis has %d primes", len(v), len(b.primes)))
	}
}
