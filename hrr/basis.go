// Package hrr encodes integers as holographic phase vectors over a residue
// basis of small primes and computes with them directly.
//
// Each integer n is stored as its residues n mod p_i, and each residue as
// the unit complex number exp(2πi·r/p_i). Multiplying two vectors
// component-wise adds the residues, so addition, subtraction and negation
// are exact. Multiplication and division go through the discrete-log
// isomorphism of every prime field, realised as a softmax cleanup over two
// lookup tables; they are approximate, and their accuracy is governed by
// the sharpness β of the basis.
//
//	b, _ := hrr.NewBasis(510510, 75)
//	x, _ := b.Encode(123)
//	y, _ := b.Encode(456)
//	z, _ := x.Mul(y)
//	z.Decode() // 56088 with high probability
package hrr

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"hrr-numbers/measure"
	"hrr-numbers/primes"
	"hrr-numbers/prof"
)

// Basis is an immutable residue basis together with its isomorphism
// tables. It is safe for concurrent use.
type Basis struct {
	id      uuid.UUID
	primes  []int64
	modulus int64
	beta    float64

	generators []int64
	mul, add   table

	// crt[i] = (M/p_i) · ((M/p_i)^-1 mod p_i)
	crt []*big.Int
}

// NewBasis builds the smallest basis of consecutive primes 2, 3, 5, ...
// whose product is at least bound. A bound of 2 or less gives the basis
// [2]. beta is the sharpness used by multiplication and division.
func NewBasis(bound int64, beta float64) (*Basis, error) {
	defer prof.Track(time.Now(), "hrr.NewBasis")

	if err := checkBeta(beta); err != nil {
		return nil, err
	}

	// Primes until the product covers the bound
	var (
		seq primes.Sequence
		ps  []int64
		m   = int64(1)
	)
	for len(ps) == 0 || m < bound {
		p := seq.Next()
		if m > math.MaxInt64/p {
			return nil, fmt.Errorf("%w: basis product for %d overflows int64", ErrBound, bound)
		}
		m *= p
		ps = append(ps, p)
	}

	return newBasis(ps, m, beta)
}

// NewBasisFromPrimes builds a basis over an explicit list of strictly
// increasing primes. It allows bases that NewBasis never produces, such
// as the single prime [7].
func NewBasisFromPrimes(ps []int64, beta float64) (*Basis, error) {
	defer prof.Track(time.Now(), "hrr.NewBasisFromPrimes")

	if err := checkBeta(beta); err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("%w: empty prime list", ErrBound)
	}
	m := int64(1)
	for i, p := range ps {
		if !primes.IsPrime(p) {
			return nil, fmt.Errorf("%w: %d is not prime", ErrBound, p)
		}
		if i > 0 && p <= ps[i-1] {
			return nil, fmt.Errorf("%w: primes must be strictly increasing", ErrBound)
		}
		if m > math.MaxInt64/p {
			return nil, fmt.Errorf("%w: product of %v overflows int64", ErrBound, ps)
		}
		m *= p
	}
	return newBasis(append([]int64(nil), ps...), m, beta)
}

func checkBeta(beta float64) error {
	if math.IsNaN(beta) || math.IsInf(beta, 0) || beta < 0 {
		return fmt.Errorf("%w: %v", ErrBeta, beta)
	}
	return nil
}

func newBasis(ps []int64, m int64, beta float64) (*Basis, error) {
	b := &Basis{
		id:      uuid.New(),
		primes:  ps,
		modulus: m,
		beta:    beta,
	}

	// Isomorphism tables
	var err error
	b.mul, b.add, b.generators, err = buildTables(ps)
	if err != nil {
		return nil, err
	}
	measure.Global.Add(measure.TableB, int64(2*measure.BytesTable(len(b.mul), len(ps))))

	// CRT coefficients
	b.crt = make([]*big.Int, len(ps))
	for i, p := range ps {
		mi := m / p
		inv, err := primes.ModInverse(mi%p, p)
		if err != nil {
			return nil, fmt.Errorf("hrr: CRT coefficient for %d: %w", p, err)
		}
		b.crt[i] = new(big.Int).Mul(big.NewInt(mi), big.NewInt(inv))
	}
	return b, nil
}

// MustBasis is like NewBasis but panics on error.
func MustBasis(bound int64, beta float64) *Basis {
	b, err := NewBasis(bound, beta)
	if err != nil {
		panic(err)
	}
	return b
}

// ID identifies this basis instance. Two bases built from the same
// arguments have different IDs.
func (b *Basis) ID() uuid.UUID { return b.id }

// Primes returns a copy of the basis primes in increasing order.
func (b *Basis) Primes() []int64 { return append([]int64(nil), b.primes...) }

// Generators returns a copy of the primitive root chosen for each prime.
func (b *Basis) Generators() []int64 { return append([]int64(nil), b.generators...) }

// Modulus returns M, the product of the basis primes.
func (b *Basis) Modulus() int64 { return b.modulus }

// Beta returns the cleanup sharpness.
func (b *Basis) Beta() float64 { return b.beta }

// Len returns the number of primes, which is the length of every phase
// vector on this basis.
func (b *Basis) Len() int { return len(b.primes) }

// Fingerprint hashes the primes and β. Structurally equal bases share a
// fingerprint even though their IDs differ.
func (b *Basis) Fingerprint() uint64 {
	buf := make([]byte, 0, 8*(len(b.primes)+1))
	for _, p := range b.primes {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(p))
	}
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(b.beta))
	return xxhash.Sum64(buf)
}

func (b *Basis) String() string {
	return fmt.Sprintf("hrr.Basis(%v, M=%d, β=%g)", b.primes, b.modulus, b.beta)
}
