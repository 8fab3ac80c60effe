package hrr

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestSinglePrimeRoundTrip(t *testing.T) {
	for _, p := range []int64{2, 7} {
		b, err := NewBasisFromPrimes([]int64{p}, 25)
		if err != nil {
			t.Fatalf("NewBasisFromPrimes([%d]): %v", p, err)
		}
		for n := int64(0); n < p; n++ {
			if got := b.MustEncode(n).Decode(); got != n {
				t.Fatalf("p=%d: Decode(Encode(%d))=%d", p, n, got)
			}
		}
	}
	b := MustBasis(2, 25)
	if got := b.MustEncode(1).Decode(); got != 1 {
		t.Fatalf("basis [2]: Decode(Encode(1))=%d", got)
	}
}

func TestResiduesExactIndependentOfBeta(t *testing.T) {
	for _, beta := range []float64{0, 1, 75, 1000} {
		b := MustBasis(510510, beta)
		for n := int64(0); n < b.Modulus(); n += 997 {
			got := b.MustEncode(n).Residues()
			for i, p := range b.primes {
				if got[i] != n%p {
					t.Fatalf("β=%v n=%d: residue[%d]=%d want %d", beta, n, i, got[i], n%p)
				}
			}
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	b := MustBasis(9699690, 75)
	m := b.Modulus()
	for n := int64(0); n < m; n += 7919 {
		if got := b.MustEncode(n).Decode(); got != n {
			t.Fatalf("Decode(Encode(%d))=%d", n, got)
		}
	}
	if got := b.MustEncode(m - 1).Decode(); got != m-1 {
		t.Fatalf("Decode(Encode(M-1))=%d", got)
	}
}

func TestDecodeLargeModulus(t *testing.T) {
	// product of the primes up to 47 is close to the int64 limit
	b := MustBasis(600_000_000_000_000_000, 75)
	for _, n := range []int64{0, 1, 123456789012345678, b.Modulus() - 1} {
		if got := b.MustEncode(n).Decode(); got != n {
			t.Fatalf("Decode(Encode(%d))=%d", n, got)
		}
	}
}

func TestNegativeWrapsToModulus(t *testing.T) {
	b := MustBasis(510510, 75)
	m := b.Modulus()
	for _, n := range []int64{1, 2, 17, 4321, m - 1} {
		if got := b.MustEncode(-n).Decode(); got != m-n {
			t.Fatalf("Decode(Encode(-%d))=%d want %d", n, got, m-n)
		}
	}
}

func TestEncodeRange(t *testing.T) {
	for _, bound := range []int64{2, 30, 510510} {
		b := MustBasis(bound, 75)
		m := b.Modulus()
		for _, n := range []int64{m, -m, m + 1, math.MaxInt64, math.MinInt64} {
			_, err := b.Encode(n)
			if !errors.Is(err, ErrRange) {
				t.Fatalf("M=%d Encode(%d) err=%v want ErrRange", m, n, err)
			}
			var re *RangeError
			if !errors.As(err, &re) || re.N != n || re.M != m {
				t.Fatalf("M=%d Encode(%d): RangeError=%+v", m, n, re)
			}
		}
		if _, err := b.Encode(-(m - 1)); err != nil {
			t.Fatalf("M=%d Encode(-(M-1)): %v", m, err)
		}
	}
}

func TestDecodeAbsorbsNoise(t *testing.T) {
	b := MustBasis(510510, 75)
	for _, n := range []int64{0, 1, 99, 255254, 510509} {
		v := b.MustEncode(n).Vector()
		for i := range v {
			// rotate by a fraction of the half-gap and shrink
			v[i] *= cmplx.Rect(0.3, 0.2*math.Pi/float64(b.primes[i]))
		}
		if got := b.Decode(v); got != n {
			t.Fatalf("noisy Decode(%d)=%d", n, got)
		}
	}
}

func TestDecodeIsTotal(t *testing.T) {
	b := MustBasis(510510, 75)
	zero := make(PhaseVector, b.Len())
	if got := b.Decode(zero); got != 0 {
		t.Fatalf("Decode(0-vector)=%d want 0", got)
	}
	odd := PhaseVector{-1, 1i, -1i, 2, complex(-3, -1e-9), 1e-9, -0.5}
	if got := b.Decode(odd); got < 0 || got >= b.Modulus() {
		t.Fatalf("Decode out of range: %d", got)
	}
}

func TestWrap(t *testing.T) {
	b := MustBasis(30, 75)
	src := b.MustEncode(17).Vector()
	x, err := b.Wrap(src)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	src[0] = 0
	if got := x.Decode(); got != 17 {
		t.Fatalf("Wrap aliases its input: Decode=%d", got)
	}
	if _, err := b.Wrap(PhaseVector{1}); !errors.Is(err, ErrLength) {
		t.Fatalf("Wrap short vector err=%v want ErrLength", err)
	}
}
