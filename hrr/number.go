package hrr

import (
	"fmt"

	"github.com/google/uuid"
)

// Number is an encoded integer: a phase vector bound to the basis it was
// built on. Numbers are values; operations never modify their operands.
// The zero Number belongs to no basis and mismatches every operand.
type Number struct {
	basis *Basis
	vec   PhaseVector
}

// Basis returns the basis the number was encoded on.
func (a Number) Basis() *Basis { return a.basis }

// Vector returns a copy of the phase vector.
func (a Number) Vector() PhaseVector { return a.vec.Clone() }

// Decode returns the represented integer in [0, M). The zero Number
// decodes to 0.
func (a Number) Decode() int64 {
	if a.basis == nil {
		return 0
	}
	return a.basis.Decode(a.vec)
}

// Residues returns the represented residue of every basis prime, or nil for
// the zero Number.
func (a Number) Residues() []int64 {
	if a.basis == nil {
		return nil
	}
	return a.basis.Residues(a.vec)
}

func (a Number) String() string {
	if a.basis == nil {
		return "hrr.Number(<nil>)"
	}
	return fmt.Sprintf("hrr.Number(%d mod %d)", a.Decode(), a.basis.modulus)
}

// Add returns a+b mod M. It is exact.
func (a Number) Add(b Number) (Number, error) {
	if err := a.check(b); err != nil {
		return Number{}, err
	}
	out := make(PhaseVector, len(a.vec))
	for i := range out {
		out[i] = a.vec[i] * b.vec[i]
	}
	return Number{basis: a.basis, vec: out}, nil
}

// Neg returns -a mod M. It is exact.
func (a Number) Neg() Number {
	out := make(PhaseVector, len(a.vec))
	for i, c := range a.vec {
		out[i] = complex(real(c), -imag(c))
	}
	return Number{basis: a.basis, vec: out}
}

// Sub returns a-b mod M. It is exact.
func (a Number) Sub(b Number) (Number, error) {
	if err := a.check(b); err != nil {
		return Number{}, err
	}
	return a.Add(b.Neg())
}

// Mul returns an approximation of a·b mod M. Both operands are cleaned up
// into exponent space, where their discrete logs add, and the product is
// cleaned up back into residue space.
func (a Number) Mul(b Number) (Number, error) {
	return a.combine(b, false)
}

// Div returns an approximation of a·b⁻¹ mod M. It is only meaningful when
// no residue of b is zero; otherwise the affected slots decode to noise.
// That is not reported as an error.
func (a Number) Div(b Number) (Number, error) {
	return a.combine(b, true)
}

func (a Number) combine(b Number, invert bool) (Number, error) {
	if err := a.check(b); err != nil {
		return Number{}, err
	}
	x := a.basis.Cleanup(a.vec, ResidueToLog)
	y := a.basis.Cleanup(b.vec, ResidueToLog)
	for i := range x {
		yi := y[i]
		if invert {
			yi = complex(real(yi), -imag(yi))
		}
		x[i] *= yi
	}
	return Number{basis: a.basis, vec: a.basis.Cleanup(x, LogToResidue)}, nil
}

func (a Number) check(b Number) error {
	if a.basis == nil || a.basis != b.basis {
		return &BasisMismatchError{Left: basisID(a.basis), Right: basisID(b.basis)}
	}
	return nil
}

func basisID(b *Basis) uuid.UUID {
	if b == nil {
		return uuid.Nil
	}
	return b.id
}

// Sum folds Add over xs.
func Sum(xs ...Number) (Number, error) {
	return fold(xs, Number.Add)
}

// Product folds Mul over xs. Every step is a separate approximate
// multiplication, so errors can compound with the number of factors.
func Product(xs ...Number) (Number, error) {
	return fold(xs, Number.Mul)
}

func fold(xs []Number, op func(Number, Number) (Number, error)) (Number, error) {
	if len(xs) == 0 {
		return Number{}, fmt.Errorf("hrr: nothing to fold")
	}
	acc := xs[0]
	var err error
	for i := 1; i < len(xs); i++ {
		acc, err = op(acc, xs[i])
		if err != nil {
			return Number{}, err
		}
	}
	return acc, nil
}
