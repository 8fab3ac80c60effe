package hrr

import (
	"math"

	"hrr-numbers/measure"
)

// Direction selects which table a cleanup matches against and which one it
// reads from.
type Direction int

const (
	// ResidueToLog matches residue phases against the generator powers and
	// returns the corresponding exponent phases.
	ResidueToLog Direction = iota
	// LogToResidue matches exponent phases and returns residue phases.
	LogToResidue
)

func (d Direction) String() string {
	switch d {
	case ResidueToLog:
		return "residue->log"
	case LogToResidue:
		return "log->residue"
	default:
		return "unknown"
	}
}

// Cleanup projects x onto the canonical table rows. For every slot i it
// scores each row v by Re(conj(key[v][i])·x[i]), turns the scores into a
// softmax with sharpness β, and returns the weighted sum of the value
// rows. Slots are independent.
//
// Cleanup never fails. With β too small for the table size the weights
// flatten and the result blends many rows.
func (b *Basis) Cleanup(x PhaseVector, dir Direction) PhaseVector {
	b.mustLen(x)
	measure.Global.Add(measure.Cleanups, 1)

	key, val := b.mul, b.add
	if dir == LogToResidue {
		key, val = b.add, b.mul
	}

	rows := len(key)
	score := make([]float64, rows)
	out := make(PhaseVector, len(x))
	for i, xi := range x {
		hi := math.Inf(-1)
		for v := 0; v < rows; v++ {
			k := key[v][i]
			// Re(conj(k)·x)
			s := b.beta * (real(k)*real(xi) + imag(k)*imag(xi))
			score[v] = s
			if s > hi {
				hi = s
			}
		}
		var (
			norm float64
			acc  complex128
		)
		for v := 0; v < rows; v++ {
			w := math.Exp(score[v] - hi)
			norm += w
			acc += complex(w, 0) * val[v][i]
		}
		out[i] = acc / complex(norm, 0)
	}
	return out
}
