// Package params describes a residue basis as a JSON report and rebuilds
// bases from such reports.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hrr-numbers/hrr"
	"hrr-numbers/measure"
	prof "hrr-numbers/prof"
)

// FileName is the report written by Generate.
const FileName = "Parameters.json"

// ErrStale is returned by Rebuild when a report no longer matches the basis
// its bound and β produce.
var ErrStale = errors.New("params: report does not match rebuilt basis")

// BasisParams holds the public description of a basis.
type BasisParams struct {
	Bound       int64   `json:"bound"`        // requested magnitude bound N
	Beta        float64 `json:"beta"`         // cleanup sharpness β
	Primes      []int64 `json:"primes"`       // basis primes p_1 < ... < p_k
	Generators  []int64 `json:"generators"`   // primitive root per prime
	Modulus     int64   `json:"modulus"`      // M = Π p_i
	Fingerprint string  `json:"fingerprint"`  // xxhash of primes and β, hex
	TableBytes  int     `json:"table_bytes"`  // both isomorphism tables
	VectorBytes int     `json:"vector_bytes"` // one encoded number
}

// Describe summarises b, built for bound.
func Describe(bound int64, b *hrr.Basis) BasisParams {
	ps := b.Primes()
	rows := int(ps[len(ps)-1]) + 1
	return BasisParams{
		Bound:       bound,
		Beta:        b.Beta(),
		Primes:      ps,
		Generators:  b.Generators(),
		Modulus:     b.Modulus(),
		Fingerprint: fmt.Sprintf("%016x", b.Fingerprint()),
		TableBytes:  2 * measure.BytesTable(rows, len(ps)),
		VectorBytes: measure.BytesVector(len(ps)),
	}
}

// Generate builds the basis for bound and β and writes its description to
// dir/Parameters.json.
func Generate(bound int64, beta float64, dir string) (*hrr.Basis, BasisParams, error) {
	defer prof.Track(time.Now(), "GenerateParameters")

	// 1) Basis
	b, err := hrr.NewBasis(bound, beta)
	if err != nil {
		return nil, BasisParams{}, err
	}
	p := Describe(bound, b)

	// 2) Serialize to JSON
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, BasisParams{}, fmt.Errorf("params: create %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, BasisParams{}, fmt.Errorf("params: marshal: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		return nil, BasisParams{}, fmt.Errorf("params: write: %w", err)
	}
	return b, p, nil
}

// Load reads a report written by Generate.
func Load(path string) (BasisParams, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BasisParams{}, err
	}
	var p BasisParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return BasisParams{}, fmt.Errorf("params: decode %s: %w", path, err)
	}
	return p, nil
}

// Rebuild constructs a fresh basis from the report's bound and β and checks
// that it matches the recorded primes and fingerprint. The result is a new
// basis instance: handles built on the original do not combine with it.
func Rebuild(p BasisParams) (*hrr.Basis, error) {
	b, err := hrr.NewBasis(p.Bound, p.Beta)
	if err != nil {
		return nil, err
	}
	got := Describe(p.Bound, b)
	if got.Fingerprint != p.Fingerprint || got.Modulus != p.Modulus {
		return nil, fmt.Errorf("%w: fingerprint %s, report has %s", ErrStale, got.Fingerprint, p.Fingerprint)
	}
	return b, nil
}
