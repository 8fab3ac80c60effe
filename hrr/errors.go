package hrr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrRange matches every *RangeError.
	ErrRange = errors.New("hrr: value out of range")
	// ErrBasisMismatch matches every *BasisMismatchError.
	ErrBasisMismatch = errors.New("hrr: operands belong to different bases")
	// ErrBound is returned when no int64 basis can cover the requested bound.
	ErrBound = errors.New("hrr: unsupported bound")
	// ErrBeta is returned for a NaN, infinite or negative sharpness.
	ErrBeta = errors.New("hrr: invalid sharpness")
	// ErrLength is returned when a phase vector does not have one
	// component per basis prime.
	ErrLength = errors.New("hrr: phase vector length does not match basis")
)

// RangeError reports an encode of n with |n| >= M.
type RangeError struct {
	N int64 // value passed to Encode
	M int64 // basis modulus
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("hrr: |%d| is not below the basis modulus %d", e.N, e.M)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }

// BasisMismatchError reports a binary operation over handles built on two
// different Basis values. Bases are compared by identity, so two bases with
// the same primes still mismatch.
type BasisMismatchError struct {
	Left, Right uuid.UUID
}

func (e *BasisMismatchError) Error() string {
	return fmt.Sprintf("hrr: basis %s does not match basis %s", e.Left, e.Right)
}

func (e *BasisMismatchError) Is(target error) bool { return target == ErrBasisMismatch }
