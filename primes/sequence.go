// Package primes holds the small-prime number theory behind a residue
// basis: a restartable prime sequence, primitive roots of prime fields and
// modular inverses.
package primes

// Sequence yields primes in increasing order. Each new candidate is tested
// by trial division against the primes found so far, which are cached, so
// a Reset sequence replays them without recomputation.
//
// The zero value is ready to use. A Sequence is not safe for concurrent use.
type Sequence struct {
	found []int64
	pos   int
}

// Next returns the next prime of the sequence.
func (s *Sequence) Next() int64 {
	if s.pos < len(s.found) {
		p := s.found[s.pos]
		s.pos++
		return p
	}
	c := int64(2)
	if n := len(s.found); n > 0 {
		c = s.found[n-1] + 1
	}
	for !s.isPrime(c) {
		c++
	}
	s.found = append(s.found, c)
	s.pos++
	return c
}

// Reset rewinds the sequence to 2.
func (s *Sequence) Reset() {
	s.pos = 0
}

// isPrime is only valid for c greater than every cached prime, which is
// all Next ever asks.
func (s *Sequence) isPrime(c int64) bool {
	for _, p := range s.found {
		if p*p > c {
			return true
		}
		if c%p == 0 {
			return false
		}
	}
	return c >= 2
}

// First returns the first n primes.
func First(n int) []int64 {
	var s Sequence
	out := make([]int64, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

// DistinctFactors returns the distinct prime factors of n in increasing
// order. It returns nil for n < 2.
func DistinctFactors(n int64) []int64 {
	var (
		s   Sequence
		out []int64
	)
	for n > 1 {
		p := s.Next()
		if p*p > n {
			out = append(out, n)
			break
		}
		if n%p != 0 {
			continue
		}
		out = append(out, p)
		for n%p == 0 {
			n /= p
		}
	}
	return out
}

// IsPrime reports whether n is prime by trial division.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
