package primes

import "fmt"

// ExtendedGCD returns g = gcd(a, b) together with Bezout coefficients x, y
// such that a*x + b*y = g.
func ExtendedGCD(a, b int64) (g, x, y int64) {
	oldR, r := a, b
	oldX, x := int64(1), int64(0)
	oldY, y := int64(0), int64(1)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldX, x = x, oldX-q*x
		oldY, y = y, oldY-q*y
	}
	if oldR < 0 {
		return -oldR, -oldX, -oldY
	}
	return oldR, oldX, oldY
}

// ModInverse returns the inverse of a modulo m in [0, m).
func ModInverse(a, m int64) (int64, error) {
	if m < 1 {
		return 0, fmt.Errorf("%w: modulus %d", ErrNoInverse, m)
	}
	g, x, _ := ExtendedGCD(((a%m)+m)%m, m)
	if g != 1 {
		return 0, fmt.Errorf("%w: gcd(%d, %d) = %d", ErrNoInverse, a, m, g)
	}
	return ((x % m) + m) % m, nil
}
