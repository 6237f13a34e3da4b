package common

import (
	"math"
)

// Integer and power-of-two helpers shared by the enumerator and the
// convolution engine

// GCD returns the greatest common divisor of x and y using Euclid's algorithm.
// GCD(0, n) is n, so the Farey walk sees (0, 1) and (1, 0) as coprime.
func GCD(x, y int) int {
	for y != 0 {
		x, y = y, x%y
	}
	if x < 0 {
		return -x
	}
	return x
}

// IsPowerOfTwo reports whether n is a positive power of two
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1)
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// IsFinite reports whether x is neither NaN nor ±Inf
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
