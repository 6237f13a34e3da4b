package common

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// CentsPerOctave is the width of a 2:1 frequency ratio
const CentsPerOctave = 1200.0

// ErrBadFraction is returned when a fraction string cannot be parsed into a
// positive ratio
var ErrBadFraction = errors.New("common: invalid fraction")

// ValueToCents converts a frequency ratio to cents: 1200 * log2(ratio)
func ValueToCents(ratio float64) float64 {
	return CentsPerOctave * math.Log2(ratio)
}

// CentsToValue is the inverse of ValueToCents
func CentsToValue(cents float64) float64 {
	return math.Exp2(cents / CentsPerOctave)
}

// ParseFraction accepts "p/q", an integer or a decimal ("1.5") and returns the
// ratio as a float. Only strictly positive ratios are meaningful as intervals.
func ParseFraction(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrBadFraction)
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadFraction, s)
	}
	if r.Sign() <= 0 {
		return 0, fmt.Errorf("%w: %q is not positive", ErrBadFraction, s)
	}

	v, _ := r.Float64()
	return v, nil
}
