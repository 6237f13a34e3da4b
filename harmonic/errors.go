package harmonic

import "errors"

var (
	// ErrInvalidInput is returned when a query value is not a usable number
	// (NaN, ±Inf, unparsable text, non-positive ratio)
	ErrInvalidInput = errors.New("harmonic: invalid input")

	// ErrOutOfRange is returned when |cents| falls outside the tabulated
	// [minCents, maxCents] domain. Widen the domain to query it.
	ErrOutOfRange = errors.New("harmonic: cents outside tabulated range")

	// ErrBadSnapshot is returned when a serialized calculator has the wrong
	// type tag or a table that does not match its options
	ErrBadSnapshot = errors.New("harmonic: malformed snapshot")
)
