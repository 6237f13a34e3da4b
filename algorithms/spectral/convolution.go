package spectral

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/common"
)

var (
	// ErrLengthMismatch is returned when the two inputs of a convolution
	// differ in length
	ErrLengthMismatch = errors.New("spectral: input lengths differ")

	// ErrNotPowerOfTwo is returned when a circular convolution buffer is not
	// a power of two long
	ErrNotPowerOfTwo = errors.New("spectral: buffer length is not a power of two")
)

// PaddedLength returns the working buffer length for n populated samples:
// the next power of two >= 2n. The zero tail keeps the circular product of
// two length-n signals from wrapping onto the first n outputs.
func PaddedLength(n int) int {
	return common.NextPowerOfTwo(2 * n)
}

// Convolve returns the linear convolution of a and b truncated to len(a).
// Both inputs are zero padded to PaddedLength before the transform so the
// result carries no circular wrap-around.
func Convolve(t Transform, a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return []float64{}, nil
	}

	n := PaddedLength(len(a))
	pa := make([]float64, n)
	pb := make([]float64, n)
	copy(pa, a)
	copy(pb, b)

	out, err := ConvolveCircular(t, pa, pb)
	if err != nil {
		return nil, err
	}

	return out[:len(a)], nil
}

// ConvolveCircular returns the circular convolution of two equal length,
// power-of-two buffers. Callers that need a linear result must leave enough
// zero padding themselves; the entropy pipeline relies on the circular form
// because its Gaussian is periodic over the whole buffer.
func ConvolveCircular(t Transform, a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	if !common.IsPowerOfTwo(len(a)) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, len(a))
	}
	if t == nil {
		t = DefaultTransform
	}

	fa := t.Forward(a)
	fb := t.Forward(b)

	// (a+bi)(c+di) = (ac - bd) + (ad + bc)i
	for i := range fa {
		fa[i] *= fb[i]
	}

	return t.InverseReal(fa), nil
}
