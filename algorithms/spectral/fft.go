package spectral

import (
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transform is the Fourier-transform primitive the convolution engine runs
// on. Forward returns the full-length spectrum of a real signal and
// InverseReal returns the real part of the inverse, already divided by the
// length.
type Transform interface {
	Forward(x []float64) []complex128
	InverseReal(x []complex128) []float64
}

// DefaultTransform is used when callers do not pick a backend
var DefaultTransform Transform = NewDSPTransform()

// DSPTransform computes transforms using mjibson/go-dsp
type DSPTransform struct {
	// No state needed
}

// NewDSPTransform creates a go-dsp backed transform
func NewDSPTransform() *DSPTransform {
	return &DSPTransform{}
}

// Forward computes the FFT of a real signal
func (d *DSPTransform) Forward(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// InverseReal computes the inverse FFT and keeps the real part.
// go-dsp normalizes by 1/N inside IFFT.
func (d *DSPTransform) InverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))
	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}

// GonumTransform computes transforms with gonum's real FFT. Plans are cached
// per length, so one instance can serve many buffer sizes. gonum plans keep
// internal work space, so calls are serialized.
type GonumTransform struct {
	mu    sync.Mutex
	plans map[int]*fourier.FFT
}

// NewGonumTransform creates a gonum backed transform
func NewGonumTransform() *GonumTransform {
	return &GonumTransform{plans: make(map[int]*fourier.FFT)}
}

// plan must be called with g.mu held
func (g *GonumTransform) plan(n int) *fourier.FFT {
	p, ok := g.plans[n]
	if !ok {
		p = fourier.NewFFT(n)
		g.plans[n] = p
	}
	return p
}

// Forward computes the FFT of a real signal. gonum only returns the n/2+1
// non-redundant bins; the upper half is restored from Hermitian symmetry.
func (g *GonumTransform) Forward(x []float64) []complex128 {
	n := len(x)
	if n == 0 {
		return []complex128{}
	}

	g.mu.Lock()
	half := g.plan(n).Coefficients(nil, x)
	g.mu.Unlock()

	out := make([]complex128, n)
	copy(out, half)
	for k := n/2 + 1; k < n; k++ {
		c := half[n-k]
		out[k] = complex(real(c), -imag(c))
	}

	return out
}

// InverseReal computes the inverse FFT from the lower half of the spectrum.
// gonum does not normalize, so the result is scaled by 1/n here.
func (g *GonumTransform) InverseReal(x []complex128) []float64 {
	n := len(x)
	if n == 0 {
		return []float64{}
	}

	g.mu.Lock()
	seq := g.plan(n).Sequence(nil, x[:n/2+1])
	g.mu.Unlock()

	scale := 1 / float64(n)
	for i := range seq {
		seq[i] *= scale
	}

	return seq
}
