package entropy

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Gaussian samples a wrapped Gaussian over a buffer of the given length,
// spaced like the kernel axis. One lobe sits at cell 0 and one at cell
// length, so the density is continuous where the circular convolution wraps.
// g sums to 1; ag is g raised to the order a, without renormalizing.
func Gaussian(p Params, length int) (g, ag []float64) {
	scents := p.SpreadCents()
	a := p.Order()
	res := p.Res

	coeff := 1 / (scents * 2 * math.Pi)
	denom := 2 * scents * scents
	end := float64(length) * res

	g = make([]float64, length)
	for i := range g {
		x := float64(i) * res
		g[i] = coeff*math.Exp(-(x*x)/denom) + coeff*math.Exp(-((x-end)*(x-end))/denom)
	}

	floats.Scale(1/floats.Sum(g), g)

	ag = make([]float64, length)
	for i, v := range g {
		ag[i] = math.Pow(v, a)
	}

	return g, ag
}
