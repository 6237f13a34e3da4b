package entropy

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/ratios"
)

// directCutoff drops ratios further than this many spreads from the query;
// their Gaussian weight is below 1e-300
const directCutoff = 38

// ErrNoSupport is returned by Direct when no ratio carries weight at the
// requested interval
var ErrNoSupport = errors.New("entropy: no ratio within reach of interval")

// Direct evaluates harmonic entropy at a single interval straight from the
// ratio set: each ratio gets probability proportional to
// gauss(cents - c_i) / complexity_i, and the Rényi entropy of order a of that
// distribution is returned. There is no binning and no convolution, so it is
// slow for many points but serves as a reference for Compute.
//
// Ratios outside the padded axis are ignored, as in the table, so
// normalization divides by the same rcount.
func Direct(rs []ratios.Ratio, p Params, cents float64) (float64, error) {
	if err := p.Series.Validate(); err != nil {
		return 0, err
	}
	if err := p.Distance.Validate(); err != nil {
		return 0, err
	}

	scents := p.SpreadCents()
	denom := 2 * scents * scents
	reach := directCutoff * scents

	axis := p.Axis()
	lo, hi := axis.Lo, axis.Hi()

	weights := make([]float64, 0, 256)
	rcount := 0
	for _, r := range rs {
		c, err := p.Distance.Cents(r)
		if err != nil {
			return 0, err
		}
		if !(c >= lo && c <= hi) {
			continue
		}
		rcount++

		d := cents - c
		if math.Abs(d) > reach {
			continue
		}

		compl, err := ratios.Complexity(p.Series, r)
		if err != nil {
			return 0, err
		}
		weights = append(weights, math.Exp(-(d*d)/denom)/compl)
	}

	total := floats.Sum(weights)
	if len(weights) == 0 || total <= 0 {
		return 0, fmt.Errorf("%w: %g cents", ErrNoSupport, cents)
	}
	floats.Scale(1/total, weights)

	h := renyi(weights, p.A)
	if p.Normalize {
		h /= math.Log(float64(rcount))
	}

	return h, nil
}

// renyi computes H_a = log(sum p^a) / (1 - a), falling back to Shannon
// entropy at a == 1 where the expression has a removable singularity
func renyi(probabilities []float64, a float64) float64 {
	if a == 1.0 {
		h := 0.0
		for _, p := range probabilities {
			if p > 0 {
				h -= p * math.Log(p)
			}
		}
		return h
	}

	sum := 0.0
	for _, p := range probabilities {
		if p > 0 {
			sum += math.Pow(p, a)
		}
	}

	return math.Log(sum) / (1.0 - a)
}
