package entropy

import (
	"math"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/common"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/ratios"
)

// Kernels holds the two parallel histograms over the padded axis. Both
// slices are Axis.Buffer long; cells past Axis.Length stay zero.
type Kernels struct {
	// K accumulates 1/c for each ratio of complexity c
	K      []float64
	// AK accumulates 1/c^a
	AK     []float64
	// RCount is the number of ratios that landed inside the padded axis
	RCount int
	Axis   Axis
}

// BuildKernels spreads every ratio in rs over the padded axis of p. A ratio
// that falls between two cells is split between them in proportion to its
// distance from each.
func BuildKernels(rs []ratios.Ratio, p Params) (*Kernels, error) {
	if err := p.Series.Validate(); err != nil {
		return nil, err
	}
	if err := p.Distance.Validate(); err != nil {
		return nil, err
	}

	axis := p.Axis()
	a := p.Order()
	lo, hi := axis.Lo, axis.Hi()

	k := make([]float64, axis.Buffer)
	ak := make([]float64, axis.Buffer)
	rcount := 0

	for _, r := range rs {
		cents, err := p.Distance.Cents(r)
		if err != nil {
			return nil, err
		}
		if !(cents >= lo && cents <= hi) {
			continue
		}

		compl, err := ratios.Complexity(p.Series, r)
		if err != nil {
			return nil, err
		}

		rcount++

		w := 1 / compl
		aw := 1 / math.Pow(compl, a)

		index, frac := common.Split(cents, lo, axis.Res)
		if frac == 0 {
			k[index] += w
			ak[index] += aw
			continue
		}

		k[index] += w * (1 - frac)
		k[index+1] += w * frac
		ak[index] += aw * (1 - frac)
		ak[index+1] += aw * frac
	}

	return &Kernels{K: k, AK: ak, RCount: rcount, Axis: axis}, nil
}
