package ratios

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/common"
)

// Enumerate produces the ratio set for a series and height bound. A bound
// <= 0 selects DefaultHeight for the series.
//
// The order is fixed: the counter runs from n down to 0 and the inner index
// ascends. Floating-point sums downstream depend on this order, so it must
// never change.
func Enumerate(s Series, n int) ([]Ratio, error) {
	if n <= 0 {
		n = DefaultHeight(s)
	}

	switch s {
	case Tenney:
		return enumerateTenney(n), nil
	case Farey:
		return enumerateFarey(n), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSeries, string(s))
	}
}

// enumerateTenney emits every coprime (i, n/i) and its reciprocal for each
// product n <= bound
func enumerateTenney(bound int) []Ratio {
	out := make([]Ratio, 0, estimateTenney(bound))

	for n := bound; n >= 0; n-- {
		root := int(math.Sqrt(float64(n)))
		for i := 1; i <= root; i++ {
			if n%i != 0 {
				continue
			}
			j := n / i
			if common.GCD(i, j) != 1 {
				continue
			}
			out = append(out, Ratio{Num: i, Den: j})
			if i != j {
				out = append(out, Ratio{Num: j, Den: i})
			}
		}
	}

	return out
}

// enumerateFarey emits every coprime (n, i) with i <= n and its reciprocal.
// n = 1 yields the degenerate (1, 0) and (0, 1) pairs, which are kept.
func enumerateFarey(bound int) []Ratio {
	// Roughly 6/pi^2 of all pairs are coprime
	out := make([]Ratio, 0, int(0.61*float64(bound)*float64(bound))+2)

	for n := bound; n >= 0; n-- {
		for i := 0; i <= n; i++ {
			if common.GCD(i, n) != 1 {
				continue
			}
			out = append(out, Ratio{Num: n, Den: i})
			if n != i {
				out = append(out, Ratio{Num: i, Den: n})
			}
		}
	}

	return out
}

// estimateTenney approximates the number of coprime ordered pairs with
// product <= n (6/pi^2 * n * ln n), for preallocation only
func estimateTenney(n int) int {
	if n < 2 {
		return 1
	}
	return int(0.61*float64(n)*math.Log(float64(n))) + 1
}
