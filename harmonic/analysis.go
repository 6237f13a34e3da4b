package harmonic

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/entropy"
)

// Summary describes the extremes and mean of the current table
type Summary struct {
	MinEntropy float64 `json:"min_entropy"`
	MinCents   float64 `json:"min_cents"`
	MaxEntropy float64 `json:"max_entropy"`
	MaxCents   float64 `json:"max_cents"`
	Mean       float64 `json:"mean"`
}

// Summary computes table statistics
func (c *Calculator) Summary() Summary {
	if len(c.ys) == 0 {
		return Summary{}
	}

	lo := floats.MinIdx(c.ys)
	hi := floats.MaxIdx(c.ys)

	return Summary{
		MinEntropy: c.ys[lo],
		MinCents:   c.table[lo].Cents,
		MaxEntropy: c.ys[hi],
		MaxCents:   c.table[hi].Cents,
		Mean:       stat.Mean(c.ys, nil),
	}
}

// Minima returns the local minima of the curve in ascending cents order.
// These are the intervals the model predicts to sound most consonant
// relative to their neighbours. Flat runs report their first cell.
func (c *Calculator) Minima() []entropy.Point {
	var out []entropy.Point

	n := len(c.ys)
	for i := 1; i < n-1; i++ {
		if c.ys[i] < c.ys[i-1] && c.ys[i] <= c.ys[i+1] {
			out = append(out, c.table[i])
		}
	}

	return out
}
