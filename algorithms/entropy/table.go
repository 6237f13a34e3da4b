package entropy

import (
	"math"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/ratios"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/spectral"
)

// Point is one (cents, entropy) sample of the table
type Point struct {
	Cents   float64 `json:"cents"`
	Entropy float64 `json:"entropy"`
}

// Table is the harmonic entropy curve in ascending cents order
type Table []Point

// Entropies returns the entropy column
func (t Table) Entropies() []float64 {
	ys := make([]float64, len(t))
	for i, pt := range t {
		ys[i] = pt.Entropy
	}
	return ys
}

// TableFromEntropies rebuilds a table from its entropy column. Cents are
// recomputed with the same expression Compute uses, so values match bit for
// bit.
func TableFromEntropies(minCents, res float64, ys []float64) Table {
	t := make(Table, len(ys))
	for j, y := range ys {
		t[j] = Point{Cents: float64(j)*res + minCents, Entropy: y}
	}
	return t
}

// Compute runs the full pipeline for one parameter set: kernels, Gaussian,
// two convolutions and the generalized entropy reduction. It returns the
// table and the number of ratios that contributed to it.
func Compute(t spectral.Transform, rs []ratios.Ratio, p Params) (Table, int, error) {
	kern, err := BuildKernels(rs, p)
	if err != nil {
		return nil, 0, err
	}

	g, ag := Gaussian(p, kern.Axis.Buffer)

	ent, err := spectral.ConvolveCircular(t, kern.AK, ag)
	if err != nil {
		return nil, 0, err
	}
	nrm, err := spectral.ConvolveCircular(t, kern.K, g)
	if err != nil {
		return nil, 0, err
	}

	return Reduce(ent, nrm, kern.RCount, kern.Axis, p), kern.RCount, nil
}

// Reduce turns the two convolved kernels into the output table:
//
//	H = log(ent / nrm^a) / (1 - a) / nrmfct
//
// where nrmfct is log(rcount) when normalizing and 1 otherwise. Padding
// cells are dropped.
func Reduce(ent, nrm []float64, rcount int, axis Axis, p Params) Table {
	a := p.Order()

	nrmfct := 1.0
	if p.Normalize {
		nrmfct = math.Log(float64(rcount))
	}

	out := make(Table, axis.Cells)
	for j := range out {
		i := j + axis.PadCells
		h := math.Log(ent[i]/math.Pow(nrm[i], a)) / (1 - a) / nrmfct
		out[j] = Point{Cents: float64(j)*p.Res + p.MinCents, Entropy: h}
	}

	return out
}
