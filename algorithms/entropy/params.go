package entropy

import (
	"errors"
	"fmt"
	"math"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/common"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/ratios"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/spectral"
)

// Distance selects how a ratio is placed on the cents axis
type Distance string

const (
	// Log places p/q at 1200*log2(p/q)
	Log Distance = "log"

	// Linear places p/q at 1200*p/q. Kept for comparison with early
	// harmonic entropy plots.
	Linear Distance = "linear"
)

// SingularOrderNudge replaces a == 1, where 1/(1-a) is singular. The limit is
// removable (Shannon entropy), and 1e-10 away keeps cancellation error in
// log(ent/nrm^a) around 1e-6 relative.
const SingularOrderNudge = 1.0000000001

// paddingSigmas is the padding on each side of the output domain, in
// multiples of the Gaussian spread
const paddingSigmas = 100

// ErrUnsupportedDistance is returned for unknown distance strategies
var ErrUnsupportedDistance = errors.New("entropy: unsupported distance")

// Params is the fully resolved parameter set of one table computation
type Params struct {
	Series    ratios.Series `json:"series"`
	Distance  Distance      `json:"dist"`
	S         float64       `json:"s"`
	A         float64       `json:"a"`
	MinCents  float64       `json:"minCents"`
	MaxCents  float64       `json:"maxCents"`
	Res       float64       `json:"res"`
	Normalize bool          `json:"normalize"`
}

// Order returns the Rényi order with the singular value 1 nudged away
func (p Params) Order() float64 {
	if p.A == 1 {
		return SingularOrderNudge
	}
	return p.A
}

// SpreadCents converts the fractional frequency spread s to cents
func (p Params) SpreadCents() float64 {
	return common.ValueToCents(1 + p.S)
}

// Cents places a ratio on the cents axis according to the distance strategy
func (d Distance) Cents(r ratios.Ratio) (float64, error) {
	switch d {
	case Log, "":
		return common.ValueToCents(r.Value()), nil
	case Linear:
		return common.CentsPerOctave * r.Value(), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDistance, string(d))
	}
}

// Validate reports ErrUnsupportedDistance for unknown strategies
func (d Distance) Validate() error {
	_, err := d.Cents(ratios.Ratio{Num: 1, Den: 1})
	return err
}

// Axis describes the padded cents axis shared by the kernels and the Gaussian
type Axis struct {
	// Lo is the cents value of cell 0 (MinCents minus the padding)
	Lo       float64
	// Res is the cell width in cents
	Res      float64
	// PadCells is the number of padding cells on each side
	PadCells int
	// Cells is the number of output cells covering [MinCents, MaxCents]
	Cells    int
	// Length is Cells plus both paddings
	Length   int
	// Buffer is the power-of-two working length, at least twice Length
	Buffer   int
}

// Hi returns the cents value of the last populated cell
func (a Axis) Hi() float64 {
	return a.Lo + float64(a.Length-1)*a.Res
}

// Axis derives the padded axis for p
func (p Params) Axis() Axis {
	padCells := int(math.Round(paddingSigmas * p.SpreadCents() / p.Res))
	cells := OutputCells(p.MinCents, p.MaxCents, p.Res)
	length := cells + 2*padCells

	return Axis{
		Lo:       p.MinCents - float64(padCells)*p.Res,
		Res:      p.Res,
		PadCells: padCells,
		Cells:    cells,
		Length:   length,
		Buffer:   spectral.PaddedLength(length),
	}
}

// OutputCells returns ceil((max-min)/res) + 1, the table length
func OutputCells(minCents, maxCents, res float64) int {
	return int(math.Ceil((maxCents-minCents)/res)) + 1
}
