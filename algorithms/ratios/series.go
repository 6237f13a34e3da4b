package ratios

import (
	"errors"
	"fmt"
	"math"
)

// Series selects which family of ratios feeds the entropy histogram
type Series string

const (
	// Tenney enumerates coprime pairs whose product is at most N
	Tenney Series = "tenney"

	// Farey enumerates coprime pairs whose larger term is at most N
	Farey Series = "farey"
)

// ErrUnsupportedSeries is returned when a series selector is neither Tenney
// nor Farey
var ErrUnsupportedSeries = errors.New("ratios: unsupported series")

// Ratio is a frequency ratio Num:Den. Enumerated ratios are always coprime.
type Ratio struct {
	Num int `json:"num"`
	Den int `json:"den"`
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Value returns Num/Den as a float. (1, 0) yields +Inf.
func (r Ratio) Value() float64 {
	return float64(r.Num) / float64(r.Den)
}

// Validate reports ErrUnsupportedSeries for unknown selectors
func (s Series) Validate() error {
	switch s {
	case Tenney, Farey:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedSeries, string(s))
	}
}

// DefaultHeight returns the height bound used when none is configured
func DefaultHeight(s Series) int {
	if s == Farey {
		return 1000
	}
	return 10000
}

// Complexity returns the weight denominator for a ratio: the geometric mean
// of its terms for Tenney, the denominator for Farey
func Complexity(s Series, r Ratio) (float64, error) {
	switch s {
	case Tenney:
		return math.Sqrt(float64(r.Num) * float64(r.Den)), nil
	case Farey:
		return float64(r.Den), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedSeries, string(s))
	}
}
