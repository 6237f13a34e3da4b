package config

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/common"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/entropy"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/ratios"
)

// ErrInvalidConfig is returned when a resolved configuration cannot produce a
// table (non-positive spread, resolution or height, inverted domain, NaN)
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Options is the configuration as supplied by the caller. Every field is
// optional; nil means "use the default". Options are what snapshots persist,
// so unspecified fields stay unspecified on the wire.
type Options struct {
	N         *int              `json:"N,omitempty"`
	S         *float64          `json:"s,omitempty"`
	A         *float64          `json:"a,omitempty"`
	Series    *ratios.Series    `json:"series,omitempty"`
	Distance  *entropy.Distance `json:"dist,omitempty"`
	MinCents  *float64          `json:"minCents,omitempty"`
	MaxCents  *float64          `json:"maxCents,omitempty"`
	Res       *float64          `json:"res,omitempty"`
	Normalize *bool             `json:"normalize,omitempty"`
}

// Config is the resolved configuration: Options merged over the defaults
type Config struct {
	N         int              `json:"N"`
	S         float64          `json:"s"`
	A         float64          `json:"a"`
	Series    ratios.Series    `json:"series"`
	Distance  entropy.Distance `json:"dist"`
	MinCents  float64          `json:"minCents"`
	MaxCents  float64          `json:"maxCents"`
	Res       float64          `json:"res"`
	Normalize bool             `json:"normalize"`
}

// DefaultConfig returns the defaults for the Tenney series
func DefaultConfig() Config {
	return Config{
		N:         ratios.DefaultHeight(ratios.Tenney),
		S:         0.01,
		A:         1.0,
		Series:    ratios.Tenney,
		Distance:  entropy.Log,
		MinCents:  0,
		MaxCents:  2400,
		Res:       1,
		Normalize: false,
	}
}

// Resolve merges o over the defaults. The default height bound follows the
// selected series.
func (o *Options) Resolve() Config {
	cfg := DefaultConfig()
	if o == nil {
		return cfg
	}

	if o.Series != nil {
		cfg.Series = *o.Series
	}
	cfg.N = ratios.DefaultHeight(cfg.Series)
	if o.N != nil {
		cfg.N = *o.N
	}
	if o.S != nil {
		cfg.S = *o.S
	}
	if o.A != nil {
		cfg.A = *o.A
	}
	if o.Distance != nil {
		cfg.Distance = *o.Distance
	}
	if o.MinCents != nil {
		cfg.MinCents = *o.MinCents
	}
	if o.MaxCents != nil {
		cfg.MaxCents = *o.MaxCents
	}
	if o.Res != nil {
		cfg.Res = *o.Res
	}
	if o.Normalize != nil {
		cfg.Normalize = *o.Normalize
	}

	return cfg
}

// Clone returns a deep copy so that callers can stage edits
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{}
	}
	c := &Options{}
	if o.N != nil {
		c.N = Ptr(*o.N)
	}
	if o.S != nil {
		c.S = Ptr(*o.S)
	}
	if o.A != nil {
		c.A = Ptr(*o.A)
	}
	if o.Series != nil {
		c.Series = Ptr(*o.Series)
	}
	if o.Distance != nil {
		c.Distance = Ptr(*o.Distance)
	}
	if o.MinCents != nil {
		c.MinCents = Ptr(*o.MinCents)
	}
	if o.MaxCents != nil {
		c.MaxCents = Ptr(*o.MaxCents)
	}
	if o.Res != nil {
		c.Res = Ptr(*o.Res)
	}
	if o.Normalize != nil {
		c.Normalize = Ptr(*o.Normalize)
	}
	return c
}

// Ptr returns a pointer to v, for filling Options literals
func Ptr[T any](v T) *T {
	return &v
}

// Validate checks that c can produce a table
func (c Config) Validate() error {
	if err := c.Series.Validate(); err != nil {
		return err
	}
	if err := c.Distance.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch {
	case c.N <= 0:
		return fmt.Errorf("%w: N must be positive, got %d", ErrInvalidConfig, c.N)
	case !common.IsFinite(c.S) || c.S <= 0:
		return fmt.Errorf("%w: s must be positive, got %g", ErrInvalidConfig, c.S)
	case !common.IsFinite(c.A):
		return fmt.Errorf("%w: a must be finite, got %g", ErrInvalidConfig, c.A)
	case !common.IsFinite(c.Res) || c.Res <= 0:
		return fmt.Errorf("%w: res must be positive, got %g", ErrInvalidConfig, c.Res)
	case !common.IsFinite(c.MinCents) || !common.IsFinite(c.MaxCents):
		return fmt.Errorf("%w: cents domain must be finite", ErrInvalidConfig)
	case c.MinCents > c.MaxCents:
		return fmt.Errorf("%w: minCents %g > maxCents %g", ErrInvalidConfig, c.MinCents, c.MaxCents)
	}

	return nil
}

// Params converts c into the entropy pipeline's parameter set
func (c Config) Params() entropy.Params {
	return entropy.Params{
		Series:    c.Series,
		Distance:  c.Distance,
		S:         c.S,
		A:         c.A,
		MinCents:  c.MinCents,
		MaxCents:  c.MaxCents,
		Res:       c.Res,
		Normalize: c.Normalize,
	}
}

// RatioKey identifies the ratio set a configuration needs
type RatioKey struct {
	Series ratios.Series
	N      int
}

// RatioKey returns the subset of c the ratio set depends on
func (c Config) RatioKey() RatioKey {
	return RatioKey{Series: c.Series, N: c.N}
}
