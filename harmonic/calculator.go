// Package harmonic provides the harmonic entropy calculator: a cached
// cents→entropy table built from an enumerated ratio set, with point queries
// and snapshot round-tripping.
package harmonic

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/common"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/entropy"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/ratios"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/spectral"
	"github.com/RyanBlaney/harmonic-entropy/harmonic/config"
	"github.com/RyanBlaney/harmonic-entropy/logging"
)

// Calculator owns one configuration and two artifacts derived from it: the
// ratio set, keyed on (series, N), and the entropy table, keyed on the whole
// configuration. Setters stage a new configuration, rebuild whatever its keys
// invalidate and commit only if every step succeeded.
//
// A Calculator is not safe for concurrent mutation. OfCents, OfRatio and
// OfFraction on a calculator that is not being mutated may run concurrently;
// OfCentsExact may populate the ratio cache and counts as a mutation.
type Calculator struct {
	opts *config.Options
	cfg  config.Config

	ratios   []ratios.Ratio
	ratioKey config.RatioKey

	table  entropy.Table
	ys     []float64
	rcount int

	transform spectral.Transform
	logger    logging.Logger
}

// Option customizes a Calculator at construction
type Option func(*Calculator)

// WithTransform selects the FFT backend used for the convolutions
func WithTransform(t spectral.Transform) Option {
	return func(c *Calculator) {
		if t != nil {
			c.transform = t
		}
	}
}

// WithLogger replaces the package logger for this calculator
func WithLogger(l logging.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

func newCalculator(with []Option) *Calculator {
	c := &Calculator{
		transform: spectral.DefaultTransform,
		logger: logging.WithFields(logging.Fields{
			"component": "entropy_calculator",
		}),
	}
	for _, opt := range with {
		opt(c)
	}
	return c
}

// NewCalculator enumerates the ratio set and builds the table for opts. A nil
// opts uses every default.
func NewCalculator(opts *config.Options, with ...Option) (*Calculator, error) {
	c := newCalculator(with)
	if err := c.apply(opts.Clone(), true); err != nil {
		return nil, err
	}
	return c, nil
}

// apply resolves opts, rebuilds the invalidated artifacts and commits. On
// error the calculator is left exactly as it was.
func (c *Calculator) apply(opts *config.Options, force bool) error {
	cfg := opts.Resolve()
	if err := cfg.Validate(); err != nil {
		return err
	}

	rs := c.ratios
	key := cfg.RatioKey()
	if force || rs == nil || key != c.ratioKey {
		start := time.Now()

		var err error
		rs, err = ratios.Enumerate(cfg.Series, cfg.N)
		if err != nil {
			return err
		}

		c.logger.Debug("enumerated ratios", logging.Fields{
			"series":   cfg.Series,
			"N":        cfg.N,
			"count":    len(rs),
			"duration": time.Since(start),
		})
	}

	table, ys, rcount := c.table, c.ys, c.rcount
	if force || table == nil || cfg != c.cfg {
		start := time.Now()

		var err error
		table, rcount, err = entropy.Compute(c.transform, rs, cfg.Params())
		if err != nil {
			c.logger.Error(err, "entropy table computation failed")
			return err
		}
		ys = table.Entropies()

		c.logger.Debug("computed entropy table", logging.Fields{
			"cells":    len(table),
			"rcount":   rcount,
			"a":        cfg.A,
			"s":        cfg.S,
			"res":      cfg.Res,
			"duration": time.Since(start),
		})
	}

	c.opts = opts
	c.cfg = cfg
	c.ratios = rs
	c.ratioKey = key
	c.table = table
	c.ys = ys
	c.rcount = rcount

	return nil
}

// update stages a single-field edit on a copy of the supplied options
func (c *Calculator) update(edit func(o *config.Options)) error {
	next := c.opts.Clone()
	edit(next)
	return c.apply(next, false)
}

// SetA sets the Rényi order
func (c *Calculator) SetA(a float64) error {
	return c.update(func(o *config.Options) { o.A = config.Ptr(a) })
}

// SetS sets the Gaussian spread as a fractional frequency deviation
func (c *Calculator) SetS(s float64) error {
	return c.update(func(o *config.Options) { o.S = config.Ptr(s) })
}

// SetSeries switches the ratio series. The ratio set is re-enumerated.
func (c *Calculator) SetSeries(s ratios.Series) error {
	return c.update(func(o *config.Options) { o.Series = config.Ptr(s) })
}

// SetDistance switches how ratios are placed on the cents axis
func (c *Calculator) SetDistance(d entropy.Distance) error {
	return c.update(func(o *config.Options) { o.Distance = config.Ptr(d) })
}

// SetMinCents sets the lower end of the tabulated domain
func (c *Calculator) SetMinCents(v float64) error {
	return c.update(func(o *config.Options) { o.MinCents = config.Ptr(v) })
}

// SetMaxCents sets the upper end of the tabulated domain
func (c *Calculator) SetMaxCents(v float64) error {
	return c.update(func(o *config.Options) { o.MaxCents = config.Ptr(v) })
}

// SetRes sets the table resolution in cents
func (c *Calculator) SetRes(res float64) error {
	return c.update(func(o *config.Options) { o.Res = config.Ptr(res) })
}

// SetNormalize toggles division by log(rcount)
func (c *Calculator) SetNormalize(normalize bool) error {
	return c.update(func(o *config.Options) { o.Normalize = config.Ptr(normalize) })
}

// SetN sets the height bound. The ratio set is re-enumerated.
func (c *Calculator) SetN(n int) error {
	return c.update(func(o *config.Options) { o.N = config.Ptr(n) })
}

// SetOptions replaces the whole configuration and rebuilds both artifacts
func (c *Calculator) SetOptions(opts *config.Options) error {
	return c.apply(opts.Clone(), true)
}

// Options returns a copy of the options as supplied
func (c *Calculator) Options() *config.Options {
	return c.opts.Clone()
}

// Config returns the resolved configuration
func (c *Calculator) Config() config.Config {
	return c.cfg
}

// Table returns a copy of the current table
func (c *Calculator) Table() entropy.Table {
	out := make(entropy.Table, len(c.table))
	copy(out, c.table)
	return out
}

// RatioCount returns how many ratios contributed to the current table. It is
// zero for a calculator revived from a snapshot until the first rebuild.
func (c *Calculator) RatioCount() int {
	return c.rcount
}

// OfCents returns the harmonic entropy of an interval in cents. The curve is
// symmetric, so negative intervals read the same value as positive ones.
// Values between table cells are linearly interpolated.
func (c *Calculator) OfCents(cents float64) (float64, error) {
	if !common.IsFinite(cents) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, cents)
	}

	cents = math.Abs(cents)
	if cents < c.cfg.MinCents || cents > c.cfg.MaxCents {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, cents, c.cfg.MinCents, c.cfg.MaxCents)
	}

	index, frac := common.Split(cents, c.cfg.MinCents, c.cfg.Res)
	return common.LinearAt(c.ys, index, frac), nil
}

// OfCentsString parses a textual cents value and queries it
func (c *Calculator) OfCentsString(s string) (float64, error) {
	cents, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return c.OfCents(cents)
}

// OfRatio returns the harmonic entropy of a frequency ratio such as 1.5
func (c *Calculator) OfRatio(value float64) (float64, error) {
	if !common.IsFinite(value) || value <= 0 {
		return 0, fmt.Errorf("%w: ratio %v", ErrInvalidInput, value)
	}
	return c.OfCents(common.ValueToCents(value))
}

// OfFraction returns the harmonic entropy of a fraction given as "p/q" or
// as a decimal
func (c *Calculator) OfFraction(fraction string) (float64, error) {
	value, err := common.ParseFraction(fraction)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return c.OfCents(common.ValueToCents(value))
}

// OfCentsExact evaluates the entropy at cents directly from the ratio set,
// bypassing the table. It is much slower than OfCents and is meant for
// spot-checking the tabulated curve. A calculator revived from a snapshot
// enumerates its ratio set on first use.
func (c *Calculator) OfCentsExact(cents float64) (float64, error) {
	if !common.IsFinite(cents) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, cents)
	}

	cents = math.Abs(cents)
	if cents < c.cfg.MinCents || cents > c.cfg.MaxCents {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, cents, c.cfg.MinCents, c.cfg.MaxCents)
	}

	if c.ratios == nil {
		rs, err := ratios.Enumerate(c.cfg.Series, c.cfg.N)
		if err != nil {
			return 0, err
		}
		c.ratios = rs
		c.ratioKey = c.cfg.RatioKey()
	}

	return entropy.Direct(c.ratios, c.cfg.Params(), cents)
}
