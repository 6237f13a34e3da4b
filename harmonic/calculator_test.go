package harmonic

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/entropy"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/ratios"
	"github.com/RyanBlaney/harmonic-entropy/algorithms/spectral"
	"github.com/RyanBlaney/harmonic-entropy/harmonic/config"
	"github.com/RyanBlaney/harmonic-entropy/logging"
)

// closeTo mirrors a two decimal place comparison
const closeTo = 0.005

func referenceOptions() *config.Options {
	return &config.Options{
		N:        config.Ptr(1000),
		A:        config.Ptr(1.0),
		S:        config.Ptr(0.01),
		Series:   config.Ptr(ratios.Tenney),
		MinCents: config.Ptr(0.0),
		MaxCents: config.Ptr(1200.0),
		Res:      config.Ptr(1.0),
	}
}

func newReference(t testing.TB) *Calculator {
	t.Helper()
	c, err := NewCalculator(referenceOptions(), WithLogger(&logging.NoOpLogger{}))
	require.NoError(t, err)
	return c
}

func TestOfCentsReferenceValues(t *testing.T) {
	c := newReference(t)

	h, err := c.OfCents(700)
	require.NoError(t, err)
	assert.InDelta(t, 1.15239, h, closeTo)

	h, err = c.OfCents(100)
	require.NoError(t, err)
	assert.InDelta(t, 2.755, h, closeTo)

	assert.Len(t, c.Table(), 1201)
	assert.Positive(t, c.RatioCount())
}

func TestOfFraction(t *testing.T) {
	c := newReference(t)

	h, err := c.OfFraction("3/2")
	require.NoError(t, err)
	assert.InDelta(t, 1.14437, h, closeTo)

	byCents, err := c.OfCents(1200 * math.Log2(1.5))
	require.NoError(t, err)
	assert.Equal(t, byCents, h)

	h, err = c.OfRatio(9.0 / 8)
	require.NoError(t, err)
	assert.InDelta(t, 2.4649, h, closeTo)

	h2, err := c.OfFraction("1.125")
	require.NoError(t, err)
	assert.Equal(t, h, h2)
}

func TestOfCentsInterpolates(t *testing.T) {
	c := newReference(t)
	table := c.Table()

	h, err := c.OfCents(700.25)
	require.NoError(t, err)
	want := 0.75*table[700].Entropy + 0.25*table[701].Entropy
	assert.InDelta(t, want, h, 1e-12)

	h, err = c.OfCents(1200)
	require.NoError(t, err)
	assert.Equal(t, table[1200].Entropy, h)
}

func TestSymmetry(t *testing.T) {
	c := newReference(t)

	for _, cents := range []float64{0, 1, 99.5, 386.3137, 701.955, 1200} {
		pos, err := c.OfCents(cents)
		require.NoError(t, err)
		neg, err := c.OfCents(-cents)
		require.NoError(t, err)
		assert.Equal(t, pos, neg, "cents %g", cents)
	}

	up, err := c.OfFraction("3/2")
	require.NoError(t, err)
	down, err := c.OfFraction("2/3")
	require.NoError(t, err)
	assert.InDelta(t, up, down, 1e-12)
}

func TestQueryErrors(t *testing.T) {
	c := newReference(t)

	_, err := c.OfCents(1200.5)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.OfCents(-1300)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.OfFraction("5/2")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = c.OfCents(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = c.OfCents(math.Inf(-1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = c.OfCentsString("seven hundred")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = c.OfFraction("x/y")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = c.OfRatio(0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	h, err := c.OfCentsString(" 700 ")
	require.NoError(t, err)
	want, _ := c.OfCents(700)
	assert.Equal(t, want, h)
}

func TestOutOfRangeAboveMinimum(t *testing.T) {
	opts := referenceOptions()
	opts.MinCents = config.Ptr(600.0)
	opts.MaxCents = config.Ptr(800.0)
	c, err := NewCalculator(opts)
	require.NoError(t, err)

	_, err = c.OfCents(500)
	assert.ErrorIs(t, err, ErrOutOfRange)

	h, err := c.OfCents(-700)
	require.NoError(t, err)
	assert.InDelta(t, 1.15239, h, closeTo)
	assert.Equal(t, 600.0, c.Table()[0].Cents)
}

func TestResolutionConsistency(t *testing.T) {
	base := newReference(t)

	for _, res := range []float64{0.5, 2} {
		opts := referenceOptions()
		opts.Res = config.Ptr(res)
		c, err := NewCalculator(opts)
		require.NoError(t, err)

		for _, cents := range []float64{100, 386, 700, 1000} {
			want, err := base.OfCents(cents)
			require.NoError(t, err)
			got, err := c.OfCents(cents)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 0.01, "res %g cents %g", res, cents)
		}
	}
}

func TestDefaults(t *testing.T) {
	c, err := NewCalculator(nil)
	require.NoError(t, err)

	cfg := c.Config()
	assert.Equal(t, 10000, cfg.N)
	assert.Equal(t, 2400.0, cfg.MaxCents)
	assert.Len(t, c.Table(), 2401)
	assert.Equal(t, &config.Options{}, c.Options())

	h, err := c.OfCents(2400)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(h))
}

func TestSettersRebuild(t *testing.T) {
	c := newReference(t)
	before, err := c.OfCents(700)
	require.NoError(t, err)
	count := c.RatioCount()

	require.NoError(t, c.SetA(2))
	assert.Equal(t, 2.0, c.Config().A)
	assert.Equal(t, 2.0, *c.Options().A)
	afterA, err := c.OfCents(700)
	require.NoError(t, err)
	assert.NotEqual(t, before, afterA)
	assert.Equal(t, count, c.RatioCount(), "ratio set unchanged by a")

	fresh, err := NewCalculator(c.Options())
	require.NoError(t, err)
	want, _ := fresh.OfCents(700)
	assert.Equal(t, want, afterA)

	require.NoError(t, c.SetN(500))
	assert.Less(t, c.RatioCount(), count)

	require.NoError(t, c.SetS(0.02))
	require.NoError(t, c.SetRes(0.5))
	assert.Len(t, c.Table(), 2401)

	require.NoError(t, c.SetMaxCents(600))
	assert.Len(t, c.Table(), 1201)
	_, err = c.OfCents(700)
	assert.ErrorIs(t, err, ErrOutOfRange)

	require.NoError(t, c.SetMinCents(100))
	assert.Equal(t, 100.0, c.Table()[0].Cents)

	require.NoError(t, c.SetNormalize(true))
	assert.True(t, c.Config().Normalize)

	require.NoError(t, c.SetDistance(entropy.Linear))
	assert.Equal(t, entropy.Linear, c.Config().Distance)
}

func TestSetSeries(t *testing.T) {
	c := newReference(t)

	require.NoError(t, c.SetSeries(ratios.Farey))
	assert.Equal(t, ratios.Farey, c.Config().Series)
	assert.Equal(t, 1000, c.Config().N)

	fresh, err := NewCalculator(c.Options())
	require.NoError(t, err)
	for _, cents := range []float64{0, 316, 702} {
		want, _ := fresh.OfCents(cents)
		got, err := c.OfCents(cents)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFailedSetterLeavesStateUntouched(t *testing.T) {
	c := newReference(t)
	cfg := c.Config()
	table := c.Table()

	assert.ErrorIs(t, c.SetRes(-1), config.ErrInvalidConfig)
	assert.ErrorIs(t, c.SetS(0), config.ErrInvalidConfig)
	assert.ErrorIs(t, c.SetN(0), config.ErrInvalidConfig)
	assert.ErrorIs(t, c.SetMinCents(5000), config.ErrInvalidConfig)
	assert.ErrorIs(t, c.SetSeries("harmonic"), ratios.ErrUnsupportedSeries)
	assert.ErrorIs(t, c.SetDistance("cubic"), config.ErrInvalidConfig)

	assert.Equal(t, cfg, c.Config())
	assert.Equal(t, table, c.Table())
	assert.Nil(t, c.Options().Distance)
}

func TestSetOptionsRebuildsEverything(t *testing.T) {
	c := newReference(t)

	opts := &config.Options{
		N:        config.Ptr(300),
		Series:   config.Ptr(ratios.Farey),
		MaxCents: config.Ptr(500.0),
	}
	require.NoError(t, c.SetOptions(opts))
	assert.Equal(t, opts, c.Options())
	assert.Len(t, c.Table(), 501)

	fresh, err := NewCalculator(opts)
	require.NoError(t, err)
	assert.Equal(t, fresh.Table(), c.Table())
	assert.Equal(t, fresh.RatioCount(), c.RatioCount())

	// Mutating the caller's options afterwards must not leak in
	opts.N = config.Ptr(5)
	assert.Equal(t, 300, c.Config().N)
}

func TestGonumTransform(t *testing.T) {
	c, err := NewCalculator(referenceOptions(), WithTransform(spectral.NewGonumTransform()))
	require.NoError(t, err)

	h, err := c.OfCents(700)
	require.NoError(t, err)
	assert.InDelta(t, 1.15239, h, closeTo)
}

func TestSummaryAndMinima(t *testing.T) {
	c := newReference(t)

	s := c.Summary()
	assert.Less(t, s.MinEntropy, s.Mean)
	assert.Less(t, s.Mean, s.MaxEntropy)
	assert.Equal(t, 0.0, s.MinCents, "unison is the global minimum")

	minima := c.Minima()
	require.NotEmpty(t, minima)

	near := func(target float64) bool {
		for _, m := range minima {
			if math.Abs(m.Cents-target) <= 10 {
				return true
			}
		}
		return false
	}
	assert.True(t, near(702), "fifth")
	assert.True(t, near(498), "fourth")
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newReference(t)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	revived, err := Unmarshal(data, WithLogger(&logging.NoOpLogger{}))
	require.NoError(t, err)

	assert.Equal(t, c.Config(), revived.Config())
	assert.Equal(t, c.Table(), revived.Table())
	assert.Zero(t, revived.RatioCount())

	for _, cents := range []float64{0, 100, 386.3, 700, 701.955, 1199.5, 1200} {
		want, err := c.OfCents(cents)
		require.NoError(t, err)
		got, err := revived.OfCents(cents)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cents %g", cents)
	}

	// A later mutation rebuilds from scratch, ratio set included
	require.NoError(t, c.SetA(3))
	require.NoError(t, revived.SetA(3))
	assert.Equal(t, c.Table(), revived.Table())
	assert.Equal(t, c.RatioCount(), revived.RatioCount())
}

func TestSnapshotFormat(t *testing.T) {
	c, err := NewCalculator(&config.Options{
		N:        config.Ptr(200),
		MaxCents: config.Ptr(10.0),
	})
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"EntropyCalculator"`, string(raw["type"]))
	assert.JSONEq(t, `{"N":200,"maxCents":10}`, string(raw["options"]))

	var ys []float64
	require.NoError(t, json.Unmarshal(raw["tableY"], &ys))
	assert.Len(t, ys, 11)
	assert.Equal(t, c.Table().Entropies(), ys)
}

func TestSnapshotRejectsMalformed(t *testing.T) {
	c := newReference(t)
	snap := c.Snapshot()

	bad := snap
	bad.Type = "Something"
	_, err := FromSnapshot(bad)
	assert.ErrorIs(t, err, ErrBadSnapshot)

	bad = snap
	bad.TableY = snap.TableY[:10]
	_, err = FromSnapshot(bad)
	assert.ErrorIs(t, err, ErrBadSnapshot)

	bad = snap
	bad.Options = &config.Options{Res: config.Ptr(-1.0)}
	_, err = FromSnapshot(bad)
	assert.ErrorIs(t, err, ErrBadSnapshot)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = Unmarshal([]byte(`{"type":`))
	assert.ErrorIs(t, err, ErrBadSnapshot)

	// The snapshot owns its own copy of the table
	snap.TableY[0] = 42
	h, err := c.OfCents(0)
	require.NoError(t, err)
	assert.NotEqual(t, 42.0, h)
}

func TestOfCentsExact(t *testing.T) {
	c := newReference(t)

	for _, cents := range []float64{100, 700, -700} {
		table, err := c.OfCents(cents)
		require.NoError(t, err)
		exact, err := c.OfCentsExact(cents)
		require.NoError(t, err)
		assert.InDelta(t, table, exact, 0.01, "cents %g", cents)
	}

	_, err := c.OfCentsExact(5000)
	assert.ErrorIs(t, err, ErrOutOfRange)

	revived, err := FromSnapshot(c.Snapshot())
	require.NoError(t, err)
	h, err := revived.OfCentsExact(700)
	require.NoError(t, err)
	assert.InDelta(t, 1.15239, h, closeTo)
}
