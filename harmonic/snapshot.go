package harmonic

import (
	"encoding/json"
	"fmt"

	"github.com/RyanBlaney/harmonic-entropy/algorithms/entropy"
	"github.com/RyanBlaney/harmonic-entropy/harmonic/config"
	"github.com/RyanBlaney/harmonic-entropy/logging"
)

// SnapshotType tags serialized calculators
const SnapshotType = "EntropyCalculator"

// Snapshot is the serialized form of a Calculator. The cents column is not
// stored; it follows from minCents and res.
type Snapshot struct {
	Type    string          `json:"type"`
	Options *config.Options `json:"options"`
	TableY  []float64       `json:"tableY"`
}

// Snapshot captures the supplied options and the entropy column
func (c *Calculator) Snapshot() Snapshot {
	ys := make([]float64, len(c.ys))
	copy(ys, c.ys)

	return Snapshot{
		Type:    SnapshotType,
		Options: c.opts.Clone(),
		TableY:  ys,
	}
}

// MarshalJSON encodes the calculator as its Snapshot
func (c *Calculator) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot())
}

// FromSnapshot revives a calculator without enumerating ratios or convolving:
// the stored entropy column is installed as the table. The first setter call
// afterwards performs a full rebuild.
func FromSnapshot(snap Snapshot, with ...Option) (*Calculator, error) {
	if snap.Type != SnapshotType {
		return nil, fmt.Errorf("%w: type %q", ErrBadSnapshot, snap.Type)
	}

	opts := snap.Options.Clone()
	cfg := opts.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}

	want := entropy.OutputCells(cfg.MinCents, cfg.MaxCents, cfg.Res)
	if len(snap.TableY) != want {
		return nil, fmt.Errorf("%w: table has %d entries, options need %d", ErrBadSnapshot, len(snap.TableY), want)
	}

	ys := make([]float64, len(snap.TableY))
	copy(ys, snap.TableY)

	c := newCalculator(with)
	c.opts = opts
	c.cfg = cfg
	c.ys = ys
	c.table = entropy.TableFromEntropies(cfg.MinCents, cfg.Res, ys)

	c.logger.Debug("revived calculator from snapshot", logging.Fields{
		"cells": len(ys),
	})

	return c, nil
}

// Unmarshal decodes a JSON snapshot and revives it
func Unmarshal(data []byte, with ...Option) (*Calculator, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	return FromSnapshot(snap, with...)
}
