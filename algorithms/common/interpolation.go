package common

import (
	"math"
)

// Split maps a position on a uniform grid to the cell below it and the
// fractional distance past that cell. A value sitting exactly on a cell
// yields frac == 0, which callers treat as "no interpolation needed".
func Split(value, origin, step float64) (index int, frac float64) {
	mu := (value - origin) / step
	floor := math.Floor(mu)
	return int(floor), mu - floor
}

// LinearAt reads data at a fractional grid position using the same split
// rule as Split. Positions past the last cell clamp to it.
func LinearAt(data []float64, index int, frac float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	if index < 0 {
		return data[0]
	}
	if index >= len(data)-1 {
		return data[len(data)-1]
	}
	if frac == 0 {
		return data[index]
	}
	return (1-frac)*data[index] + frac*data[index+1]
}
