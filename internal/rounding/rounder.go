package rounding

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultScale is the number of decimal places scores are rounded to.
const DefaultScale = 2

var half = decimal.New(5, -1)

// Rounder rounds numbers to a fixed number of decimal places.
// The zero value rounds to whole numbers.
type Rounder struct {
	scale int32
}

// New creates a Rounder for the given number of decimal places.
func New(scale int) Rounder {
	return Rounder{scale: int32(scale)}
}

// Scale returns the number of decimal places.
func (r Rounder) Scale() int {
	return int(r.scale)
}

// Round rounds num to the configured scale.
func (r Rounder) Round(num float64) float64 {
	return roundScaled(num, r.scale)
}

// Round rounds num to scale decimal places.
//
// Rounding works on the shortest decimal representation of num rather than on its
// binary value, so 1.005 rounds to 1.01 (naive math.Round(x*100)/100 gives 1.00).
// Ties round toward positive infinity. NaN and infinities are returned unchanged,
// and a zero result is always positive zero.
func Round(num float64, scale int) float64 {
	return roundScaled(num, int32(scale))
}

func roundScaled(num float64, scale int32) float64 {
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return num
	}

	shifted := decimal.NewFromFloat(num).Shift(scale)
	rounded := shifted.Add(half).Floor().Shift(-scale)

	f, _ := rounded.Float64()
	if f == 0 {
		return 0
	}
	return f
}
