package usecase

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// WindowSize is the number of most recent prices fed to the model.
	WindowSize = 60
	// Horizon is the number of forecast steps.
	Horizon = 30
)

// NormalizedWindow is the last WindowSize prices min-max scaled into [0,1],
// with the bounds needed to invert the scaling.
type NormalizedWindow struct {
	Values []float64
	Min    float64
	Max    float64
}

// Normalize scales the last WindowSize values of prices. A constant window
// has a zero range; it is treated as a range of 1, so every value scales
// to 0 and Invert(s) is s + Min. A range that overflows float64 is an
// inference failure.
func Normalize(prices []float64) (NormalizedWindow, error) {
	if len(prices) < WindowSize {
		return NormalizedWindow{}, ErrInsufficientHistory()
	}
	raw := prices[len(prices)-WindowSize:]

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range raw {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	w := NormalizedWindow{Values: make([]float64, WindowSize), Min: lo, Max: hi}
	r := w.scale()
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return NormalizedWindow{}, ErrInferenceFailure(fmt.Errorf("price range %v..%v overflows float64", lo, hi))
	}
	for i, v := range raw {
		w.Values[i] = (v - lo) / r
	}
	return w, nil
}

func (w NormalizedWindow) scale() float64 {
	if r := w.Max - w.Min; r != 0 {
		return r
	}
	return 1
}

// Invert maps a scaled value back to the price domain using the original
// window bounds. It is affine and does not clamp.
func (w NormalizedWindow) Invert(s float64) float64 {
	return s*w.scale() + w.Min
}

// Round2 rounds v to 2 decimal places, halves away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
