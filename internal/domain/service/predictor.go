package service

import (
	"context"

	"StockCast/internal/domain/models"
)

// Predictor runs one inference step: a scaled window of fixed length
// (sequence length 60, one feature per step) maps to one scaled scalar.
// Implementations must not retain or modify window.
type Predictor interface {
	Predict(ctx context.Context, window []float64) (float64, error)
}

// PredictorFunc adapts a plain function to Predictor.
type PredictorFunc func(ctx context.Context, window []float64) (float64, error)

func (f PredictorFunc) Predict(ctx context.Context, window []float64) (float64, error) {
	return f(ctx, window)
}

// ModelRegistry resolves a slot to its loaded predictor. The second result
// is false when the slot failed to load.
type ModelRegistry interface {
	Lookup(slot models.ModelSlot) (Predictor, bool)
}
