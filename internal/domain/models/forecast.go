package models

import "strings"

// ModelSlot names one of the recurrent models the service can run.
type ModelSlot string

const (
	SlotLSTM ModelSlot = "lstm"
	SlotRNN  ModelSlot = "rnn"
	SlotGRU  ModelSlot = "gru"
)

// AllSlots lists the known slots in a stable order.
var AllSlots = []ModelSlot{SlotLSTM, SlotRNN, SlotGRU}

// ParseModelSlot matches name case-insensitively against the known slots.
func ParseModelSlot(name string) (ModelSlot, bool) {
	s := ModelSlot(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllSlots {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// PredictionRequest is a parsed forecast request.
type PredictionRequest struct {
	Model  string
	Prices []float64
}

// PredictionResult holds the forecast in chronological order; index 0 is
// the first step after the input window.
type PredictionResult struct {
	Predictions []float64 `json:"predictions"`
}
