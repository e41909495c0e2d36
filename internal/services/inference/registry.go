package inference

import (
	"StockCast/internal/domain/models"
	domsvc "StockCast/internal/domain/service"
)

// Registry maps each slot to its loaded predictor. It is built once at
// startup and never modified, so lookups need no locking.
type Registry struct {
	slots map[models.ModelSlot]domsvc.Predictor
}

// NewRegistry copies entries; nil predictors mark a slot unavailable.
func NewRegistry(entries map[models.ModelSlot]domsvc.Predictor) *Registry {
	m := make(map[models.ModelSlot]domsvc.Predictor, len(entries))
	for slot, p := range entries {
		if p != nil {
			m[slot] = p
		}
	}
	return &Registry{slots: m}
}

func (r *Registry) Lookup(slot models.ModelSlot) (domsvc.Predictor, bool) {
	p, ok := r.slots[slot]
	return p, ok
}

// Available lists loaded slots in AllSlots order.
func (r *Registry) Available() []models.ModelSlot {
	out := make([]models.ModelSlot, 0, len(r.slots))
	for _, s := range models.AllSlots {
		if _, ok := r.slots[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

var _ domsvc.ModelRegistry = (*Registry)(nil)
