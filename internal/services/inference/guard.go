package inference

import (
	"context"
	"sync"

	domsvc "StockCast/internal/domain/service"
)

// guarded serializes calls into a predictor whose runtime is not safe for
// concurrent use.
type guarded struct {
	mu sync.Mutex
	p  domsvc.Predictor
}

// Guard wraps p with a mutex.
func Guard(p domsvc.Predictor) domsvc.Predictor {
	return &guarded{p: p}
}

func (g *guarded) Predict(ctx context.Context, window []float64) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.p.Predict(ctx, window)
}
