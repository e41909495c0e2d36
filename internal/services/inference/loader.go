package inference

import (
	"context"
	"fmt"
	"path/filepath"

	"StockCast/internal/domain/models"
	domrepo "StockCast/internal/domain/repository"
	domsvc "StockCast/internal/domain/service"
	"StockCast/pkg/config"
	applogger "StockCast/pkg/logger"
)

// SlotSpec names the artifact behind a slot.
type SlotSpec struct {
	Slot        models.ModelSlot
	Path        string
	ServingName string
}

// Binder turns a verified artifact into a callable predictor.
type Binder interface {
	Bind(ctx context.Context, spec SlotSpec) (domsvc.Predictor, error)
}

// SpecsFromConfig resolves the three slot artifacts under the model dir.
func SpecsFromConfig(cfg *config.Config) []SlotSpec {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(cfg.Models.Dir, p)
	}
	return []SlotSpec{
		{Slot: models.SlotLSTM, Path: resolve(cfg.Models.LSTM.Path), ServingName: cfg.Models.LSTM.ServingName},
		{Slot: models.SlotRNN, Path: resolve(cfg.Models.RNN.Path), ServingName: cfg.Models.RNN.ServingName},
		{Slot: models.SlotGRU, Path: resolve(cfg.Models.GRU.Path), ServingName: cfg.Models.GRU.ServingName},
	}
}

// Loader populates a Registry. A slot that fails to load is logged and left
// unavailable; the remaining slots are unaffected.
type Loader struct {
	binder    Binder
	logger    *applogger.Logger
	metrics   domrepo.Metrics
	serialize bool
}

type LoaderOption func(*Loader)

func WithLoaderLogger(l *applogger.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

func WithLoaderMetrics(m domrepo.Metrics) LoaderOption {
	return func(ld *Loader) { ld.metrics = m }
}

// WithSerialize wraps every loaded predictor in Guard.
func WithSerialize(on bool) LoaderOption {
	return func(ld *Loader) { ld.serialize = on }
}

func NewLoader(binder Binder, opts ...LoaderOption) *Loader {
	ld := &Loader{binder: binder, logger: applogger.Nop()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load tries every spec and never fails as a whole.
func (ld *Loader) Load(ctx context.Context, specs []SlotSpec) *Registry {
	entries := make(map[models.ModelSlot]domsvc.Predictor, len(specs))
	for _, spec := range specs {
		p, err := ld.loadOne(ctx, spec)
		if ld.metrics != nil {
			ld.metrics.SetModelAvailable(string(spec.Slot), err == nil)
		}
		if err != nil {
			ld.logger.Error("model load failed",
				applogger.String("model", string(spec.Slot)),
				applogger.String("path", spec.Path),
				applogger.Error(err),
			)
			continue
		}
		ld.logger.Info("model loaded",
			applogger.String("model", string(spec.Slot)),
			applogger.String("path", spec.Path),
		)
		entries[spec.Slot] = p
	}
	return NewRegistry(entries)
}

func (ld *Loader) loadOne(ctx context.Context, spec SlotSpec) (domsvc.Predictor, error) {
	if err := CheckArtifact(spec.Path); err != nil {
		return nil, err
	}
	p, err := ld.binder.Bind(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", spec.Slot, err)
	}
	if ld.serialize {
		p = Guard(p)
	}
	return p, nil
}
