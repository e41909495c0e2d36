package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"StockCast/internal/domain/models"
	domrepo "StockCast/internal/domain/repository"
	domsvc "StockCast/internal/domain/service"
	icache "StockCast/internal/service/cache"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/metrics"
	xutil "StockCast/pkg/util"
)

// Forecaster runs the autoregressive forecast against a loaded model.
// It holds no per-request state and is safe for concurrent use.
type Forecaster struct {
	registry domsvc.ModelRegistry
	metrics  domrepo.Metrics
	cache    domrepo.ForecastCache
	cacheTTL time.Duration
	logger   *applogger.Logger
}

type ForecasterOption func(*Forecaster)

// WithCache enables the forecast cache; a nil cache or non-positive ttl
// leaves it disabled.
func WithCache(c domrepo.ForecastCache, ttl time.Duration) ForecasterOption {
	return func(f *Forecaster) {
		if c != nil && ttl > 0 {
			f.cache = c
			f.cacheTTL = ttl
		}
	}
}

func WithMetrics(m domrepo.Metrics) ForecasterOption {
	return func(f *Forecaster) {
		if m != nil {
			f.metrics = m
		}
	}
}

func WithLogger(l *applogger.Logger) ForecasterOption {
	return func(f *Forecaster) {
		if l != nil {
			f.logger = l
		}
	}
}

func NewForecaster(registry domsvc.ModelRegistry, opts ...ForecasterOption) *Forecaster {
	f := &Forecaster{
		registry: registry,
		metrics:  metrics.Nop{},
		logger:   applogger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ParseRequest turns the raw form into a request. It reports missing
// fields first, then any segment that is not a number.
func ParseRequest(form models.PredictForm) (models.PredictionRequest, error) {
	if form.Model == "" || form.Data == "" {
		return models.PredictionRequest{}, ErrMissingInput()
	}
	prices, err := xutil.ParseFloatList(form.Data, ",")
	if err != nil {
		return models.PredictionRequest{}, ErrNonNumericInput(err)
	}
	return models.PredictionRequest{Model: form.Model, Prices: prices}, nil
}

// Forecast validates history length and model availability, then predicts
// Horizon prices. It returns either all predictions or an *Error.
func (f *Forecaster) Forecast(ctx context.Context, req models.PredictionRequest) (models.PredictionResult, error) {
	start := time.Now()
	res, err := f.forecast(ctx, req)

	label := "unknown"
	if slot, ok := models.ParseModelSlot(req.Model); ok {
		label = string(slot)
	}
	if err != nil {
		kind := KindOf(err)
		f.metrics.RecordForecast(label, "error")
		f.metrics.RecordError(kind.String())
		if kind == KindInferenceFailure {
			f.logger.Error("forecast failed", applogger.String("model", req.Model), applogger.Error(err))
		}
		return models.PredictionResult{}, err
	}
	f.metrics.RecordForecast(label, "ok")
	f.metrics.RecordLatency("forecast", time.Since(start).Seconds())
	return res, nil
}

func (f *Forecaster) forecast(ctx context.Context, req models.PredictionRequest) (models.PredictionResult, error) {
	if len(req.Prices) < WindowSize {
		return models.PredictionResult{}, ErrInsufficientHistory()
	}

	slot, ok := models.ParseModelSlot(req.Model)
	if !ok {
		return models.PredictionResult{}, ErrModelUnavailable(req.Model)
	}
	p, ok := f.registry.Lookup(slot)
	if !ok || p == nil {
		return models.PredictionResult{}, ErrModelUnavailable(req.Model)
	}

	recent := req.Prices[len(req.Prices)-WindowSize:]
	key := ""
	if f.cache != nil {
		key = icache.ForecastKey(string(slot), recent)
		if res, hit := f.cached(key); hit {
			return res, nil
		}
	}

	w, err := Normalize(recent)
	if err != nil {
		return models.PredictionResult{}, err
	}

	preds, err := f.rollout(ctx, p, w)
	if err != nil {
		return models.PredictionResult{}, ErrInferenceFailure(err)
	}
	res := models.PredictionResult{Predictions: preds}

	if f.cache != nil {
		f.store(key, res)
	}
	return res, nil
}

// rollout feeds the scaled window to p Horizon times. Each scaled output is
// appended to the window and the oldest value dropped; every output is
// inverted with the bounds of the original window.
func (f *Forecaster) rollout(ctx context.Context, p domsvc.Predictor, w NormalizedWindow) ([]float64, error) {
	scaled := make([]float64, WindowSize)
	copy(scaled, w.Values)

	out := make([]float64, Horizon)
	for step := 0; step < Horizon; step++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("step %d: %w", step+1, err)
		}
		t0 := time.Now()
		s, err := p.Predict(ctx, scaled)
		f.metrics.RecordLatency("inference_step", time.Since(t0).Seconds())
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step+1, err)
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("step %d: model returned non-finite value %v", step+1, s)
		}
		v := w.Invert(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("step %d: scaled value %v overflows the price range", step+1, s)
		}
		out[step] = Round2(v)

		copy(scaled, scaled[1:])
		scaled[WindowSize-1] = s
	}
	return out, nil
}

func (f *Forecaster) cached(key string) (models.PredictionResult, bool) {
	b, ok, err := f.cache.GetBytes(key)
	if err != nil {
		f.logger.Warn("forecast cache get", applogger.String("key", key), applogger.Error(err))
		return models.PredictionResult{}, false
	}
	if !ok {
		return models.PredictionResult{}, false
	}
	var res models.PredictionResult
	if err := json.Unmarshal(b, &res); err != nil || len(res.Predictions) != Horizon {
		return models.PredictionResult{}, false
	}
	return res, true
}

func (f *Forecaster) store(key string, res models.PredictionResult) {
	b, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := f.cache.SetBytes(key, b, f.cacheTTL); err != nil {
		f.logger.Warn("forecast cache set", applogger.String("key", key), applogger.Error(err))
	}
}
