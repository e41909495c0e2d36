package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	forecasts      *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	modelAvailable *prometheus.GaugeVec
}

// New creates a recorder registered with the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		forecasts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_forecasts_total",
				Help: "Total number of forecast requests by model and outcome",
			},
			[]string{"model", "outcome"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_errors_total",
				Help: "Total number of errors encountered by kind",
			},
			[]string{"kind"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockcast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		modelAvailable: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockcast_model_available",
				Help: "1 if the model slot loaded at startup, 0 otherwise",
			},
			[]string{"model"},
		),
	}
}

// RecordForecast records one forecast request.
func (r *Recorder) RecordForecast(model, outcome string) {
	r.forecasts.WithLabelValues(model, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// SetModelAvailable records the load outcome of a model slot.
func (r *Recorder) SetModelAvailable(model string, available bool) {
	v := 0.0
	if available {
		v = 1
	}
	r.modelAvailable.WithLabelValues(model).Set(v)
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordForecast(string, string) {}
func (Nop) RecordError(string) {}
func (Nop) RecordLatency(string, float64) {}
func (Nop) SetModelAvailable(string, bool) {}
