package repository

import "time"

type Metrics interface {
	RecordForecast(model, outcome string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	SetModelAvailable(model string, available bool)
}

// ForecastCache stores serialized forecasts for a short time.
type ForecastCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
