package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// ForecastKey derives a stable key for a model and its input window.
// Values are formatted with full precision so distinct windows never collide
// on formatting.
func ForecastKey(model string, window []float64) string {
	var sb strings.Builder
	sb.WriteString(model)
	for _, v := range window {
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return "forecast:" + model + ":" + hex.EncodeToString(sum[:])
}
