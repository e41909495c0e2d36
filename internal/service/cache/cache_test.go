package cache

import (
	"strings"
	"testing"
	"time"
)

func TestTTLCacheRoundTrip(t *testing.T) {
	c := NewTTLCache()
	if _, ok, _ := c.GetBytes("k"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	in := []byte("v1")
	if err := c.SetBytes("k", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0] = 'x'
	got, ok, err := c.GetBytes("k")
	if err != nil || !ok || string(got) != "v1" {
		t.Fatalf("expected stored copy v1, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestTTLCacheExpires(t *testing.T) {
	c := NewTTLCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.SetBytes("k", []byte("v"), time.Second)
	now = now.Add(2 * time.Second)

	if _, ok, _ := c.GetBytes("k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be dropped, len=%d", c.Len())
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache()
	now := time.Now()
	c.now = func() time.Time { return now }
	_ = c.SetBytes("k", []byte("v"), 0)
	now = now.Add(24 * time.Hour)
	if _, ok, _ := c.GetBytes("k"); !ok {
		t.Fatalf("expected entry without ttl to persist")
	}
}

func TestForecastKey(t *testing.T) {
	a := ForecastKey("lstm", []float64{1, 2, 3})
	b := ForecastKey("lstm", []float64{1, 2, 3})
	if a != b {
		t.Fatalf("expected stable key")
	}
	if !strings.HasPrefix(a, "forecast:lstm:") {
		t.Fatalf("unexpected key %q", a)
	}
	if a == ForecastKey("gru", []float64{1, 2, 3}) {
		t.Fatalf("expected model to change the key")
	}
	if a == ForecastKey("lstm", []float64{1, 2, 3.0000001}) {
		t.Fatalf("expected values to change the key")
	}
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	r := newRedisCache(nil, "stockcast")
	if got := r.key("forecast:x"); got != "stockcast:forecast:x" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := newRedisCache(nil, "").key("k"); got != "k" {
		t.Fatalf("unexpected key without prefix %q", got)
	}
}
