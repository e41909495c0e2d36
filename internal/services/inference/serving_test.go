package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"StockCast/internal/domain/models"
)

func TestServingClientPredict(t *testing.T) {
	var got predictRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/models/lstm:predict" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"predictions": [[0.42]]}`))
	}))
	defer srv.Close()

	c := NewServingClient(srv.URL+"/", time.Second)
	v, err := c.Predict(context.Background(), "lstm", []float64{0.1, 0.2, 0.3})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if v != 0.42 {
		t.Fatalf("expected 0.42, got %v", v)
	}
	if len(got.Instances) != 1 || len(got.Instances[0]) != 3 || got.Instances[0][2][0] != 0.3 || len(got.Instances[0][2]) != 1 {
		t.Fatalf("expected (1,3,1) instances, got %v", got.Instances)
	}
}

func TestServingClientRetriesTransient(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"predictions": [0.7]}`))
	}))
	defer srv.Close()

	c := NewServingClient(srv.URL, time.Second, WithAttempts(3), WithBackoff(time.Millisecond))
	v, err := c.Predict(context.Background(), "gru", []float64{0})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if v != 0.7 || atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 0.7 after 3 calls, got %v after %d", v, calls)
	}
}

func TestServingClientDoesNotRetryClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"error": "bad shape"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewServingClient(srv.URL, time.Second, WithAttempts(3), WithBackoff(time.Millisecond))
	_, err := c.Predict(context.Background(), "rnn", []float64{0})
	if err == nil || !strings.Contains(err.Error(), "unexpected status 400") {
		t.Fatalf("expected status error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestServingClientBadShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions": [["x"]]}`))
	}))
	defer srv.Close()

	_, err := NewServingClient(srv.URL, time.Second).Predict(context.Background(), "lstm", []float64{0})
	if err == nil || !strings.Contains(err.Error(), "unexpected prediction shape") {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestServingBinderProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/models/lstm":
			_, _ = w.Write([]byte(`{"model_version_status":[{"version":"1","state":"AVAILABLE"}]}`))
		case "/v1/models/gru":
			_, _ = w.Write([]byte(`{"model_version_status":[{"version":"1","state":"LOADING"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	b := ServingBinder{Client: NewServingClient(srv.URL, time.Second), Probe: true}
	if _, err := b.Bind(context.Background(), SlotSpec{Slot: models.SlotLSTM}); err != nil {
		t.Fatalf("expected lstm to bind, got %v", err)
	}
	if _, err := b.Bind(context.Background(), SlotSpec{Slot: models.SlotGRU}); err == nil {
		t.Fatalf("expected loading gru to fail the probe")
	}
	if _, err := b.Bind(context.Background(), SlotSpec{Slot: models.SlotRNN}); err == nil {
		t.Fatalf("expected unknown rnn to fail the probe")
	}
}

func TestFirstScalar(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{0.5, 0.5, true},
		{[]interface{}{0.25}, 0.25, true},
		{[]interface{}{[]interface{}{0.75, 0.1}}, 0.75, true},
		{[]interface{}{}, 0, false},
		{"0.5", 0, false},
	}
	for _, c := range cases {
		got, ok := firstScalar(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("firstScalar(%v) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
