package inference

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	domsvc "StockCast/internal/domain/service"
	xhttp "StockCast/pkg/http"
)

// ServingClient talks to a model-serving runtime exposing the TensorFlow
// Serving REST API. One client is shared by every slot.
type ServingClient struct {
	baseURL  string
	client   *xhttp.Client
	attempts int
	backoff  time.Duration
}

type ServingOption func(*ServingClient)

// WithAttempts sets how many times a transient failure is tried.
func WithAttempts(n int) ServingOption {
	return func(s *ServingClient) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithBackoff sets the base delay between attempts; attempt i waits i*d.
func WithBackoff(d time.Duration) ServingOption {
	return func(s *ServingClient) {
		s.backoff = d
	}
}

func NewServingClient(baseURL string, timeout time.Duration, opts ...ServingOption) *ServingClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s := &ServingClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
		attempts: 1,
		backoff:  50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type predictRequest struct {
	Instances [][][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions []interface{} `json:"predictions"`
}

type modelStatusResponse struct {
	ModelVersionStatus []struct {
		Version string `json:"version"`
		State   string `json:"state"`
	} `json:"model_version_status"`
}

func (s *ServingClient) modelURL(name string) string {
	return s.baseURL + "/v1/models/" + url.PathEscape(name)
}

// Status returns nil when the runtime reports an AVAILABLE version of name.
func (s *ServingClient) Status(ctx context.Context, name string) error {
	var st modelStatusResponse
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.modelURL(name),
	}, &st)
	if err != nil {
		return fmt.Errorf("model status %s: %w", name, err)
	}
	for _, v := range st.ModelVersionStatus {
		if v.State == "AVAILABLE" {
			return nil
		}
	}
	return fmt.Errorf("model %s has no AVAILABLE version", name)
}

// Predict sends one window shaped (1, len(window), 1) and returns the first
// output scalar.
func (s *ServingClient) Predict(ctx context.Context, name string, window []float64) (float64, error) {
	seq := make([][]float64, len(window))
	for i, v := range window {
		seq[i] = []float64{v}
	}
	payload := predictRequest{Instances: [][][]float64{seq}}

	var resp predictResponse
	if err := s.postWithRetry(ctx, s.modelURL(name)+":predict", payload, &resp); err != nil {
		return 0, fmt.Errorf("predict %s: %w", name, err)
	}
	if len(resp.Predictions) == 0 {
		return 0, fmt.Errorf("predict %s: empty predictions", name)
	}
	v, ok := firstScalar(resp.Predictions[0])
	if !ok {
		return 0, fmt.Errorf("predict %s: unexpected prediction shape %v", name, resp.Predictions[0])
	}
	return v, nil
}

func (s *ServingClient) postWithRetry(ctx context.Context, u string, payload, dest interface{}) error {
	var err error
	for i := 1; i <= s.attempts; i++ {
		err = s.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodPost,
			URL:    u,
			Body:   payload,
		}, dest)
		if err == nil || !retryable(err) || i == s.attempts {
			return err
		}
		select {
		case <-time.After(time.Duration(i) * s.backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}

// firstScalar unwraps [[x]], [x] or x.
func firstScalar(v interface{}) (float64, bool) {
	for {
		switch t := v.(type) {
		case float64:
			return t, true
		case []interface{}:
			if len(t) == 0 {
				return 0, false
			}
			v = t[0]
		default:
			return 0, false
		}
	}
}

// servedModel binds a ServingClient to one model name.
type servedModel struct {
	client *ServingClient
	name   string
}

func (m *servedModel) Predict(ctx context.Context, window []float64) (float64, error) {
	return m.client.Predict(ctx, m.name, window)
}

// ServingBinder binds slots to models hosted by a serving runtime.
type ServingBinder struct {
	Client *ServingClient
	// Probe checks the model status endpoint before binding.
	Probe bool
}

func (b ServingBinder) Bind(ctx context.Context, spec SlotSpec) (domsvc.Predictor, error) {
	name := spec.ServingName
	if name == "" {
		name = string(spec.Slot)
	}
	if b.Probe {
		if err := b.Client.Status(ctx, name); err != nil {
			return nil, err
		}
	}
	return &servedModel{client: b.Client, name: name}, nil
}
