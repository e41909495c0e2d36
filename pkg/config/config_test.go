package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", c.Server.Port)
	}
	if c.Models.Dir != "models" {
		t.Fatalf("unexpected model dir %q", c.Models.Dir)
	}
	if c.Models.LSTM.Path != "lstm_model.h5" || c.Models.RNN.Path != "rnn_stock_model.h5" || c.Models.GRU.Path != "gru_stock_model.h5" {
		t.Fatalf("unexpected slot paths %+v", c.Models)
	}
	if c.Inference.Timeout != 10*time.Second {
		t.Fatalf("unexpected inference timeout %v", c.Inference.Timeout)
	}
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9000
models:
  gru:
    path: custom_gru.h5
inference:
  serving_url: http://serving:8501
  timeout: 2s
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Environment != "production" || c.Server.Port != 9000 {
		t.Fatalf("yaml not applied: %+v", c)
	}
	if c.Models.GRU.Path != "custom_gru.h5" || c.Models.GRU.ServingName != "gru" {
		t.Fatalf("unexpected gru slot %+v", c.Models.GRU)
	}
	if c.Models.LSTM.Path != "lstm_model.h5" {
		t.Fatalf("lstm default lost: %+v", c.Models.LSTM)
	}
	if c.Inference.Timeout != 2*time.Second {
		t.Fatalf("unexpected timeout %v", c.Inference.Timeout)
	}
	if c.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("default shutdown timeout lost: %v", c.Server.ShutdownTimeout)
	}
}

func TestProbeOnStartDefault(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.Inference.ProbeOnStart {
		t.Fatalf("expected startup probe on by default")
	}

	c, err = Load(writeConfig(t, "inference:\n  probe_on_start: false\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Inference.ProbeOnStart {
		t.Fatalf("expected probe_on_start: false to disable the probe")
	}
}

func TestLoadWithEnvPort(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("SERVING_URL", "http://tf:8501")
	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8081 {
		t.Fatalf("expected PORT override, got %d", c.Server.Port)
	}
	if c.Inference.ServingURL != "http://tf:8501" {
		t.Fatalf("expected SERVING_URL override, got %q", c.Inference.ServingURL)
	}
}

func TestLoadWithEnvInvalidPort(t *testing.T) {
	t.Setenv("PORT", "abc")
	if _, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for non-numeric PORT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty model dir", func(c *Config) { c.Models.Dir = "" }},
		{"empty serving url", func(c *Config) { c.Inference.ServingURL = "" }},
		{"zero attempts", func(c *Config) { c.Inference.Attempts = 0 }},
		{"bad cache backend", func(c *Config) { c.Cache.Enabled = true; c.Cache.Backend = "memcached" }},
		{"zero cache ttl", func(c *Config) { c.Cache.Enabled = true; c.Cache.TTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Default()
			if err != nil {
				t.Fatalf("defaults: %v", err)
			}
			if err := c.Validate(); err != nil {
				t.Fatalf("defaults should validate: %v", err)
			}
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
