package config

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"COSTPILOT_CLUSTER_NAME", "COSTPILOT_TIER", "COSTPILOT_HOURS_PER_MONTH",
		"PROMETHEUS_URL", "STORAGE_ENABLED", "DATABASE_URL", "COSTPILOT_OUTPUT",
	} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	if cfg.ClusterName != "default" {
		t.Errorf("Expected default cluster name, got %s", cfg.ClusterName)
	}
	if cfg.HoursPerMonth != 730 {
		t.Errorf("Expected 730 hours per month, got %g", cfg.HoursPerMonth)
	}
	if cfg.Tier != "" {
		t.Errorf("Expected empty tier (auto-detect), got %s", cfg.Tier)
	}
	if cfg.StorageEnabled {
		t.Error("Expected storage disabled by default")
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("Expected text output, got %s", cfg.OutputFormat)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("Expected 30s cache ttl, got %v", cfg.CacheTTL)
	}
	if cfg.CollectWorkers != 4 {
		t.Errorf("Expected 4 collect workers, got %d", cfg.CollectWorkers)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("COSTPILOT_CLUSTER_NAME", "prod-gke")
	t.Setenv("COSTPILOT_TIER", "standard")
	t.Setenv("COSTPILOT_HOURS_PER_MONTH", "720")
	t.Setenv("COSTPILOT_CPU_PRICE", "0.02")
	t.Setenv("PROMETHEUS_URL", "http://prometheus:9090")
	t.Setenv("STORAGE_ENABLED", "true")
	t.Setenv("DATABASE_URL", "host=db port=5432 user=costpilot dbname=costpilot sslmode=disable")
	t.Setenv("COSTPILOT_CACHE_TTL", "2m")
	t.Setenv("COSTPILOT_VERBOSE", "1")

	cfg := NewConfig()

	if cfg.ClusterName != "prod-gke" {
		t.Errorf("Expected prod-gke, got %s", cfg.ClusterName)
	}
	if cfg.Tier != "standard" {
		t.Errorf("Expected standard tier, got %s", cfg.Tier)
	}
	if cfg.HoursPerMonth != 720 {
		t.Errorf("Expected 720 hours from env, got %g", cfg.HoursPerMonth)
	}
	if cfg.CPUPerCoreHour != 0.02 {
		t.Errorf("Expected cpu override 0.02, got %g", cfg.CPUPerCoreHour)
	}
	if cfg.PrometheusURL != "http://prometheus:9090" {
		t.Errorf("Expected custom Prometheus URL, got %s", cfg.PrometheusURL)
	}
	if !cfg.StorageEnabled {
		t.Error("Expected storage enabled from env")
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Errorf("Expected 2m cache ttl, got %v", cfg.CacheTTL)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose from env")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected config to validate, got %v", err)
	}
}

func TestConfigIgnoresUnparsableEnv(t *testing.T) {
	t.Setenv("COSTPILOT_HOURS_PER_MONTH", "not-a-number")
	t.Setenv("COSTPILOT_CACHE_TTL", "soon")

	cfg := NewConfig()

	if cfg.HoursPerMonth != 730 {
		t.Errorf("Expected default hours on parse failure, got %g", cfg.HoursPerMonth)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("Expected default ttl on parse failure, got %v", cfg.CacheTTL)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad tier", func(c *Config) { c.Tier = "mega" }},
		{"zero hours", func(c *Config) { c.HoursPerMonth = 0 }},
		{"negative hours", func(c *Config) { c.HoursPerMonth = -1 }},
		{"bad output", func(c *Config) { c.OutputFormat = "xml" }},
		{"storage without url", func(c *Config) { c.StorageEnabled = true; c.DatabaseURL = "" }},
		{"zero workers", func(c *Config) { c.CollectWorkers = 0 }},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}
