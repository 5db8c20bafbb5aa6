package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/costpilot/cost-copilot/pkg/estimator"
)

// Config holds application configuration
type Config struct {
	// Cluster
	ClusterName string
	Kubeconfig  string

	// Pricing
	Tier          string // autopilot, standard, empty = auto-detect
	StorageClass  string
	PricingFile   string
	Currency      string
	HoursPerMonth float64

	// Price overrides, 0 = builtin rate
	CPUPerCoreHour    float64
	MemoryPerGBHour   float64
	StoragePerGBMonth float64

	// Prometheus
	PrometheusURL string

	// Storage
	StorageEnabled bool
	DatabaseURL    string

	// Collection
	CollectWorkers int

	// Server
	ListenAddr     string
	CacheTTL       time.Duration
	RateLimit      float64
	RateLimitBurst int

	// Output
	OutputFormat string // text, json, yaml
	LogLevel     string
	LogFormat    string // text, json
	Verbose      bool
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		ClusterName:       getEnv("COSTPILOT_CLUSTER_NAME", "default"),
		Kubeconfig:        getEnv("KUBECONFIG", ""),
		Tier:              getEnv("COSTPILOT_TIER", ""),
		StorageClass:      getEnv("COSTPILOT_STORAGE_CLASS", ""),
		PricingFile:       getEnv("COSTPILOT_PRICING_FILE", ""),
		Currency:          getEnv("COSTPILOT_CURRENCY", ""),
		HoursPerMonth:     getEnvFloat("COSTPILOT_HOURS_PER_MONTH", estimator.DefaultHoursPerMonth),
		CPUPerCoreHour:    getEnvFloat("COSTPILOT_CPU_PRICE", 0),
		MemoryPerGBHour:   getEnvFloat("COSTPILOT_MEMORY_PRICE", 0),
		StoragePerGBMonth: getEnvFloat("COSTPILOT_STORAGE_PRICE", 0),
		PrometheusURL:     getEnv("PROMETHEUS_URL", ""),
		StorageEnabled:    getEnvBool("STORAGE_ENABLED", false),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		CollectWorkers:    getEnvInt("COSTPILOT_COLLECT_WORKERS", 4),
		ListenAddr:        getEnv("COSTPILOT_LISTEN_ADDR", ":8080"),
		CacheTTL:          getEnvDuration("COSTPILOT_CACHE_TTL", 30*time.Second),
		RateLimit:         getEnvFloat("COSTPILOT_RATE_LIMIT", 10),
		RateLimitBurst:    getEnvInt("COSTPILOT_RATE_LIMIT_BURST", 20),
		OutputFormat:      getEnv("COSTPILOT_OUTPUT", "text"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		Verbose:           getEnvBool("COSTPILOT_VERBOSE", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Tier != "" && c.Tier != "autopilot" && c.Tier != "standard" {
		return fmt.Errorf("tier must be autopilot or standard, got %q", c.Tier)
	}
	if c.HoursPerMonth <= 0 {
		return fmt.Errorf("hours per month must be positive, got %g", c.HoursPerMonth)
	}
	if c.OutputFormat != "text" && c.OutputFormat != "json" && c.OutputFormat != "yaml" {
		return fmt.Errorf("output format must be text, json or yaml, got %q", c.OutputFormat)
	}
	if c.StorageEnabled && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when storage is enabled")
	}
	if c.CollectWorkers < 1 {
		return fmt.Errorf("collect workers must be at least 1, got %d", c.CollectWorkers)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %g", c.RateLimit)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got %d", c.RateLimitBurst)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %v", c.CacheTTL)
	}
	return nil
}
