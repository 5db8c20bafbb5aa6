// Package datasource decides where namespace usage figures come from:
// the live Kubernetes API or a Prometheus server scraping
// kube-state-metrics.
package datasource

import (
	"context"
	"time"

	"github.com/costpilot/cost-copilot/pkg/collector"
	"github.com/costpilot/cost-copilot/pkg/logging"
	"github.com/costpilot/cost-copilot/pkg/models"
)

// UsageSource supplies aggregate resource requests per namespace.
type UsageSource interface {
	Name() string
	IsAvailable(ctx context.Context) bool
	NamespaceUsage(ctx context.Context, namespace string) (models.ResourceUsage, error)
	ListNamespaces(ctx context.Context) ([]string, error)
}

// Config selects and tunes the usage source.
type Config struct {
	// PrometheusURL enables the Prometheus source when non-empty.
	PrometheusURL string
	Timeout       time.Duration
}

// ClusterSource serves usage straight from the Kubernetes API.
type ClusterSource struct {
	*collector.Collector
}

func (s *ClusterSource) Name() string { return "kubernetes-api" }

func (s *ClusterSource) IsAvailable(ctx context.Context) bool {
	return s.Ping(ctx) == nil
}

// Select picks the usage source for a run: Prometheus when configured
// and reachable, otherwise the live API. The fallback is logged so a
// misconfigured Prometheus URL does not silently change semantics.
func Select(ctx context.Context, cfg Config, c *collector.Collector) UsageSource {
	cluster := &ClusterSource{Collector: c}

	if cfg.PrometheusURL == "" {
		return cluster
	}

	prom, err := NewPrometheusSource(cfg.PrometheusURL)
	if err != nil {
		logging.Warn("Prometheus initialization failed, falling back to API collection", map[string]interface{}{
			"url": cfg.PrometheusURL, "error": err.Error(),
		})
		return cluster
	}
	if !prom.IsAvailable(ctx) {
		logging.Warn("Prometheus not reachable, falling back to API collection", map[string]interface{}{
			"url": cfg.PrometheusURL,
		})
		return cluster
	}

	logging.Info("using Prometheus usage source", map[string]interface{}{"url": cfg.PrometheusURL})
	return prom
}
