package datasource

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/costpilot/cost-copilot/pkg/logging"
	"github.com/costpilot/cost-copilot/pkg/models"
)

const bytesPerGB = 1 << 30

// PrometheusSource reads namespace resource requests from
// kube-state-metrics series. It needs no cluster credentials, which
// makes it the preferred source for the long-running server.
type PrometheusSource struct {
	client v1.API
	url    string
}

// NewPrometheusSource creates a source against a Prometheus base URL.
func NewPrometheusSource(url string) (*PrometheusSource, error) {
	client, err := api.NewClient(api.Config{Address: url})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus client: %w", err)
	}
	return &PrometheusSource{
		client: v1.NewAPI(client),
		url:    url,
	}, nil
}

func (p *PrometheusSource) Name() string { return "prometheus" }

// IsAvailable checks the server answers queries at all.
func (p *PrometheusSource) IsAvailable(ctx context.Context) bool {
	_, _, err := p.client.Query(ctx, "up", time.Now())
	return err == nil
}

// NamespaceUsage sums kube-state-metrics request series for a
// namespace. A missing series means zero, not an error: namespaces
// without PVCs or without pods are ordinary.
func (p *PrometheusSource) NamespaceUsage(ctx context.Context, namespace string) (models.ResourceUsage, error) {
	cpu, err := p.querySum(ctx, fmt.Sprintf(
		`sum(kube_pod_container_resource_requests{namespace=%q,resource="cpu"})`, namespace))
	if err != nil {
		return models.ResourceUsage{}, fmt.Errorf("cpu requests query failed: %w", err)
	}

	memoryBytes, err := p.querySum(ctx, fmt.Sprintf(
		`sum(kube_pod_container_resource_requests{namespace=%q,resource="memory"})`, namespace))
	if err != nil {
		return models.ResourceUsage{}, fmt.Errorf("memory requests query failed: %w", err)
	}

	storageBytes, err := p.querySum(ctx, fmt.Sprintf(
		`sum(kube_persistentvolumeclaim_resource_requests_storage_bytes{namespace=%q})`, namespace))
	if err != nil {
		return models.ResourceUsage{}, fmt.Errorf("storage requests query failed: %w", err)
	}

	pods, err := p.querySum(ctx, fmt.Sprintf(
		`sum(kube_pod_status_phase{namespace=%q,phase=~"Running|Pending"})`, namespace))
	if err != nil {
		return models.ResourceUsage{}, fmt.Errorf("pod phase query failed: %w", err)
	}

	return models.ResourceUsage{
		CPUCores:  cpu,
		MemoryGB:  memoryBytes / bytesPerGB,
		StorageGB: storageBytes / bytesPerGB,
		PodCount:  int(pods),
	}, nil
}

// ListNamespaces returns every namespace with pod series.
func (p *PrometheusSource) ListNamespaces(ctx context.Context) ([]string, error) {
	vector, err := p.queryVector(ctx, `count by (namespace) (kube_pod_info)`)
	if err != nil {
		return nil, fmt.Errorf("namespace query failed: %w", err)
	}

	names := make([]string, 0, len(vector))
	for _, sample := range vector {
		if ns, ok := sample.Metric["namespace"]; ok {
			names = append(names, string(ns))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (p *PrometheusSource) queryVector(ctx context.Context, query string) (model.Vector, error) {
	result, warnings, err := p.client.Query(ctx, query, time.Now())
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		logging.Warn("Prometheus query warnings", map[string]interface{}{
			"query": query, "warnings": warnings,
		})
	}

	vector, ok := result.(model.Vector)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %s for query %s", result.Type(), query)
	}
	return vector, nil
}

// querySum evaluates an instant query and sums the vector. An empty
// result is zero.
func (p *PrometheusSource) querySum(ctx context.Context, query string) (float64, error) {
	vector, err := p.queryVector(ctx, query)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, sample := range vector {
		sum += float64(sample.Value)
	}
	return sum, nil
}
