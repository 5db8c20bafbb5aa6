// Package collector aggregates requested resources per namespace from
// the Kubernetes API. Requests, not measured usage: the estimator
// prices what workloads ask for.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/costpilot/cost-copilot/pkg/k8s"
	"github.com/costpilot/cost-copilot/pkg/models"
)

// ErrMetricsUnavailable is returned when the metrics API cannot serve
// actual usage. Callers should treat it as a warning, not a failure;
// not every cluster runs metrics-server.
var ErrMetricsUnavailable = errors.New("metrics API unavailable")

const bytesPerGB = 1 << 30

// Options tunes cluster-wide collection.
type Options struct {
	// Workers bounds concurrent namespace collection. 0 means 4.
	Workers int
	// QPS paces namespace listing against the API server. 0 means 10.
	QPS float64
}

// Collector reads resource requests from a cluster.
type Collector struct {
	clientset     k8s.Interface
	metricsClient k8s.MetricsInterface
	workers       int
	limiter       *rate.Limiter
}

// New creates a collector. metricsClient may be nil when the metrics
// API is not wanted; ActualUsage then reports ErrMetricsUnavailable.
func New(clientset k8s.Interface, metricsClient k8s.MetricsInterface, opts Options) *Collector {
	workers := opts.Workers
	if workers < 1 {
		workers = 4
	}
	qps := opts.QPS
	if qps <= 0 {
		qps = 10
	}
	return &Collector{
		clientset:     clientset,
		metricsClient: metricsClient,
		workers:       workers,
		limiter:       rate.NewLimiter(rate.Limit(qps), workers),
	}
}

// Ping verifies API server connectivity.
func (c *Collector) Ping(ctx context.Context) error {
	_, err := c.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to reach API server: %w", err)
	}
	return nil
}

// ListNamespaces returns all namespace names in the cluster.
func (c *Collector) ListNamespaces(ctx context.Context) ([]string, error) {
	nsList, err := c.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	names := make([]string, 0, len(nsList.Items))
	for _, ns := range nsList.Items {
		names = append(names, ns.Name)
	}
	return names, nil
}

// NamespaceUsage sums the resource requests of a namespace: CPU and
// memory over running and pending pod containers, storage over PVC
// requests. Succeeded and Failed pods no longer hold their requests
// and are excluded from sums and counts.
func (c *Collector) NamespaceUsage(ctx context.Context, namespace string) (models.ResourceUsage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.ResourceUsage{}, err
	}

	pods, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return models.ResourceUsage{}, fmt.Errorf("failed to list pods in %s: %w", namespace, err)
	}

	var usage models.ResourceUsage
	for _, pod := range pods.Items {
		if pod.Status.Phase == corev1.PodSucceeded || pod.Status.Phase == corev1.PodFailed {
			continue
		}
		usage.PodCount++
		for _, container := range pod.Spec.Containers {
			if cpu, ok := container.Resources.Requests[corev1.ResourceCPU]; ok {
				usage.CPUCores += float64(cpu.MilliValue()) / 1000
			}
			if mem, ok := container.Resources.Requests[corev1.ResourceMemory]; ok {
				usage.MemoryGB += float64(mem.Value()) / bytesPerGB
			}
		}
	}

	pvcs, err := c.clientset.CoreV1().PersistentVolumeClaims(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return models.ResourceUsage{}, fmt.Errorf("failed to list PVCs in %s: %w", namespace, err)
	}
	for _, pvc := range pvcs.Items {
		if pvc.Status.Phase == corev1.ClaimLost {
			continue
		}
		if storage, ok := pvc.Spec.Resources.Requests[corev1.ResourceStorage]; ok {
			usage.StorageGB += float64(storage.Value()) / bytesPerGB
		}
	}

	return usage, nil
}

// ClusterUsage collects every namespace in the cluster.
func (c *Collector) ClusterUsage(ctx context.Context) (map[string]models.ResourceUsage, error) {
	return c.ClusterUsageWithProgress(ctx, nil)
}

// ClusterUsageWithProgress collects every namespace concurrently,
// bounded by Options.Workers. progress, when non-nil, is called once
// per completed namespace.
func (c *Collector) ClusterUsageWithProgress(ctx context.Context, progress func(namespace string)) (map[string]models.ResourceUsage, error) {
	names, err := c.ListNamespaces(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	usages := make(map[string]models.ResourceUsage, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, name := range names {
		g.Go(func() error {
			usage, err := c.NamespaceUsage(ctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			usages[name] = usage
			if progress != nil {
				progress(name)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return usages, nil
}

// ActualUsage reads measured CPU and memory consumption of a namespace
// from the metrics API, for request-vs-usage display.
func (c *Collector) ActualUsage(ctx context.Context, namespace string) (cpuCores, memoryGB float64, err error) {
	if c.metricsClient == nil {
		return 0, 0, ErrMetricsUnavailable
	}

	podMetrics, err := c.metricsClient.MetricsV1beta1().PodMetricses(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMetricsUnavailable, err)
	}

	for _, pod := range podMetrics.Items {
		for _, container := range pod.Containers {
			cpuCores += float64(container.Usage.Cpu().MilliValue()) / 1000
			memoryGB += float64(container.Usage.Memory().Value()) / bytesPerGB
		}
	}
	return cpuCores, memoryGB, nil
}
