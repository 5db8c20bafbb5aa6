package collector

import (
	"context"
	"errors"
	"math"
	"testing"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsfake "k8s.io/metrics/pkg/client/clientset/versioned/fake"
)

func makePod(namespace, name string, phase corev1.PodPhase, cpu, memory string) *corev1.Pod {
	requests := corev1.ResourceList{}
	if cpu != "" {
		requests[corev1.ResourceCPU] = resource.MustParse(cpu)
	}
	if memory != "" {
		requests[corev1.ResourceMemory] = resource.MustParse(memory)
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{
					Name:      "app",
					Resources: corev1.ResourceRequirements{Requests: requests},
				},
			},
		},
		Status: corev1.PodStatus{Phase: phase},
	}
}

func makePVC(namespace, name, storage string, phase corev1.PersistentVolumeClaimPhase) *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec: corev1.PersistentVolumeClaimSpec{
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: resource.MustParse(storage),
				},
			},
		},
		Status: corev1.PersistentVolumeClaimStatus{Phase: phase},
	}
}

func makeNamespace(name string) *corev1.Namespace {
	return &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNamespaceUsage(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		makeNamespace("payments"),
		makePod("payments", "api-1", corev1.PodRunning, "500m", "1Gi"),
		makePod("payments", "api-2", corev1.PodPending, "250m", "512Mi"),
		makePod("payments", "job-done", corev1.PodSucceeded, "2", "4Gi"),
		makePod("payments", "job-crashed", corev1.PodFailed, "1", "1Gi"),
		makePVC("payments", "data", "10Gi", corev1.ClaimBound),
		makePVC("payments", "lost", "100Gi", corev1.ClaimLost),
	)

	c := New(clientset, nil, Options{})
	usage, err := c.NamespaceUsage(context.Background(), "payments")
	if err != nil {
		t.Fatalf("NamespaceUsage failed: %v", err)
	}

	if !almostEqual(usage.CPUCores, 0.75) {
		t.Errorf("Expected 0.75 cores, got %g", usage.CPUCores)
	}
	if !almostEqual(usage.MemoryGB, 1.5) {
		t.Errorf("Expected 1.5 GB memory, got %g", usage.MemoryGB)
	}
	if !almostEqual(usage.StorageGB, 10) {
		t.Errorf("Expected 10 GB storage, got %g", usage.StorageGB)
	}
	if usage.PodCount != 2 {
		t.Errorf("Expected 2 pods (terminal phases excluded), got %d", usage.PodCount)
	}
}

func TestNamespaceUsageEmpty(t *testing.T) {
	clientset := fake.NewSimpleClientset(makeNamespace("empty"))

	c := New(clientset, nil, Options{})
	usage, err := c.NamespaceUsage(context.Background(), "empty")
	if err != nil {
		t.Fatalf("NamespaceUsage failed: %v", err)
	}
	if usage.CPUCores != 0 || usage.MemoryGB != 0 || usage.StorageGB != 0 || usage.PodCount != 0 {
		t.Errorf("Expected zero usage, got %+v", usage)
	}
}

func TestClusterUsage(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		makeNamespace("production"),
		makeNamespace("staging"),
		makeNamespace("empty"),
		makePod("production", "web-1", corev1.PodRunning, "1", "2Gi"),
		makePod("production", "web-2", corev1.PodRunning, "1", "2Gi"),
		makePod("staging", "web-1", corev1.PodRunning, "100m", "256Mi"),
	)

	c := New(clientset, nil, Options{Workers: 2})

	var progressed int
	var seen []string
	usages, err := c.ClusterUsageWithProgress(context.Background(), func(ns string) {
		progressed++
		seen = append(seen, ns)
	})
	if err != nil {
		t.Fatalf("ClusterUsage failed: %v", err)
	}

	if len(usages) != 3 {
		t.Fatalf("Expected 3 namespaces, got %d", len(usages))
	}
	if !almostEqual(usages["production"].CPUCores, 2) {
		t.Errorf("Expected 2 cores in production, got %g", usages["production"].CPUCores)
	}
	if !almostEqual(usages["staging"].CPUCores, 0.1) {
		t.Errorf("Expected 0.1 cores in staging, got %g", usages["staging"].CPUCores)
	}
	if usages["empty"].PodCount != 0 {
		t.Errorf("Expected empty namespace to stay zero, got %+v", usages["empty"])
	}
	if progressed != 3 {
		t.Errorf("Expected 3 progress callbacks, got %d (%v)", progressed, seen)
	}
}

func TestListNamespaces(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		makeNamespace("default"),
		makeNamespace("kube-system"),
	)

	c := New(clientset, nil, Options{})
	names, err := c.ListNamespaces(context.Background())
	if err != nil {
		t.Fatalf("ListNamespaces failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("Expected 2 namespaces, got %v", names)
	}
}

func TestActualUsage(t *testing.T) {
	metricsClient := metricsfake.NewSimpleClientset(&metricsv1beta1.PodMetrics{
		ObjectMeta: metav1.ObjectMeta{Name: "web-1", Namespace: "production"},
		Containers: []metricsv1beta1.ContainerMetrics{
			{
				Name: "app",
				Usage: corev1.ResourceList{
					corev1.ResourceCPU:    resource.MustParse("250m"),
					corev1.ResourceMemory: resource.MustParse("1Gi"),
				},
			},
		},
	})

	c := New(fake.NewSimpleClientset(), metricsClient, Options{})
	cpu, mem, err := c.ActualUsage(context.Background(), "production")
	if err != nil {
		t.Fatalf("ActualUsage failed: %v", err)
	}
	if !almostEqual(cpu, 0.25) {
		t.Errorf("Expected 0.25 cores, got %g", cpu)
	}
	if !almostEqual(mem, 1) {
		t.Errorf("Expected 1 GB, got %g", mem)
	}
}

func TestActualUsageWithoutMetricsClient(t *testing.T) {
	c := New(fake.NewSimpleClientset(), nil, Options{})
	_, _, err := c.ActualUsage(context.Background(), "production")
	if !errors.Is(err, ErrMetricsUnavailable) {
		t.Errorf("Expected ErrMetricsUnavailable, got %v", err)
	}
}
