//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/costpilot/cost-copilot/pkg/collector"
)

func getKubernetesClient(t *testing.T) *kubernetes.Clientset {
	t.Helper()

	kubeconfig := filepath.Join(homedir.HomeDir(), ".kube", "config")
	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		t.Fatalf("Failed to build config: %v", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		t.Fatalf("Failed to create clientset: %v", err)
	}

	return clientset
}

func TestRealClusterConnection(t *testing.T) {
	clientset := getKubernetesClient(t)

	ctx := context.Background()
	nodes, err := clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		t.Fatalf("Failed to list nodes: %v", err)
	}

	if len(nodes.Items) == 0 {
		t.Fatal("No nodes found in cluster")
	}

	t.Logf("✓ Connected to cluster with %d node(s)", len(nodes.Items))
	for _, node := range nodes.Items {
		t.Logf("  Node: %s", node.Name)
	}
}

func TestRealNamespaceCollection(t *testing.T) {
	clientset := getKubernetesClient(t)
	c := collector.New(clientset, nil, collector.Options{})

	ctx := context.Background()
	usage, err := c.NamespaceUsage(ctx, "kube-system")
	if err != nil {
		t.Fatalf("Failed to collect kube-system: %v", err)
	}

	if usage.PodCount == 0 {
		t.Fatal("Expected running pods in kube-system")
	}
	if usage.CPUCores <= 0 {
		t.Errorf("Expected positive CPU requests, got %v", usage.CPUCores)
	}

	t.Logf("✓ kube-system: %.3f cores, %.3f GB, %d pods", usage.CPUCores, usage.MemoryGB, usage.PodCount)
}

func TestRealClusterCollection(t *testing.T) {
	clientset := getKubernetesClient(t)
	c := collector.New(clientset, nil, collector.Options{Workers: 4})

	ctx := context.Background()
	usages, err := c.ClusterUsage(ctx)
	if err != nil {
		t.Fatalf("Failed to collect cluster: %v", err)
	}

	if len(usages) == 0 {
		t.Fatal("No namespaces collected")
	}

	t.Logf("✓ Collected %d namespaces:", len(usages))
	for name, usage := range usages {
		t.Logf("  - %s: %.3f cores, %d pods", name, usage.CPUCores, usage.PodCount)
	}
}

func TestEstimateCLIExecution(t *testing.T) {
	t.Log("Building cost-copilot...")
	build := exec.Command("go", "build", "-o", "../../bin/cost-copilot", "../../cmd/cost-copilot")
	if output, err := build.CombinedOutput(); err != nil {
		t.Fatalf("Build failed: %v\n%s", err, output)
	}
	t.Log("✓ Built CLI")

	t.Log("Running estimate against real cluster...")
	cmd := exec.Command("../../bin/cost-copilot", "estimate", "-n", "kube-system")
	output, err := cmd.CombinedOutput()

	outputStr := string(output)
	t.Logf("Output:\n%s", outputStr)

	if err != nil {
		t.Fatalf("CLI failed: %v", err)
	}

	if !strings.Contains(outputStr, "kube-system") {
		t.Error("Output should mention the kube-system namespace")
	}
	if !strings.Contains(outputStr, "$") {
		t.Error("Output should contain dollar amounts")
	}

	t.Log("✓ Successfully estimated a real namespace!")
}
