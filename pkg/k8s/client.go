// Package k8s builds the Kubernetes clientsets used by the collector.
// Consumers depend on the Interface aliases so tests can substitute
// fake clientsets.
package k8s

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"
)

// Interface is the core clientset surface the collector needs.
type Interface = kubernetes.Interface

// MetricsInterface is the metrics-server clientset surface.
type MetricsInterface = metricsv.Interface

// BuildConfig resolves client configuration: an explicit kubeconfig
// path, then KUBECONFIG, then ~/.kube/config, then in-cluster.
func BuildConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")
	}
	if kubeconfig == "" {
		if home := homedir.HomeDir(); home != "" {
			kubeconfig = filepath.Join(home, ".kube", "config")
		}
	}

	if kubeconfig != "" {
		if _, err := os.Stat(kubeconfig); err == nil {
			config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
			if err != nil {
				return nil, fmt.Errorf("failed to build config from %s: %w", kubeconfig, err)
			}
			return config, nil
		}
	}

	config, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("no kubeconfig found and not running in-cluster: %w", err)
	}
	return config, nil
}

// NewClientset creates the core clientset.
func NewClientset(kubeconfig string) (Interface, error) {
	config, err := BuildConfig(kubeconfig)
	if err != nil {
		return nil, err
	}
	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}
	return clientset, nil
}

// NewMetricsClientset creates the metrics-server clientset. Callers
// must treat metrics as optional; not every cluster runs the API.
func NewMetricsClientset(kubeconfig string) (MetricsInterface, error) {
	config, err := BuildConfig(kubeconfig)
	if err != nil {
		return nil, err
	}
	metricsClient, err := metricsv.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}
	return metricsClient, nil
}
