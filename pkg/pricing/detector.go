package pricing

import (
	"context"
	"fmt"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/costpilot/cost-copilot/pkg/models"
)

const (
	gkeNodepoolLabel     = "cloud.google.com/gke-nodepool"
	gkeProvisioningLabel = "cloud.google.com/gke-provisioning"
)

// DetectCluster inspects node metadata to determine the GKE tier and
// region. One node is enough; tier is a cluster-wide property.
func DetectCluster(ctx context.Context, clientset kubernetes.Interface) (models.Tier, string, error) {
	nodes, err := clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{Limit: 1})
	if err != nil {
		return "", "", fmt.Errorf("failed to list nodes: %w", err)
	}
	if len(nodes.Items) == 0 {
		return "", "", fmt.Errorf("no nodes found in cluster")
	}

	node := nodes.Items[0]
	labels := node.Labels

	isGKE := strings.HasPrefix(node.Spec.ProviderID, "gce://")
	if _, exists := labels[gkeNodepoolLabel]; exists {
		isGKE = true
	}
	if !isGKE {
		return "", "", fmt.Errorf("node %s does not look like a GKE node", node.Name)
	}

	region := extractRegion(labels)

	if labels[gkeProvisioningLabel] == "autopilot" {
		return models.TierAutopilot, region, nil
	}
	// Older clusters expose autopilot only through label values.
	for _, value := range labels {
		if strings.Contains(strings.ToLower(value), "autopilot") {
			return models.TierAutopilot, region, nil
		}
	}

	return models.TierStandard, region, nil
}

func extractRegion(labels map[string]string) string {
	if region, exists := labels["topology.kubernetes.io/region"]; exists {
		return region
	}
	if region, exists := labels["failure-domain.beta.kubernetes.io/region"]; exists {
		return region
	}
	return DefaultRegion
}
