// Package pricing holds the GKE rate cards and resolves which card a
// run should use: builtin per-tier constants, an optional rate card
// file, explicit overrides, and cluster tier auto-detection.
package pricing

import (
	"fmt"

	"github.com/costpilot/cost-copilot/pkg/models"
)

// Published GKE on-demand rates, us-central1.
const (
	AutopilotCPUPerCoreHour  = 0.042588
	AutopilotMemoryPerGBHour = 0.005722

	StandardCPUPerCoreHour  = 0.031611
	StandardMemoryPerGBHour = 0.004237

	// Per GB-month disk rates.
	PDStandardPerGBMonth = 0.04
	PDSSDPerGBMonth      = 0.17

	// Flat cluster fee, waived for Autopilot.
	StandardManagementFeePerHour = 0.10
)

// DefaultRegion is assumed when a cluster exposes no region label.
const DefaultRegion = "us-central1"

// StorageRateForClass returns the per GB-month rate for a disk class.
func StorageRateForClass(class models.StorageClass) (float64, error) {
	switch class {
	case models.StoragePDStandard:
		return PDStandardPerGBMonth, nil
	case models.StoragePDSSD:
		return PDSSDPerGBMonth, nil
	default:
		return 0, fmt.Errorf("unknown storage class %q", class)
	}
}

// CardForTier returns the builtin rate card for a cluster tier. The
// storage class selects the disk rate; empty means pd-standard.
func CardForTier(tier models.Tier, class models.StorageClass) (models.RateCard, error) {
	if class == "" {
		class = models.StoragePDStandard
	}
	storageRate, err := StorageRateForClass(class)
	if err != nil {
		return models.RateCard{}, err
	}

	card := models.RateCard{
		StoragePerGBMonth: storageRate,
		Currency:          "USD",
		Tier:              tier,
		Region:            DefaultRegion,
		StorageClass:      class,
	}

	switch tier {
	case models.TierAutopilot:
		card.CPUPerCoreHour = AutopilotCPUPerCoreHour
		card.MemoryPerGBHour = AutopilotMemoryPerGBHour
	case models.TierStandard:
		card.CPUPerCoreHour = StandardCPUPerCoreHour
		card.MemoryPerGBHour = StandardMemoryPerGBHour
		card.ManagementFeePerHour = StandardManagementFeePerHour
	default:
		return models.RateCard{}, fmt.Errorf("unknown tier %q", tier)
	}

	return card, nil
}

// ParseTier converts a user-supplied tier name.
func ParseTier(s string) (models.Tier, error) {
	switch s {
	case "autopilot":
		return models.TierAutopilot, nil
	case "standard":
		return models.TierStandard, nil
	default:
		return "", fmt.Errorf("unknown tier %q (expected autopilot or standard)", s)
	}
}
