package estimator

import (
	"github.com/costpilot/cost-copilot/pkg/models"
)

// BuildClusterBill prices the whole cluster and layers per-cluster
// fees on top of the linear resource cost. The management fee stays
// outside the CostBreakdown so the breakdown keeps its sum identity
// with per-namespace estimates.
func BuildClusterBill(usages map[string]models.ResourceUsage, card models.RateCard, hoursPerMonth float64) (models.ClusterBill, error) {
	breakdown, err := EstimateClusterCostHours(usages, card, hoursPerMonth)
	if err != nil {
		return models.ClusterBill{}, err
	}

	usage := models.SumUsages(usages)
	fee := card.ManagementFeePerHour * hoursPerMonth

	bill := models.ClusterBill{
		Breakdown:     breakdown,
		Usage:         usage,
		Tier:          card.Tier,
		ManagementFee: fee,
		TotalWithFees: breakdown.TotalMonthlyCost + fee,
	}
	if usage.PodCount > 0 {
		bill.PerPodAverage = breakdown.TotalMonthlyCost / float64(usage.PodCount)
	}
	bill.AnnualProjection = bill.TotalWithFees * 12
	return bill, nil
}
