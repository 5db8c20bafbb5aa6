package models

import "math"

// Line item names used in CostBreakdown.Details.
const (
	DetailCompute = "compute"
	DetailMemory  = "memory"
	DetailStorage = "storage"
)

// CostBreakdown represents the monthly cost of a set of resources.
// All values are unrounded; rounding happens at display time only.
type CostBreakdown struct {
	ComputeCost      float64            `json:"computeCost" yaml:"computeCost"`
	MemoryCost       float64            `json:"memoryCost" yaml:"memoryCost"`
	StorageCost      float64            `json:"storageCost" yaml:"storageCost"`
	TotalMonthlyCost float64            `json:"totalMonthlyCost" yaml:"totalMonthlyCost"`
	Details          map[string]float64 `json:"details" yaml:"details"`
}

// Round2 rounds v to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a copy of b with every value rounded to two decimal
// places. The receiver is not modified; ranking must keep using the
// unrounded original.
func (b CostBreakdown) Rounded() CostBreakdown {
	out := CostBreakdown{
		ComputeCost:      Round2(b.ComputeCost),
		MemoryCost:       Round2(b.MemoryCost),
		StorageCost:      Round2(b.StorageCost),
		TotalMonthlyCost: Round2(b.TotalMonthlyCost),
	}
	if b.Details != nil {
		out.Details = make(map[string]float64, len(b.Details))
		for item, cost := range b.Details {
			out.Details[item] = Round2(cost)
		}
	}
	return out
}

// NamespaceCost pairs a namespace with its cost breakdown.
type NamespaceCost struct {
	Namespace string        `json:"namespace" yaml:"namespace"`
	Breakdown CostBreakdown `json:"breakdown" yaml:"breakdown"`
}

// NamespaceCostComparison ranks namespaces by monthly cost, most
// expensive first. Ties are ordered by namespace name.
type NamespaceCostComparison []NamespaceCost

// Total returns the summed monthly cost across all entries.
func (c NamespaceCostComparison) Total() float64 {
	var total float64
	for _, entry := range c {
		total += entry.Breakdown.TotalMonthlyCost
	}
	return total
}

// ClusterBill represents the full monthly bill for a cluster: the
// linear resource cost plus flat fees that are charged per cluster,
// not per resource unit.
type ClusterBill struct {
	Breakdown        CostBreakdown `json:"breakdown" yaml:"breakdown"`
	Usage            ResourceUsage `json:"usage" yaml:"usage"`
	Tier             Tier          `json:"tier" yaml:"tier"`
	ManagementFee    float64       `json:"managementFee" yaml:"managementFee"`
	TotalWithFees    float64       `json:"totalWithFees" yaml:"totalWithFees"`
	PerPodAverage    float64       `json:"perPodAverage" yaml:"perPodAverage"`
	AnnualProjection float64       `json:"annualProjection" yaml:"annualProjection"`
}
