// Package advisor turns cost figures into optimization insights. The
// rules are deterministic: the same comparison, bill and waste report
// always produce the same insights in the same order.
package advisor

import (
	"fmt"

	"github.com/costpilot/cost-copilot/pkg/models"
	"github.com/costpilot/cost-copilot/pkg/waste"
)

const (
	// ConcentrationShare is the cluster share above which a single
	// namespace is called out.
	ConcentrationShare = 40.0

	// PerPodThreshold is the monthly per-pod average above which
	// right-sizing is suggested.
	PerPodThreshold = 25.0

	// Conservative end of the committed-use discount range.
	committedUseDiscount = 0.25

	rightSizingScenario = 0.25
)

// Insight is one actionable observation about cluster spend.
type Insight struct {
	Title                   string  `json:"title" yaml:"title"`
	Detail                  string  `json:"detail" yaml:"detail"`
	EstimatedMonthlySavings float64 `json:"estimatedMonthlySavings,omitempty" yaml:"estimatedMonthlySavings,omitempty"`
}

// Advise derives insights from a namespace comparison, the cluster
// bill and an optional waste report. Pure; no I/O.
func Advise(comparison models.NamespaceCostComparison, bill models.ClusterBill, wasteReport *waste.Report) []Insight {
	var insights []Insight

	total := bill.Breakdown.TotalMonthlyCost

	if len(comparison) > 0 && total > 0 {
		top := comparison[0]
		share := top.Breakdown.TotalMonthlyCost / total * 100
		if share > ConcentrationShare {
			insights = append(insights, Insight{
				Title: "Spend concentrated in one namespace",
				Detail: fmt.Sprintf("namespace %q accounts for %.1f%% of cluster cost ($%.2f of $%.2f/month); review its workloads first",
					top.Namespace, share, top.Breakdown.TotalMonthlyCost, total),
			})
		}
	}

	if bill.Tier == models.TierStandard && total > 0 {
		insights = append(insights, Insight{
			Title: "Consider committed use discounts or Spot",
			Detail: fmt.Sprintf("Standard tier pays on-demand rates; committed use discounts save 25-55%% on steady workloads, Spot VMs more on interruptible ones ($%.2f/month on-demand today)",
				total),
			EstimatedMonthlySavings: (bill.Breakdown.ComputeCost + bill.Breakdown.MemoryCost) * committedUseDiscount,
		})
	}

	if bill.Breakdown.StorageCost > 0 {
		insights = append(insights, Insight{
			Title: "Review persistent volumes",
			Detail: fmt.Sprintf("persistent storage costs $%.2f/month for %.0f GB; check for oversized or unused claims",
				bill.Breakdown.StorageCost, bill.Usage.StorageGB),
		})
	}

	if wasteReport != nil && !wasteReport.Empty() {
		insights = append(insights, Insight{
			Title: "Clean up orphaned resources",
			Detail: fmt.Sprintf("%d orphaned resource(s) waste at least $%.2f/month",
				len(wasteReport.Lines), wasteReport.MinMonthly),
			EstimatedMonthlySavings: wasteReport.MinMonthly,
		})
	}

	if bill.PerPodAverage > PerPodThreshold {
		insights = append(insights, Insight{
			Title: "High per-pod cost, check requests",
			Detail: fmt.Sprintf("average pod costs $%.2f/month; trimming requests by 25%% would save $%.2f/month",
				bill.PerPodAverage, total*rightSizingScenario),
			EstimatedMonthlySavings: total * rightSizingScenario,
		})
	}

	return insights
}
