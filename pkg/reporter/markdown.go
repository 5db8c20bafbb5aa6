package reporter

import (
	"fmt"
	"io"

	"github.com/costpilot/cost-copilot/pkg/models"
)

// GenerateMarkdown writes the report as Markdown.
func GenerateMarkdown(report *Report, w io.Writer) error {
	summary := report.Summary()

	fmt.Fprintf(w, "# Cluster Cost Report - %s\n\n", report.ClusterName)
	fmt.Fprintf(w, "- **Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "- **Tier:** %s\n", report.Tier)
	if report.Region != "" {
		fmt.Fprintf(w, "- **Region:** %s\n", report.Region)
	}
	fmt.Fprintf(w, "- **Namespaces:** %d\n\n", summary.NamespaceCount)

	fmt.Fprintf(w, "## Monthly Bill\n\n")
	fmt.Fprintf(w, "| | %s |\n|---|---|\n", report.Currency)
	fmt.Fprintf(w, "| Compute | %.2f |\n", models.Round2(report.Bill.Breakdown.ComputeCost))
	fmt.Fprintf(w, "| Memory | %.2f |\n", models.Round2(report.Bill.Breakdown.MemoryCost))
	fmt.Fprintf(w, "| Storage | %.2f |\n", models.Round2(report.Bill.Breakdown.StorageCost))
	fmt.Fprintf(w, "| Resource total | %.2f |\n", models.Round2(summary.TotalMonthly))
	if summary.ManagementFee > 0 {
		fmt.Fprintf(w, "| Management fee | %.2f |\n", models.Round2(summary.ManagementFee))
	}
	fmt.Fprintf(w, "| **Total** | **%.2f** |\n", models.Round2(summary.TotalWithFees))
	fmt.Fprintf(w, "| Annual projection | %.2f |\n\n", models.Round2(summary.AnnualProjection))

	if len(report.Comparison) > 0 {
		fmt.Fprintf(w, "## Namespaces by Cost\n\n")
		fmt.Fprintf(w, "| # | Namespace | Compute | Memory | Storage | Total | Share |\n")
		fmt.Fprintf(w, "|---|---|---|---|---|---|---|\n")
		for i, entry := range report.Comparison {
			b := entry.Breakdown.Rounded()
			fmt.Fprintf(w, "| %d | %s | %.2f | %.2f | %.2f | %.2f | %.1f%% |\n",
				i+1, entry.Namespace, b.ComputeCost, b.MemoryCost, b.StorageCost,
				b.TotalMonthlyCost, report.Share(entry))
		}
		fmt.Fprintln(w)
	}

	if len(report.Insights) > 0 {
		fmt.Fprintf(w, "## Insights\n\n")
		for _, insight := range report.Insights {
			fmt.Fprintf(w, "- **%s** - %s", insight.Title, insight.Detail)
			if insight.EstimatedMonthlySavings > 0 {
				fmt.Fprintf(w, " (est. %.2f/month)", models.Round2(insight.EstimatedMonthlySavings))
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	if report.Waste != nil && !report.Waste.Empty() {
		fmt.Fprintf(w, "## Orphaned Resources\n\n")
		fmt.Fprintf(w, "| Resource | Name | Monthly Waste | Note |\n|---|---|---|---|\n")
		for _, line := range report.Waste.Lines {
			waste := fmt.Sprintf("%.2f", models.Round2(line.MinMonthly))
			if line.MaxMonthly != line.MinMonthly {
				waste = fmt.Sprintf("%.2f - %.2f", models.Round2(line.MinMonthly), models.Round2(line.MaxMonthly))
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", line.Resource, line.Name, waste, line.Note)
		}
		fmt.Fprintf(w, "\nTotal waste: at least %.2f/month\n", models.Round2(report.Waste.MinMonthly))
	}

	return nil
}
