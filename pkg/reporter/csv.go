package reporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/costpilot/cost-copilot/pkg/models"
)

// GenerateCSV creates a CSV report: one row per namespace, followed by
// summary rows.
func GenerateCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	header := []string{
		"Namespace",
		"Compute ($)",
		"Memory ($)",
		"Storage ($)",
		"Total ($)",
		"Share (%)",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, entry := range report.Comparison {
		b := entry.Breakdown.Rounded()
		row := []string{
			entry.Namespace,
			fmt.Sprintf("%.2f", b.ComputeCost),
			fmt.Sprintf("%.2f", b.MemoryCost),
			fmt.Sprintf("%.2f", b.StorageCost),
			fmt.Sprintf("%.2f", b.TotalMonthlyCost),
			fmt.Sprintf("%.1f", report.Share(entry)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	summary := report.Summary()

	w.Write([]string{})
	w.Write([]string{"SUMMARY"})
	w.Write([]string{"Cluster", report.ClusterName})
	w.Write([]string{"Tier", string(report.Tier)})
	w.Write([]string{"Namespaces", fmt.Sprintf("%d", summary.NamespaceCount)})
	w.Write([]string{"Resource Total", fmt.Sprintf("%.2f", models.Round2(summary.TotalMonthly))})
	w.Write([]string{"Management Fee", fmt.Sprintf("%.2f", models.Round2(summary.ManagementFee))})
	w.Write([]string{"Total With Fees", fmt.Sprintf("%.2f", models.Round2(summary.TotalWithFees))})
	w.Write([]string{"Annual Projection", fmt.Sprintf("%.2f", models.Round2(summary.AnnualProjection))})

	if report.Waste != nil && !report.Waste.Empty() {
		w.Write([]string{})
		w.Write([]string{"ORPHANED RESOURCES"})
		w.Write([]string{"Resource", "Name", "Min Monthly ($)", "Max Monthly ($)", "Note"})
		for _, line := range report.Waste.Lines {
			w.Write([]string{
				line.Resource,
				line.Name,
				fmt.Sprintf("%.2f", models.Round2(line.MinMonthly)),
				fmt.Sprintf("%.2f", models.Round2(line.MaxMonthly)),
				line.Note,
			})
		}
	}

	return nil
}
