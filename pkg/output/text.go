package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/costpilot/cost-copilot/pkg/models"
	"github.com/costpilot/cost-copilot/pkg/waste"
)

var (
	headerColor = color.New(color.Bold)
	moneyColor  = color.New(color.FgGreen, color.Bold)
	tierColor   = color.New(color.FgCyan)
	warnColor   = color.New(color.FgYellow)
)

// textHandler renders human-readable tables. fatih/color honors
// NO_COLOR and non-TTY writers on its own.
type textHandler struct {
	w io.Writer
}

func (h *textHandler) Format() string { return "text" }

func (h *textHandler) money(v float64) string {
	return moneyColor.Sprintf("$%.2f", models.Round2(v))
}

func (h *textHandler) DisplayBreakdown(namespace string, usage models.ResourceUsage, breakdown models.CostBreakdown, card models.RateCard) error {
	if namespace != "" {
		headerColor.Fprintf(h.w, "Namespace: %s\n", namespace)
	}
	fmt.Fprintf(h.w, "Requests:  %.2f cores, %.2f GB memory, %.0f GB storage, %d pod(s)\n",
		usage.CPUCores, usage.MemoryGB, usage.StorageGB, usage.PodCount)
	fmt.Fprintf(h.w, "Rate card: %s %s\n\n", tierColor.Sprint(card.Tier), card.Region)

	rounded := breakdown.Rounded()
	fmt.Fprintf(h.w, "  Compute   $%8.2f\n", rounded.ComputeCost)
	fmt.Fprintf(h.w, "  Memory    $%8.2f\n", rounded.MemoryCost)
	fmt.Fprintf(h.w, "  Storage   $%8.2f\n", rounded.StorageCost)
	fmt.Fprintf(h.w, "  Total     %s/month\n", h.money(breakdown.TotalMonthlyCost))
	return nil
}

func (h *textHandler) DisplayComparison(comparison models.NamespaceCostComparison) error {
	total := comparison.Total()

	headerColor.Fprintf(h.w, "%-4s %-30s %12s %8s\n", "#", "NAMESPACE", "MONTHLY", "SHARE")
	for i, entry := range comparison {
		share := 0.0
		if total > 0 {
			share = entry.Breakdown.TotalMonthlyCost / total * 100
		}
		fmt.Fprintf(h.w, "%-4d %-30s %12s %7.1f%%\n",
			i+1, entry.Namespace, h.money(entry.Breakdown.TotalMonthlyCost), share)
	}
	fmt.Fprintf(h.w, "\nTotal: %s/month across %d namespace(s)\n", h.money(total), len(comparison))
	return nil
}

func (h *textHandler) DisplayBill(bill models.ClusterBill, card models.RateCard) error {
	headerColor.Fprintf(h.w, "Cluster bill (%s tier)\n\n", tierColor.Sprint(bill.Tier))
	fmt.Fprintf(h.w, "Requests:  %.2f cores, %.2f GB memory, %.0f GB storage, %d pod(s)\n\n",
		bill.Usage.CPUCores, bill.Usage.MemoryGB, bill.Usage.StorageGB, bill.Usage.PodCount)

	rounded := bill.Breakdown.Rounded()
	fmt.Fprintf(h.w, "  Compute          $%10.2f\n", rounded.ComputeCost)
	fmt.Fprintf(h.w, "  Memory           $%10.2f\n", rounded.MemoryCost)
	fmt.Fprintf(h.w, "  Storage          $%10.2f\n", rounded.StorageCost)
	if bill.ManagementFee > 0 {
		fmt.Fprintf(h.w, "  Management fee   $%10.2f\n", models.Round2(bill.ManagementFee))
	}
	fmt.Fprintf(h.w, "  Total            %s/month\n\n", h.money(bill.TotalWithFees))

	if bill.Usage.PodCount > 0 {
		fmt.Fprintf(h.w, "Per-pod average:   $%.2f/month\n", models.Round2(bill.PerPodAverage))
	}
	fmt.Fprintf(h.w, "Annual projection: %s\n", h.money(bill.AnnualProjection))
	return nil
}

func (h *textHandler) DisplayWaste(report waste.Report) error {
	if report.Empty() {
		fmt.Fprintln(h.w, "No orphaned resources in inventory")
		return nil
	}

	headerColor.Fprintf(h.w, "%-10s %-30s %18s\n", "RESOURCE", "NAME", "MONTHLY WASTE")
	for _, line := range report.Lines {
		amount := fmt.Sprintf("$%.2f", models.Round2(line.MinMonthly))
		if line.MaxMonthly != line.MinMonthly {
			amount = fmt.Sprintf("$%.2f-$%.2f", models.Round2(line.MinMonthly), models.Round2(line.MaxMonthly))
		}
		fmt.Fprintf(h.w, "%-10s %-30s %18s\n", line.Resource, line.Name, amount)
		if line.Note != "" {
			warnColor.Fprintf(h.w, "           %s\n", line.Note)
		}
	}

	fmt.Fprintf(h.w, "\nTotal waste: at least %s/month", h.money(report.MinMonthly))
	if report.MaxMonthly != report.MinMonthly {
		fmt.Fprintf(h.w, " (up to $%.2f)", models.Round2(report.MaxMonthly))
	}
	fmt.Fprintln(h.w)
	return nil
}

func (h *textHandler) DisplayHistory(snapshots []*models.CostSnapshot) error {
	if len(snapshots) == 0 {
		fmt.Fprintln(h.w, "No snapshots found")
		return nil
	}

	headerColor.Fprintf(h.w, "%-20s %-15s %12s %8s\n", "CREATED", "SCOPE", "MONTHLY", "PODS")
	for _, snapshot := range snapshots {
		scope := snapshot.Namespace
		if scope == "" {
			scope = "(cluster)"
		}
		fmt.Fprintf(h.w, "%-20s %-15s %12s %8d\n",
			snapshot.CreatedAt.Format("2006-01-02 15:04:05"),
			scope,
			h.money(snapshot.Breakdown.TotalMonthlyCost),
			snapshot.Usage.PodCount)
	}
	return nil
}

func (h *textHandler) DisplayTrend(points []models.TrendPoint) error {
	if len(points) == 0 {
		fmt.Fprintln(h.w, "No trend data found")
		return nil
	}

	headerColor.Fprintf(h.w, "%-12s %10s %12s %12s\n", "DAY", "SNAPSHOTS", "AVG MONTHLY", "MAX MONTHLY")
	for _, point := range points {
		fmt.Fprintf(h.w, "%-12s %10d %12s %12s\n",
			point.Date.Format("2006-01-02"),
			point.SnapshotCount,
			h.money(point.AvgMonthly),
			h.money(point.MaxMonthly))
	}
	return nil
}
