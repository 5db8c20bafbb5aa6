// Package reporter renders cost reports as Markdown, CSV or HTML. All
// money figures go through the two-decimal display policy; the raw
// unrounded values stay inside the Report.
package reporter

import (
	"time"

	"github.com/costpilot/cost-copilot/pkg/advisor"
	"github.com/costpilot/cost-copilot/pkg/models"
	"github.com/costpilot/cost-copilot/pkg/waste"
)

// Format represents the report output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "markdown", "md":
		return FormatMarkdown, true
	case "csv":
		return FormatCSV, true
	case "html":
		return FormatHTML, true
	default:
		return "", false
	}
}

// Ext returns the file extension for a format.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatCSV:
		return ".csv"
	default:
		return ".html"
	}
}

// Report contains everything a rendered cost report shows.
type Report struct {
	ClusterName string
	Region      string
	Tier        models.Tier
	Currency    string
	GeneratedAt time.Time

	Comparison models.NamespaceCostComparison
	Bill       models.ClusterBill
	Insights   []advisor.Insight
	Waste      *waste.Report
}

// Summary holds the headline statistics of a report.
type Summary struct {
	NamespaceCount   int
	TotalMonthly     float64
	ManagementFee    float64
	TotalWithFees    float64
	AnnualProjection float64
	PotentialSavings float64
	TopNamespace     string
	TopShare         float64
}

// Summary computes the headline statistics.
func (r *Report) Summary() Summary {
	s := Summary{
		NamespaceCount:   len(r.Comparison),
		TotalMonthly:     r.Bill.Breakdown.TotalMonthlyCost,
		ManagementFee:    r.Bill.ManagementFee,
		TotalWithFees:    r.Bill.TotalWithFees,
		AnnualProjection: r.Bill.AnnualProjection,
	}
	for _, insight := range r.Insights {
		s.PotentialSavings += insight.EstimatedMonthlySavings
	}
	if len(r.Comparison) > 0 {
		s.TopNamespace = r.Comparison[0].Namespace
		s.TopShare = r.Share(r.Comparison[0])
	}
	return s
}

// Share returns a namespace's percentage of the cluster total.
func (r *Report) Share(entry models.NamespaceCost) float64 {
	total := r.Bill.Breakdown.TotalMonthlyCost
	if total <= 0 {
		return 0
	}
	return entry.Breakdown.TotalMonthlyCost / total * 100
}
