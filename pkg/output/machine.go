package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/costpilot/cost-copilot/pkg/models"
	"github.com/costpilot/cost-copilot/pkg/waste"
)

// Machine formats wrap every result in a small envelope naming what it
// is, so piped consumers can dispatch on shape.

type breakdownResult struct {
	Namespace string               `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Usage     models.ResourceUsage `json:"usage" yaml:"usage"`
	Breakdown models.CostBreakdown `json:"breakdown" yaml:"breakdown"`
	RateCard  models.RateCard      `json:"rateCard" yaml:"rateCard"`
}

type comparisonResult struct {
	Namespaces models.NamespaceCostComparison `json:"namespaces" yaml:"namespaces"`
	Total      float64                        `json:"totalMonthlyCost" yaml:"totalMonthlyCost"`
}

type billResult struct {
	Bill     models.ClusterBill `json:"bill" yaml:"bill"`
	RateCard models.RateCard    `json:"rateCard" yaml:"rateCard"`
}

type jsonHandler struct {
	w io.Writer
}

func (h *jsonHandler) Format() string { return "json" }

func (h *jsonHandler) encode(v interface{}) error {
	encoder := json.NewEncoder(h.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (h *jsonHandler) DisplayBreakdown(namespace string, usage models.ResourceUsage, breakdown models.CostBreakdown, card models.RateCard) error {
	return h.encode(breakdownResult{Namespace: namespace, Usage: usage, Breakdown: breakdown, RateCard: card})
}

func (h *jsonHandler) DisplayComparison(comparison models.NamespaceCostComparison) error {
	return h.encode(comparisonResult{Namespaces: comparison, Total: comparison.Total()})
}

func (h *jsonHandler) DisplayBill(bill models.ClusterBill, card models.RateCard) error {
	return h.encode(billResult{Bill: bill, RateCard: card})
}

func (h *jsonHandler) DisplayWaste(report waste.Report) error {
	return h.encode(report)
}

func (h *jsonHandler) DisplayHistory(snapshots []*models.CostSnapshot) error {
	return h.encode(snapshots)
}

func (h *jsonHandler) DisplayTrend(points []models.TrendPoint) error {
	return h.encode(points)
}

type yamlHandler struct {
	w io.Writer
}

func (h *yamlHandler) Format() string { return "yaml" }

func (h *yamlHandler) encode(v interface{}) error {
	encoder := yaml.NewEncoder(h.w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(v)
}

func (h *yamlHandler) DisplayBreakdown(namespace string, usage models.ResourceUsage, breakdown models.CostBreakdown, card models.RateCard) error {
	return h.encode(breakdownResult{Namespace: namespace, Usage: usage, Breakdown: breakdown, RateCard: card})
}

func (h *yamlHandler) DisplayComparison(comparison models.NamespaceCostComparison) error {
	return h.encode(comparisonResult{Namespaces: comparison, Total: comparison.Total()})
}

func (h *yamlHandler) DisplayBill(bill models.ClusterBill, card models.RateCard) error {
	return h.encode(billResult{Bill: bill, RateCard: card})
}

func (h *yamlHandler) DisplayWaste(report waste.Report) error {
	return h.encode(report)
}

func (h *yamlHandler) DisplayHistory(snapshots []*models.CostSnapshot) error {
	return h.encode(snapshots)
}

func (h *yamlHandler) DisplayTrend(points []models.TrendPoint) error {
	return h.encode(points)
}
