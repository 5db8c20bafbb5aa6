// Package output formats results for the CLI: a colorized text view
// for humans, JSON and YAML for machines. Results go to the writer
// (normally stdout); logs stay on stderr.
package output

import (
	"fmt"
	"io"

	"github.com/costpilot/cost-copilot/pkg/models"
	"github.com/costpilot/cost-copilot/pkg/waste"
)

// Handler defines the interface for result formatting.
type Handler interface {
	DisplayBreakdown(namespace string, usage models.ResourceUsage, breakdown models.CostBreakdown, card models.RateCard) error
	DisplayComparison(comparison models.NamespaceCostComparison) error
	DisplayBill(bill models.ClusterBill, card models.RateCard) error
	DisplayWaste(report waste.Report) error
	DisplayHistory(snapshots []*models.CostSnapshot) error
	DisplayTrend(points []models.TrendPoint) error
	Format() string
}

// New creates a handler for a format name: text, json or yaml.
func New(format string, w io.Writer) (Handler, error) {
	switch format {
	case "text", "":
		return &textHandler{w: w}, nil
	case "json":
		return &jsonHandler{w: w}, nil
	case "yaml":
		return &yamlHandler{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
	}
}
