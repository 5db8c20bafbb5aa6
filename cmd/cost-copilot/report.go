package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/costpilot/cost-copilot/pkg/advisor"
	"github.com/costpilot/cost-copilot/pkg/estimator"
	"github.com/costpilot/cost-copilot/pkg/logging"
	"github.com/costpilot/cost-copilot/pkg/reporter"
	"github.com/costpilot/cost-copilot/pkg/waste"
)

func newReportCmd() *cobra.Command {
	var (
		format        string
		outPath       string
		inventoryPath string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a full cost report",
		Long: `Collect the whole cluster, build the bill, comparison and insights,
and write a Markdown, CSV or HTML report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			reportFormat, ok := reporter.ParseFormat(format)
			if !ok {
				return fmt.Errorf("unknown report format %q (expected markdown, csv or html)", format)
			}

			c, clientset, err := newCollector()
			if err != nil {
				return err
			}
			source := newUsageSource(ctx, c)

			usages, err := collectAll(ctx, source, true)
			if err != nil {
				return err
			}

			card, err := resolveCard(ctx, clientset)
			if err != nil {
				return err
			}

			comparison, err := estimator.CompareNamespacesHours(usages, card, cfg.HoursPerMonth)
			if err != nil {
				return err
			}
			bill, err := estimator.BuildClusterBill(usages, card, cfg.HoursPerMonth)
			if err != nil {
				return err
			}

			var wasteReport *waste.Report
			if inventoryPath != "" {
				inventory, err := waste.LoadInventory(inventoryPath)
				if err != nil {
					return err
				}
				analyzed, err := waste.Analyze(inventory)
				if err != nil {
					return err
				}
				wasteReport = &analyzed
			}

			report := &reporter.Report{
				ClusterName: cfg.ClusterName,
				Region:      card.Region,
				Tier:        card.Tier,
				Currency:    card.Currency,
				GeneratedAt: time.Now(),
				Comparison:  comparison,
				Bill:        bill,
				Insights:    advisor.Advise(comparison, bill, wasteReport),
				Waste:       wasteReport,
			}

			path, err := writeReport(report, reportFormat, outPath)
			if err != nil {
				return err
			}

			logging.Info("report generated", map[string]interface{}{"path": path})
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "Report format: markdown, csv, html")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: reports/cost-report-<timestamp>.<ext>)")
	cmd.Flags().StringVar(&inventoryPath, "inventory", "", "Waste inventory YAML file to include")

	return cmd
}

func writeReport(report *reporter.Report, format reporter.Format, outPath string) (string, error) {
	if outPath == "" {
		if err := os.MkdirAll("reports", 0755); err != nil {
			return "", fmt.Errorf("failed to create reports directory: %w", err)
		}
		timestamp := report.GeneratedAt.Format("20060102-150405")
		outPath = filepath.Join("reports", "cost-report-"+timestamp+format.Ext())
	}

	file, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case reporter.FormatMarkdown:
		err = reporter.GenerateMarkdown(report, file)
	case reporter.FormatCSV:
		err = reporter.GenerateCSV(report, file)
	default:
		err = reporter.GenerateHTML(report, file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return outPath, nil
}
