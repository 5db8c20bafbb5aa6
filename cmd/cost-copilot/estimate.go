package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costpilot/cost-copilot/pkg/collector"
	"github.com/costpilot/cost-copilot/pkg/estimator"
	"github.com/costpilot/cost-copilot/pkg/k8s"
	"github.com/costpilot/cost-copilot/pkg/logging"
	"github.com/costpilot/cost-copilot/pkg/models"
)

func newEstimateCmd() *cobra.Command {
	var (
		namespace       string
		cpu             float64
		memory          float64
		storage         float64
		pods            int
		showUtilization bool
		save            bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the monthly cost of a namespace",
		Long: `Estimate monthly cost from a namespace's resource requests, collected
live from the cluster, or from explicit figures given with --cpu,
--memory, --storage and --pods (no cluster access needed).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			explicit := cmd.Flags().Changed("cpu") || cmd.Flags().Changed("memory") ||
				cmd.Flags().Changed("storage") || cmd.Flags().Changed("pods")

			var usage models.ResourceUsage
			var c *collector.Collector
			var clientset k8s.Interface

			if explicit {
				usage = models.ResourceUsage{
					CPUCores:  cpu,
					MemoryGB:  memory,
					StorageGB: storage,
					PodCount:  pods,
				}
			} else {
				if namespace == "" {
					return fmt.Errorf("either --namespace or explicit --cpu/--memory figures are required")
				}
				var err error
				c, clientset, err = newCollector()
				if err != nil {
					return err
				}
				source := newUsageSource(ctx, c)
				usage, err = source.NamespaceUsage(ctx, namespace)
				if err != nil {
					return fmt.Errorf("failed to collect usage for %s: %w", namespace, err)
				}
			}

			card, err := resolveCard(ctx, clientset)
			if err != nil {
				return err
			}

			breakdown, err := estimator.EstimateCostHours(usage, card, cfg.HoursPerMonth)
			if err != nil {
				return err
			}

			handler, err := newOutputHandler()
			if err != nil {
				return err
			}
			if err := handler.DisplayBreakdown(namespace, usage, breakdown, card); err != nil {
				return err
			}

			if showUtilization && c != nil {
				displayUtilization(cmd, c, namespace, usage)
			}

			if save {
				return saveSnapshot(ctx, &models.CostSnapshot{
					ClusterName: cfg.ClusterName,
					Namespace:   namespace,
					Tier:        card.Tier,
					Region:      card.Region,
					Currency:    card.Currency,
					Usage:       usage,
					Breakdown:   breakdown,
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace to estimate")
	cmd.Flags().Float64Var(&cpu, "cpu", 0, "Requested CPU cores (skip cluster collection)")
	cmd.Flags().Float64Var(&memory, "memory", 0, "Requested memory in GB")
	cmd.Flags().Float64Var(&storage, "storage", 0, "Requested storage in GB")
	cmd.Flags().IntVar(&pods, "pods", 0, "Pod count")
	cmd.Flags().BoolVar(&showUtilization, "show-utilization", false, "Show actual usage vs requests (needs metrics-server)")
	cmd.Flags().BoolVar(&save, "save", false, "Save the estimate as a snapshot (needs DATABASE_URL)")

	return cmd
}

func displayUtilization(cmd *cobra.Command, c *collector.Collector, namespace string, usage models.ResourceUsage) {
	cpuUsed, memUsed, err := c.ActualUsage(cmd.Context(), namespace)
	if err != nil {
		if errors.Is(err, collector.ErrMetricsUnavailable) {
			logging.Warn("utilization unavailable", map[string]interface{}{"error": err.Error()})
			return
		}
		logging.Error("failed to read utilization", err)
		return
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Utilization: %.2f / %.2f cores (%s), %.2f / %.2f GB memory (%s)\n",
		cpuUsed, usage.CPUCores, percentOf(cpuUsed, usage.CPUCores),
		memUsed, usage.MemoryGB, percentOf(memUsed, usage.MemoryGB))
}

func percentOf(used, requested float64) string {
	if requested <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", used/requested*100)
}
