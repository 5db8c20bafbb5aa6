package main

import (
	"github.com/spf13/cobra"

	"github.com/costpilot/cost-copilot/pkg/estimator"
	"github.com/costpilot/cost-copilot/pkg/models"
)

func newClusterCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Estimate the full cluster bill",
		Long: `Price the summed resource requests of every namespace, plus the
per-cluster management fee where the tier charges one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

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

			bill, err := estimator.BuildClusterBill(usages, card, cfg.HoursPerMonth)
			if err != nil {
				return err
			}

			handler, err := newOutputHandler()
			if err != nil {
				return err
			}
			if err := handler.DisplayBill(bill, card); err != nil {
				return err
			}

			if save {
				return saveSnapshot(ctx, &models.CostSnapshot{
					ClusterName: cfg.ClusterName,
					Tier:        card.Tier,
					Region:      card.Region,
					Currency:    card.Currency,
					Usage:       bill.Usage,
					Breakdown:   bill.Breakdown,
				})
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the bill as a snapshot (needs DATABASE_URL)")

	return cmd
}
