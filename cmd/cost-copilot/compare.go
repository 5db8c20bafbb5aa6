package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/costpilot/cost-copilot/pkg/estimator"
	"github.com/costpilot/cost-copilot/pkg/models"
)

func newCompareCmd() *cobra.Command {
	var (
		namespaces string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank namespaces by monthly cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !all && namespaces == "" {
				return fmt.Errorf("either --namespaces or --all must be specified")
			}

			c, clientset, err := newCollector()
			if err != nil {
				return err
			}
			source := newUsageSource(ctx, c)

			var usages map[string]models.ResourceUsage
			if all {
				usages, err = collectAll(ctx, source, true)
				if err != nil {
					return err
				}
			} else {
				usages = make(map[string]models.ResourceUsage)
				for _, name := range strings.Split(namespaces, ",") {
					name = strings.TrimSpace(name)
					if name == "" {
						continue
					}
					usage, err := source.NamespaceUsage(ctx, name)
					if err != nil {
						return fmt.Errorf("failed to collect usage for %s: %w", name, err)
					}
					usages[name] = usage
				}
			}

			card, err := resolveCard(ctx, clientset)
			if err != nil {
				return err
			}

			comparison, err := estimator.CompareNamespacesHours(usages, card, cfg.HoursPerMonth)
			if err != nil {
				return err
			}

			handler, err := newOutputHandler()
			if err != nil {
				return err
			}
			return handler.DisplayComparison(comparison)
		},
	}

	cmd.Flags().StringVar(&namespaces, "namespaces", "", "Comma-separated namespaces to compare")
	cmd.Flags().BoolVarP(&all, "all", "A", false, "Compare all namespaces in the cluster")

	return cmd
}
