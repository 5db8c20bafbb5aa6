package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costpilot/cost-copilot/pkg/models"
	"github.com/costpilot/cost-copilot/pkg/storage"
)

func openStore() (storage.Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set for history commands")
	}
	return storage.NewPostgresStore(cfg.DatabaseURL)
}

// saveSnapshot persists a snapshot when a database is configured. Used
// by estimate/cluster --save.
func saveSnapshot(ctx context.Context, snapshot *models.CostSnapshot) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveSnapshot(ctx, snapshot); err != nil {
		return err
	}
	fmt.Printf("Snapshot saved (ID: %s)\n", snapshot.ID)
	return nil
}

func newHistoryCmd() *cobra.Command {
	var (
		namespace string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved cost snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			snapshots, err := store.ListSnapshots(cmd.Context(), namespace, limit)
			if err != nil {
				return err
			}

			handler, err := newOutputHandler()
			if err != nil {
				return err
			}
			return handler.DisplayHistory(snapshots)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace (empty for cluster-wide snapshots)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of snapshots to show")

	return cmd
}

func newTrendCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show the daily cluster cost trend",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			points, err := store.ClusterTrend(cmd.Context(), cfg.ClusterName, days)
			if err != nil {
				return err
			}

			handler, err := newOutputHandler()
			if err != nil {
				return err
			}
			return handler.DisplayTrend(points)
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Days of history to aggregate")

	return cmd
}
