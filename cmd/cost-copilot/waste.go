package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costpilot/cost-copilot/pkg/waste"
)

func newWasteCmd() *cobra.Command {
	var inventoryPath string

	cmd := &cobra.Command{
		Use:   "waste",
		Short: "Price orphaned resources from an inventory file",
		Long: `Price unattached disks and idle addresses listed in a YAML inventory
file. The inventory is supplied, not discovered; export it from your
cloud project first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inventoryPath == "" {
				return fmt.Errorf("--inventory is required")
			}

			inventory, err := waste.LoadInventory(inventoryPath)
			if err != nil {
				return err
			}

			report, err := waste.Analyze(inventory)
			if err != nil {
				return err
			}

			handler, err := newOutputHandler()
			if err != nil {
				return err
			}
			return handler.DisplayWaste(report)
		},
	}

	cmd.Flags().StringVar(&inventoryPath, "inventory", "", "Inventory YAML file")

	return cmd
}
