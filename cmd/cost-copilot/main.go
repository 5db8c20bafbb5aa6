// cost-copilot estimates Kubernetes namespace and cluster costs from
// resource requests and a GKE rate card.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/costpilot/cost-copilot/pkg/config"
	"github.com/costpilot/cost-copilot/pkg/logging"
)

var (
	cfg *config.Config

	flagKubeconfig   string
	flagTier         string
	flagStorageClass string
	flagPricingFile  string
	flagHours        float64
	flagOutput       string
	flagVerbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cost-copilot",
		Short: "Kubernetes cost estimation from resource requests",
		Long: `cost-copilot prices namespace and cluster resource requests against
GKE rate cards: per-namespace breakdowns, cross-namespace comparison,
cluster bills with management fees, waste analysis and cost reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.NewConfig()

			// Flags override environment.
			if flagKubeconfig != "" {
				cfg.Kubeconfig = flagKubeconfig
			}
			if cmd.Flags().Changed("tier") {
				cfg.Tier = flagTier
			}
			if cmd.Flags().Changed("storage-class") {
				cfg.StorageClass = flagStorageClass
			}
			if cmd.Flags().Changed("pricing-file") {
				cfg.PricingFile = flagPricingFile
			}
			if cmd.Flags().Changed("hours") {
				cfg.HoursPerMonth = flagHours
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputFormat = flagOutput
			}
			if flagVerbose {
				cfg.LogLevel = "debug"
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			format := logging.Text
			if cfg.LogFormat == "json" {
				format = logging.JSON
			}
			logging.Configure(logging.Config{
				Level:  logging.ParseLevel(cfg.LogLevel),
				Format: format,
			})
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagKubeconfig, "kubeconfig", "", "Path to kubeconfig (default: KUBECONFIG, then ~/.kube/config)")
	pf.StringVar(&flagTier, "tier", "", "Cluster tier: autopilot or standard (default: auto-detect)")
	pf.StringVar(&flagStorageClass, "storage-class", "", "Disk class for storage pricing: pd-standard or pd-ssd")
	pf.StringVar(&flagPricingFile, "pricing-file", "", "Rate card file (YAML/JSON), overrides builtin cards")
	pf.Float64Var(&flagHours, "hours", 730, "Billing hours per month")
	pf.StringVarP(&flagOutput, "output", "o", "text", "Output format: text, json, yaml")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newEstimateCmd(),
		newCompareCmd(),
		newClusterCmd(),
		newWasteCmd(),
		newReportCmd(),
		newHistoryCmd(),
		newTrendCmd(),
		newServeCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
