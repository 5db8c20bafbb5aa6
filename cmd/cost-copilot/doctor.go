package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/costpilot/cost-copilot/pkg/datasource"
	"github.com/costpilot/cost-copilot/pkg/pricing"
	"github.com/costpilot/cost-copilot/pkg/storage"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("ok")
	failMark = color.New(color.FgRed).Sprint("fail")
	skipMark = color.New(color.FgYellow).Sprint("skip")
)

// newDoctorCmd checks every external collaborator the tool can be
// wired to and reports what works.
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity to cluster, Prometheus and database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			failed := false

			check := func(name string, err error) {
				if err != nil {
					failed = true
					fmt.Fprintf(out, "%-24s %s  %v\n", name, failMark, err)
					return
				}
				fmt.Fprintf(out, "%-24s %s\n", name, okMark)
			}
			skip := func(name, reason string) {
				fmt.Fprintf(out, "%-24s %s  %s\n", name, skipMark, reason)
			}

			c, clientset, err := newCollector()
			check("kubernetes api", func() error {
				if err != nil {
					return err
				}
				return c.Ping(ctx)
			}())

			if err == nil {
				check("tier detection", func() error {
					_, _, detectErr := pricing.DetectCluster(ctx, clientset)
					return detectErr
				}())

				check("metrics-server", func() error {
					_, _, metricsErr := c.ActualUsage(ctx, "kube-system")
					return metricsErr
				}())
			} else {
				skip("tier detection", "no cluster access")
				skip("metrics-server", "no cluster access")
			}

			if cfg.PrometheusURL != "" {
				check("prometheus", checkPrometheus(ctx, cfg.PrometheusURL))
			} else {
				skip("prometheus", "PROMETHEUS_URL not set")
			}

			if cfg.DatabaseURL != "" {
				check("database", checkDatabase(ctx, cfg.DatabaseURL))
			} else {
				skip("database", "DATABASE_URL not set")
			}

			if failed {
				return fmt.Errorf("some checks failed")
			}
			return nil
		},
	}
}

func checkPrometheus(ctx context.Context, url string) error {
	source, err := datasource.NewPrometheusSource(url)
	if err != nil {
		return err
	}
	if !source.IsAvailable(ctx) {
		return fmt.Errorf("server at %s does not answer queries", url)
	}
	return nil
}

func checkDatabase(ctx context.Context, dsn string) error {
	store, err := storage.NewPostgresStore(dsn)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Ping(ctx)
}
