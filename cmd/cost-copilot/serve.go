package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/costpilot/cost-copilot/pkg/server"
)

func newServeCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cost API for the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c, clientset, err := newCollector()
			if err != nil {
				return err
			}
			source := newUsageSource(ctx, c)

			card, err := resolveCard(ctx, clientset)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("listen") {
				cfg.ListenAddr = listenAddr
			}

			srv := server.New(server.Config{
				ListenAddr:     cfg.ListenAddr,
				CacheTTL:       cfg.CacheTTL,
				RateLimit:      cfg.RateLimit,
				RateLimitBurst: cfg.RateLimitBurst,
				HoursPerMonth:  cfg.HoursPerMonth,
			}, card, source)

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", ":8080", "Listen address")

	return cmd
}
