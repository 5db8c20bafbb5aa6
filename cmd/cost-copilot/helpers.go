package main

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/costpilot/cost-copilot/pkg/collector"
	"github.com/costpilot/cost-copilot/pkg/datasource"
	"github.com/costpilot/cost-copilot/pkg/k8s"
	"github.com/costpilot/cost-copilot/pkg/logging"
	"github.com/costpilot/cost-copilot/pkg/models"
	"github.com/costpilot/cost-copilot/pkg/output"
	"github.com/costpilot/cost-copilot/pkg/pricing"
)

func newOutputHandler() (output.Handler, error) {
	return output.New(cfg.OutputFormat, os.Stdout)
}

// newCollector builds the collector and its clientset. The metrics
// client is best-effort; utilization display degrades without it.
func newCollector() (*collector.Collector, k8s.Interface, error) {
	clientset, err := k8s.NewClientset(cfg.Kubeconfig)
	if err != nil {
		return nil, nil, err
	}

	metricsClient, err := k8s.NewMetricsClientset(cfg.Kubeconfig)
	if err != nil {
		logging.Debug("metrics client unavailable", map[string]interface{}{"error": err.Error()})
		metricsClient = nil
	}

	c := collector.New(clientset, metricsClient, collector.Options{Workers: cfg.CollectWorkers})
	return c, clientset, nil
}

// resolveCard picks the rate card for this run. When no tier is
// configured and a cluster is reachable, the tier and region are
// detected from node metadata; detection failure falls back to the
// Autopilot card with a warning rather than aborting the run.
func resolveCard(ctx context.Context, clientset k8s.Interface) (models.RateCard, error) {
	opts := pricing.Options{
		Tier:              cfg.Tier,
		StorageClass:      cfg.StorageClass,
		PricingFile:       cfg.PricingFile,
		CPUPerCoreHour:    cfg.CPUPerCoreHour,
		MemoryPerGBHour:   cfg.MemoryPerGBHour,
		StoragePerGBMonth: cfg.StoragePerGBMonth,
		Currency:          cfg.Currency,
	}

	var detectedRegion string
	if opts.PricingFile == "" && opts.Tier == "" && clientset != nil {
		tier, region, err := pricing.DetectCluster(ctx, clientset)
		if err != nil {
			logging.Warn("tier detection failed, assuming autopilot", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			opts.Tier = string(tier)
			detectedRegion = region
			logging.Info("detected cluster tier", map[string]interface{}{
				"tier": string(tier), "region": region,
			})
		}
	}

	card, err := pricing.Resolve(opts)
	if err != nil {
		return models.RateCard{}, err
	}
	if detectedRegion != "" {
		card.Region = detectedRegion
	}
	return card, nil
}

func newUsageSource(ctx context.Context, c *collector.Collector) datasource.UsageSource {
	return datasource.Select(ctx, datasource.Config{PrometheusURL: cfg.PrometheusURL}, c)
}

func stderrIsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// collectAll gathers usage for every namespace, with a progress bar on
// a terminal. The collector path runs namespaces concurrently; other
// sources are iterated.
func collectAll(ctx context.Context, source datasource.UsageSource, showProgress bool) (map[string]models.ResourceUsage, error) {
	names, err := source.ListNamespaces(ctx)
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if showProgress && stderrIsTerminal() {
		bar = progressbar.NewOptions(len(names),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Collecting namespaces..."),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(20),
			progressbar.OptionOnCompletion(func() { os.Stderr.WriteString("\n") }),
		)
	}
	progress := func(string) {
		if bar != nil {
			bar.Add(1)
		}
	}

	if cluster, ok := source.(*datasource.ClusterSource); ok {
		return cluster.ClusterUsageWithProgress(ctx, progress)
	}

	usages := make(map[string]models.ResourceUsage, len(names))
	for _, name := range names {
		usage, err := source.NamespaceUsage(ctx, name)
		if err != nil {
			return nil, err
		}
		usages[name] = usage
		progress(name)
	}
	return usages, nil
}
