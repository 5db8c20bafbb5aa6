// Package estimator converts aggregate resource requests into monthly
// dollar costs. Every function is pure: no state, no side effects,
// safe for concurrent use. Compute and memory are priced per hour over
// a fixed hours-per-month convention; storage is priced per GB-month
// and never multiplied by hours.
package estimator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/costpilot/cost-copilot/pkg/models"
)

// DefaultHoursPerMonth is the billing convention used when no explicit
// hours value is given. 730 = 365 * 24 / 12.
const DefaultHoursPerMonth = 730.0

// ErrInvalidInput is returned for negative usage quantities,
// non-positive compute or memory prices, negative storage prices or
// fees, non-positive hours, and empty comparison input.
var ErrInvalidInput = errors.New("invalid input")

// EstimateCost prices usage against card using DefaultHoursPerMonth.
func EstimateCost(usage models.ResourceUsage, card models.RateCard) (models.CostBreakdown, error) {
	return EstimateCostHours(usage, card, DefaultHoursPerMonth)
}

// EstimateCostHours prices usage against card over an explicit
// hours-per-month value. Validation is fail-fast: no partial result is
// ever produced.
func EstimateCostHours(usage models.ResourceUsage, card models.RateCard, hoursPerMonth float64) (models.CostBreakdown, error) {
	if err := validateUsage(usage); err != nil {
		return models.CostBreakdown{}, err
	}
	if err := ValidateCard(card); err != nil {
		return models.CostBreakdown{}, err
	}
	if hoursPerMonth <= 0 {
		return models.CostBreakdown{}, fmt.Errorf("hours per month must be positive, got %g: %w", hoursPerMonth, ErrInvalidInput)
	}

	compute := usage.CPUCores * card.CPUPerCoreHour * hoursPerMonth
	memory := usage.MemoryGB * card.MemoryPerGBHour * hoursPerMonth
	storage := usage.StorageGB * card.StoragePerGBMonth

	return models.CostBreakdown{
		ComputeCost:      compute,
		MemoryCost:       memory,
		StorageCost:      storage,
		TotalMonthlyCost: compute + memory + storage,
		Details: map[string]float64{
			models.DetailCompute: compute,
			models.DetailMemory:  memory,
			models.DetailStorage: storage,
		},
	}, nil
}

// CompareNamespaces prices each namespace independently and ranks the
// results by monthly cost, most expensive first. Ties are broken by
// namespace name ascending so the order is deterministic. An empty
// input map is an error: callers must decide explicitly what "nothing
// to compare" means for them.
func CompareNamespaces(usages map[string]models.ResourceUsage, card models.RateCard) (models.NamespaceCostComparison, error) {
	return CompareNamespacesHours(usages, card, DefaultHoursPerMonth)
}

// CompareNamespacesHours is CompareNamespaces with explicit hours.
func CompareNamespacesHours(usages map[string]models.ResourceUsage, card models.RateCard, hoursPerMonth float64) (models.NamespaceCostComparison, error) {
	if len(usages) == 0 {
		return nil, fmt.Errorf("no namespaces to compare: %w", ErrInvalidInput)
	}

	comparison := make(models.NamespaceCostComparison, 0, len(usages))
	for _, name := range sortedNames(usages) {
		breakdown, err := EstimateCostHours(usages[name], card, hoursPerMonth)
		if err != nil {
			return nil, fmt.Errorf("namespace %q: %w", name, err)
		}
		comparison = append(comparison, models.NamespaceCost{
			Namespace: name,
			Breakdown: breakdown,
		})
	}

	// Rank on unrounded totals; display rounding must never flip an
	// order decided here.
	sort.SliceStable(comparison, func(i, j int) bool {
		if comparison[i].Breakdown.TotalMonthlyCost != comparison[j].Breakdown.TotalMonthlyCost {
			return comparison[i].Breakdown.TotalMonthlyCost > comparison[j].Breakdown.TotalMonthlyCost
		}
		return comparison[i].Namespace < comparison[j].Namespace
	})

	return comparison, nil
}

// EstimateClusterCost prices the elementwise sum of all namespace
// usages. For a linear rate card this equals the sum of per-namespace
// estimates; pricing the summed usage keeps a single rounding point.
// Pod counts are summed for display but never priced. An empty map is
// a valid empty cluster and costs zero.
func EstimateClusterCost(usages map[string]models.ResourceUsage, card models.RateCard) (models.CostBreakdown, error) {
	return EstimateClusterCostHours(usages, card, DefaultHoursPerMonth)
}

// EstimateClusterCostHours is EstimateClusterCost with explicit hours.
func EstimateClusterCostHours(usages map[string]models.ResourceUsage, card models.RateCard, hoursPerMonth float64) (models.CostBreakdown, error) {
	// Validate every entry before summing. A negative quantity must
	// fail fast even when another namespace would mask it in the sum.
	for _, name := range sortedNames(usages) {
		if err := validateUsage(usages[name]); err != nil {
			return models.CostBreakdown{}, fmt.Errorf("namespace %q: %w", name, err)
		}
	}
	return EstimateCostHours(models.SumUsages(usages), card, hoursPerMonth)
}

// ValidateCard checks rate card prices: compute and memory rates must
// be positive, storage and management fee must not be negative. A zero
// storage rate means storage pricing is absent.
func ValidateCard(card models.RateCard) error {
	if card.CPUPerCoreHour <= 0 {
		return fmt.Errorf("cpu price per core hour must be positive, got %g: %w", card.CPUPerCoreHour, ErrInvalidInput)
	}
	if card.MemoryPerGBHour <= 0 {
		return fmt.Errorf("memory price per GB hour must be positive, got %g: %w", card.MemoryPerGBHour, ErrInvalidInput)
	}
	if card.StoragePerGBMonth < 0 {
		return fmt.Errorf("storage price per GB month must not be negative, got %g: %w", card.StoragePerGBMonth, ErrInvalidInput)
	}
	if card.ManagementFeePerHour < 0 {
		return fmt.Errorf("management fee per hour must not be negative, got %g: %w", card.ManagementFeePerHour, ErrInvalidInput)
	}
	return nil
}

func validateUsage(usage models.ResourceUsage) error {
	if usage.CPUCores < 0 {
		return fmt.Errorf("cpu cores must not be negative, got %g: %w", usage.CPUCores, ErrInvalidInput)
	}
	if usage.MemoryGB < 0 {
		return fmt.Errorf("memory GB must not be negative, got %g: %w", usage.MemoryGB, ErrInvalidInput)
	}
	if usage.StorageGB < 0 {
		return fmt.Errorf("storage GB must not be negative, got %g: %w", usage.StorageGB, ErrInvalidInput)
	}
	if usage.PodCount < 0 {
		return fmt.Errorf("pod count must not be negative, got %d: %w", usage.PodCount, ErrInvalidInput)
	}
	return nil
}

func sortedNames(usages map[string]models.ResourceUsage) []string {
	names := make([]string, 0, len(usages))
	for name := range usages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
