package advisor

import (
	"math"
	"strings"
	"testing"

	"github.com/costpilot/cost-copilot/pkg/models"
	"github.com/costpilot/cost-copilot/pkg/waste"
)

func breakdown(compute, memory, storage float64) models.CostBreakdown {
	return models.CostBreakdown{
		ComputeCost:      compute,
		MemoryCost:       memory,
		StorageCost:      storage,
		TotalMonthlyCost: compute + memory + storage,
	}
}

func findInsight(t *testing.T, insights []Insight, titlePart string) Insight {
	t.Helper()
	for _, insight := range insights {
		if strings.Contains(insight.Title, titlePart) {
			return insight
		}
	}
	t.Fatalf("No insight with title containing %q in %+v", titlePart, insights)
	return Insight{}
}

func TestAdviseConcentration(t *testing.T) {
	comparison := models.NamespaceCostComparison{
		{Namespace: "whale", Breakdown: breakdown(80, 10, 0)},
		{Namespace: "minnow", Breakdown: breakdown(8, 2, 0)},
	}
	bill := models.ClusterBill{
		Breakdown: breakdown(88, 12, 0),
		Tier:      models.TierAutopilot,
	}

	insights := Advise(comparison, bill, nil)
	insight := findInsight(t, insights, "concentrated")
	if !strings.Contains(insight.Detail, "whale") {
		t.Errorf("Expected top namespace named in detail, got %q", insight.Detail)
	}
}

func TestAdviseNoConcentrationBelowThreshold(t *testing.T) {
	comparison := models.NamespaceCostComparison{
		{Namespace: "a", Breakdown: breakdown(30, 0, 0)},
		{Namespace: "b", Breakdown: breakdown(25, 0, 0)},
		{Namespace: "c", Breakdown: breakdown(25, 0, 0)},
		{Namespace: "d", Breakdown: breakdown(20, 0, 0)},
	}
	bill := models.ClusterBill{
		Breakdown: breakdown(100, 0, 0),
		Tier:      models.TierAutopilot,
	}

	for _, insight := range Advise(comparison, bill, nil) {
		if strings.Contains(insight.Title, "concentrated") {
			t.Errorf("Unexpected concentration insight at 30%% share: %+v", insight)
		}
	}
}

func TestAdviseStandardTierDiscounts(t *testing.T) {
	bill := models.ClusterBill{
		Breakdown: breakdown(100, 40, 10),
		Tier:      models.TierStandard,
	}

	insights := Advise(nil, bill, nil)
	insight := findInsight(t, insights, "committed use")
	// 25% of compute+memory, storage excluded.
	if math.Abs(insight.EstimatedMonthlySavings-35) > 1e-9 {
		t.Errorf("Expected 35.00 estimated savings, got %g", insight.EstimatedMonthlySavings)
	}
}

func TestAdviseAutopilotSkipsDiscounts(t *testing.T) {
	bill := models.ClusterBill{
		Breakdown: breakdown(100, 40, 0),
		Tier:      models.TierAutopilot,
	}

	for _, insight := range Advise(nil, bill, nil) {
		if strings.Contains(insight.Title, "committed use") {
			t.Errorf("Unexpected discount insight for Autopilot: %+v", insight)
		}
	}
}

func TestAdviseWasteCleanup(t *testing.T) {
	wasteReport := &waste.Report{
		Lines:      []waste.Line{{Resource: "disk", Name: "old", MinMonthly: 4, MaxMonthly: 17}},
		MinMonthly: 4,
		MaxMonthly: 17,
	}
	bill := models.ClusterBill{Breakdown: breakdown(10, 5, 0), Tier: models.TierAutopilot}

	insights := Advise(nil, bill, wasteReport)
	insight := findInsight(t, insights, "orphaned")
	if insight.EstimatedMonthlySavings != 4 {
		t.Errorf("Expected min waste 4 as savings, got %g", insight.EstimatedMonthlySavings)
	}
}

func TestAdvisePerPodRightSizing(t *testing.T) {
	bill := models.ClusterBill{
		Breakdown:     breakdown(90, 10, 0),
		Tier:          models.TierAutopilot,
		PerPodAverage: 50,
	}

	insights := Advise(nil, bill, nil)
	insight := findInsight(t, insights, "per-pod")
	if math.Abs(insight.EstimatedMonthlySavings-25) > 1e-9 {
		t.Errorf("Expected 25.00 savings (25%% of 100), got %g", insight.EstimatedMonthlySavings)
	}
}

func TestAdviseDeterministic(t *testing.T) {
	comparison := models.NamespaceCostComparison{
		{Namespace: "whale", Breakdown: breakdown(90, 0, 5)},
	}
	bill := models.ClusterBill{
		Breakdown:     breakdown(90, 0, 5),
		Tier:          models.TierStandard,
		PerPodAverage: 47.5,
	}
	wasteReport := &waste.Report{
		Lines:      []waste.Line{{Resource: "address", Name: "ip", MinMonthly: 3.5, MaxMonthly: 3.5}},
		MinMonthly: 3.5,
		MaxMonthly: 3.5,
	}

	first := Advise(comparison, bill, wasteReport)
	second := Advise(comparison, bill, wasteReport)
	if len(first) != len(second) {
		t.Fatalf("Non-deterministic insight count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Insight %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestAdviseQuietCluster(t *testing.T) {
	bill := models.ClusterBill{
		Breakdown: breakdown(5, 2, 0),
		Tier:      models.TierAutopilot,
	}
	if insights := Advise(nil, bill, nil); len(insights) != 0 {
		t.Errorf("Expected no insights for a small autopilot cluster, got %+v", insights)
	}
}
