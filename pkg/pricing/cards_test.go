package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/costpilot/cost-copilot/pkg/models"
)

func TestCardForTier(t *testing.T) {
	tests := []struct {
		name        string
		tier        models.Tier
		class       models.StorageClass
		wantCPU     float64
		wantMemory  float64
		wantStorage float64
		wantFee     float64
	}{
		{
			name:        "autopilot default storage",
			tier:        models.TierAutopilot,
			class:       "",
			wantCPU:     0.042588,
			wantMemory:  0.005722,
			wantStorage: 0.04,
			wantFee:     0,
		},
		{
			name:        "standard default storage",
			tier:        models.TierStandard,
			class:       "",
			wantCPU:     0.031611,
			wantMemory:  0.004237,
			wantStorage: 0.04,
			wantFee:     0.10,
		},
		{
			name:        "standard ssd",
			tier:        models.TierStandard,
			class:       models.StoragePDSSD,
			wantCPU:     0.031611,
			wantMemory:  0.004237,
			wantStorage: 0.17,
			wantFee:     0.10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := CardForTier(tt.tier, tt.class)
			if err != nil {
				t.Fatalf("CardForTier failed: %v", err)
			}

			if card.CPUPerCoreHour != tt.wantCPU {
				t.Errorf("Expected cpu rate %v, got %v", tt.wantCPU, card.CPUPerCoreHour)
			}
			if card.MemoryPerGBHour != tt.wantMemory {
				t.Errorf("Expected memory rate %v, got %v", tt.wantMemory, card.MemoryPerGBHour)
			}
			if card.StoragePerGBMonth != tt.wantStorage {
				t.Errorf("Expected storage rate %v, got %v", tt.wantStorage, card.StoragePerGBMonth)
			}
			if card.ManagementFeePerHour != tt.wantFee {
				t.Errorf("Expected management fee %v, got %v", tt.wantFee, card.ManagementFeePerHour)
			}
			if card.Currency != "USD" {
				t.Errorf("Expected USD currency, got %s", card.Currency)
			}
		})
	}
}

func TestCardForTierUnknown(t *testing.T) {
	if _, err := CardForTier(models.Tier("spot"), ""); err == nil {
		t.Error("Expected error for unknown tier")
	}
	if _, err := CardForTier(models.TierAutopilot, models.StorageClass("tape")); err == nil {
		t.Error("Expected error for unknown storage class")
	}
}

func TestParseTier(t *testing.T) {
	if tier, err := ParseTier("autopilot"); err != nil || tier != models.TierAutopilot {
		t.Errorf("Expected autopilot, got %v, %v", tier, err)
	}
	if tier, err := ParseTier("standard"); err != nil || tier != models.TierStandard {
		t.Errorf("Expected standard, got %v, %v", tier, err)
	}
	if _, err := ParseTier("premium"); err == nil {
		t.Error("Expected error for unknown tier name")
	}
}

func TestResolveDefaults(t *testing.T) {
	card, err := Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if card.Tier != models.TierAutopilot {
		t.Errorf("Expected autopilot default, got %s", card.Tier)
	}
	if card.CPUPerCoreHour != AutopilotCPUPerCoreHour {
		t.Errorf("Expected autopilot cpu rate, got %v", card.CPUPerCoreHour)
	}
	if card.StorageClass != models.StoragePDStandard {
		t.Errorf("Expected pd-standard default, got %s", card.StorageClass)
	}
}

func TestResolveOverrides(t *testing.T) {
	card, err := Resolve(Options{
		Tier:              "standard",
		CPUPerCoreHour:    0.02,
		MemoryPerGBHour:   0.003,
		StoragePerGBMonth: 0.05,
		Currency:          "EUR",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if card.CPUPerCoreHour != 0.02 || card.MemoryPerGBHour != 0.003 || card.StoragePerGBMonth != 0.05 {
		t.Errorf("Expected overrides applied, got %+v", card)
	}
	if card.Currency != "EUR" {
		t.Errorf("Expected EUR, got %s", card.Currency)
	}
	// Overrides keep the tier's fee.
	if card.ManagementFeePerHour != StandardManagementFeePerHour {
		t.Errorf("Expected standard fee kept, got %v", card.ManagementFeePerHour)
	}
}

func TestResolveBadTier(t *testing.T) {
	if _, err := Resolve(Options{Tier: "turbo"}); err == nil {
		t.Error("Expected error for unknown tier")
	}
}

func TestResolvePricingFileWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	content := []byte("cpuPerCoreHour: 0.01\nmemoryPerGBHour: 0.002\nstoragePerGBMonth: 0.03\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write pricing file: %v", err)
	}

	card, err := Resolve(Options{PricingFile: path, CPUPerCoreHour: 0.9})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if card.CPUPerCoreHour != 0.01 {
		t.Errorf("Expected file value 0.01 to win over override, got %v", card.CPUPerCoreHour)
	}
}
