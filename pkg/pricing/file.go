package pricing

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/costpilot/cost-copilot/pkg/estimator"
	"github.com/costpilot/cost-copilot/pkg/models"
)

// LoadRateCardFile reads a rate card from a YAML or JSON file. The
// file is authoritative: builtin cards and overrides do not apply on
// top of it. Compute and memory rates are required; everything else
// defaults.
func LoadRateCardFile(path string) (models.RateCard, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("currency", "USD")
	v.SetDefault("region", DefaultRegion)

	if err := v.ReadInConfig(); err != nil {
		return models.RateCard{}, fmt.Errorf("failed to read pricing file %s: %w", path, err)
	}

	card := models.RateCard{
		CPUPerCoreHour:       v.GetFloat64("cpuPerCoreHour"),
		MemoryPerGBHour:      v.GetFloat64("memoryPerGBHour"),
		StoragePerGBMonth:    v.GetFloat64("storagePerGBMonth"),
		ManagementFeePerHour: v.GetFloat64("managementFeePerHour"),
		Currency:             v.GetString("currency"),
		Tier:                 models.Tier(v.GetString("tier")),
		Region:               v.GetString("region"),
		StorageClass:         models.StorageClass(v.GetString("storageClass")),
	}

	if card.Tier != "" {
		if _, err := ParseTier(string(card.Tier)); err != nil {
			return models.RateCard{}, fmt.Errorf("pricing file %s: %w", path, err)
		}
	}
	if err := estimator.ValidateCard(card); err != nil {
		return models.RateCard{}, fmt.Errorf("pricing file %s: %w", path, err)
	}

	return card, nil
}
