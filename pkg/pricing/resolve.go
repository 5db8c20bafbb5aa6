package pricing

import (
	"fmt"

	"github.com/costpilot/cost-copilot/pkg/estimator"
	"github.com/costpilot/cost-copilot/pkg/models"
)

// Options selects the rate card for a run.
type Options struct {
	// Tier name, empty means autopilot.
	Tier string
	// StorageClass name, empty means pd-standard.
	StorageClass string
	// PricingFile, when set, is authoritative and skips everything else.
	PricingFile string

	// Overrides applied on top of the builtin card when positive.
	CPUPerCoreHour    float64
	MemoryPerGBHour   float64
	StoragePerGBMonth float64
	Currency          string
}

// Resolve produces the rate card for a run: pricing file if given,
// otherwise the builtin card for the tier with any overrides applied.
// The returned card is always validated.
func Resolve(opts Options) (models.RateCard, error) {
	if opts.PricingFile != "" {
		return LoadRateCardFile(opts.PricingFile)
	}

	tier := models.TierAutopilot
	if opts.Tier != "" {
		parsed, err := ParseTier(opts.Tier)
		if err != nil {
			return models.RateCard{}, err
		}
		tier = parsed
	}

	card, err := CardForTier(tier, models.StorageClass(opts.StorageClass))
	if err != nil {
		return models.RateCard{}, err
	}

	if opts.CPUPerCoreHour > 0 {
		card.CPUPerCoreHour = opts.CPUPerCoreHour
	}
	if opts.MemoryPerGBHour > 0 {
		card.MemoryPerGBHour = opts.MemoryPerGBHour
	}
	if opts.StoragePerGBMonth > 0 {
		card.StoragePerGBMonth = opts.StoragePerGBMonth
	}
	if opts.Currency != "" {
		card.Currency = opts.Currency
	}

	if err := estimator.ValidateCard(card); err != nil {
		return models.RateCard{}, fmt.Errorf("resolved rate card invalid: %w", err)
	}
	return card, nil
}
