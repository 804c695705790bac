// Package assumption loads the user-editable default assumptions shown in
// the calculator form. The presets file is Hjson so it can carry comments
// for whoever tunes the defaults.
package assumption

import (
	"fmt"
	"os"

	"intrinsic_value/pkg/core/utils"
	"intrinsic_value/pkg/models"
)

// Presets are the form defaults. Rates are fractions, not percentages.
type Presets struct {
	GrowthRate          float64 `json:"growth_rate"`
	DiscountRate        float64 `json:"discount_rate"`
	ProjectionYears     int     `json:"projection_years"`
	PerpetualGrowthRate float64 `json:"perpetual_growth_rate"`
	MarketSuffix        string  `json:"market_suffix"`
}

// DefaultPresets returns the hardcoded fallbacks: 8% growth, 11% discount,
// 5-year horizon, 2.5% perpetual growth, Indian-exchange retry suffix.
func DefaultPresets() Presets {
	return Presets{
		GrowthRate:          0.08,
		DiscountRate:        0.11,
		ProjectionYears:     5,
		PerpetualGrowthRate: models.DefaultPerpetualGrowthRate,
		MarketSuffix:        ".NS",
	}
}

// Load reads presets from an Hjson file, falling back to DefaultPresets
// when the file is absent or malformed. The perpetual growth rate is
// pinned: it is a model constant, not a tunable.
func Load(path string) Presets {
	defaults := DefaultPresets()

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults
	}

	presets := defaults
	if err := utils.ParseHJSONToStruct(data, &presets); err != nil {
		fmt.Printf("[WARNING] Failed to parse presets %s: %v\n", path, err)
		fmt.Println("  Falling back to hardcoded defaults")
		return defaults
	}
	presets.PerpetualGrowthRate = models.DefaultPerpetualGrowthRate
	if presets.ProjectionYears != 5 && presets.ProjectionYears != 10 {
		presets.ProjectionYears = defaults.ProjectionYears
	}
	return presets
}

// Assumptions converts presets into a ready-to-validate assumption set.
func (p Presets) Assumptions() models.ValuationAssumptions {
	return models.ValuationAssumptions{
		GrowthRate:          p.GrowthRate,
		DiscountRate:        p.DiscountRate,
		ProjectionYears:     p.ProjectionYears,
		PerpetualGrowthRate: p.PerpetualGrowthRate,
	}
}
