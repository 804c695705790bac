package assumption

import (
	"os"
	"path/filepath"
	"testing"
)

func writePresetsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assumptions.hjson")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write presets file: %v", err)
	}
	return path
}

func TestLoad_ParsesHjsonWithComments(t *testing.T) {
	path := writePresetsFile(t, `{
  // conservative defaults
  growth_rate: 0.06
  discount_rate: 0.12
  projection_years: 10
  market_suffix: .BO
}`)

	p := Load(path)
	if p.GrowthRate != 0.06 {
		t.Errorf("Expected growth 0.06, got %f", p.GrowthRate)
	}
	if p.DiscountRate != 0.12 {
		t.Errorf("Expected discount 0.12, got %f", p.DiscountRate)
	}
	if p.ProjectionYears != 10 {
		t.Errorf("Expected 10 years, got %d", p.ProjectionYears)
	}
	if p.MarketSuffix != ".BO" {
		t.Errorf("Expected suffix .BO, got %q", p.MarketSuffix)
	}
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.hjson"))
	if p != DefaultPresets() {
		t.Errorf("Expected hardcoded defaults, got %+v", p)
	}
}

func TestLoad_PinsPerpetualGrowth(t *testing.T) {
	path := writePresetsFile(t, `{
  growth_rate: 0.08
  perpetual_growth_rate: 0.9
}`)

	p := Load(path)
	if p.PerpetualGrowthRate != DefaultPresets().PerpetualGrowthRate {
		t.Errorf("Perpetual growth must be pinned to the model constant, got %f", p.PerpetualGrowthRate)
	}
}

func TestLoad_RejectsBadProjectionPeriod(t *testing.T) {
	path := writePresetsFile(t, `{projection_years: 7}`)

	p := Load(path)
	if p.ProjectionYears != 5 {
		t.Errorf("Invalid period must fall back to 5, got %d", p.ProjectionYears)
	}
}
