package calc

import (
	"math"
	"testing"
)

const growthTolerance = 1e-9

func TestEstimateGrowth_ReversesAndAverages(t *testing.T) {
	// Provider order is newest-first: [100, 110, 50, 5000].
	// Oldest-first: [5000, 50, 110, 100]
	// Rates: -0.99, +1.20, -0.0909...; none reaches the +200% cutoff.
	got := EstimateGrowth([]float64{100, 110, 50, 5000})
	want := (-0.99 + 1.2 + (100.0-110.0)/110.0) / 3

	if math.Abs(got-want) > growthTolerance {
		t.Errorf("Expected %f, got %f", want, got)
	}
}

func TestEstimateGrowth_FiltersDoublingRates(t *testing.T) {
	// Oldest-first: [10, 100, 110]. First rate is +900% (filtered),
	// second is +10% (kept).
	got := EstimateGrowth([]float64{110, 100, 10})
	want := 0.10

	if math.Abs(got-want) > growthTolerance {
		t.Errorf("Expected %f (outlier excluded), got %f", want, got)
	}
}

func TestEstimateGrowth_AllRatesFilteredReturnsDefault(t *testing.T) {
	// Oldest-first: [1, 10, 100]: both rates are >= +200%.
	got := EstimateGrowth([]float64{100, 10, 1})
	if got != 0.05 {
		t.Errorf("Expected exactly 0.05 when everything is filtered, got %f", got)
	}
}

func TestEstimateGrowth_TooFewPointsReturnsDefault(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
	}{
		{"empty", nil},
		{"single value", []float64{100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateGrowth(tt.series); got != 0.05 {
				t.Errorf("Expected exactly 0.05, got %f", got)
			}
		})
	}
}

func TestEstimateGrowth_SkipsZeroBase(t *testing.T) {
	// Oldest-first: [0, 50, 60]. The 0->50 change is undefined and must
	// be skipped, leaving only +20%.
	got := EstimateGrowth([]float64{60, 50, 0})
	want := 0.20

	if math.Abs(got-want) > growthTolerance {
		t.Errorf("Expected %f, got %f", want, got)
	}
}

func TestEstimateGrowth_KeepsLargeNegativeSwings(t *testing.T) {
	// The outlier filter is one-sided: a -90% collapse is not excluded.
	// Oldest-first: [1000, 100, 110]: rates -0.90, +0.10.
	got := EstimateGrowth([]float64{110, 100, 1000})
	want := (-0.90 + 0.10) / 2

	if math.Abs(got-want) > growthTolerance {
		t.Errorf("Expected %f (negative swing kept), got %f", want, got)
	}
}

func TestEstimateGrowth_BoundaryRateExactlyTwoIsExcluded(t *testing.T) {
	// Oldest-first: [100, 300, 330]: +200% exactly (excluded), +10% kept.
	got := EstimateGrowth([]float64{330, 300, 100})
	want := 0.10

	if math.Abs(got-want) > growthTolerance {
		t.Errorf("Expected %f (>=200%% excluded), got %f", want, got)
	}
}
