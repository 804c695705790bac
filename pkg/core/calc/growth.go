package calc

import "math"

// =============================================================================
// HISTORICAL GROWTH ESTIMATION
// =============================================================================

const (
	// OutlierGrowthThreshold drops any single-period rate of +200% or more
	// (value doubling), which usually signals recovery from a near-zero
	// base rather than a sustainable trend. The filter is intentionally
	// one-sided: large negative swings are kept.
	OutlierGrowthThreshold = 2.0

	// DefaultGrowthRate is returned when the series is too short or every
	// rate was filtered out.
	DefaultGrowthRate = 0.05
)

// EstimateGrowth computes a smoothed average growth rate from a short
// free-cash-flow history.
//
// FORMULA: rate_t = (value_t - value_{t-1}) / value_{t-1}
//
// The input arrives newest-first as reported by the provider; it is
// reversed to oldest-first so each rate represents forward-in-time change.
// Rates >= OutlierGrowthThreshold are discarded, and the arithmetic mean
// of the survivors is returned. Pairs with a zero or NaN base are skipped
// since the percentage change is undefined there.
//
// The result is advisory only: it pre-fills the growth assumption shown to
// the user and is never substituted into the valuation engine.
func EstimateGrowth(newestFirst []float64) float64 {
	if len(newestFirst) < 2 {
		return DefaultGrowthRate
	}

	// Reverse to oldest-first.
	series := make([]float64, len(newestFirst))
	for i, v := range newestFirst {
		series[len(newestFirst)-1-i] = v
	}

	var sum float64
	var count int
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1], series[i]
		if prev == 0 || math.IsNaN(prev) || math.IsNaN(cur) {
			continue
		}
		rate := (cur - prev) / prev
		if rate >= OutlierGrowthThreshold {
			continue
		}
		sum += rate
		count++
	}

	if count == 0 {
		return DefaultGrowthRate
	}
	return sum / float64(count)
}
