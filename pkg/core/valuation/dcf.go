// Package valuation implements the two-stage Discounted Cash Flow engine:
// an explicit high-growth projection period followed by a Gordon-growth
// terminal stage, an equity bridge, and the margin-of-safety verdict.
package valuation

import (
	"math"

	"intrinsic_value/pkg/models"
)

// DCFInput encapsulates everything the two-stage model needs. It is built
// from NormalizedInputs plus the user's assumptions; the engine itself
// never reaches back to the provider.
type DCFInput struct {
	StartingCashFlow   float64
	GrowthRate         float64
	DiscountRate       float64
	PerpetualGrowth    float64
	ProjectionYears    int
	TotalDebt          float64
	CashAndEquivalents float64
	SharesOutstanding  float64
	CurrentPrice       float64
}

// ValidateAssumptions rejects assumption sets before any terminal-value
// math runs. A discount rate at or below the perpetual growth rate makes
// the Gordon denominator non-positive, so it is a validation error rather
// than an arithmetic surprise.
func ValidateAssumptions(a models.ValuationAssumptions) error {
	if a.GrowthRate < 0 {
		return models.NewDomainError(models.ErrInvalidAssumption,
			"growth rate must be non-negative, got %.4f", a.GrowthRate)
	}
	if a.ProjectionYears != 5 && a.ProjectionYears != 10 {
		return models.NewDomainError(models.ErrInvalidAssumption,
			"projection period must be 5 or 10 years, got %d", a.ProjectionYears)
	}
	if a.DiscountRate <= a.PerpetualGrowthRate {
		return models.NewDomainError(models.ErrInvalidAssumption,
			"discount rate (%.4f) must exceed the perpetual growth rate (%.4f); raise the discount rate",
			a.DiscountRate, a.PerpetualGrowthRate)
	}
	return nil
}

// Value runs the two-stage DCF over normalized inputs.
//
// ALGORITHM:
//  1. projected_cf_i = start * (1+g)^i for i = 1..N (explicit per-year
//     compounding, kept open for per-year growth schedules)
//  2. TV = projected_cf_N * (1+g_perp) / (r - g_perp)
//  3. discounted_cf_i = projected_cf_i / (1+r)^i
//  4. discounted TV = TV / (1+r)^N
//  5. total PV = sum(discounted_cf) + discounted TV
//  6. equity = total PV - debt + cash
//  7. per share = equity / shares
//  8. margin of safety = (per share - price) / price
//
// Exactly-zero margin classifies as overvalued; only a strictly positive
// margin earns the undervalued verdict.
func Value(inputs *models.NormalizedInputs, assumptions models.ValuationAssumptions) (*models.ValuationResult, error) {
	if err := ValidateAssumptions(assumptions); err != nil {
		return nil, err
	}
	if inputs.SharesOutstanding <= 0 {
		return nil, models.NewDomainError(models.ErrDivisionHazard,
			"shares outstanding must be positive, got %.0f", inputs.SharesOutstanding)
	}
	if inputs.CurrentPrice <= 0 {
		return nil, models.NewDomainError(models.ErrDivisionHazard,
			"current price must be positive to compute margin of safety, got %.4f", inputs.CurrentPrice)
	}

	in := DCFInput{
		StartingCashFlow:   inputs.StartingCashFlow,
		GrowthRate:         assumptions.GrowthRate,
		DiscountRate:       assumptions.DiscountRate,
		PerpetualGrowth:    assumptions.PerpetualGrowthRate,
		ProjectionYears:    assumptions.ProjectionYears,
		TotalDebt:          inputs.TotalDebt,
		CashAndEquivalents: inputs.CashAndEquivalents,
		SharesOutstanding:  inputs.SharesOutstanding,
		CurrentPrice:       inputs.CurrentPrice,
	}
	return calculate(in), nil
}

// calculate performs the arithmetic. Preconditions (positive shares and
// price, discount > perpetual growth) are enforced by Value.
func calculate(in DCFInput) *models.ValuationResult {
	// 1. Explicit projection stage.
	projected := make([]float64, in.ProjectionYears)
	for i := 1; i <= in.ProjectionYears; i++ {
		projected[i-1] = in.StartingCashFlow * math.Pow(1+in.GrowthRate, float64(i))
	}

	// 2. Terminal stage (Gordon growth on the last projected year).
	lastProjected := projected[len(projected)-1]
	terminalValue := lastProjected * (1 + in.PerpetualGrowth) / (in.DiscountRate - in.PerpetualGrowth)

	// 3-5. Discount and aggregate.
	var pvExplicit float64
	for i, cf := range projected {
		pvExplicit += cf / math.Pow(1+in.DiscountRate, float64(i+1))
	}
	pvTerminal := terminalValue / math.Pow(1+in.DiscountRate, float64(in.ProjectionYears))
	totalPV := pvExplicit + pvTerminal

	// 6-7. Equity bridge and per-share conversion.
	equityValue := totalPV - in.TotalDebt + in.CashAndEquivalents
	perShare := equityValue / in.SharesOutstanding

	// 8. Margin of safety. Zero margin is not undervalued.
	margin := (perShare - in.CurrentPrice) / in.CurrentPrice
	verdict := models.VerdictOvervalued
	if margin > 0 {
		verdict = models.VerdictUndervalued
	}

	return &models.ValuationResult{
		IntrinsicValuePerShare: perShare,
		CurrentPrice:           in.CurrentPrice,
		MarginOfSafety:         margin,
		Verdict:                verdict,
		PVExplicit:             pvExplicit,
		PVTerminal:             pvTerminal,
		EquityValue:            equityValue,
		TerminalValue:          terminalValue,
	}
}
