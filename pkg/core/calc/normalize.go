// Package calc provides the deterministic financial calculations behind the
// intrinsic-value model: input normalization and historical growth
// estimation. All functions are pure and side-effect free.
package calc

import (
	"math"

	"intrinsic_value/pkg/models"
)

// =============================================================================
// STARTING CASH FLOW NORMALIZATION
// =============================================================================

// Normalize reconciles raw provider figures into the inputs the valuation
// engine consumes.
//
// FORMULA: OwnerEarnings = NetIncome + D&A - MaintenanceCapex
//
// MaintenanceCapex is assumed equal to D&A (a modeling choice, not an
// estimate from capex data). The two-step arithmetic below is deliberate:
// the expression collapses to NetIncome algebraically, but the explicit
// chain keeps the calculation traceable should the capex assumption ever
// diverge from D&A.
//
// Fallback: when OwnerEarnings <= 0 the starting cash flow is NetIncome,
// even if NetIncome is itself negative or zero. There is no further
// fallback.
func Normalize(raw *models.RawFinancials) (*models.NormalizedInputs, error) {
	netIncome, err := requireField(raw.NetIncome, "net income")
	if err != nil {
		return nil, err
	}
	depreciation, err := requireField(raw.DepreciationAmortization, "depreciation and amortization")
	if err != nil {
		return nil, err
	}
	shares, err := requireField(raw.SharesOutstanding, "shares outstanding")
	if err != nil {
		return nil, err
	}
	price, err := requireField(raw.CurrentPrice, "latest price")
	if err != nil {
		return nil, err
	}

	maintenanceCapex := depreciation
	ownerEarnings := netIncome + depreciation - maintenanceCapex

	startingCashFlow := ownerEarnings
	metric := models.MetricOwnerEarnings
	if ownerEarnings <= 0 {
		startingCashFlow = netIncome
		metric = models.MetricNetProfitFallback
	}

	return &models.NormalizedInputs{
		StartingCashFlow:     startingCashFlow,
		MetricUsed:           metric,
		HistoricalGrowthRate: EstimateGrowth(raw.FreeCashFlowHistory),
		TotalDebt:            optionalField(raw.TotalDebt),
		CashAndEquivalents:   optionalField(raw.CashAndEquivalents),
		SharesOutstanding:    shares,
		CurrentPrice:         price,
		CompanyName:          raw.CompanyName,
		Currency:             raw.Currency,
	}, nil
}

// requireField rejects absent or NaN statement lines.
func requireField(v *float64, name string) (float64, error) {
	if v == nil || math.IsNaN(*v) {
		return 0, models.NewDomainError(models.ErrMissingField, "required figure %q is missing", name)
	}
	return *v, nil
}

// optionalField defaults absent balance-sheet lines to zero. Not all
// companies report debt or cash under the same line items.
func optionalField(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}
