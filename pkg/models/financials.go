package models

// CashFlowMetric identifies which figure was selected as the DCF starting
// cash flow by the normalizer.
type CashFlowMetric string

const (
	MetricOwnerEarnings     CashFlowMetric = "Owner Earnings"
	MetricNetProfitFallback CashFlowMetric = "Net Profit (as Owner Earnings were negative)"
)

// RawFinancials holds the company-reported figures for the most recent fiscal
// period plus a short trailing free-cash-flow history, as returned by the
// data provider. Optional statement lines are pointers: nil means the line
// was absent from the filing, not that it was zero.
type RawFinancials struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
	Currency    string `json:"currency"` // ISO code, e.g. "USD", "INR"

	NetIncome                *float64 `json:"net_income"`
	DepreciationAmortization *float64 `json:"depreciation_amortization"`

	// FreeCashFlowHistory is ordered newest-first as reported by the
	// provider. The growth estimator reverses it before computing
	// period-over-period changes.
	FreeCashFlowHistory []float64 `json:"free_cash_flow_history"`

	TotalDebt          *float64 `json:"total_debt"`
	CashAndEquivalents *float64 `json:"cash_and_equivalents"`
	SharesOutstanding  *float64 `json:"shares_outstanding"`
	CurrentPrice       *float64 `json:"current_price"`
}

// NormalizedInputs is the reconciled model input derived from RawFinancials.
// StartingCashFlow is always defined; construction fails instead of
// producing a partial value.
type NormalizedInputs struct {
	StartingCashFlow float64        `json:"starting_cash_flow"`
	MetricUsed       CashFlowMetric `json:"metric_used"`

	// HistoricalGrowthRate is the advisory trend estimate. It pre-fills
	// the growth assumption shown to the user and is never consumed by
	// the valuation engine directly.
	HistoricalGrowthRate float64 `json:"historical_growth_rate"`

	TotalDebt          float64 `json:"total_debt"`
	CashAndEquivalents float64 `json:"cash_and_equivalents"`
	SharesOutstanding  float64 `json:"shares_outstanding"`
	CurrentPrice       float64 `json:"current_price"`

	CompanyName string `json:"company_name"`
	Currency    string `json:"currency"`
}

// DefaultPerpetualGrowthRate is the fixed terminal-stage growth assumption.
const DefaultPerpetualGrowthRate = 0.025

// ValuationAssumptions are the user-supplied (or defaulted) model knobs.
type ValuationAssumptions struct {
	GrowthRate          float64 `json:"growth_rate"`           // fraction, >= 0
	DiscountRate        float64 `json:"discount_rate"`         // fraction, must exceed PerpetualGrowthRate
	ProjectionYears     int     `json:"projection_years"`      // 5 or 10
	PerpetualGrowthRate float64 `json:"perpetual_growth_rate"` // fixed 2.5% in practice
}

// Verdict labels for the margin-of-safety comparison.
const (
	VerdictUndervalued = "undervalued"
	VerdictOvervalued  = "overvalued"
)

// ValuationResult is the output of the two-stage DCF. It is recomputed on
// every request and never persisted.
type ValuationResult struct {
	IntrinsicValuePerShare float64 `json:"intrinsic_value_per_share"`
	CurrentPrice           float64 `json:"current_price"`
	MarginOfSafety         float64 `json:"margin_of_safety"` // signed fraction
	Verdict                string  `json:"verdict"`

	// Diagnostic breakdown of the present-value aggregation.
	PVExplicit    float64 `json:"pv_explicit"`
	PVTerminal    float64 `json:"pv_terminal"`
	EquityValue   float64 `json:"equity_value"`
	TerminalValue float64 `json:"terminal_value"`
}
