// Package ingest implements the financial-data provider client. The
// provider is an external collaborator with a loosely-typed response:
// statement lines come back as optional fields, and every caller is forced
// to handle absence explicitly.
package ingest

import "errors"

// ErrTickerNotFound reports that the provider has no data for a symbol.
// The pipeline retries once with a market suffix before surfacing it.
var ErrTickerNotFound = errors.New("ticker not found")

// =============================================================================
// PROVIDER WIRE TYPES
// =============================================================================

// fundamentalsResponse mirrors the provider's statements endpoint for a
// single symbol. Optional statement lines are pointers: nil means the line
// was absent from the filing.
type fundamentalsResponse struct {
	Symbol            string   `json:"symbol"`
	LongName          string   `json:"longName"`
	Currency          string   `json:"currency"`
	SharesOutstanding *float64 `json:"sharesOutstanding"`

	IncomeStatement struct {
		NetIncome *float64 `json:"netIncome"`
	} `json:"incomeStatement"`

	CashflowStatement struct {
		DepreciationAndAmortization *float64 `json:"depreciationAndAmortization"`
		// FreeCashFlow is reported newest-first.
		FreeCashFlow []float64 `json:"freeCashFlow"`
	} `json:"cashflowStatement"`

	BalanceSheet struct {
		TotalDebt              *float64 `json:"totalDebt"`
		CashAndCashEquivalents *float64 `json:"cashAndCashEquivalents"`
	} `json:"balanceSheet"`

	Error *string `json:"error"`
}

// chartResponse is the trimmed shape of the quote/chart endpoint; only the
// meta block is consumed.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}
