package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"intrinsic_value/pkg/core/utils"
	"intrinsic_value/pkg/models"
)

const (
	// DefaultFundamentalsBaseURL serves the statements document per symbol.
	DefaultFundamentalsBaseURL = "https://query1.finance.yahoo.com/v10/finance/fundamentals"
	// DefaultChartBaseURL serves the latest quote metadata.
	DefaultChartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

	// Browser-like User-Agent; the quote endpoints reject default Go agents.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	requestTimeout = 10 * time.Second
)

// Client fetches statements and quotes from the data provider. Base URLs
// are fields so tests can point at an httptest server.
type Client struct {
	httpClient          *http.Client
	FundamentalsBaseURL string
	ChartBaseURL        string
	Scraper             *QuoteScraper
}

// NewClient creates a provider client with production endpoints and the
// HTML scrape fallback enabled.
func NewClient() *Client {
	return &Client{
		httpClient:          &http.Client{Timeout: requestTimeout},
		FundamentalsBaseURL: DefaultFundamentalsBaseURL,
		ChartBaseURL:        DefaultChartBaseURL,
		Scraper:             NewQuoteScraper(),
	}
}

// FetchFinancials retrieves everything the model needs for one ticker.
// Missing optional lines stay nil in the result; completeness policy is
// the normalizer's concern, not the client's.
func (c *Client) FetchFinancials(ctx context.Context, ticker string) (*models.RawFinancials, error) {
	fund, err := c.fetchFundamentals(ctx, ticker)
	if err != nil {
		return nil, err
	}

	raw := &models.RawFinancials{
		Ticker:                   ticker,
		CompanyName:              fund.LongName,
		Currency:                 fund.Currency,
		NetIncome:                fund.IncomeStatement.NetIncome,
		DepreciationAmortization: fund.CashflowStatement.DepreciationAndAmortization,
		FreeCashFlowHistory:      fund.CashflowStatement.FreeCashFlow,
		TotalDebt:                fund.BalanceSheet.TotalDebt,
		CashAndEquivalents:       fund.BalanceSheet.CashAndCashEquivalents,
		SharesOutstanding:        fund.SharesOutstanding,
	}
	if raw.CompanyName == "" {
		raw.CompanyName = ticker
	}
	if raw.Currency == "" {
		raw.Currency = "USD"
	}

	// Latest price comes from the chart endpoint; the statements document
	// does not carry quotes.
	if price, currency, err := c.fetchQuote(ctx, ticker); err == nil {
		raw.CurrentPrice = &price
		if currency != "" {
			raw.Currency = currency
		}
	} else {
		fmt.Printf("[INGEST] Quote fetch failed for %s: %v, trying page scrape\n", ticker, err)
		if c.Scraper != nil {
			c.Scraper.FillMissing(ctx, ticker, raw)
		}
	}

	return raw, nil
}

// fetchFundamentals downloads and decodes the statements document.
func (c *Client) fetchFundamentals(ctx context.Context, ticker string) (*fundamentalsResponse, error) {
	url := fmt.Sprintf("%s/%s", c.FundamentalsBaseURL, ticker)
	body, status, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fundamentals request failed: %w", err)
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("no statements for %s: %w", ticker, ErrTickerNotFound)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fundamentals endpoint returned status %d", status)
	}

	var fund fundamentalsResponse
	if err := utils.DecodeTolerant(body, &fund); err != nil {
		return nil, fmt.Errorf("failed to parse fundamentals for %s: %w", ticker, err)
	}
	if fund.Error != nil {
		return nil, fmt.Errorf("provider error for %s (%s): %w", ticker, *fund.Error, ErrTickerNotFound)
	}
	return &fund, nil
}

// fetchQuote returns the latest traded price and quote currency.
func (c *Client) fetchQuote(ctx context.Context, ticker string) (price float64, currency string, err error) {
	url := fmt.Sprintf("%s/%s", c.ChartBaseURL, ticker)
	body, status, err := c.get(ctx, url)
	if err != nil {
		return 0, "", fmt.Errorf("quote request failed: %w", err)
	}
	if status != http.StatusOK {
		return 0, "", fmt.Errorf("chart endpoint returned status %d", status)
	}

	var chart chartResponse
	if err := utils.DecodeTolerant(body, &chart); err != nil {
		return 0, "", fmt.Errorf("failed to parse chart response: %w", err)
	}
	if len(chart.Chart.Result) == 0 {
		return 0, "", fmt.Errorf("no quote data for %s: %w", ticker, ErrTickerNotFound)
	}

	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return 0, "", fmt.Errorf("no valid price for %s", ticker)
	}
	return meta.RegularMarketPrice, meta.Currency, nil
}

// get performs a GET with the browser User-Agent and returns the body and
// status. Non-2xx statuses are returned to the caller for classification.
func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
