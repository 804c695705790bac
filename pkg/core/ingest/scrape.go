package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"intrinsic_value/pkg/models"
)

// DefaultQuotePageURL is the public quote page used as a scrape fallback
// when the JSON endpoints omit the price or company name.
const DefaultQuotePageURL = "https://finance.yahoo.com/quote"

// QuoteScraper recovers quote fields from the provider's HTML quote page.
// It is a best-effort fallback: failures leave the RawFinancials untouched
// and the normalizer decides whether the request can proceed.
type QuoteScraper struct {
	httpClient *http.Client
	BaseURL    string
}

// NewQuoteScraper creates a scraper against the production quote page.
func NewQuoteScraper() *QuoteScraper {
	return &QuoteScraper{
		httpClient: &http.Client{Timeout: requestTimeout},
		BaseURL:    DefaultQuotePageURL,
	}
}

// FillMissing scrapes the quote page and fills price and company name
// when they are absent from raw.
func (s *QuoteScraper) FillMissing(ctx context.Context, ticker string, raw *models.RawFinancials) {
	if raw.CurrentPrice != nil && raw.CompanyName != "" && raw.CompanyName != ticker {
		return
	}

	doc, err := s.fetchQuotePage(ctx, ticker)
	if err != nil {
		fmt.Printf("[INGEST] Quote page scrape failed for %s: %v\n", ticker, err)
		return
	}

	if raw.CurrentPrice == nil {
		if price, ok := extractStreamedPrice(doc); ok {
			raw.CurrentPrice = &price
		}
	}
	if raw.CompanyName == "" || raw.CompanyName == ticker {
		if name := extractCompanyName(doc); name != "" {
			raw.CompanyName = name
		}
	}
}

func (s *QuoteScraper) fetchQuotePage(ctx context.Context, ticker string) (*goquery.Document, error) {
	url := fmt.Sprintf("%s/%s", s.BaseURL, ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote page HTML: %w", err)
	}
	return doc, nil
}

// extractStreamedPrice reads the price from the fin-streamer element the
// quote page uses for live updates.
func extractStreamedPrice(doc *goquery.Document) (float64, bool) {
	var price float64
	var found bool
	doc.Find(`fin-streamer[data-field="regularMarketPrice"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		value, ok := sel.Attr("value")
		if !ok {
			value = sel.Text()
		}
		value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed > 0 {
			price = parsed
			found = true
			return false
		}
		return true
	})
	return price, found
}

// extractCompanyName pulls the display name from the page heading,
// trimming the trailing "(TICKER)" the page appends.
func extractCompanyName(doc *goquery.Document) string {
	heading := strings.TrimSpace(doc.Find("h1").First().Text())
	if idx := strings.LastIndex(heading, "("); idx > 0 {
		heading = strings.TrimSpace(heading[:idx])
	}
	return heading
}
