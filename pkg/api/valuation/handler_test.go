package valuation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"intrinsic_value/pkg/core/assumption"
	"intrinsic_value/pkg/core/ingest"
	"intrinsic_value/pkg/core/pipeline"
	"intrinsic_value/pkg/models"
)

func floatPtr(f float64) *float64 { return &f }

type stubProvider struct {
	responses map[string]*models.RawFinancials
}

func (s *stubProvider) FetchFinancials(ctx context.Context, ticker string) (*models.RawFinancials, error) {
	if raw, ok := s.responses[ticker]; ok {
		return raw, nil
	}
	return nil, ingest.ErrTickerNotFound
}

func knownTickers(tickers ...string) *stubProvider {
	s := &stubProvider{responses: map[string]*models.RawFinancials{}}
	for _, t := range tickers {
		s.responses[t] = &models.RawFinancials{
			Ticker:                   t,
			CompanyName:              "Test Corp",
			Currency:                 "USD",
			NetIncome:                floatPtr(1_000_000),
			DepreciationAmortization: floatPtr(100_000),
			FreeCashFlowHistory:      []float64{1_100_000, 1_000_000, 900_000},
			TotalDebt:                floatPtr(0),
			CashAndEquivalents:       floatPtr(0),
			SharesOutstanding:        floatPtr(1_000_000),
			CurrentPrice:             floatPtr(10.0),
		}
	}
	return s
}

func newTestHandler(provider pipeline.Provider) *Handler {
	return NewHandler(pipeline.NewOrchestrator(provider), assumption.DefaultPresets())
}

func postJSON(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/valuation", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleValuation(rec, req)
	return rec
}

func TestHandleValuation_Success(t *testing.T) {
	h := newTestHandler(knownTickers("AAPL"))
	rec := postJSON(t, h, `{"ticker": "aapl", "growth_rate": 8, "discount_rate": 11, "projection_period": 5}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ValuationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}
	if resp.Ticker != "AAPL" {
		t.Errorf("Ticker must be uppercased, got %q", resp.Ticker)
	}
	if resp.Verdict != models.VerdictUndervalued && resp.Verdict != models.VerdictOvervalued {
		t.Errorf("Unexpected verdict %q", resp.Verdict)
	}
	if resp.RequestID == "" {
		t.Error("Expected a request ID")
	}
	if !strings.Contains(resp.ReportHTML, "<h1>") {
		t.Error("Expected rendered report HTML")
	}
}

func TestHandleValuation_PresetDefaultsApplied(t *testing.T) {
	h := newTestHandler(knownTickers("AAPL"))
	// Only the ticker is sent; growth/discount/period come from presets.
	rec := postJSON(t, h, `{"ticker": "AAPL"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 with preset defaults, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleValuation_FormSubmission(t *testing.T) {
	h := newTestHandler(knownTickers("AAPL"))

	form := url.Values{}
	form.Set("ticker", "AAPL")
	form.Set("growth_rate", "8")
	form.Set("discount_rate", "11")
	form.Set("projection_period", "10")

	req := httptest.NewRequest(http.MethodPost, "/api/valuation", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleValuation(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleValuation_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{
			"unknown ticker maps to 404",
			`{"ticker": "NOPE", "growth_rate": 8, "discount_rate": 11, "projection_period": 5}`,
			http.StatusNotFound,
			"DATA_FETCH",
		},
		{
			"bad assumptions map to 400",
			`{"ticker": "AAPL", "growth_rate": 8, "discount_rate": 1, "projection_period": 5}`,
			http.StatusBadRequest,
			"INVALID_ASSUMPTION",
		},
		{
			"bad projection period maps to 400",
			`{"ticker": "AAPL", "growth_rate": 8, "discount_rate": 11, "projection_period": 7}`,
			http.StatusBadRequest,
			"INVALID_ASSUMPTION",
		},
		{
			"missing ticker maps to 400",
			`{"growth_rate": 8, "discount_rate": 11, "projection_period": 5}`,
			http.StatusBadRequest,
			"INVALID_ASSUMPTION",
		},
	}

	h := newTestHandler(knownTickers("AAPL"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Invalid error JSON: %v", err)
			}
			if resp.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, resp.Kind)
			}
		})
	}
}

func TestHandleValuation_IncompleteDataMapsTo422(t *testing.T) {
	provider := knownTickers("AAPL")
	provider.responses["AAPL"].NetIncome = nil
	h := newTestHandler(provider)

	rec := postJSON(t, h, `{"ticker": "AAPL", "growth_rate": 8, "discount_rate": 11, "projection_period": 5}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid error JSON: %v", err)
	}
	if resp.Kind != "MISSING_FIELD" {
		t.Errorf("Expected kind MISSING_FIELD, got %s", resp.Kind)
	}
}

func TestHandleValuation_MethodsAndPreflight(t *testing.T) {
	h := newTestHandler(knownTickers("AAPL"))

	req := httptest.NewRequest(http.MethodOptions, "/api/valuation", nil)
	rec := httptest.NewRecorder()
	h.HandleValuation(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Preflight expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Missing CORS header on preflight")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/valuation", nil)
	rec = httptest.NewRecorder()
	h.HandleValuation(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET expected 405, got %d", rec.Code)
	}
}
