// Package valuation exposes the calculator over HTTP. One endpoint accepts
// the form submission (ticker + assumptions as percentages) and returns
// the valuation verdict with formatted display fields and an HTML report
// fragment.
package valuation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"intrinsic_value/pkg/core/assumption"
	"intrinsic_value/pkg/core/pipeline"
	"intrinsic_value/pkg/core/utils"
	"intrinsic_value/pkg/models"
)

// ValuationRequest is the wire form of a submission. Rates arrive as
// percentages, matching the form fields the user sees.
type ValuationRequest struct {
	Ticker           string  `json:"ticker"`
	GrowthRatePct    float64 `json:"growth_rate"`
	DiscountRatePct  float64 `json:"discount_rate"`
	ProjectionPeriod int     `json:"projection_period"`
}

// ValuationResponse is everything the display layer renders.
type ValuationResponse struct {
	RequestID      string `json:"request_id"`
	Ticker         string `json:"ticker"`
	CompanyName    string `json:"company_name"`
	Currency       string `json:"currency"`
	MetricUsed     string `json:"metric_used"`
	StartingCash   string `json:"starting_cash_flow"`
	IntrinsicValue string `json:"intrinsic_value"`
	CurrentPrice   string `json:"current_price"`
	Margin         string `json:"margin_of_safety"`
	Verdict        string `json:"verdict"`

	// SuggestedGrowthRate is the historical trend estimate, advisory only.
	SuggestedGrowthRate float64 `json:"suggested_growth_rate"`

	Result     *models.ValuationResult `json:"result"`
	ReportHTML string                  `json:"report_html"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}

// Handler binds the orchestrator and form defaults.
type Handler struct {
	orchestrator *pipeline.Orchestrator
	presets      assumption.Presets
}

// NewHandler creates the endpoint handler.
func NewHandler(orc *pipeline.Orchestrator, presets assumption.Presets) *Handler {
	return &Handler{orchestrator: orc, presets: presets}
}

// HandleValuation serves POST /api/valuation.
func (h *Handler) HandleValuation(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.New().String()

	req, err := h.parseRequest(r)
	if err != nil {
		writeError(w, requestID, http.StatusBadRequest, models.ErrInvalidAssumption, err.Error())
		return
	}
	fmt.Printf("[VALUATION] %s: ticker=%s growth=%.2f%% discount=%.2f%% period=%d\n",
		requestID, req.Ticker, req.GrowthRatePct, req.DiscountRatePct, req.ProjectionPeriod)

	outcome, err := h.orchestrator.RunValuation(r.Context(), pipeline.Request{
		Ticker: req.Ticker,
		Assumptions: models.ValuationAssumptions{
			GrowthRate:          req.GrowthRatePct / 100,
			DiscountRate:        req.DiscountRatePct / 100,
			ProjectionYears:     req.ProjectionPeriod,
			PerpetualGrowthRate: h.presets.PerpetualGrowthRate,
		},
	})
	if err != nil {
		kind := models.KindOf(err)
		fmt.Printf("[VALUATION] %s: failed (%s): %v\n", requestID, kind, err)
		writeError(w, requestID, statusForKind(kind), kind, err.Error())
		return
	}

	resp := buildResponse(requestID, outcome)
	fmt.Printf("[VALUATION] %s: %s -> %s (%s)\n",
		requestID, outcome.ResolvedTicker, resp.IntrinsicValue, resp.Verdict)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// parseRequest accepts either a JSON body or classic form fields and
// applies the preset defaults for omitted assumptions.
func (h *Handler) parseRequest(r *http.Request) (*ValuationRequest, error) {
	req := &ValuationRequest{
		GrowthRatePct:    h.presets.GrowthRate * 100,
		DiscountRatePct:  h.presets.DiscountRate * 100,
		ProjectionPeriod: h.presets.ProjectionYears,
	}

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, fmt.Errorf("invalid request body: %v", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form submission: %v", err)
		}
		if v := r.FormValue("growth_rate"); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("growth_rate must be a number, got %q", v)
			}
			req.GrowthRatePct = parsed
		}
		if v := r.FormValue("discount_rate"); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("discount_rate must be a number, got %q", v)
			}
			req.DiscountRatePct = parsed
		}
		if v := r.FormValue("projection_period"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("projection_period must be 5 or 10, got %q", v)
			}
			req.ProjectionPeriod = parsed
		}
		req.Ticker = r.FormValue("ticker")
	}

	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	if req.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if req.GrowthRatePct < 0 {
		return nil, fmt.Errorf("growth_rate must be >= 0")
	}
	if req.DiscountRatePct < 0 {
		return nil, fmt.Errorf("discount_rate must be >= 0")
	}
	return req, nil
}

func buildResponse(requestID string, outcome *pipeline.Outcome) *ValuationResponse {
	inputs, result := outcome.Inputs, outcome.Result

	report := utils.BuildReportMarkdown(utils.ReportData{
		CompanyName:     inputs.CompanyName,
		Ticker:          outcome.ResolvedTicker,
		MetricLabel:     string(inputs.MetricUsed),
		StartingCash:    utils.FormatAmount(inputs.StartingCashFlow, inputs.Currency),
		IntrinsicValue:  utils.FormatPrice(result.IntrinsicValuePerShare, inputs.Currency),
		CurrentPrice:    utils.FormatPrice(result.CurrentPrice, inputs.Currency),
		Margin:          utils.FormatPercent(result.MarginOfSafety),
		Verdict:         result.Verdict,
		ProjectionYears: outcome.Assumptions.ProjectionYears,
	})
	html, err := utils.RenderHTML(report)
	if err != nil {
		fmt.Printf("[WARNING] %s: report render failed: %v\n", requestID, err)
	}

	return &ValuationResponse{
		RequestID:           requestID,
		Ticker:              outcome.ResolvedTicker,
		CompanyName:         inputs.CompanyName,
		Currency:            inputs.Currency,
		MetricUsed:          string(inputs.MetricUsed),
		StartingCash:        utils.FormatAmount(inputs.StartingCashFlow, inputs.Currency),
		IntrinsicValue:      utils.FormatPrice(result.IntrinsicValuePerShare, inputs.Currency),
		CurrentPrice:        utils.FormatPrice(result.CurrentPrice, inputs.Currency),
		Margin:              utils.FormatPercent(result.MarginOfSafety),
		Verdict:             result.Verdict,
		SuggestedGrowthRate: inputs.HistoricalGrowthRate,
		Result:              result,
		ReportHTML:          html,
	}
}

func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.ErrDataFetch:
		return http.StatusNotFound
	case models.ErrInvalidAssumption:
		return http.StatusBadRequest
	case models.ErrMissingField, models.ErrDivisionHazard:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, requestID string, status int, kind models.ErrorKind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{RequestID: requestID, Kind: string(kind), Error: msg})
}
