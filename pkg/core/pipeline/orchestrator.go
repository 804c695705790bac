// Package pipeline wires the per-request flow: fetch financials (with the
// one-shot market-suffix retry), normalize the starting cash flow,
// estimate the advisory growth trend, and run the two-stage DCF. Each
// request is independent; the orchestrator holds no mutable cross-request
// state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"intrinsic_value/pkg/core/calc"
	"intrinsic_value/pkg/core/ingest"
	"intrinsic_value/pkg/core/valuation"
	"intrinsic_value/pkg/models"
)

// Provider retrieves raw financials for a ticker. Implementations:
// - ingest.Client (live provider)
// - test doubles
type Provider interface {
	FetchFinancials(ctx context.Context, ticker string) (*models.RawFinancials, error)
}

// DefaultMarketSuffix is appended on the single retry, auto-detecting
// symbols listed on the Indian exchange.
const DefaultMarketSuffix = ".NS"

// Request is one valuation submission.
type Request struct {
	Ticker      string
	Assumptions models.ValuationAssumptions
}

// Outcome bundles everything the presentation layer renders. Valuation is
// all-or-nothing: a partially filled Outcome is never returned.
type Outcome struct {
	ResolvedTicker string
	Assumptions    models.ValuationAssumptions
	Inputs         *models.NormalizedInputs
	Result         *models.ValuationResult
}

// Orchestrator manages the end-to-end request flow.
type Orchestrator struct {
	provider     Provider
	marketSuffix string
}

// NewOrchestrator creates an orchestrator over the given provider.
func NewOrchestrator(provider Provider) *Orchestrator {
	return &Orchestrator{provider: provider, marketSuffix: DefaultMarketSuffix}
}

// SetMarketSuffix overrides the retry suffix (for other exchanges or tests).
func (o *Orchestrator) SetMarketSuffix(suffix string) {
	o.marketSuffix = suffix
}

// RunValuation executes the full pipeline for one request.
//
// Retry convention: if the bare ticker fails to fetch or comes back with
// incomplete statements, exactly one retry with the market suffix is made.
// No further fallback suffixes, no backoff.
func (o *Orchestrator) RunValuation(ctx context.Context, req Request) (*Outcome, error) {
	if err := valuation.ValidateAssumptions(req.Assumptions); err != nil {
		return nil, err
	}

	ticker := req.Ticker
	inputs, firstErr := o.fetchAndNormalize(ctx, ticker)
	if firstErr != nil && o.marketSuffix != "" && !strings.HasSuffix(ticker, o.marketSuffix) {
		retryTicker := ticker + o.marketSuffix
		fmt.Printf("[PIPELINE] %s failed (%v), retrying as %s\n", ticker, firstErr, retryTicker)

		retryInputs, retryErr := o.fetchAndNormalize(ctx, retryTicker)
		if retryErr == nil {
			inputs, firstErr = retryInputs, nil
			ticker = retryTicker
		} else if models.KindOf(firstErr) == models.ErrMissingField {
			// The bare symbol existed but its statements were incomplete;
			// that is the more truthful error to surface.
			return nil, firstErr
		} else {
			return nil, classifyFetchError(req.Ticker, retryErr)
		}
	}
	if firstErr != nil {
		return nil, classifyFetchError(req.Ticker, firstErr)
	}

	result, err := valuation.Value(inputs, req.Assumptions)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		ResolvedTicker: ticker,
		Assumptions:    req.Assumptions,
		Inputs:         inputs,
		Result:         result,
	}, nil
}

// fetchAndNormalize runs the provider call and the normalizer for one
// concrete symbol.
func (o *Orchestrator) fetchAndNormalize(ctx context.Context, ticker string) (*models.NormalizedInputs, error) {
	raw, err := o.provider.FetchFinancials(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return calc.Normalize(raw)
}

// classifyFetchError maps provider-level failures to the user-facing
// DataFetch kind while preserving already-classified errors.
func classifyFetchError(ticker string, err error) error {
	var de *models.DomainError
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, ingest.ErrTickerNotFound) {
		return models.WrapDomainError(models.ErrDataFetch, err,
			"could not find data for ticker %q; check the symbol and try again", ticker)
	}
	return models.WrapDomainError(models.ErrDataFetch, err,
		"failed to fetch financial data for %q", ticker)
}
