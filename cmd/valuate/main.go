package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"intrinsic_value/pkg/core/assumption"
	"intrinsic_value/pkg/core/ingest"
	"intrinsic_value/pkg/core/pipeline"
	"intrinsic_value/pkg/core/utils"
	"intrinsic_value/pkg/models"
)

func main() {
	var (
		ticker   = flag.String("ticker", "", "Stock ticker symbol (e.g. AAPL, RELIANCE)")
		growth   = flag.Float64("growth", 8.0, "Future growth rate in percent")
		discount = flag.Float64("discount", 11.0, "Discount rate (expected return) in percent")
		period   = flag.Int("period", 5, "Projection period in years (5 or 10)")
		presets  = flag.String("presets", "resources/assumptions.hjson", "Path to assumption presets")
	)
	flag.Parse()

	godotenv.Load()

	if *ticker == "" {
		fmt.Println("Usage: valuate -ticker AAPL [-growth 8] [-discount 11] [-period 5]")
		os.Exit(2)
	}

	defaults := assumption.Load(*presets)

	orchestrator := pipeline.NewOrchestrator(ingest.NewClient())
	if defaults.MarketSuffix != "" {
		orchestrator.SetMarketSuffix(defaults.MarketSuffix)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	outcome, err := orchestrator.RunValuation(ctx, pipeline.Request{
		Ticker: strings.ToUpper(strings.TrimSpace(*ticker)),
		Assumptions: models.ValuationAssumptions{
			GrowthRate:          *growth / 100,
			DiscountRate:        *discount / 100,
			ProjectionYears:     *period,
			PerpetualGrowthRate: defaults.PerpetualGrowthRate,
		},
	})
	if err != nil {
		fmt.Printf("Valuation failed (%s): %v\n", models.KindOf(err), err)
		os.Exit(1)
	}

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

	fmt.Println(report)
	fmt.Printf("Historical FCF growth trend (advisory): %s\n",
		utils.FormatPercent(inputs.HistoricalGrowthRate))
}
