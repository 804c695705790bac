package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// ReportData carries the display fields for a rendered valuation report.
type ReportData struct {
	CompanyName     string
	Ticker          string
	MetricLabel     string
	StartingCash    string // pre-formatted, e.g. "$1.23B" or "₹12.35 Cr"
	IntrinsicValue  string
	CurrentPrice    string
	Margin          string
	Verdict         string // "undervalued" / "overvalued"
	ProjectionYears int
}

// BuildReportMarkdown assembles the user-facing valuation summary as
// Markdown. The verdict line leads so the banner survives truncation in
// narrow clients.
func BuildReportMarkdown(d ReportData) string {
	var b strings.Builder

	verdictLine := fmt.Sprintf("## Verdict: Overvalued by %s", d.Margin)
	if d.Verdict == "undervalued" {
		verdictLine = fmt.Sprintf("## Verdict: Undervalued by %s", d.Margin)
	}

	fmt.Fprintf(&b, "# %s (%s)\n\n", d.CompanyName, d.Ticker)
	b.WriteString(verdictLine + "\n\n")
	fmt.Fprintf(&b, "*Starting cash flow metric used: **%s***\n", d.MetricLabel)
	fmt.Fprintf(&b, "*Value: **%s***\n\n", d.StartingCash)
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Calculated Intrinsic Value | %s |\n", d.IntrinsicValue)
	fmt.Fprintf(&b, "| Current Market Price | %s |\n", d.CurrentPrice)
	fmt.Fprintf(&b, "| Projection Period | %d years |\n", d.ProjectionYears)

	return b.String()
}

// RenderHTML converts report Markdown to an HTML fragment using Goldmark.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown render failed: %w", err)
	}
	return buf.String(), nil
}
