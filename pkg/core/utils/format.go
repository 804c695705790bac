package utils

import (
	"fmt"
	"math"
)

// =============================================================================
// DISPLAY FORMATTING
// =============================================================================

const croreDivisor = 1e7 // 1 crore = 10,000,000

// CurrencySymbol maps an ISO currency code to its display symbol. Unknown
// codes fall back to "$".
func CurrencySymbol(currency string) string {
	switch currency {
	case "INR":
		return "₹"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	default:
		return "$"
	}
}

// AbbreviateNumber renders a large amount with a K/M/B suffix, two
// decimals. Values under a thousand print plainly.
func AbbreviateNumber(num float64) string {
	abs := math.Abs(num)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", num/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", num/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", num/1e3)
	default:
		return fmt.Sprintf("%.2f", num)
	}
}

// FormatAmount renders a currency amount in its reporting convention.
// INR amounts are expressed in crore ("₹12.35 Cr"); everything else uses
// the K/M/B abbreviation ("$1.23B").
func FormatAmount(amount float64, currency string) string {
	if currency == "INR" {
		return fmt.Sprintf("₹%.2f Cr", amount/croreDivisor)
	}
	return CurrencySymbol(currency) + AbbreviateNumber(amount)
}

// FormatPrice renders a per-share price with two decimals and the
// currency symbol.
func FormatPrice(price float64, currency string) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol(currency), price)
}

// FormatPercent renders a fraction as a signed percentage, e.g. 0.1234 ->
// "12.34%".
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}
