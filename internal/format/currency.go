// Package format renders money, percentages and dates the way printed
// PDRD documents show them: Indonesian digit grouping and month names.
package format

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Currency formats an amount as "Rp 1.500.000", rounded to whole rupiah.
func Currency(amount decimal.Decimal) string {
	return "Rp " + Number(amount)
}

// CurrencyFloat is Currency for raw float inputs. NaN and infinities print as "Rp 0".
func CurrencyFloat(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "Rp 0"
	}
	return Currency(decimal.NewFromFloat(amount))
}

// CurrencyPtr treats nil as zero.
func CurrencyPtr(amount *decimal.Decimal) string {
	if amount == nil {
		return "Rp 0"
	}
	return Currency(*amount)
}

// Number formats an amount with '.' thousand separators and no decimals.
func Number(amount decimal.Decimal) string {
	return printer.Sprintf("%d", amount.Round(0).IntPart())
}

// Percent renders a percentage with one decimal and a '.' point, e.g. "12.5".
func Percent(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "0.0"
	}
	return decimal.NewFromFloat(p).StringFixed(1)
}
