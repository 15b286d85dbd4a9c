package utils

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount rounds to cents and groups thousands: 1454545.454 -> "1,454,545.45".
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return printer.Sprintf("%.2f", rounded)
}

// FormatDelta is FormatAmount with an explicit sign for positive values.
func FormatDelta(v float64) string {
	s := FormatAmount(v)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	if decimal.NewFromFloat(v).Round(2).IsPositive() {
		return "+" + s
	}
	return s
}
