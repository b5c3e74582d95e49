package scale

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// XTickValues are the fixed wealth ticks drawn under the plot.
var XTickValues = []float64{400, 4000, 40000}

// FormatCurrency renders v as whole dollars with digit grouping.
func FormatCurrency(v float64) string {
	return currencyPrinter.Sprintf("$%d", int64(math.Round(v)))
}

// FormatNumber renders v with digit grouping and no decimals.
func FormatNumber(v float64) string {
	return currencyPrinter.Sprintf("%d", int64(math.Round(v)))
}
