package analysis

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown in place of a metric that cannot be computed
const NotAvailable = "N/A"

const currencyPrefix = "Rs. "

// FormatCurrency renders an amount in whole rupees with thousands separators, e.g. "Rs. 30,000"
func FormatCurrency(amount float64) string {
	return currencyPrefix + FormatAmount(amount)
}

// FormatAmount renders an amount rounded half to even to whole units with thousands separators
func FormatAmount(amount float64) string {
	whole := decimal.NewFromFloat(amount).RoundBank(0).IntPart()
	return message.NewPrinter(language.English).Sprintf("%d", whole)
}

// FormatScore renders a score with one decimal place
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatPercent renders a percentage with one decimal place, e.g. "33.3%"
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// FormatPlain renders a number without trailing zeros, e.g. 750
func FormatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
