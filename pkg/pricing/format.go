package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders an amount as a display currency string with grouping
// separators, e.g. 1234567.89 -> "$1,234,567.89".
func FormatPrice(amount float64) string {
	return usPrinter.Sprintf("$%.2f", Round2(amount))
}
