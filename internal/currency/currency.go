// Package currency renders rupiah amounts for display. Formatting sits on
// top of the aggregator's numeric output; the ledger itself only ever deals
// in whole-rupiah integers.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR formats a whole-rupiah amount the way the site shows it:
// "Rp50.000", no fraction digits.
func FormatIDR(amount int64) string {
	return printer.Sprintf("Rp%d", amount)
}
