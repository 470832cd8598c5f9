// Package format renders amounts the way the Israeli market writes them:
// whole shekels with he-IL digit grouping, one-decimal percentages, and
// whole-kWh energy figures.
package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Hebrew)

// NIS formats a currency amount in whole shekels.
func NIS(amount float64) string {
	return printer.Sprintf("₪%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// Percent formats a percentage with one decimal place.
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// Kwh formats an energy amount in whole kilowatt-hours.
func Kwh(value float64) string {
	return humanize.CommafWithDigits(value, 0) + " kWh"
}
