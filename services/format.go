package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// groupSep and currencySep match the fr-FR number format: narrow no-break
	// space between thousands, no-break space before the symbol.
	groupSep    = "\u202f"
	currencySep = "\u00a0"
)

// FormatEUR formats an amount as euros using French conventions, e.g. 1 500,00 €.
// The result always has exactly two decimals.
func FormatEUR(amount float64) string {
	if amount == 0 || math.IsNaN(amount) {
		amount = 0
	}
	return humanize.FormatFloat("#"+groupSep+"###,##", amount) + currencySep + "€"
}

// FormatPercent renders a rate as an integer percentage: 0.2 -> "20%".
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

// FormatQuantity renders a number with at most two decimals and a decimal
// comma; whole numbers have no decimals.
func FormatQuantity(val float64) string {
	return strings.Replace(humanize.FtoaWithDigits(val, 2), ".", ",", 1)
}

// FormatDays renders a phase day count ("3 jours", "0,5 jour"). Zero or less
// renders as a dash.
func FormatDays(days float64) string {
	if days <= 0 {
		return NotApplicable
	}
	unit := "jour"
	if days > 1 {
		unit = "jours"
	}
	return FormatQuantity(days) + " " + unit
}

// NotApplicable is shown where a value does not apply, such as the day count
// of an annual flat rate.
const NotApplicable = "–"
