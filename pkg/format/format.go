// Package format renders revenue figures the way the dashboard displays them:
// BRL currency with pt-BR grouping, compact currency, percentages and tiers.
package format

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is the display locale used for grouping separators.
var Locale = language.BrazilianPortuguese

const currencySymbol = "R$"

// Currency renders v as whole BRL, e.g. 1075000 -> "R$ 1.075.000".
// The symbol is separated by a regular space.
func Currency(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return "-" + currencySymbol + " " + grouped(-n)
	}
	return currencySymbol + " " + grouped(n)
}

// Number renders v as a pt-BR grouped integer, e.g. 1200 -> "1.200".
func Number(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return "-" + grouped(-n)
	}
	return grouped(n)
}

func grouped(n int64) string {
	return message.NewPrinter(Locale).Sprintf("%d", n)
}

// Percentage renders the shortest decimal form of v followed by "%".
func Percentage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// PercentageFixed renders v with a fixed number of decimals followed by "%".
func PercentageFixed(v float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	return strconv.FormatFloat(v, 'f', digits, 64) + "%"
}

// Signed renders a change value with an explicit sign for non-negative
// values, e.g. "+3.5%", "+0%", "-2.3%".
func Signed(v float64) string {
	if v >= 0 {
		return "+" + Percentage(v)
	}
	return Percentage(v)
}

// Compact abbreviates large currency amounts:
//
//	>= 1e9 -> "R$ 1.0B", >= 1e6 -> "R$ 1.0M", >= 1e3 -> "R$ 1.0K", else "R$ 999".
func Compact(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%s %.1fB", currencySymbol, v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%s %.1fM", currencySymbol, v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%s %.1fK", currencySymbol, v/1e3)
	default:
		return currencySymbol + " " + strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Clock renders the shell clock as HH:MM (24h).
func Clock(t time.Time) string {
	return t.Format("15:04")
}
