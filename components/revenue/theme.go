package revenue

import (
	"context"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-revenue-dashboard/pkg/format"
)

var toneClasses = map[format.Tone]string{
	format.ToneSuccess: "text-emerald-600 font-semibold",
	format.ToneInfo:    "text-sky-600",
	format.ToneWarning: "text-amber-600",
	format.ToneDanger:  "text-rose-600",
}

// ToneClass returns the utility classes for a percentage tier.
func ToneClass(t format.Tone) string {
	if class, ok := toneClasses[t]; ok {
		return class
	}
	return "text-slate-600"
}

var conversionClasses = map[ConversionTier]string{
	ConversionHigh: "bg-emerald-500",
	ConversionMid:  "bg-amber-400",
	ConversionLow:  "bg-rose-500",
}

// ConversionClass colours a funnel stage by its conversion tier.
func ConversionClass(t ConversionTier) string {
	return conversionClasses[t]
}

// BadgeClass maps a dataset tone name (success, warning, neutral...) to classes.
func BadgeClass(tone string) string {
	switch strings.ToLower(strings.TrimSpace(tone)) {
	case "success":
		return "bg-emerald-100 text-emerald-700"
	case "warning":
		return "bg-amber-100 text-amber-700"
	case "danger":
		return "bg-rose-100 text-rose-700"
	case "info":
		return "bg-sky-100 text-sky-700"
	case "accent":
		return "bg-violet-100 text-violet-700"
	default:
		return "bg-slate-100 text-slate-700"
	}
}

// ThemeResolver selects the chart theme for a session.
type ThemeResolver func(ctx context.Context, state SessionState) string

// DefaultChartTheme is used when no resolver or override applies.
const DefaultChartTheme = types.ThemeWesteros

// ChartThemes lists the go-echarts themes accepted as widget overrides.
var ChartThemes = []string{
	types.ThemeWesteros,
	types.ThemeMacarons,
	types.ThemeWalden,
	types.ThemeInfographic,
	types.ThemeWonderland,
}

func isChartTheme(name string) bool {
	for _, theme := range ChartThemes {
		if theme == name {
			return true
		}
	}
	return false
}
