package revenue

import (
	"github.com/goliatone/go-revenue-dashboard/pkg/responsive"
)

// Widget codes of the revenue page.
const (
	WidgetFilters      = "revenue.widget.filters"
	WidgetGap          = "revenue.widget.gap_to_plan"
	WidgetCategories   = "revenue.widget.forecast_categories"
	WidgetFunnel       = "revenue.widget.funnel"
	WidgetPerformance  = "revenue.widget.performance"
	WidgetForecast     = "revenue.widget.forecast"
	WidgetKPIs         = "revenue.widget.kpis"
	WidgetIntelligence = "revenue.widget.intelligence"

	WidgetForecastChart = "revenue.widget.forecast_chart"
	WidgetGapGauge      = "revenue.widget.gap_gauge"
	WidgetFunnelChart   = "revenue.widget.funnel_chart"
	WidgetSegmentChart  = "revenue.widget.segment_chart"
)

// Page areas, rendered in this order.
const (
	AreaHeader = "revenue.page.header"
	AreaMain   = "revenue.page.main"
	AreaCharts = "revenue.page.charts"
	AreaPanel  = "revenue.page.panel"
)

// Areas lists the page areas in render order.
var Areas = []string{AreaHeader, AreaMain, AreaCharts, AreaPanel}

func titleSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"title": map[string]any{"type": "string", "minLength": 1},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func chartSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"subtitle": map[string]any{"type": "string"},
		"theme":    map[string]any{"type": "string", "enum": ChartThemes},
		"height":   map[string]any{"type": "string", "pattern": "^[0-9]+(px|%)$"},
	}
	for k, v := range extra {
		props[k] = v
	}
	return titleSchema(props)
}

var metricKeys = func() []string {
	keys := make([]string, len(metricColumns))
	for i, m := range metricColumns {
		keys[i] = m.key
	}
	return keys
}()

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        WidgetFilters,
		Name:        "Filtros",
		Description: "Single-select filters for period, segment, team and channel",
		Category:    "controls",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetGap,
		Name:        "Gap to Plan",
		Description: "Remaining revenue to plan with a count-up animation",
		Category:    "plan",
		Kind:        responsive.KindGap,
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetCategories,
		Name:        "Forecast Categories",
		Description: "Forecast category cards with sparklines",
		Category:    "forecast",
		Kind:        responsive.KindCategories,
		Schema: titleSchema(map[string]any{
			"compact": map[string]any{"type": "string", "enum": []string{"auto", "always", "never"}},
		}),
	},
	{
		Code:        WidgetFunnel,
		Name:        "Revenue Funnel",
		Description: "Seven stage revenue pipeline",
		Category:    "funnel",
		Kind:        responsive.KindFunnel,
		Schema: titleSchema(map[string]any{
			"show_drift": map[string]any{"type": "boolean"},
		}),
	},
	{
		Code:        WidgetPerformance,
		Name:        "Performance por Segmento",
		Description: "Sortable and searchable segment table",
		Category:    "table",
		Schema: titleSchema(map[string]any{
			"placeholder": map[string]any{"type": "string"},
		}),
	},
	{
		Code:        WidgetForecast,
		Name:        "Forecast de Receita",
		Description: "Monthly and quarterly forecast against the yearly target",
		Category:    "forecast",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetKPIs,
		Name:        "KPIs",
		Description: "Headline metrics",
		Category:    "stats",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetIntelligence,
		Name:        "Intelligence Hub",
		Description: "Insights, foresights and assistant transcript",
		Category:    "panel",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetForecastChart,
		Name:        "Forecast Chart",
		Description: "Actual and projected revenue line with the goal mark",
		Category:    "charts",
		Schema:      chartSchema(nil),
	},
	{
		Code:        WidgetGapGauge,
		Name:        "Plan Gauge",
		Description: "Closed share of plan",
		Category:    "charts",
		Schema:      chartSchema(nil),
	},
	{
		Code:        WidgetFunnelChart,
		Name:        "Funnel Chart",
		Description: "Stage volumes as a funnel",
		Category:    "charts",
		Schema:      chartSchema(nil),
	},
	{
		Code:        WidgetSegmentChart,
		Name:        "Segment Chart",
		Description: "Stage percentages per ACV segment of the current table view",
		Category:    "charts",
		Schema: chartSchema(map[string]any{
			"metrics": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "enum": metricKeys},
			},
		}),
	},
}

// DefaultWidgetDefinitions returns the built-in revenue widgets.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}

// DefaultLayout places every built-in widget on the revenue page.
func DefaultLayout() []WidgetPlacement {
	return []WidgetPlacement{
		{Code: WidgetFilters, Area: AreaHeader},
		{Code: WidgetGap, Area: AreaMain, Configuration: map[string]any{"title": "Gap to Plan"}},
		{Code: WidgetCategories, Area: AreaMain, Configuration: map[string]any{"compact": "auto"}},
		{Code: WidgetFunnel, Area: AreaMain, Configuration: map[string]any{"title": "Revenue Funnel"}},
		{Code: WidgetPerformance, Area: AreaMain, Configuration: map[string]any{
			"title":       "Performance por Segmento",
			"placeholder": "Buscar segmento...",
		}},
		{Code: WidgetForecast, Area: AreaMain, Configuration: map[string]any{"title": "Forecast de Receita"}},
		{Code: WidgetKPIs, Area: AreaMain},
		{Code: WidgetForecastChart, Area: AreaCharts, Configuration: map[string]any{"title": "Forecast de Receita"}},
		{Code: WidgetGapGauge, Area: AreaCharts, Configuration: map[string]any{"title": "Plan"}},
		{Code: WidgetFunnelChart, Area: AreaCharts, Configuration: map[string]any{"title": "Funnel"}},
		{Code: WidgetSegmentChart, Area: AreaCharts, Configuration: map[string]any{
			"title":   "Performance por Segmento",
			"metrics": []string{"prioritize", "onboarding", "retention", "expansion"},
		}},
		{Code: WidgetIntelligence, Area: AreaPanel, Configuration: map[string]any{"title": "Intelligence Hub"}},
	}
}
