package revenue

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-revenue-dashboard/pkg/responsive"
)

var errMissingDataset = errors.New("revenue: provider requires a dataset")

func defaultProviders() map[string]Provider {
	return map[string]Provider{
		WidgetFilters:       ProviderFunc(filtersProvider),
		WidgetGap:           ProviderFunc(gapProvider),
		WidgetCategories:    ProviderFunc(categoriesProvider),
		WidgetFunnel:        ProviderFunc(funnelProvider),
		WidgetPerformance:   ProviderFunc(performanceProvider),
		WidgetForecast:      ProviderFunc(forecastProvider),
		WidgetKPIs:          ProviderFunc(kpisProvider),
		WidgetIntelligence:  ProviderFunc(intelligenceProvider),
		WidgetForecastChart: NewEChartsProvider(ChartLine, ForecastSeriesSource),
		WidgetGapGauge:      NewEChartsProvider(ChartGauge, GapSeriesSource),
		WidgetFunnelChart:   NewEChartsProvider(ChartFunnel, FunnelSeriesSource),
		WidgetSegmentChart:  NewEChartsProvider(ChartBar, SegmentSeriesSource),
	}
}

func widgetData(meta WidgetContext, fallbackTitle string) (WidgetData, error) {
	if meta.Dataset == nil {
		return nil, errMissingDataset
	}
	return WidgetData{"title": stringValue(meta.Config()["title"], fallbackTitle)}, nil
}

func layoutFor(meta WidgetContext) responsive.LayoutDescriptor {
	kind := meta.Definition.Kind
	return responsive.Describe(kind, meta.State.Class(kind))
}

func filtersProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	data, err := widgetData(meta, "Filtros")
	if err != nil {
		return nil, err
	}
	data["view"] = meta.State.Filters
	return data, nil
}

func gapProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	data, err := widgetData(meta, "Gap to Plan")
	if err != nil {
		return nil, err
	}
	displayed := -1.0
	if meta.State.Animating {
		displayed = meta.State.DisplayedGap
	}
	data["view"] = ProjectGap(meta.Dataset.Plan, displayed)
	data["layout"] = layoutFor(meta)
	return data, nil
}

func categoriesProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	data, err := widgetData(meta, "Forecast Categories")
	if err != nil {
		return nil, err
	}
	compact := CompactAmounts(meta.State.Width, meta.State.Mounted)
	switch stringValue(meta.Config()["compact"], "auto") {
	case "always":
		compact = true
	case "never":
		compact = false
	}
	layout := layoutFor(meta)
	data["cards"] = ProjectCategories(meta.Dataset.Categories, compact, meta.State.CarouselIndex)
	data["compact"] = compact
	data["layout"] = layout
	data["carousel"] = layout.Mode == responsive.LayoutCarousel
	return data, nil
}

func funnelProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	data, err := widgetData(meta, "Revenue Funnel")
	if err != nil {
		return nil, err
	}
	geometry := ProjectFunnel(meta.Dataset.Funnel.Stages, meta.Dataset.Funnel.TerminalOutput)
	data["stages"] = geometry
	data["expanded"] = meta.State.ExpandedStage
	data["layout"] = layoutFor(meta)
	if boolValue(meta.Config()["show_drift"]) {
		data["drift"] = ConversionDrift(geometry)
	}
	return data, nil
}

func performanceProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	data, err := widgetData(meta, "Performance por Segmento")
	if err != nil {
		return nil, err
	}
	data["placeholder"] = stringValue(meta.Config()["placeholder"], "Buscar segmento...")
	data["table"] = meta.State.Table
	return data, nil
}

func forecastProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	data, err := widgetData(meta, "Forecast de Receita")
	if err != nil {
		return nil, err
	}
	data["view"] = ProjectForecast(meta.Dataset.Forecast, meta.State.ForecastTab)
	data["year"] = meta.Dataset.Forecast.Year
	data["tabs"] = []ForecastTab{TabMonthly, TabQuarterly}
	return data, nil
}

func kpisProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	data, err := widgetData(meta, "KPIs")
	if err != nil {
		return nil, err
	}
	data["cards"] = ProjectKPIs(meta.Dataset.KPIs)
	return data, nil
}

func intelligenceProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	data, err := widgetData(meta, "Intelligence Hub")
	if err != nil {
		return nil, err
	}
	data["view"] = ProjectIntelligence(meta.Dataset.Intelligence, meta.State.PanelOpen, meta.State.PanelTab)
	return data, nil
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	default:
		return false
	}
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
