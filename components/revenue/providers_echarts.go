package revenue

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

var errEmptySeries = errors.New("revenue: chart series is required")

// ChartType selects the go-echarts chart a provider renders.
type ChartType string

const (
	ChartLine   ChartType = "line"
	ChartBar    ChartType = "bar"
	ChartGauge  ChartType = "gauge"
	ChartFunnel ChartType = "funnel"
)

// ChartSeries is a set of values plotted for one legend entry.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartPoint is one value; Missing points leave a gap in line charts.
type ChartPoint struct {
	Label   string  `json:"label,omitempty"`
	Value   float64 `json:"value"`
	Missing bool    `json:"missing,omitempty"`
}

// ChartSpec is the data a chart is drawn from.
type ChartSpec struct {
	XAxis    []string      `json:"x_axis,omitempty"`
	Series   []ChartSeries `json:"series"`
	GoalLine float64       `json:"goal_line,omitempty"`
	Max      float64       `json:"max,omitempty"`
}

// SeriesSource derives a chart spec from the widget context.
type SeriesSource func(meta WidgetContext) (ChartSpec, error)

// EChartsProvider renders server-side chart HTML for a chart type.
type EChartsProvider struct {
	chartType     ChartType
	source        SeriesSource
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache; nil disables caching.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets a static theme.
func WithChartTheme(theme string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.theme = theme
	}
}

// WithChartThemeResolver resolves themes per session.
func WithChartThemeResolver(resolver ThemeResolver) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.themeResolver = resolver
	}
}

// WithChartAssetsHost rewrites the host the ECharts runtime loads from.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = host
	}
}

// NewEChartsProvider builds a provider drawing source as chartType.
func NewEChartsProvider(chartType ChartType, source SeriesSource, opts ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType:  chartType,
		source:     source,
		cache:      sharedChartCache,
		theme:      DefaultChartTheme,
		assetsHost: DefaultEChartsAssetsHost(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch renders the chart for the current session state. Identical specs
// and configuration share one cache entry.
func (p *EChartsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, errEmptySeries
	}
	cfg := meta.Config()
	spec, err := p.source(meta)
	if err != nil {
		return nil, err
	}
	if len(spec.Series) == 0 {
		return nil, fmt.Errorf("%w: %s", errEmptySeries, meta.Definition.Code)
	}

	title := stringValue(cfg["title"], meta.Definition.Name)
	subtitle := stringValue(cfg["subtitle"], "")
	height := stringValue(cfg["height"], defaultChartHeight)
	theme := p.resolveTheme(ctx, meta.State)
	if override := stringValue(cfg["theme"], ""); isChartTheme(override) {
		theme = override
	}

	render := func() (string, error) {
		return p.render(title, subtitle, height, theme, spec)
	}
	var html string
	if p.cache != nil {
		key := fmt.Sprintf("%s:%s:%s:%s:%s", meta.Definition.Code, p.chartType, theme, contentHash(cfg), contentHash(spec))
		html, err = p.cache.GetOrRender(key, render)
	} else {
		html, err = render()
	}
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"chart_html": html,
		"chart_type": string(p.chartType),
		"title":      title,
		"subtitle":   subtitle,
		"theme":      theme,
	}, nil
}

func (p *EChartsProvider) resolveTheme(ctx context.Context, state SessionState) string {
	if p.themeResolver != nil {
		if theme := p.themeResolver(ctx, state); theme != "" {
			return theme
		}
	}
	if p.theme != "" {
		return p.theme
	}
	return DefaultChartTheme
}

func (p *EChartsProvider) render(title, subtitle, height, theme string, spec ChartSpec) (string, error) {
	global := p.globalChartOptions(title, subtitle, height, theme)
	switch p.chartType {
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(spec.XAxis)
		for _, s := range spec.Series {
			line.AddSeries(s.Name, toLineData(s.Points))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		if spec.GoalLine > 0 {
			line.SetSeriesOptions(charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
				Name:  "Meta",
				YAxis: math.Round(spec.GoalLine),
			}))
		}
		return renderChart(line)
	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(spec.XAxis)
		for _, s := range spec.Series {
			bar.AddSeries(s.Name, toBarData(s.Points))
		}
		return renderChart(bar)
	case ChartGauge:
		gauge := charts.NewGauge()
		gauge.SetGlobalOptions(global...)
		for _, s := range spec.Series {
			if len(s.Points) == 0 {
				continue
			}
			gauge.AddSeries(s.Name, []opts.GaugeData{{Name: s.Points[0].Label, Value: s.Points[0].Value}})
		}
		return renderChart(gauge)
	case ChartFunnel:
		funnel := charts.NewFunnel()
		funnel.SetGlobalOptions(global...)
		for _, s := range spec.Series {
			funnel.AddSeries(s.Name, toFunnelData(s.Points))
		}
		return renderChart(funnel)
	default:
		return "", fmt.Errorf("revenue: unsupported chart type: %s", p.chartType)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *EChartsProvider) globalChartOptions(title, subtitle, height, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: height,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		if point.Missing {
			data[i] = opts.LineData{Name: point.Label, Value: "-"}
			continue
		}
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toFunnelData(points []ChartPoint) []opts.FunnelData {
	data := make([]opts.FunnelData, len(points))
	for i, point := range points {
		data[i] = opts.FunnelData{Name: point.Label, Value: point.Value}
	}
	return data
}

// ForecastSeriesSource draws the forecast tab as two lines: closed periods
// and projected periods, joined at the last closed value.
func ForecastSeriesSource(meta WidgetContext) (ChartSpec, error) {
	if meta.Dataset == nil {
		return ChartSpec{}, errMissingDataset
	}
	view := ProjectForecast(meta.Dataset.Forecast, meta.State.ForecastTab)
	actual := make([]ChartPoint, len(view.Combined))
	projected := make([]ChartPoint, len(view.Combined))
	for i, v := range view.Combined {
		label := view.Labels[i]
		closed := i < len(view.Actual)
		actual[i] = ChartPoint{Label: label, Value: v, Missing: !closed}
		joins := i == len(view.Actual)-1
		projected[i] = ChartPoint{Label: label, Value: v, Missing: closed && !joins}
	}
	return ChartSpec{
		XAxis: view.Labels,
		Series: []ChartSeries{
			{Name: "Realizado", Points: actual},
			{Name: "Projetado", Points: projected},
		},
		GoalLine: view.GoalLine,
		Max:      view.ChartMax,
	}, nil
}

// GapSeriesSource draws the closed share of plan.
func GapSeriesSource(meta WidgetContext) (ChartSpec, error) {
	if meta.Dataset == nil {
		return ChartSpec{}, errMissingDataset
	}
	gap := ProjectGap(meta.Dataset.Plan, -1)
	return ChartSpec{
		Series: []ChartSeries{{
			Name:   "Plan",
			Points: []ChartPoint{{Label: gap.PercentageLabel, Value: math.Round(gap.Percentage*10) / 10}},
		}},
		Max: 100,
	}, nil
}

// FunnelSeriesSource draws stage volumes.
func FunnelSeriesSource(meta WidgetContext) (ChartSpec, error) {
	if meta.Dataset == nil {
		return ChartSpec{}, errMissingDataset
	}
	points := make([]ChartPoint, len(meta.Dataset.Funnel.Stages))
	for i, s := range meta.Dataset.Funnel.Stages {
		points[i] = ChartPoint{Label: s.Name, Value: float64(s.Volume)}
	}
	return ChartSpec{Series: []ChartSeries{{Name: "Volume", Points: points}}}, nil
}

// SegmentSeriesSource draws the configured metrics for the rows currently
// visible in the performance table, so sorting and filtering carry over.
func SegmentSeriesSource(meta WidgetContext) (ChartSpec, error) {
	wanted := stringSliceValue(meta.Config()["metrics"])
	if len(wanted) == 0 {
		wanted = metricKeys
	}
	rows := meta.State.Table.Rows
	spec := ChartSpec{XAxis: make([]string, len(rows))}
	for i, r := range rows {
		spec.XAxis[i] = r.ACV
	}
	for _, key := range wanted {
		label := key
		for _, m := range metricColumns {
			if m.key == key {
				label = m.label
			}
		}
		series := ChartSeries{Name: label}
		for _, r := range rows {
			for _, cell := range r.Cells {
				if cell.Key == key {
					series.Points = append(series.Points, ChartPoint{Label: r.ACV, Value: cell.Value})
				}
			}
		}
		if len(series.Points) > 0 {
			spec.Series = append(spec.Series, series)
		}
	}
	return spec, nil
}
