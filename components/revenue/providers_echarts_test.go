package revenue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartHTML(data WidgetData) string {
	html, _ := data["chart_html"].(string)
	return html
}

func TestEChartsProvidersRenderDefaultCharts(t *testing.T) {
	state := newTestSession(t).Snapshot(providerClock)
	tests := []struct {
		code      string
		chartType ChartType
	}{
		{WidgetForecastChart, ChartLine},
		{WidgetGapGauge, ChartGauge},
		{WidgetFunnelChart, ChartFunnel},
		{WidgetSegmentChart, ChartBar},
	}
	for _, tc := range tests {
		data := fetch(t, tc.code, nil, state)
		assert.Equal(t, string(tc.chartType), data["chart_type"], tc.code)
		assert.Contains(t, chartHTML(data), "echarts", tc.code)
		assert.Equal(t, DefaultChartTheme, data["theme"], tc.code)
	}
}

func TestEChartsProviderThemeOverrideAndResolver(t *testing.T) {
	state := newTestSession(t).Snapshot(providerClock)
	provider := NewEChartsProvider(ChartFunnel, FunnelSeriesSource,
		WithChartCache(nil),
		WithChartThemeResolver(func(context.Context, SessionState) string { return types.ThemeMacarons }),
	)

	data, err := provider.Fetch(context.Background(), providerContext(t, WidgetFunnelChart, nil, state))
	require.NoError(t, err)
	assert.Equal(t, types.ThemeMacarons, data["theme"])

	data, err = provider.Fetch(context.Background(), providerContext(t, WidgetFunnelChart, map[string]any{"theme": types.ThemeWalden}, state))
	require.NoError(t, err)
	assert.Equal(t, types.ThemeWalden, data["theme"])

	data, err = provider.Fetch(context.Background(), providerContext(t, WidgetFunnelChart, map[string]any{"theme": "neon"}, state))
	require.NoError(t, err)
	assert.Equal(t, types.ThemeMacarons, data["theme"])
}

type countingCache struct {
	inner *ChartCache
	calls atomic.Int32
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	return c.inner.GetOrRender(key, func() (string, error) {
		c.calls.Add(1)
		return render()
	})
}

func TestEChartsProviderCachesIdenticalSpecs(t *testing.T) {
	cache := &countingCache{inner: NewChartCache(time.Minute)}
	provider := NewEChartsProvider(ChartGauge, GapSeriesSource, WithChartCache(cache))
	meta := providerContext(t, WidgetGapGauge, map[string]any{"title": "Plan"}, newTestSession(t).Snapshot(providerClock))

	first, err := provider.Fetch(context.Background(), meta)
	require.NoError(t, err)
	second, err := provider.Fetch(context.Background(), meta)
	require.NoError(t, err)
	assert.Equal(t, chartHTML(first), chartHTML(second))
	assert.Equal(t, int32(1), cache.calls.Load())

	meta.Placement.Configuration = map[string]any{"title": "Plano"}
	_, err = provider.Fetch(context.Background(), meta)
	require.NoError(t, err)
	assert.Equal(t, int32(2), cache.calls.Load())
}

func TestEChartsProviderRejectsEmptySeries(t *testing.T) {
	provider := NewEChartsProvider(ChartBar, func(WidgetContext) (ChartSpec, error) { return ChartSpec{}, nil })
	_, err := provider.Fetch(context.Background(), WidgetContext{})
	require.ErrorIs(t, err, errEmptySeries)

	_, err = NewEChartsProvider(ChartBar, nil).Fetch(context.Background(), WidgetContext{})
	require.ErrorIs(t, err, errEmptySeries)
}

func TestEChartsProviderUnsupportedType(t *testing.T) {
	provider := NewEChartsProvider(ChartType("radar"), FunnelSeriesSource, WithChartCache(nil))
	_, err := provider.Fetch(context.Background(), WidgetContext{Dataset: MustDefaultDataset()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported chart type")
}

func TestForecastSeriesSourceJoinsLines(t *testing.T) {
	spec, err := ForecastSeriesSource(WidgetContext{Dataset: MustDefaultDataset(), State: SessionState{ForecastTab: TabMonthly}})
	require.NoError(t, err)
	require.Len(t, spec.Series, 2)
	actual, projected := spec.Series[0].Points, spec.Series[1].Points

	assert.False(t, actual[5].Missing)
	assert.True(t, actual[6].Missing)
	assert.True(t, projected[4].Missing)
	assert.False(t, projected[5].Missing)
	assert.False(t, projected[11].Missing)
	assert.InDelta(t, 2_040_500, spec.GoalLine, 0.01)
}

func TestGapSeriesSourceRoundsPercentage(t *testing.T) {
	spec, err := GapSeriesSource(WidgetContext{Dataset: MustDefaultDataset()})
	require.NoError(t, err)
	point := spec.Series[0].Points[0]
	assert.Equal(t, 49.4, point.Value)
	assert.Equal(t, "49.4%", point.Label)
}

func TestSegmentSeriesSourceFollowsTable(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.setSort("expansion"))
	require.NoError(t, s.setSort("expansion"))
	state := s.Snapshot(providerClock)

	spec, err := SegmentSeriesSource(WidgetContext{
		Placement: WidgetPlacement{Configuration: map[string]any{"metrics": []any{"expansion", "retention"}}},
		State:     state,
	})
	require.NoError(t, err)
	assert.Equal(t, "150k+", spec.XAxis[0])
	require.Len(t, spec.Series, 2)
	assert.Equal(t, "Expansion", spec.Series[0].Name)
	assert.Equal(t, float64(130), spec.Series[0].Points[0].Value)
}
