package revenue

import (
	"fmt"
	"math"

	"github.com/goliatone/go-revenue-dashboard/pkg/format"
)

// GapView is the gap-to-plan projection.
type GapView struct {
	Plan            float64 `json:"plan"`
	Closed          float64 `json:"closed"`
	Gap             float64 `json:"gap"`
	Percentage      float64 `json:"percentage"`
	PercentageLabel string  `json:"percentage_label"`
	PlanLabel       string  `json:"plan_label"`
	ClosedLabel     string  `json:"closed_label"`
	GapLabel        string  `json:"gap_label"`
	DisplayedGap    float64 `json:"displayed_gap"`
	DisplayedLabel  string  `json:"displayed_label"`
	Animating       bool    `json:"animating"`
}

// ProjectGap derives the gap and the closed share of plan. displayed is the
// current count-up value; pass a negative number to show the full gap.
func ProjectGap(p Plan, displayed float64) GapView {
	gap := p.Plan - p.Closed
	v := GapView{
		Plan:        p.Plan,
		Closed:      p.Closed,
		Gap:         gap,
		PlanLabel:   format.Currency(p.Plan),
		ClosedLabel: format.Currency(p.Closed),
		GapLabel:    format.Currency(gap),
	}
	if p.Plan > 0 {
		v.Percentage = p.Closed / p.Plan * 100
	}
	v.PercentageLabel = format.PercentageFixed(v.Percentage, 1)
	if displayed < 0 {
		displayed = gap
	}
	v.DisplayedGap = displayed
	v.DisplayedLabel = format.Currency(displayed)
	v.Animating = displayed != gap
	return v
}

// ForecastTab selects the forecast period granularity.
type ForecastTab string

const (
	TabMonthly   ForecastTab = "mensal"
	TabQuarterly ForecastTab = "trimestral"
)

// ParseForecastTab accepts the tab keys; anything else is rejected.
func ParseForecastTab(v string) (ForecastTab, bool) {
	switch ForecastTab(v) {
	case TabMonthly, TabQuarterly:
		return ForecastTab(v), true
	default:
		return "", false
	}
}

var monthLabels = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// ForecastView is the projection of one forecast tab.
type ForecastView struct {
	Tab             ForecastTab `json:"tab"`
	Labels          []string    `json:"labels"`
	Actual          []float64   `json:"actual"`
	Forecast        []float64   `json:"forecast"`
	Combined        []float64   `json:"combined"`
	ChartMax        float64     `json:"chart_max"`
	GoalLine        float64     `json:"goal_line"`
	GoalLabel       string      `json:"goal_label"`
	GridLabels      []string    `json:"grid_labels"`
	Heights         []float64   `json:"heights"`
	ActualTotal     float64     `json:"actual_total"`
	ActualLabel     string      `json:"actual_label"`
	ProjectedTotal  float64     `json:"projected_total"`
	ProjectedLabel  string      `json:"projected_label"`
	Target          float64     `json:"target"`
	TargetLabel     string      `json:"target_label"`
	Progress        float64     `json:"progress"`
	ProgressLabel   string      `json:"progress_label"`
	ActualChange    string      `json:"actual_change"`
	ProjectedChange string      `json:"projected_change"`
}

// ProjectForecast builds the chart scale and totals for a tab. The chart
// maximum is 110% of the largest point, the goal line sits at 70% of it and
// progress compares the projected total against the target.
func ProjectForecast(f Forecast, tab ForecastTab) ForecastView {
	series := f.Monthly
	if tab == TabQuarterly {
		series = f.Quarterly
	} else {
		tab = TabMonthly
	}
	combined := make([]float64, 0, len(series.Actual)+len(series.Forecast))
	combined = append(combined, series.Actual...)
	combined = append(combined, series.Forecast...)

	v := ForecastView{
		Tab:      tab,
		Actual:   append([]float64(nil), series.Actual...),
		Forecast: append([]float64(nil), series.Forecast...),
		Combined: combined,
		Target:   f.Target,
	}
	v.Labels = periodLabels(tab, len(combined))

	peak := 0.0
	for _, val := range combined {
		peak = math.Max(peak, val)
	}
	v.ChartMax = peak * 1.1
	v.GoalLine = v.ChartMax * 0.7
	v.GoalLabel = "Meta: " + format.Currency(v.GoalLine)
	v.GridLabels = make([]string, 5)
	for i := range v.GridLabels {
		v.GridLabels[i] = format.Currency(v.ChartMax - float64(i)*(v.ChartMax/4))
	}
	v.Heights = make([]float64, len(combined))
	for i, val := range combined {
		if v.ChartMax > 0 {
			v.Heights[i] = val / v.ChartMax * 100
		}
	}

	v.ActualTotal = sum(series.Actual)
	v.ProjectedTotal = sum(combined)
	v.ActualLabel = format.Currency(v.ActualTotal)
	v.ProjectedLabel = format.Currency(v.ProjectedTotal)
	v.TargetLabel = format.Currency(f.Target)
	if f.Target > 0 {
		v.Progress = v.ProjectedTotal / f.Target * 100
	}
	v.ProgressLabel = format.Percentage(math.Round(v.Progress)) + " da meta"
	v.ActualChange = format.Signed(f.ActualChange)
	v.ProjectedChange = format.Signed(f.ProjectedChange)
	return v
}

func periodLabels(tab ForecastTab, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		if tab == TabQuarterly {
			labels[i] = fmt.Sprintf("Q%d", i%4+1)
			continue
		}
		labels[i] = monthLabels[i%len(monthLabels)]
	}
	return labels
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
