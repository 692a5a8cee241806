package revenue

import (
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-revenue-dashboard/pkg/format"
	"github.com/goliatone/go-revenue-dashboard/pkg/responsive"
)

// SparkPoint is one vertex of a sparkline in a 0..100 viewbox.
type SparkPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sparkline maps values into a 0..100 box: y = 100 - (v-min)/range*80, so the
// highest point sits at 20 and the lowest at 100. A flat series is drawn at 60.
func Sparkline(values []float64) []SparkPoint {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	points := make([]SparkPoint, len(values))
	for i, v := range values {
		p := SparkPoint{Y: 60}
		if span > 0 {
			p.Y = 100 - (v-lo)/span*80
		}
		if len(values) > 1 {
			p.X = float64(i) / float64(len(values)-1) * 100
		}
		points[i] = p
	}
	return points
}

// SparklinePath renders points as an SVG polyline attribute.
func SparklinePath(points []SparkPoint) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// CategoryView is the projection of a forecast category card.
type CategoryView struct {
	ForecastCategory
	AmountLabel   string       `json:"amount_label"`
	HasProgress   bool         `json:"has_progress"`
	ProgressWidth float64      `json:"progress_width"`
	ProgressLabel string       `json:"progress_label"`
	Spark         []SparkPoint `json:"spark,omitempty"`
	SparkPath     string       `json:"spark_path,omitempty"`
	Active        bool         `json:"active"`
}

// ProjectCategories formats every card. compact abbreviates amounts; active
// marks the carousel card shown on mobile.
func ProjectCategories(categories []ForecastCategory, compact bool, active int) []CategoryView {
	out := make([]CategoryView, len(categories))
	for i, c := range categories {
		v := CategoryView{ForecastCategory: c, Active: i == active}
		if compact {
			v.AmountLabel = format.Compact(c.Amount)
		} else {
			v.AmountLabel = format.Currency(c.Amount)
		}
		if c.Percentage != nil {
			v.HasProgress = true
			v.ProgressWidth = math.Min(*c.Percentage, 100)
			v.ProgressLabel = format.Percentage(*c.Percentage) + " of Plan"
		}
		if len(c.Sparkline) > 0 {
			v.Spark = Sparkline(c.Sparkline)
			v.SparkPath = SparklinePath(v.Spark)
		}
		out[i] = v
	}
	return out
}

// CompactAmounts reports whether amounts are abbreviated at width. Before
// mount the full amount is shown.
func CompactAmounts(width int, mounted bool) bool {
	return mounted && width < responsive.XLarge
}

// Carousel steps through n cards with wrap-around.
type Carousel struct {
	index int
	n     int
}

// NewCarousel starts at the first card.
func NewCarousel(n int) *Carousel {
	return &Carousel{n: n}
}

// Index is the active card.
func (c *Carousel) Index() int { return c.index }

// Next advances with wrap-around.
func (c *Carousel) Next() int {
	if c.n > 0 {
		c.index = (c.index + 1) % c.n
	}
	return c.index
}

// Prev steps back with wrap-around.
func (c *Carousel) Prev() int {
	if c.n > 0 {
		c.index = (c.index - 1 + c.n) % c.n
	}
	return c.index
}

// Select jumps to i when in range.
func (c *Carousel) Select(i int) bool {
	if i < 0 || i >= c.n {
		return false
	}
	c.index = i
	return true
}

// KPIView is a formatted KPI card.
type KPIView struct {
	KPI
	ValueLabel  string `json:"value_label"`
	ChangeLabel string `json:"change_label"`
	Positive    bool   `json:"positive"`
	Suffix      string `json:"suffix"`
}

const kpiSuffix = "vs mês anterior"

// ProjectKPIs formats KPI values by kind. A zero change counts as positive.
func ProjectKPIs(kpis []KPI) []KPIView {
	out := make([]KPIView, len(kpis))
	for i, k := range kpis {
		v := KPIView{
			KPI:         k,
			ChangeLabel: format.Signed(k.Change),
			Positive:    k.Change >= 0,
			Suffix:      kpiSuffix,
		}
		switch k.Kind {
		case KPICurrency:
			v.ValueLabel = format.Currency(k.Value)
		case KPIPercentage:
			v.ValueLabel = format.Percentage(k.Value)
		case KPIText:
			v.ValueLabel = k.Text
		default:
			v.ValueLabel = format.Number(k.Value)
		}
		out[i] = v
	}
	return out
}
