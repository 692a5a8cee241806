package revenue

import (
	"github.com/goliatone/go-revenue-dashboard/pkg/format"
	"github.com/goliatone/go-revenue-dashboard/pkg/table"
)

// metricColumns lists the percentage columns of the performance table in display order.
var metricColumns = []struct {
	key   string
	label string
	get   func(PerformanceRow) float64
}{
	{"awareness", "Awareness", func(r PerformanceRow) float64 { return r.Awareness }},
	{"education", "Education", func(r PerformanceRow) float64 { return r.Education }},
	{"prioritize", "Prioritize", func(r PerformanceRow) float64 { return r.Prioritize }},
	{"selection", "Selection", func(r PerformanceRow) float64 { return r.Selection }},
	{"onboarding", "Onboarding", func(r PerformanceRow) float64 { return r.Onboarding }},
	{"retention", "Retention", func(r PerformanceRow) float64 { return r.Retention }},
	{"expansion", "Expansion", func(r PerformanceRow) float64 { return r.Expansion }},
}

// PerformanceSchema describes the performance table. ACV and sales cycle are
// searchable; every column is sortable.
func PerformanceSchema() (*table.Schema[PerformanceRow], error) {
	cols := []table.Column[PerformanceRow]{
		{Key: "acv", Label: "ACV", Kind: table.Text, Searchable: true, Text: func(r PerformanceRow) string { return r.ACV }},
		{Key: "salesCycle", Label: "Ciclo Vendas", Kind: table.Text, Searchable: true, Text: func(r PerformanceRow) string { return r.SalesCycle }},
	}
	for _, m := range metricColumns {
		cols = append(cols, table.Column[PerformanceRow]{Key: m.key, Label: m.label, Kind: table.Number, Number: m.get})
	}
	return table.NewSchema(cols...)
}

// NewPerformanceEngine builds a table engine over rows.
func NewPerformanceEngine(rows []PerformanceRow) (*table.Engine[PerformanceRow], error) {
	schema, err := PerformanceSchema()
	if err != nil {
		return nil, err
	}
	return table.NewEngine(schema, rows), nil
}

// MetricCell is one formatted percentage cell.
type MetricCell struct {
	Key        string  `json:"key"`
	Value      float64 `json:"value"`
	Label      string  `json:"label"`
	Tone       string  `json:"tone"`
	Emphasized bool    `json:"emphasized"`
	Class      string  `json:"class"`
}

// PerformanceRowView is a formatted table row.
type PerformanceRowView struct {
	ACV        string       `json:"acv"`
	SalesCycle string       `json:"sales_cycle"`
	Cells      []MetricCell `json:"cells"`
}

// TableView is the derived table with header metadata.
type TableView struct {
	Columns []table.ColumnInfo   `json:"columns"`
	Rows    []PerformanceRowView `json:"rows"`
	Filter  string               `json:"filter"`
	Total   int                  `json:"total"`
	Empty   bool                 `json:"empty"`
}

// ProjectTable formats the derived rows of engine.
func ProjectTable(engine *table.Engine[PerformanceRow]) TableView {
	rows := engine.Derive()
	view := TableView{
		Columns: engine.Columns(),
		Rows:    make([]PerformanceRowView, 0, len(rows)),
		Filter:  engine.Filter(),
		Total:   engine.Len(),
		Empty:   len(rows) == 0,
	}
	for _, r := range rows {
		rv := PerformanceRowView{ACV: r.ACV, SalesCycle: r.SalesCycle}
		for _, m := range metricColumns {
			value := m.get(r)
			tone := format.Tier(value)
			rv.Cells = append(rv.Cells, MetricCell{
				Key:        m.key,
				Value:      value,
				Label:      format.Percentage(value),
				Tone:       tone.String(),
				Emphasized: tone.Emphasized(),
				Class:      ToneClass(tone),
			})
		}
		view.Rows = append(view.Rows, rv)
	}
	return view
}
