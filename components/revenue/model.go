package revenue

// ShellInfo carries the navigation shell's static labels.
type ShellInfo struct {
	Title    string `json:"title" yaml:"title"`
	Brand    string `json:"brand" yaml:"brand"`
	User     string `json:"user" yaml:"user"`
	UserRole string `json:"user_role,omitempty" yaml:"user_role,omitempty"`
	Home     string `json:"home" yaml:"home"`
	Landing  string `json:"landing" yaml:"landing"`
}

// NavItem is one sidebar entry.
type NavItem struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// FilterGroup is a single-select dropdown of the filters bar.
type FilterGroup struct {
	Key     string   `json:"key" yaml:"key"`
	Label   string   `json:"label" yaml:"label"`
	Default string   `json:"default" yaml:"default"`
	Options []string `json:"options" yaml:"options"`
}

// Plan is the gap-to-plan input.
type Plan struct {
	Plan   float64 `json:"plan" yaml:"plan"`
	Closed float64 `json:"closed" yaml:"closed"`
}

// ForecastCategory is one card of the forecast categories strip.
type ForecastCategory struct {
	Title      string    `json:"title" yaml:"title"`
	Amount     float64   `json:"amount" yaml:"amount"`
	Percentage *float64  `json:"percentage,omitempty" yaml:"percentage,omitempty"`
	Sparkline  []float64 `json:"sparkline,omitempty" yaml:"sparkline,omitempty"`
	Tone       string    `json:"tone,omitempty" yaml:"tone,omitempty"`
	AI         bool      `json:"ai,omitempty" yaml:"ai,omitempty"`
}

// Badge is a small label attached to a funnel stage.
type Badge struct {
	Text string `json:"text" yaml:"text"`
	Tone string `json:"tone,omitempty" yaml:"tone,omitempty"`
}

// FunnelStage is one step of the revenue pipeline. Conversion is stored as
// entered and is never recomputed from volumes.
type FunnelStage struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Volume     int     `json:"volume" yaml:"volume"`
	Amount     float64 `json:"amount" yaml:"amount"`
	Conversion float64 `json:"conversion" yaml:"conversion"`
	Days       float64 `json:"days" yaml:"days"`
	KPI        string  `json:"kpi,omitempty" yaml:"kpi,omitempty"`
	Badges     []Badge `json:"badges,omitempty" yaml:"badges,omitempty"`
}

// FunnelConfig holds the ordered stages and the terminal output sentinel.
type FunnelConfig struct {
	TerminalOutput int           `json:"terminal_output" yaml:"terminal_output"`
	Stages         []FunnelStage `json:"stages" yaml:"stages"`
}

// PerformanceRow is one segment of the performance table.
type PerformanceRow struct {
	ACV        string  `json:"acv" yaml:"acv"`
	SalesCycle string  `json:"sales_cycle" yaml:"sales_cycle"`
	Awareness  float64 `json:"awareness" yaml:"awareness"`
	Education  float64 `json:"education" yaml:"education"`
	Prioritize float64 `json:"prioritize" yaml:"prioritize"`
	Selection  float64 `json:"selection" yaml:"selection"`
	Onboarding float64 `json:"onboarding" yaml:"onboarding"`
	Retention  float64 `json:"retention" yaml:"retention"`
	Expansion  float64 `json:"expansion" yaml:"expansion"`
}

// ForecastSeries pairs closed and projected periods.
type ForecastSeries struct {
	Actual   []float64 `json:"actual" yaml:"actual"`
	Forecast []float64 `json:"forecast" yaml:"forecast"`
}

// Forecast holds the revenue forecast widget input.
type Forecast struct {
	Target          float64        `json:"target" yaml:"target"`
	ActualChange    float64        `json:"actual_change" yaml:"actual_change"`
	ProjectedChange float64        `json:"projected_change" yaml:"projected_change"`
	Year            string         `json:"year" yaml:"year"`
	Monthly         ForecastSeries `json:"monthly" yaml:"monthly"`
	Quarterly       ForecastSeries `json:"quarterly" yaml:"quarterly"`
}

// KPIKind selects how a KPI value is formatted.
type KPIKind string

const (
	KPIPercentage KPIKind = "percentage"
	KPICurrency   KPIKind = "currency"
	KPINumber     KPIKind = "number"
	KPIText       KPIKind = "text"
)

// KPI is one headline metric card.
type KPI struct {
	Title  string  `json:"title" yaml:"title"`
	Kind   KPIKind `json:"kind" yaml:"kind"`
	Value  float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Text   string  `json:"text,omitempty" yaml:"text,omitempty"`
	Change float64 `json:"change" yaml:"change"`
	Icon   string  `json:"icon,omitempty" yaml:"icon,omitempty"`
	Filled bool    `json:"filled,omitempty" yaml:"filled,omitempty"`
}

// Insight is a retrospective or predictive note of the intelligence panel.
type Insight struct {
	Kind   string `json:"kind" yaml:"kind"`
	Tone   string `json:"tone" yaml:"tone"`
	When   string `json:"when" yaml:"when"`
	Text   string `json:"text" yaml:"text"`
	Action string `json:"action" yaml:"action"`
}

// ChatMessage is a canned assistant transcript entry.
type ChatMessage struct {
	Role    string   `json:"role" yaml:"role"`
	Text    string   `json:"text" yaml:"text"`
	Bullets []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
	Footer  string   `json:"footer,omitempty" yaml:"footer,omitempty"`
}

// PanelTab is a tab of the intelligence panel.
type PanelTab struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Intelligence is the static content of the sliding intelligence panel.
type Intelligence struct {
	Period     string        `json:"period" yaml:"period"`
	Tabs       []PanelTab    `json:"tabs" yaml:"tabs"`
	Insights   []Insight     `json:"insights" yaml:"insights"`
	Foresights []Insight     `json:"foresights" yaml:"foresights"`
	Assistant  []ChatMessage `json:"assistant" yaml:"assistant"`
	Prompt     string        `json:"prompt" yaml:"prompt"`
}
