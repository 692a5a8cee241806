package revenue

import (
	"context"
	"time"

	"github.com/goliatone/go-revenue-dashboard/pkg/responsive"
	"github.com/goliatone/go-revenue-dashboard/pkg/table"
)

// ProviderRegistry stores widget definitions and the providers that feed them.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// RefreshHook notifies transports (WebSocket/SSE) about session changes.
type RefreshHook interface {
	SessionUpdated(ctx context.Context, event SessionEvent) error
}

// WidgetDefinition describes a widget and the JSON schema of its configuration.
type WidgetDefinition struct {
	Code        string                `json:"code"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Category    string                `json:"category,omitempty"`
	Kind        responsive.WidgetKind `json:"kind,omitempty"`
	Schema      map[string]any        `json:"schema,omitempty"`
}

// WidgetPlacement puts a widget into a page area with its configuration.
type WidgetPlacement struct {
	Code          string         `json:"code"`
	Area          string         `json:"area"`
	Configuration map[string]any `json:"configuration,omitempty"`
}

// SessionEvent describes a change transports might push to the page.
type SessionEvent struct {
	SessionID  string         `json:"session_id"`
	Kind       string         `json:"kind"`
	Widgets    []string       `json:"widgets,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// SessionState is a read-only snapshot of one page session.
type SessionState struct {
	ID            string                                             `json:"id"`
	Route         string                                             `json:"route"`
	Width         int                                                `json:"width"`
	Mounted       bool                                               `json:"mounted"`
	Classes       map[responsive.WidgetKind]responsive.ViewportClass `json:"classes"`
	Menu          responsive.MenuState                               `json:"menu"`
	ForecastTab   ForecastTab                                        `json:"forecast_tab"`
	PanelOpen     bool                                               `json:"panel_open"`
	PanelTab      string                                             `json:"panel_tab"`
	CarouselIndex int                                                `json:"carousel_index"`
	ExpandedStage string                                             `json:"expanded_stage,omitempty"`
	Sort          *table.SortKey                                     `json:"sort,omitempty"`
	Table         TableView                                          `json:"table"`
	Filters       FiltersView                                        `json:"filters"`
	DisplayedGap  float64                                            `json:"displayed_gap"`
	Animating     bool                                               `json:"animating"`
	Now           time.Time                                          `json:"now"`
}

// Class returns the viewport class recorded for a widget kind, Desktop when unknown.
func (s SessionState) Class(kind responsive.WidgetKind) responsive.ViewportClass {
	if c, ok := s.Classes[kind]; ok {
		return c
	}
	return responsive.Desktop
}
