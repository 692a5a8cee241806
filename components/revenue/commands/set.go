package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

// Command names used by transports.
const (
	NameSort            = "sort"
	NameFilter          = "filter"
	NameResize          = "resize"
	NameMenu            = "menu"
	NameNavigate        = "navigate"
	NameForecastTab     = "forecast_tab"
	NameIntelligence    = "intelligence"
	NameIntelligenceTab = "intelligence_tab"
	NameFunnelStage     = "funnel_stage"
	NameCarousel        = "carousel"
	NameFilterSelect    = "filter_select"
	NameFiltersApply    = "filters_apply"
	NameFiltersClear    = "filters_clear"
)

// Names lists every session command name.
var Names = []string{
	NameSort, NameFilter, NameResize, NameMenu, NameNavigate,
	NameForecastTab, NameIntelligence, NameIntelligenceTab,
	NameFunnelStage, NameCarousel,
	NameFilterSelect, NameFiltersApply, NameFiltersClear,
}

// Service is everything the command set calls.
type Service interface {
	sessionService
	sweepService
	tableService
	viewportService
	panelService
	filterService
}

// Set holds one commander per revenue operation.
type Set struct {
	Open            gocommand.Commander[OpenSessionInput]
	Close           gocommand.Commander[SessionInput]
	Sweep           gocommand.Commander[SweepInput]
	Sort            gocommand.Commander[SortTableInput]
	Filter          gocommand.Commander[FilterTableInput]
	Resize          gocommand.Commander[ResizeInput]
	Menu            gocommand.Commander[SessionInput]
	Navigate        gocommand.Commander[NavigateInput]
	ForecastTab     gocommand.Commander[SelectTabInput]
	Intelligence    gocommand.Commander[SessionInput]
	IntelligenceTab gocommand.Commander[SelectTabInput]
	FunnelStage     gocommand.Commander[ToggleStageInput]
	Carousel        gocommand.Commander[StepCarouselInput]
	FilterSelect    gocommand.Commander[SelectFilterInput]
	FiltersApply    gocommand.Commander[SessionInput]
	FiltersClear    gocommand.Commander[SessionInput]
}

// NewSet builds every command over service.
func NewSet(service Service, telemetry Telemetry) *Set {
	return &Set{
		Open:            NewOpenSessionCommand(service, telemetry),
		Close:           NewCloseSessionCommand(service, telemetry),
		Sweep:           NewSweepSessionsCommand(service, telemetry),
		Sort:            NewSortTableCommand(service, telemetry),
		Filter:          NewFilterTableCommand(service, telemetry),
		Resize:          NewResizeCommand(service, telemetry),
		Menu:            NewToggleMenuCommand(service, telemetry),
		Navigate:        NewNavigateCommand(service, telemetry),
		ForecastTab:     NewSelectForecastTabCommand(service, telemetry),
		Intelligence:    NewToggleIntelligenceCommand(service, telemetry),
		IntelligenceTab: NewSelectIntelligenceTabCommand(service, telemetry),
		FunnelStage:     NewToggleFunnelStageCommand(service, telemetry),
		Carousel:        NewStepCarouselCommand(service, telemetry),
		FilterSelect:    NewSelectFilterCommand(service, telemetry),
		FiltersApply:    NewApplyFiltersCommand(service, telemetry),
		FiltersClear:    NewClearFiltersCommand(service, telemetry),
	}
}

var _ Service = (*revenue.Service)(nil)

// OpenSession runs the open command and returns the new state.
func (s *Set) OpenSession(ctx context.Context, route string) (revenue.SessionState, error) {
	var state revenue.SessionState
	err := s.Open.Execute(ctx, OpenSessionInput{Route: route, Result: &state})
	return state, err
}
