package commands

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
	"github.com/goliatone/go-revenue-dashboard/pkg/table"
)

type recordingTelemetry struct {
	mu       sync.Mutex
	events   []string
	payloads []map[string]any
}

func (r *recordingTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.payloads = append(r.payloads, payload)
}

func (r *recordingTelemetry) last() (string, map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.events)
	return r.events[n-1], r.payloads[n-1]
}

func newService(t *testing.T) *revenue.Service {
	t.Helper()
	svc, err := revenue.NewService(revenue.Options{
		Now:               func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) },
		DisableAnimations: true,
	})
	require.NoError(t, err)
	return svc
}

func TestSetOpenAndClose(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc := newService(t)
	set := NewSet(svc, telemetry)
	ctx := context.Background()

	state, err := set.OpenSession(ctx, "/dashboard")
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/receita", state.Route)
	name, payload := telemetry.last()
	assert.Equal(t, "revenue.command.open_session", name)
	assert.Equal(t, state.ID, payload["session_id"])

	require.NoError(t, set.Close.Execute(ctx, SessionInput{SessionID: state.ID}))
	assert.Zero(t, svc.Sessions())
	require.ErrorIs(t, set.Close.Execute(ctx, SessionInput{SessionID: state.ID}), revenue.ErrSessionNotFound)
	require.ErrorIs(t, set.Close.Execute(ctx, SessionInput{}), ErrMissingSessionID)
}

func TestSetOpenUnknownRoute(t *testing.T) {
	set := NewSet(newService(t), nil)
	_, err := set.OpenSession(context.Background(), "/nowhere")
	require.ErrorIs(t, err, revenue.ErrUnknownRoute)
}

func TestSetRunsSessionCommands(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc := newService(t)
	set := NewSet(svc, telemetry)
	ctx := context.Background()
	state, err := set.OpenSession(ctx, "")
	require.NoError(t, err)
	id := state.ID
	t.Cleanup(func() { _ = svc.CloseSession(ctx, id) })

	require.NoError(t, set.Resize.Execute(ctx, ResizeInput{SessionID: id, Width: 500}))
	name, payload := telemetry.last()
	assert.Equal(t, "revenue.command.resize", name)
	assert.Equal(t, "mobile", payload["class"])

	require.NoError(t, set.Sort.Execute(ctx, SortTableInput{SessionID: id, Field: "retention"}))
	_, payload = telemetry.last()
	assert.Equal(t, "asc", payload["direction"])

	require.NoError(t, set.Filter.Execute(ctx, FilterTableInput{SessionID: id, Term: "5k"}))
	_, payload = telemetry.last()
	assert.Equal(t, 3, payload["rows"])

	require.NoError(t, set.Menu.Execute(ctx, SessionInput{SessionID: id}))
	require.NoError(t, set.Navigate.Execute(ctx, NavigateInput{SessionID: id, Path: "/dashboard/finance"}))
	require.NoError(t, set.ForecastTab.Execute(ctx, SelectTabInput{SessionID: id, Tab: "trimestral"}))
	require.NoError(t, set.Intelligence.Execute(ctx, SessionInput{SessionID: id}))
	require.NoError(t, set.IntelligenceTab.Execute(ctx, SelectTabInput{SessionID: id, Tab: "assistant"}))
	stage := svc.Dataset().Funnel.Stages[0].ID
	require.NoError(t, set.FunnelStage.Execute(ctx, ToggleStageInput{SessionID: id, Stage: stage}))
	require.NoError(t, set.Carousel.Execute(ctx, StepCarouselInput{SessionID: id, Direction: revenue.CarouselNext}))
	require.NoError(t, set.FilterSelect.Execute(ctx, SelectFilterInput{SessionID: id, Key: "source", Value: "Eventos"}))
	require.NoError(t, set.FiltersApply.Execute(ctx, SessionInput{SessionID: id}))

	current, err := svc.State(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/finance", current.Route)
	assert.Equal(t, revenue.TabQuarterly, current.ForecastTab)
	assert.True(t, current.PanelOpen)
	assert.Equal(t, "assistant", current.PanelTab)
	assert.Equal(t, stage, current.ExpandedStage)
	assert.Equal(t, 1, current.CarouselIndex)
	assert.Equal(t, 1, current.Filters.Active)
	assert.Equal(t, "retention", current.Sort.Field)

	require.NoError(t, set.FiltersClear.Execute(ctx, SessionInput{SessionID: id}))
	name, _ = telemetry.last()
	assert.Equal(t, "revenue.command.filters_clear", name)

	require.NoError(t, set.Sweep.Execute(ctx, SweepInput{}))
	name, payload = telemetry.last()
	assert.Equal(t, "revenue.command.sweep", name)
	assert.Equal(t, 0, payload["closed"])
}

func TestCommandsValidateInput(t *testing.T) {
	set := NewSet(newService(t), nil)
	ctx := context.Background()

	require.ErrorIs(t, set.Sort.Execute(ctx, SortTableInput{Field: "acv"}), ErrMissingSessionID)
	require.ErrorIs(t, set.Filter.Execute(ctx, FilterTableInput{}), ErrMissingSessionID)
	require.ErrorIs(t, set.Menu.Execute(ctx, SessionInput{}), ErrMissingSessionID)
	require.ErrorIs(t, set.Resize.Execute(ctx, ResizeInput{SessionID: "s", Width: 0}), revenue.ErrInvalidWidth)

	state, err := set.OpenSession(ctx, "")
	require.NoError(t, err)
	require.ErrorIs(t, set.Sort.Execute(ctx, SortTableInput{SessionID: state.ID, Field: "bogus"}), table.ErrInvalidField)
	require.ErrorIs(t, set.ForecastTab.Execute(ctx, SelectTabInput{SessionID: state.ID, Tab: "anual"}), revenue.ErrInvalidForecastTab)
	require.ErrorIs(t, set.FunnelStage.Execute(ctx, ToggleStageInput{SessionID: state.ID, Stage: "bogus"}), revenue.ErrUnknownStage)
	require.ErrorIs(t, set.FilterSelect.Execute(ctx, SelectFilterInput{SessionID: state.ID, Key: "segment", Value: "Gov"}), revenue.ErrInvalidFilterOption)
}

func TestCommandsRequireService(t *testing.T) {
	ctx := context.Background()
	assert.ErrorIs(t, NewSortTableCommand(nil, nil).Execute(ctx, SortTableInput{SessionID: "s"}), errMissingService)
	assert.ErrorIs(t, NewOpenSessionCommand(nil, nil).Execute(ctx, OpenSessionInput{}), errMissingService)
	assert.ErrorIs(t, NewSweepSessionsCommand(nil, nil).Execute(ctx, SweepInput{}), errMissingService)
	assert.ErrorIs(t, NewResizeCommand(nil, nil).Execute(ctx, ResizeInput{SessionID: "s", Width: 10}), errMissingService)
	assert.ErrorIs(t, NewSelectFilterCommand(nil, nil).Execute(ctx, SelectFilterInput{SessionID: "s"}), errMissingService)
}

func TestNamesCoverEveryCommand(t *testing.T) {
	assert.Len(t, Names, 13)
	seen := map[string]bool{}
	for _, name := range Names {
		assert.False(t, seen[name], name)
		seen[name] = true
	}
}
