package revenue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-revenue-dashboard/pkg/activity"
	"github.com/goliatone/go-revenue-dashboard/pkg/format"
	"github.com/goliatone/go-revenue-dashboard/pkg/responsive"
	"github.com/goliatone/go-revenue-dashboard/pkg/tween"
)

const defaultIdleTimeout = 30 * time.Minute

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("revenue: session not found")
	// ErrInvalidConfiguration wraps widget configuration schema failures.
	ErrInvalidConfiguration = errors.New("revenue: invalid widget configuration")

	errMissingSessionID = errors.New("revenue: session id is required")
)

// Options configures the revenue Service. Collaborators are interfaces so
// applications can swap implementations.
type Options struct {
	Dataset         *Dataset
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	ActivityHooks   activity.Hooks
	ActivityConfig  activity.Config
	Store           SessionStore
	Layout          []WidgetPlacement
	Now             func() time.Time

	// Charts loses expired renders on every sweep; nil uses the cache shared
	// by the default chart providers.
	Charts *ChartCache

	// AnimationInterval is the gap count-up frame tick; zero uses the
	// default 2s over AnimationFrames.
	AnimationInterval time.Duration
	AnimationFrames   int
	// DisableAnimations shows the full gap from the first render instead of
	// counting up from zero after mount.
	DisableAnimations bool
	IdleTimeout       time.Duration
}

// Service owns page sessions and applies UI operations to them.
type Service struct {
	opts     Options
	activity *activity.Emitter
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) (*Service, error) {
	if opts.Dataset == nil {
		ds, err := DefaultDataset()
		if err != nil {
			return nil, err
		}
		opts.Dataset = ds
	}
	if opts.Providers == nil {
		reg, err := NewRegistry()
		if err != nil {
			return nil, err
		}
		opts.Providers = reg
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Store == nil {
		opts.Store = NewInMemorySessionStore()
	}
	if opts.Layout == nil {
		opts.Layout = DefaultLayout()
	}
	if opts.Charts == nil {
		opts.Charts = sharedChartCache
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AnimationFrames <= 0 {
		opts.AnimationFrames = tween.DefaultFrames
	}
	if opts.AnimationInterval <= 0 {
		opts.AnimationInterval = tween.Interval(tween.DefaultDuration, opts.AnimationFrames)
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	for _, placement := range opts.Layout {
		if err := validateConfiguration(opts.Providers, opts.ConfigValidator, placement); err != nil {
			return nil, err
		}
	}
	return &Service{
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}, nil
}

// Dataset exposes the data the service renders.
func (s *Service) Dataset() *Dataset { return s.opts.Dataset }

// Providers exposes the widget registry.
func (s *Service) Providers() ProviderRegistry { return s.opts.Providers }

func validateConfiguration(providers ProviderRegistry, validator ConfigValidator, placement WidgetPlacement) error {
	def, ok := providers.Definition(placement.Code)
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownWidget, placement.Code)
	}
	return validator.Validate(def, placement.Configuration)
}

// OpenSession starts a page session on route.
func (s *Service) OpenSession(ctx context.Context, route string) (SessionState, error) {
	now := s.opts.Now()
	session, err := newSession(uuid.NewString(), s.opts.Dataset, route, now)
	if err != nil {
		return SessionState{}, err
	}
	session.countUp = !s.opts.DisableAnimations
	if err := s.opts.Store.Put(session); err != nil {
		session.Close()
		return SessionState{}, err
	}
	state := session.Snapshot(now)
	s.recordTelemetry(ctx, "revenue.session.open", map[string]any{
		"session_id": session.ID(),
		"route":      state.Route,
	})
	s.emitActivity(ctx, "revenue.session.open", session.ID(), map[string]any{"route": state.Route})
	return state, nil
}

// CloseSession releases a session's listeners and animations.
func (s *Service) CloseSession(ctx context.Context, id string) error {
	session, ok := s.opts.Store.Delete(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session.Close()
	s.recordTelemetry(ctx, "revenue.session.close", map[string]any{"session_id": id})
	s.emitActivity(ctx, "revenue.session.close", id, nil)
	return nil
}

// Sessions counts open sessions.
func (s *Service) Sessions() int { return s.opts.Store.Len() }

// SweepIdle closes sessions not seen for the idle timeout and drops expired
// chart renders.
func (s *Service) SweepIdle(ctx context.Context) int {
	expired := s.opts.Store.Sweep(s.opts.Now().Add(-s.opts.IdleTimeout))
	for _, session := range expired {
		session.Close()
	}
	purged := s.opts.Charts.Purge()
	if len(expired) > 0 || purged > 0 {
		s.recordTelemetry(ctx, "revenue.session.sweep", map[string]any{
			"closed":        len(expired),
			"charts_purged": purged,
		})
	}
	return len(expired)
}

// RunSweeper calls SweepIdle every interval until ctx ends.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepIdle(ctx)
		}
	}
}

// State returns the current snapshot of a session.
func (s *Service) State(ctx context.Context, id string) (SessionState, error) {
	session, err := s.session(id)
	if err != nil {
		return SessionState{}, err
	}
	return session.Snapshot(s.opts.Now()), nil
}

// Table returns the derived performance table of a session.
func (s *Service) Table(ctx context.Context, id string) (TableView, error) {
	session, err := s.session(id)
	if err != nil {
		return TableView{}, err
	}
	return session.TableView(), nil
}

func (s *Service) session(id string) (*Session, error) {
	if id == "" {
		return nil, errMissingSessionID
	}
	session, ok := s.opts.Store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session.touch(s.opts.Now())
	return session, nil
}

// SortTable sorts the performance table by field; the same field flips the
// direction and an empty field restores insertion order.
func (s *Service) SortTable(ctx context.Context, id, field string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.table.sort", []string{WidgetPerformance, WidgetSegmentChart},
		map[string]any{"field": field},
		func(session *Session) error { return session.setSort(field) })
}

// FilterTable replaces the table search term.
func (s *Service) FilterTable(ctx context.Context, id, term string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.table.filter", []string{WidgetPerformance, WidgetSegmentChart},
		map[string]any{"term": term},
		func(session *Session) error { return session.setTableFilter(term) })
}

// Resize reports the viewport width. The first width mounts the session and
// starts the gap count-up.
func (s *Service) Resize(ctx context.Context, id string, width int) (SessionState, error) {
	var mounted bool
	state, err := s.mutate(ctx, id, "revenue.viewport.resize", nil,
		map[string]any{"width": width},
		func(session *Session) error {
			var err error
			mounted, err = session.resize(width)
			return err
		})
	if err != nil || !mounted || s.opts.DisableAnimations {
		return state, err
	}
	session, err := s.session(id)
	if err != nil {
		return state, err
	}
	err = session.startGapAnimation(s.opts.AnimationFrames, s.opts.AnimationInterval, func(value float64) {
		s.publish(context.Background(), SessionEvent{
			SessionID: id,
			Kind:      "revenue.gap.frame",
			Widgets:   []string{WidgetGap},
			Payload: map[string]any{
				"displayed_gap":   value,
				"displayed_label": format.Currency(value),
			},
		})
	})
	return session.Snapshot(s.opts.Now()), err
}

// ToggleMenu toggles the sidebar pin on desktop or the drawer on mobile.
func (s *Service) ToggleMenu(ctx context.Context, id string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.menu.toggle", nil, nil,
		func(session *Session) error {
			_, err := session.toggleMenu()
			return err
		})
}

// Navigate resolves path against the sidebar and closes the mobile drawer.
func (s *Service) Navigate(ctx context.Context, id, path string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.navigate", nil, map[string]any{"path": path},
		func(session *Session) error {
			_, err := session.navigate(path)
			return err
		})
}

// SelectForecastTab switches the forecast between monthly and quarterly.
func (s *Service) SelectForecastTab(ctx context.Context, id, tab string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.forecast.tab", []string{WidgetForecast, WidgetForecastChart},
		map[string]any{"tab": tab},
		func(session *Session) error { return session.selectForecastTab(tab) })
}

// ToggleIntelligence opens or closes the intelligence panel.
func (s *Service) ToggleIntelligence(ctx context.Context, id string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.intelligence.toggle", []string{WidgetIntelligence}, nil,
		func(session *Session) error {
			_, err := session.toggleIntelligence()
			return err
		})
}

// SelectIntelligenceTab opens the panel on tab.
func (s *Service) SelectIntelligenceTab(ctx context.Context, id, tab string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.intelligence.tab", []string{WidgetIntelligence},
		map[string]any{"tab": tab},
		func(session *Session) error { return session.selectIntelligenceTab(tab) })
}

// ToggleFunnelStage expands a stage, or collapses it when already expanded.
func (s *Service) ToggleFunnelStage(ctx context.Context, id, stage string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.funnel.stage", []string{WidgetFunnel},
		map[string]any{"stage": stage},
		func(session *Session) error {
			_, err := session.toggleFunnelStage(stage)
			return err
		})
}

// StepCarousel moves the categories carousel one card, wrapping at the ends.
func (s *Service) StepCarousel(ctx context.Context, id string, dir CarouselDirection) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.carousel.step", []string{WidgetCategories},
		map[string]any{"direction": string(dir)},
		func(session *Session) error {
			_, err := session.stepCarousel(dir)
			return err
		})
}

// SelectFilter stages a filter option until ApplyFilters.
func (s *Service) SelectFilter(ctx context.Context, id, key, value string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.filters.select", []string{WidgetFilters},
		map[string]any{"key": key, "value": value},
		func(session *Session) error { return session.selectFilter(key, value) })
}

// ApplyFilters commits the pending filter selection.
func (s *Service) ApplyFilters(ctx context.Context, id string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.filters.apply", []string{WidgetFilters}, nil,
		func(session *Session) error {
			_, err := session.applyFilters()
			return err
		})
}

// ClearFilters resets the filters to their defaults.
func (s *Service) ClearFilters(ctx context.Context, id string) (SessionState, error) {
	return s.mutate(ctx, id, "revenue.filters.clear", []string{WidgetFilters}, nil,
		func(session *Session) error { return session.clearFilters() })
}

// mutate applies fn to the session, then publishes the change, records
// telemetry and emits an activity event. Widgets nil means the whole page.
func (s *Service) mutate(ctx context.Context, id, verb string, widgets []string, payload map[string]any, fn func(*Session) error) (SessionState, error) {
	session, err := s.session(id)
	if err != nil {
		return SessionState{}, err
	}
	if err := fn(session); err != nil {
		s.recordTelemetry(ctx, verb+".error", map[string]any{
			"session_id": id,
			"error":      err.Error(),
		})
		return SessionState{}, err
	}
	state := session.Snapshot(s.opts.Now())
	event := SessionEvent{
		SessionID:  id,
		Kind:       verb,
		Widgets:    widgets,
		Payload:    payload,
		OccurredAt: state.Now,
	}
	if err := s.publish(ctx, event); err != nil {
		return state, err
	}
	telemetry := map[string]any{"session_id": id}
	for k, v := range payload {
		telemetry[k] = v
	}
	s.recordTelemetry(ctx, verb, telemetry)
	s.emitActivity(ctx, verb, id, payload)
	return state, nil
}

func (s *Service) publish(ctx context.Context, event SessionEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.opts.Now()
	}
	return s.opts.RefreshHook.SessionUpdated(ctx, event)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) emitActivity(ctx context.Context, verb, sessionID string, metadata map[string]any) {
	if !s.activity.Enabled() {
		return
	}
	meta := activityContextFrom(ctx)
	evt := activity.Event{
		Verb:       verb,
		ActorID:    meta.ActorID,
		UserID:     meta.UserID,
		TenantID:   meta.TenantID,
		ObjectType: "session",
		ObjectID:   sessionID,
		Metadata:   metadata,
		OccurredAt: s.opts.Now(),
	}
	if err := s.activity.Emit(ctx, evt); err != nil {
		s.recordTelemetry(ctx, "revenue.activity.error", map[string]any{
			"verb":  verb,
			"error": err.Error(),
		})
	}
}

// WidgetView is one rendered widget of a page area.
type WidgetView struct {
	Code  string     `json:"code"`
	Name  string     `json:"name"`
	Area  string     `json:"area"`
	Data  WidgetData `json:"data,omitempty"`
	Error string     `json:"error,omitempty"`
}

// ShellView is the navigation shell around the page.
type ShellView struct {
	Brand    string                      `json:"brand"`
	User     string                      `json:"user"`
	UserRole string                      `json:"user_role,omitempty"`
	Items    []NavItemView               `json:"items"`
	Menu     responsive.MenuState        `json:"menu"`
	Metrics  responsive.ShellMetrics     `json:"metrics"`
	Layout   responsive.LayoutDescriptor `json:"layout"`
	Clock    string                      `json:"clock"`
}

// PageView is everything a page render needs.
type PageView struct {
	SessionID  string                  `json:"session_id"`
	Title      string                  `json:"title"`
	Route      string                  `json:"route"`
	HasContent bool                    `json:"has_content"`
	Shell      ShellView               `json:"shell"`
	Areas      map[string][]WidgetView `json:"areas,omitempty"`
	State      SessionState            `json:"state"`
	AssetsHost string                  `json:"assets_host,omitempty"`
}

// Page resolves the layout and widget data for a session. A failing provider
// only marks its own widget.
func (s *Service) Page(ctx context.Context, id string) (PageView, error) {
	session, err := s.session(id)
	if err != nil {
		return PageView{}, err
	}
	state := session.Snapshot(s.opts.Now())
	nav := NewNavigation(s.opts.Dataset.Shell, s.opts.Dataset.Navigation)
	shellClass := state.Class(responsive.KindShell)
	page := PageView{
		SessionID:  id,
		Title:      nav.Title(state.Route),
		Route:      state.Route,
		HasContent: nav.HasContent(state.Route),
		Shell: ShellView{
			Brand:    s.opts.Dataset.Shell.Brand,
			User:     s.opts.Dataset.Shell.User,
			UserRole: s.opts.Dataset.Shell.UserRole,
			Items:    nav.Items(state.Route),
			Menu:     state.Menu,
			Metrics:  responsive.Shell(state.Menu, shellClass, state.Mounted),
			Layout:   responsive.Describe(responsive.KindShell, shellClass),
			Clock:    format.Clock(state.Now),
		},
		State:      state,
		AssetsHost: DefaultEChartsAssetsHost(),
	}
	if !page.HasContent {
		s.recordTelemetry(ctx, "revenue.page.placeholder", map[string]any{"route": state.Route})
		return page, nil
	}
	page.Areas = make(map[string][]WidgetView, len(Areas))
	for _, placement := range s.opts.Layout {
		page.Areas[placement.Area] = append(page.Areas[placement.Area], s.renderWidget(ctx, placement, state))
	}
	s.recordTelemetry(ctx, "revenue.page.resolve", map[string]any{
		"session_id": id,
		"route":      state.Route,
	})
	return page, nil
}

func (s *Service) renderWidget(ctx context.Context, placement WidgetPlacement, state SessionState) WidgetView {
	view := WidgetView{Code: placement.Code, Area: placement.Area}
	def, ok := s.opts.Providers.Definition(placement.Code)
	if !ok {
		view.Error = errUnknownWidget.Error()
		return view
	}
	view.Name = def.Name
	provider, ok := s.opts.Providers.Provider(placement.Code)
	if !ok || provider == nil {
		view.Error = errNilProvider.Error()
		return view
	}
	data, err := provider.Fetch(ctx, WidgetContext{
		Definition: def,
		Placement:  placement,
		Dataset:    s.opts.Dataset,
		State:      state,
	})
	if err != nil {
		s.recordTelemetry(ctx, "revenue.widget.provider_error", map[string]any{
			"code":  placement.Code,
			"error": err.Error(),
		})
		view.Error = err.Error()
		return view
	}
	view.Data = data
	return view
}

type noopRefreshHook struct{}

func (noopRefreshHook) SessionUpdated(context.Context, SessionEvent) error {
	return nil
}
