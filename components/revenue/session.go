package revenue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-revenue-dashboard/pkg/responsive"
	"github.com/goliatone/go-revenue-dashboard/pkg/table"
	"github.com/goliatone/go-revenue-dashboard/pkg/tween"
)

var (
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("revenue: session closed")
	// ErrUnknownStage is returned when toggling a stage that is not in the funnel.
	ErrUnknownStage = errors.New("revenue: unknown funnel stage")
	// ErrInvalidForecastTab is returned for tabs other than mensal and trimestral.
	ErrInvalidForecastTab = errors.New("revenue: invalid forecast tab")
	// ErrInvalidWidth is returned for non-positive viewport widths.
	ErrInvalidWidth = errors.New("revenue: viewport width must be positive")
	// ErrInvalidDirection is returned for carousel steps other than next and prev.
	ErrInvalidDirection = errors.New("revenue: invalid carousel direction")
)

// CarouselDirection steps the categories carousel.
type CarouselDirection string

const (
	CarouselNext CarouselDirection = "next"
	CarouselPrev CarouselDirection = "prev"
)

// widgetKinds are the widgets holding their own responsive controller.
var widgetKinds = []responsive.WidgetKind{
	responsive.KindShell,
	responsive.KindFunnel,
	responsive.KindGap,
	responsive.KindCategories,
}

// Session is the UI state of one open page. Every widget owns a responsive
// controller attached to the session's viewport hub; Close releases them and
// stops running animations. Methods are serialized by the session lock.
type Session struct {
	mu       sync.Mutex
	id       string
	dataset  *Dataset
	nav      Navigation
	hub      *responsive.Hub
	views    map[responsive.WidgetKind]*responsive.Controller
	menu     *responsive.Menu
	table    *table.Engine[PerformanceRow]
	filters  *Filters
	carousel *Carousel

	route         string
	forecastTab   ForecastTab
	panelOpen     bool
	panelTab      string
	expandedStage string

	gap        *tween.Tween
	countUp    bool
	stopGap    context.CancelFunc
	lastSeen   time.Time
	closed     bool
	createdAt  time.Time
	animations sync.WaitGroup
}

func newSession(id string, ds *Dataset, route string, now time.Time) (*Session, error) {
	engine, err := NewPerformanceEngine(ds.Performance)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:          id,
		dataset:     ds,
		nav:         NewNavigation(ds.Shell, ds.Navigation),
		hub:         responsive.NewHub(),
		views:       make(map[responsive.WidgetKind]*responsive.Controller, len(widgetKinds)),
		menu:        responsive.NewMenu(),
		table:       engine,
		filters:     NewFilters(ds.Filters),
		carousel:    NewCarousel(len(ds.Categories)),
		forecastTab: TabMonthly,
		panelTab:    DefaultPanelTab,
		createdAt:   now,
		lastSeen:    now,
	}
	if s.route, err = s.nav.Resolve(route); err != nil {
		return nil, err
	}
	for _, kind := range widgetKinds {
		var opts []responsive.ControllerOption
		if kind == responsive.KindShell {
			menu := s.menu
			opts = append(opts, responsive.OnChange(func(c responsive.ViewportClass) {
				menu.SetMobile(c == responsive.Mobile)
			}))
		}
		ctrl := responsive.NewController(kind.Threshold(), opts...)
		ctrl.Attach(s.hub)
		s.views[kind] = ctrl
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen is the time of the last operation on the session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Listeners counts viewport registrations still held by widgets.
func (s *Session) Listeners() int {
	return s.hub.Len()
}

// Close detaches every widget controller and cancels running animations.
// It is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	stop := s.stopGap
	s.stopGap = nil
	if s.gap != nil {
		s.gap.Cancel()
	}
	views := s.views
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	for _, ctrl := range views {
		ctrl.Detach()
	}
	s.animations.Wait()
}

// do runs fn under the session lock unless the session is closed.
func (s *Session) do(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return fn()
}

// resize publishes width to every widget controller. It reports whether this
// was the first observed width.
func (s *Session) resize(width int) (mounted bool, err error) {
	if width <= 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	err = s.do(func() error {
		mounted = !s.views[responsive.KindShell].Mounted()
		s.hub.Publish(width)
		return nil
	})
	return mounted, err
}

// startGapAnimation counts the gap up from zero on the session's own goroutine.
// onFrame runs without the session lock held.
func (s *Session) startGapAnimation(frames int, interval time.Duration, onFrame func(float64)) error {
	return s.do(func() error {
		if s.gap != nil {
			return nil
		}
		plan := s.dataset.Plan
		tw := tween.New(plan.Plan-plan.Closed, frames)
		ctx, cancel := context.WithCancel(context.Background())
		s.gap = tw
		s.stopGap = cancel
		s.animations.Add(1)
		go func() {
			defer s.animations.Done()
			defer cancel()
			_ = tween.Run(ctx, tw, interval, onFrame)
		}()
		return nil
	})
}

func (s *Session) setSort(field string) error {
	return s.do(func() error {
		if field == "" {
			s.table.ClearSort()
			return nil
		}
		return s.table.SetSort(field)
	})
}

func (s *Session) setTableFilter(term string) error {
	return s.do(func() error {
		s.table.SetFilter(term)
		return nil
	})
}

func (s *Session) toggleMenu() (responsive.MenuState, error) {
	var state responsive.MenuState
	err := s.do(func() error {
		state = s.menu.Toggle()
		return nil
	})
	return state, err
}

func (s *Session) navigate(path string) (string, error) {
	var route string
	err := s.do(func() error {
		resolved, err := s.nav.Resolve(path)
		if err != nil {
			return err
		}
		s.route = resolved
		s.menu.Navigate()
		route = resolved
		return nil
	})
	return route, err
}

func (s *Session) selectForecastTab(tab string) error {
	parsed, ok := ParseForecastTab(tab)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidForecastTab, tab)
	}
	return s.do(func() error {
		s.forecastTab = parsed
		return nil
	})
}

func (s *Session) toggleIntelligence() (bool, error) {
	var open bool
	err := s.do(func() error {
		s.panelOpen = !s.panelOpen
		open = s.panelOpen
		return nil
	})
	return open, err
}

func (s *Session) selectIntelligenceTab(tab string) error {
	if err := ValidatePanelTab(s.dataset.Intelligence, tab); err != nil {
		return err
	}
	return s.do(func() error {
		s.panelTab = tab
		s.panelOpen = true
		return nil
	})
}

func (s *Session) toggleFunnelStage(id string) (string, error) {
	known := false
	for _, stage := range s.dataset.Funnel.Stages {
		if stage.ID == id {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("%w: %s", ErrUnknownStage, id)
	}
	var expanded string
	err := s.do(func() error {
		s.expandedStage = ToggleStage(s.expandedStage, id)
		expanded = s.expandedStage
		return nil
	})
	return expanded, err
}

func (s *Session) stepCarousel(dir CarouselDirection) (int, error) {
	var index int
	err := s.do(func() error {
		switch dir {
		case CarouselNext:
			index = s.carousel.Next()
		case CarouselPrev:
			index = s.carousel.Prev()
		default:
			return fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
		}
		return nil
	})
	return index, err
}

func (s *Session) selectFilter(key, value string) error {
	return s.do(func() error {
		return s.filters.Select(key, value)
	})
}

func (s *Session) applyFilters() (map[string]string, error) {
	var applied map[string]string
	err := s.do(func() error {
		applied = s.filters.Apply()
		return nil
	})
	return applied, err
}

func (s *Session) clearFilters() error {
	return s.do(func() error {
		s.filters.Clear()
		return nil
	})
}

// Snapshot returns the current state with the derived table view.
func (s *Session) Snapshot(now time.Time) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	shell := s.views[responsive.KindShell]
	width, mounted := shell.Width()
	state := SessionState{
		ID:            s.id,
		Route:         s.route,
		Width:         width,
		Mounted:       mounted,
		Classes:       make(map[responsive.WidgetKind]responsive.ViewportClass, len(s.views)),
		Menu:          s.menu.State(),
		ForecastTab:   s.forecastTab,
		PanelOpen:     s.panelOpen,
		PanelTab:      s.panelTab,
		CarouselIndex: s.carousel.Index(),
		ExpandedStage: s.expandedStage,
		Table:         ProjectTable(s.table),
		Filters:       s.filters.View(),
		Now:           now,
	}
	for kind, ctrl := range s.views {
		state.Classes[kind] = ctrl.Class()
	}
	if key, ok := s.table.SortKey(); ok {
		state.Sort = &key
	}
	switch {
	case s.gap != nil && !s.gap.Done() && !s.gap.Cancelled():
		state.Animating = true
		state.DisplayedGap = s.gap.Value()
	case s.countUp && !mounted && !s.closed:
		// The count-up starts from zero once the first width arrives.
		state.Animating = true
	}
	return state
}

// TableView derives the performance table.
func (s *Session) TableView() TableView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ProjectTable(s.table)
}
