package revenue

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFilter is returned when a filter key is not part of the bar.
	ErrUnknownFilter = errors.New("revenue: unknown filter")
	// ErrInvalidFilterOption is returned when a value is not among the group options.
	ErrInvalidFilterOption = errors.New("revenue: invalid filter option")
)

// Filters is the state of the filters bar. Selections are staged in a
// pending set and committed by Apply; nothing downstream reads them.
type Filters struct {
	groups  []FilterGroup
	pending map[string]string
	applied map[string]string
}

// NewFilters starts every group at its default option.
func NewFilters(groups []FilterGroup) *Filters {
	f := &Filters{groups: groups}
	f.pending = f.defaults()
	f.applied = f.defaults()
	return f
}

func (f *Filters) defaults() map[string]string {
	out := make(map[string]string, len(f.groups))
	for _, g := range f.groups {
		out[g.Key] = g.Default
	}
	return out
}

func (f *Filters) group(key string) (FilterGroup, bool) {
	for _, g := range f.groups {
		if g.Key == key {
			return g, true
		}
	}
	return FilterGroup{}, false
}

// Select stages value for the group named key.
func (f *Filters) Select(key, value string) error {
	g, ok := f.group(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFilter, key)
	}
	if !containsString(g.Options, value) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidFilterOption, key, value)
	}
	f.pending[key] = value
	return nil
}

// Clear resets both pending and applied selections to the defaults.
func (f *Filters) Clear() {
	f.pending = f.defaults()
	f.applied = f.defaults()
}

// Apply commits the pending selection.
func (f *Filters) Apply() map[string]string {
	f.applied = cloneSelection(f.pending)
	return f.Applied()
}

// Pending returns a copy of the staged selection.
func (f *Filters) Pending() map[string]string { return cloneSelection(f.pending) }

// Applied returns a copy of the committed selection.
func (f *Filters) Applied() map[string]string { return cloneSelection(f.applied) }

// Dirty reports whether the pending selection differs from the applied one.
func (f *Filters) Dirty() bool {
	for k, v := range f.pending {
		if f.applied[k] != v {
			return true
		}
	}
	return false
}

// Active counts groups whose applied value differs from the default.
func (f *Filters) Active() int {
	n := 0
	for _, g := range f.groups {
		if f.applied[g.Key] != g.Default {
			n++
		}
	}
	return n
}

// FilterGroupView is a dropdown with its current value.
type FilterGroupView struct {
	FilterGroup
	Selected string `json:"selected"`
}

// FiltersView is the projection of the filters bar.
type FiltersView struct {
	Groups []FilterGroupView `json:"groups"`
	Dirty  bool              `json:"dirty"`
	Active int               `json:"active"`
}

// View projects the bar with the pending selection.
func (f *Filters) View() FiltersView {
	view := FiltersView{Dirty: f.Dirty(), Active: f.Active()}
	for _, g := range f.groups {
		view.Groups = append(view.Groups, FilterGroupView{FilterGroup: g, Selected: f.pending[g.Key]})
	}
	return view
}

func cloneSelection(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
