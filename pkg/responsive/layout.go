package responsive

// WidgetKind names a widget whose markup differs between viewport classes.
type WidgetKind string

const (
	KindShell      WidgetKind = "shell"
	KindFunnel     WidgetKind = "funnel"
	KindGap        WidgetKind = "gap"
	KindCategories WidgetKind = "categories"
)

// Threshold returns the breakpoint each widget kind classifies against.
func (k WidgetKind) Threshold() int {
	switch k {
	case KindGap:
		return Small
	case KindCategories:
		return Large
	default:
		return Medium
	}
}

// LayoutMode is the arrangement a widget renders with.
type LayoutMode string

const (
	LayoutGrid     LayoutMode = "grid"
	LayoutStacked  LayoutMode = "stacked"
	LayoutCarousel LayoutMode = "carousel"
	LayoutSidebar  LayoutMode = "sidebar"
	LayoutDrawer   LayoutMode = "drawer"
)

// LayoutFeatures toggles optional parts of a widget.
type LayoutFeatures struct {
	Overlay         bool `json:"overlay"`
	CloseButton     bool `json:"close_button"`
	PinToggle       bool `json:"pin_toggle"`
	StageGeometry   bool `json:"stage_geometry"`
	ExpandableCards bool `json:"expandable_cards"`
	CarouselNav     bool `json:"carousel_nav"`
	SideBySide      bool `json:"side_by_side"`
	PercentOfPlan   bool `json:"percent_of_plan"`
}

// LayoutDescriptor is the pure projection of a viewport class for one widget.
type LayoutDescriptor struct {
	Kind     WidgetKind     `json:"kind"`
	Class    string         `json:"class"`
	Mode     LayoutMode     `json:"mode"`
	Columns  int            `json:"columns"`
	Features LayoutFeatures `json:"features"`
}

// Describe maps a viewport class to the layout a widget renders. It does not
// depend on any controller state.
func Describe(kind WidgetKind, class ViewportClass) LayoutDescriptor {
	d := LayoutDescriptor{Kind: kind, Class: class.String()}
	mobile := class == Mobile
	switch kind {
	case KindShell:
		if mobile {
			d.Mode = LayoutDrawer
			d.Columns = 1
			d.Features = LayoutFeatures{Overlay: true, CloseButton: true}
		} else {
			d.Mode = LayoutSidebar
			d.Columns = 2
			d.Features = LayoutFeatures{PinToggle: true}
		}
	case KindFunnel:
		if mobile {
			d.Mode = LayoutStacked
			d.Columns = 1
			d.Features = LayoutFeatures{ExpandableCards: true}
		} else {
			d.Mode = LayoutGrid
			d.Columns = 7
			d.Features = LayoutFeatures{StageGeometry: true}
		}
	case KindGap:
		if mobile {
			d.Mode = LayoutStacked
			d.Columns = 1
		} else {
			d.Mode = LayoutGrid
			d.Columns = 2
			d.Features = LayoutFeatures{SideBySide: true}
		}
	case KindCategories:
		if mobile {
			d.Mode = LayoutCarousel
			d.Columns = 1
			d.Features = LayoutFeatures{CarouselNav: true, PercentOfPlan: true}
		} else {
			d.Mode = LayoutGrid
			d.Columns = 5
		}
	default:
		d.Mode = LayoutStacked
		d.Columns = 1
	}
	return d
}

// ShellMetrics are the derived sidebar sizes for a menu state.
type ShellMetrics struct {
	SidebarWidth   string `json:"sidebar_width"`
	ContentPadding string `json:"content_padding"`
	Visible        bool   `json:"visible"`
	Overlay        bool   `json:"overlay"`
	ShowBrand      bool   `json:"show_brand"`
	PinTitle       string `json:"pin_title"`
}

// Shell derives sidebar metrics from the menu state and class. The overlay
// only appears once the shell has been mounted.
func Shell(state MenuState, class ViewportClass, mounted bool) ShellMetrics {
	mobile := class == Mobile
	m := ShellMetrics{
		SidebarWidth:   "w-64",
		ContentPadding: "pl-0",
		Visible:        state.Open,
		Overlay:        mounted && mobile && state.Open,
		ShowBrand:      state.Expanded,
		PinTitle:       "Fixar menu",
	}
	if state.Pinned {
		m.PinTitle = "Desfixar menu"
	}
	if !mobile && state.Open && !state.Expanded {
		m.SidebarWidth = "w-16"
	}
	if state.Open {
		switch {
		case mobile:
			m.ContentPadding = "md:pl-64"
		case state.Expanded:
			m.ContentPadding = "md:pl-64"
		default:
			m.ContentPadding = "md:pl-16"
		}
	}
	return m
}
