package revenue

import (
	"errors"
	"fmt"
)

// ErrUnknownPanelTab is returned for a tab key the panel does not define.
var ErrUnknownPanelTab = errors.New("revenue: unknown intelligence tab")

// DefaultPanelTab is the tab shown when the panel opens for the first time.
const DefaultPanelTab = "insights"

// InsightView is an insight card with its badge classes.
type InsightView struct {
	Insight
	Class string `json:"class"`
}

// IntelligenceView is the projection of the sliding intelligence panel.
type IntelligenceView struct {
	Open       bool          `json:"open"`
	Tab        string        `json:"tab"`
	Period     string        `json:"period"`
	Tabs       []PanelTab    `json:"tabs"`
	Insights   []InsightView `json:"insights,omitempty"`
	Foresights []InsightView `json:"foresights,omitempty"`
	Assistant  []ChatMessage `json:"assistant,omitempty"`
	Prompt     string        `json:"prompt,omitempty"`
}

// ValidatePanelTab checks key against the panel tabs.
func ValidatePanelTab(in Intelligence, key string) error {
	for _, tab := range in.Tabs {
		if tab.Key == key {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownPanelTab, key)
}

// ProjectIntelligence fills only the content of the selected tab.
func ProjectIntelligence(in Intelligence, open bool, tab string) IntelligenceView {
	if tab == "" {
		tab = DefaultPanelTab
	}
	view := IntelligenceView{Open: open, Tab: tab, Period: in.Period, Tabs: in.Tabs}
	switch tab {
	case "insights":
		view.Insights = insightViews(in.Insights)
		view.Foresights = insightViews(in.Foresights)
	case "assistant":
		view.Assistant = in.Assistant
		view.Prompt = in.Prompt
	}
	return view
}

func insightViews(items []Insight) []InsightView {
	out := make([]InsightView, len(items))
	for i, item := range items {
		out[i] = InsightView{Insight: item, Class: BadgeClass(item.Tone)}
	}
	return out
}
