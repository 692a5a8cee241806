package revenue

import "context"

// Provider produces the data a widget template needs.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch calls f.
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}

// WidgetContext contains everything a provider may read. Providers must not
// mutate Dataset.
type WidgetContext struct {
	Definition WidgetDefinition
	Placement  WidgetPlacement
	Dataset    *Dataset
	State      SessionState
}

// Config returns the placement configuration, never nil.
func (m WidgetContext) Config() map[string]any {
	if m.Placement.Configuration == nil {
		return map[string]any{}
	}
	return m.Placement.Configuration
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any
