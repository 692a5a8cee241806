package revenue

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	errMissingCode     = errors.New("revenue: widget definition code is required")
	errNilProvider     = errors.New("revenue: provider cannot be nil")
	errUnknownWidget   = errors.New("revenue: widget definition not found")
	errDuplicateWidget = errors.New("revenue: widget definition already registered")
)

// WidgetHook lets packages register widgets or providers during init().
type WidgetHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []WidgetHook
)

// RegisterWidgetHook registers a hook executed against new registries.
func RegisterWidgetHook(h WidgetHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements ProviderRegistry with hook support.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]WidgetDefinition
	providers   map[string]Provider
}

// NewRegistry builds a registry holding the default revenue widgets and
// applies global hooks.
func NewRegistry() (*Registry, error) {
	reg := NewEmptyRegistry()
	if err := reg.registerDefaults(); err != nil {
		return nil, err
	}
	if err := reg.ApplyHooks(); err != nil {
		return nil, err
	}
	return reg, nil
}

// NewEmptyRegistry builds a registry without defaults or hooks.
func NewEmptyRegistry() *Registry {
	return &Registry{
		definitions: map[string]WidgetDefinition{},
		providers:   map[string]Provider{},
	}
}

func (r *Registry) registerDefaults() error {
	for _, def := range DefaultWidgetDefinitions() {
		if err := r.RegisterDefinition(def); err != nil {
			return err
		}
		if provider, ok := defaultProviders()[def.Code]; ok {
			if err := r.RegisterProvider(def.Code, provider); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyHooks executes registered widget hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	hooks := append([]WidgetHook(nil), globalHooks...)
	globalHookMu.Unlock()
	for _, hook := range hooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores widget metadata. Codes are unique.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if def.Code == "" {
		return errMissingCode
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[def.Code]; ok {
		return fmt.Errorf("%w: %s", errDuplicateWidget, def.Code)
	}
	r.definitions[def.Code] = def
	return nil
}

// RegisterProvider associates a provider with a registered definition,
// replacing any previous one.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return errMissingCode
	}
	if provider == nil {
		return errNilProvider
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("%w: %s", errUnknownWidget, code)
	}
	r.providers[code] = provider
	return nil
}

// Definition fetches a widget definition by code.
func (r *Registry) Definition(code string) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Provider fetches a widget provider by code.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// Definitions returns all registered definitions ordered by code.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })
	return defs
}
