package revenue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	defaultTemplate = "page"
	// DefaultAPIBase prefixes the session endpoints the page script calls.
	DefaultAPIBase = "/api/revenue"
)

var errMissingRenderer = errors.New("revenue: renderer not configured")

// PageResolver resolves the page view of a session.
type PageResolver interface {
	Page(ctx context.Context, sessionID string) (PageView, error)
}

// ControllerOptions wires a Controller.
type ControllerOptions struct {
	Service  PageResolver
	Renderer Renderer
	Template string
	APIBase  string
}

// Controller renders revenue pages through a template renderer.
type Controller struct {
	service  PageResolver
	renderer Renderer
	template string
	apiBase  string
}

// NewController builds a controller; the template defaults to "page".
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = defaultTemplate
	}
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		template: opts.Template,
		apiBase:  opts.APIBase,
	}
}

// Render resolves the page for a session.
func (c *Controller) Render(ctx context.Context, sessionID string) (PageView, error) {
	if c.service == nil {
		return PageView{}, nil
	}
	return c.service.Page(ctx, sessionID)
}

// RenderTemplate renders the session page into out.
func (c *Controller) RenderTemplate(ctx context.Context, sessionID string, out io.Writer) error {
	if c.renderer == nil {
		return errMissingRenderer
	}
	page, err := c.Render(ctx, sessionID)
	if err != nil {
		return err
	}
	payload, err := PagePayload(page)
	if err != nil {
		return err
	}
	payload["api_base"] = c.apiBase
	if _, err := c.renderer.Render(c.template, payload, out); err != nil {
		return fmt.Errorf("revenue: render %s: %w", c.template, err)
	}
	return nil
}

// AreaPayload is one page area in render order.
type AreaPayload struct {
	Code    string       `json:"code"`
	Widgets []WidgetView `json:"widgets"`
}

// PagePayload flattens a page into plain JSON data, so templates and JSON
// clients address fields by the same names. Areas are listed in render order
// under "areas"; "page" holds the rest.
func PagePayload(page PageView) (map[string]any, error) {
	areas := make([]AreaPayload, 0, len(Areas))
	for _, code := range Areas {
		if widgets := page.Areas[code]; len(widgets) > 0 {
			areas = append(areas, AreaPayload{Code: code, Widgets: widgets})
		}
	}
	raw, err := json.Marshal(map[string]any{
		"page":  page,
		"areas": areas,
	})
	if err != nil {
		return nil, fmt.Errorf("revenue: encode page: %w", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("revenue: decode page: %w", err)
	}
	return payload, nil
}
