package commands

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
	"github.com/goliatone/go-revenue-dashboard/pkg/responsive"
)

// ResizeInput reports the browser viewport width.
type ResizeInput struct {
	SessionID string `json:"session_id"`
	Width     int    `json:"width"`
}

// NavigateInput moves the session to a sidebar route.
type NavigateInput struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
}

type viewportService interface {
	Resize(ctx context.Context, id string, width int) (revenue.SessionState, error)
	ToggleMenu(ctx context.Context, id string) (revenue.SessionState, error)
	Navigate(ctx context.Context, id, path string) (revenue.SessionState, error)
}

// ResizeCommand mounts or resizes the session viewport.
type ResizeCommand struct {
	service   viewportService
	telemetry Telemetry
}

// NewResizeCommand creates the command.
func NewResizeCommand(service viewportService, telemetry Telemetry) *ResizeCommand {
	return &ResizeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizeInput] = (*ResizeCommand)(nil)

func (c *ResizeCommand) Execute(ctx context.Context, msg ResizeInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := (SessionInput{SessionID: msg.SessionID}).validate(); err != nil {
		return err
	}
	if msg.Width <= 0 {
		return fmt.Errorf("%w: %d", revenue.ErrInvalidWidth, msg.Width)
	}
	state, err := c.service.Resize(ctx, msg.SessionID, msg.Width)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.resize", map[string]any{
		"session_id": msg.SessionID,
		"width":      msg.Width,
		"class":      state.Class(responsive.KindShell).String(),
	})
	return nil
}

// ToggleMenuCommand pins the sidebar on desktop or opens the drawer on mobile.
type ToggleMenuCommand struct {
	service   viewportService
	telemetry Telemetry
}

// NewToggleMenuCommand creates the command.
func NewToggleMenuCommand(service viewportService, telemetry Telemetry) *ToggleMenuCommand {
	return &ToggleMenuCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*ToggleMenuCommand)(nil)

func (c *ToggleMenuCommand) Execute(ctx context.Context, msg SessionInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := msg.validate(); err != nil {
		return err
	}
	state, err := c.service.ToggleMenu(ctx, msg.SessionID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.menu", map[string]any{
		"session_id": msg.SessionID,
		"open":       state.Menu.Open,
		"pinned":     state.Menu.Pinned,
	})
	return nil
}

// NavigateCommand changes the active route.
type NavigateCommand struct {
	service   viewportService
	telemetry Telemetry
}

// NewNavigateCommand creates the command.
func NewNavigateCommand(service viewportService, telemetry Telemetry) *NavigateCommand {
	return &NavigateCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[NavigateInput] = (*NavigateCommand)(nil)

func (c *NavigateCommand) Execute(ctx context.Context, msg NavigateInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := (SessionInput{SessionID: msg.SessionID}).validate(); err != nil {
		return err
	}
	state, err := c.service.Navigate(ctx, msg.SessionID, msg.Path)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.navigate", map[string]any{
		"session_id": msg.SessionID,
		"route":      state.Route,
	})
	return nil
}
