package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

// SelectFilterInput stages one option of a filter dropdown.
type SelectFilterInput struct {
	SessionID string `json:"session_id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

type filterService interface {
	SelectFilter(ctx context.Context, id, key, value string) (revenue.SessionState, error)
	ApplyFilters(ctx context.Context, id string) (revenue.SessionState, error)
	ClearFilters(ctx context.Context, id string) (revenue.SessionState, error)
}

// SelectFilterCommand stages a filter option.
type SelectFilterCommand struct {
	service   filterService
	telemetry Telemetry
}

// NewSelectFilterCommand creates the command.
func NewSelectFilterCommand(service filterService, telemetry Telemetry) *SelectFilterCommand {
	return &SelectFilterCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectFilterInput] = (*SelectFilterCommand)(nil)

func (c *SelectFilterCommand) Execute(ctx context.Context, msg SelectFilterInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := (SessionInput{SessionID: msg.SessionID}).validate(); err != nil {
		return err
	}
	if _, err := c.service.SelectFilter(ctx, msg.SessionID, msg.Key, msg.Value); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.filter_select", map[string]any{
		"session_id": msg.SessionID,
		"key":        msg.Key,
		"value":      msg.Value,
	})
	return nil
}

// ApplyFiltersCommand commits the staged filters.
type ApplyFiltersCommand struct {
	service   filterService
	telemetry Telemetry
}

// NewApplyFiltersCommand creates the command.
func NewApplyFiltersCommand(service filterService, telemetry Telemetry) *ApplyFiltersCommand {
	return &ApplyFiltersCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*ApplyFiltersCommand)(nil)

func (c *ApplyFiltersCommand) Execute(ctx context.Context, msg SessionInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := msg.validate(); err != nil {
		return err
	}
	state, err := c.service.ApplyFilters(ctx, msg.SessionID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.filters_apply", map[string]any{
		"session_id": msg.SessionID,
		"active":     state.Filters.Active,
	})
	return nil
}

// ClearFiltersCommand resets the filters to their defaults.
type ClearFiltersCommand struct {
	service   filterService
	telemetry Telemetry
}

// NewClearFiltersCommand creates the command.
func NewClearFiltersCommand(service filterService, telemetry Telemetry) *ClearFiltersCommand {
	return &ClearFiltersCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*ClearFiltersCommand)(nil)

func (c *ClearFiltersCommand) Execute(ctx context.Context, msg SessionInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := msg.validate(); err != nil {
		return err
	}
	if _, err := c.service.ClearFilters(ctx, msg.SessionID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.filters_clear", map[string]any{"session_id": msg.SessionID})
	return nil
}
