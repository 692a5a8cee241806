package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

// SortTableInput sorts the performance table. An empty Field clears the sort.
type SortTableInput struct {
	SessionID string `json:"session_id"`
	Field     string `json:"field"`
}

// FilterTableInput replaces the table search term.
type FilterTableInput struct {
	SessionID string `json:"session_id"`
	Term      string `json:"term"`
}

type tableService interface {
	SortTable(ctx context.Context, id, field string) (revenue.SessionState, error)
	FilterTable(ctx context.Context, id, term string) (revenue.SessionState, error)
}

// SortTableCommand applies a sort request.
type SortTableCommand struct {
	service   tableService
	telemetry Telemetry
}

// NewSortTableCommand creates the command.
func NewSortTableCommand(service tableService, telemetry Telemetry) *SortTableCommand {
	return &SortTableCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SortTableInput] = (*SortTableCommand)(nil)

// Execute delegates to the revenue service.
func (c *SortTableCommand) Execute(ctx context.Context, msg SortTableInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := (SessionInput{SessionID: msg.SessionID}).validate(); err != nil {
		return err
	}
	state, err := c.service.SortTable(ctx, msg.SessionID, msg.Field)
	if err != nil {
		return err
	}
	payload := map[string]any{"session_id": msg.SessionID, "field": msg.Field}
	if state.Sort != nil {
		payload["direction"] = state.Sort.Direction.String()
	}
	c.telemetry.Record(ctx, "revenue.command.sort", payload)
	return nil
}

// FilterTableCommand applies a search term.
type FilterTableCommand struct {
	service   tableService
	telemetry Telemetry
}

// NewFilterTableCommand creates the command.
func NewFilterTableCommand(service tableService, telemetry Telemetry) *FilterTableCommand {
	return &FilterTableCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[FilterTableInput] = (*FilterTableCommand)(nil)

func (c *FilterTableCommand) Execute(ctx context.Context, msg FilterTableInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := (SessionInput{SessionID: msg.SessionID}).validate(); err != nil {
		return err
	}
	state, err := c.service.FilterTable(ctx, msg.SessionID, msg.Term)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.filter", map[string]any{
		"session_id": msg.SessionID,
		"term":       msg.Term,
		"rows":       len(state.Table.Rows),
	})
	return nil
}
