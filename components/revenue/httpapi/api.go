// Package httpapi exposes revenue sessions over net/http on top of the shared
// commands and queries.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
	"github.com/goliatone/go-revenue-dashboard/components/revenue/commands"
	"github.com/goliatone/go-revenue-dashboard/pkg/table"
)

// ErrUnknownCommand is returned for command names not in commands.Names.
var ErrUnknownCommand = errors.New("httpapi: unknown command")

// Executor runs named session commands with a JSON payload.
type Executor interface {
	Execute(ctx context.Context, name, sessionID string, payload []byte) error
}

// CommandExecutor decodes payloads into command inputs and dispatches them.
type CommandExecutor struct {
	Commands *commands.Set
}

// NewCommandExecutor wraps a command set.
func NewCommandExecutor(set *commands.Set) *CommandExecutor {
	return &CommandExecutor{Commands: set}
}

var _ Executor = (*CommandExecutor)(nil)

// Execute runs the command called name for sessionID. The session id in the
// path always wins over one in the payload.
func (e *CommandExecutor) Execute(ctx context.Context, name, sessionID string, payload []byte) error {
	set := e.Commands
	if set == nil {
		return errors.New("httpapi: command set is required")
	}
	switch name {
	case commands.NameSort:
		var in commands.SortTableInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		in.SessionID = sessionID
		return set.Sort.Execute(ctx, in)
	case commands.NameFilter:
		var in commands.FilterTableInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		in.SessionID = sessionID
		return set.Filter.Execute(ctx, in)
	case commands.NameResize:
		var in commands.ResizeInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		in.SessionID = sessionID
		return set.Resize.Execute(ctx, in)
	case commands.NameMenu:
		return set.Menu.Execute(ctx, commands.SessionInput{SessionID: sessionID})
	case commands.NameNavigate:
		var in commands.NavigateInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		in.SessionID = sessionID
		return set.Navigate.Execute(ctx, in)
	case commands.NameForecastTab:
		var in commands.SelectTabInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		in.SessionID = sessionID
		return set.ForecastTab.Execute(ctx, in)
	case commands.NameIntelligence:
		return set.Intelligence.Execute(ctx, commands.SessionInput{SessionID: sessionID})
	case commands.NameIntelligenceTab:
		var in commands.SelectTabInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		in.SessionID = sessionID
		return set.IntelligenceTab.Execute(ctx, in)
	case commands.NameFunnelStage:
		var in commands.ToggleStageInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		in.SessionID = sessionID
		return set.FunnelStage.Execute(ctx, in)
	case commands.NameCarousel:
		var in commands.StepCarouselInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		in.SessionID = sessionID
		return set.Carousel.Execute(ctx, in)
	case commands.NameFilterSelect:
		var in commands.SelectFilterInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		in.SessionID = sessionID
		return set.FilterSelect.Execute(ctx, in)
	case commands.NameFiltersApply:
		return set.FiltersApply.Execute(ctx, commands.SessionInput{SessionID: sessionID})
	case commands.NameFiltersClear:
		return set.FiltersClear.Execute(ctx, commands.SessionInput{SessionID: sessionID})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}

// DecodeError marks a malformed request payload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "httpapi: invalid payload: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

func decode(payload []byte, in any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, in); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

var badRequest = []error{
	ErrUnknownCommand,
	commands.ErrMissingSessionID,
	table.ErrInvalidField,
	revenue.ErrUnknownRoute,
	revenue.ErrInvalidForecastTab,
	revenue.ErrUnknownPanelTab,
	revenue.ErrUnknownStage,
	revenue.ErrInvalidDirection,
	revenue.ErrInvalidWidth,
	revenue.ErrUnknownFilter,
	revenue.ErrInvalidFilterOption,
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, revenue.ErrSessionNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, revenue.ErrSessionClosed) {
		return http.StatusGone
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
