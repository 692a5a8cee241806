// Package commands exposes the revenue page operations as go-command
// commanders so transports can invoke them without linking the service.
package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

var (
	errMissingService = errors.New("commands: service is required")
	// ErrMissingSessionID is returned by session commands without an id.
	ErrMissingSessionID = errors.New("commands: session id is required")
)

// SessionInput identifies a page session.
type SessionInput struct {
	SessionID string `json:"session_id"`
}

func (in SessionInput) validate() error {
	if in.SessionID == "" {
		return ErrMissingSessionID
	}
	return nil
}

// OpenSessionInput opens a page on Route. Result receives the new state.
type OpenSessionInput struct {
	Route  string                `json:"route"`
	Result *revenue.SessionState `json:"-"`
}

type sessionService interface {
	OpenSession(ctx context.Context, route string) (revenue.SessionState, error)
	CloseSession(ctx context.Context, id string) error
}

// OpenSessionCommand starts a page session.
type OpenSessionCommand struct {
	service   sessionService
	telemetry Telemetry
}

// NewOpenSessionCommand creates the command.
func NewOpenSessionCommand(service sessionService, telemetry Telemetry) *OpenSessionCommand {
	return &OpenSessionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[OpenSessionInput] = (*OpenSessionCommand)(nil)

// Execute opens the session and stores its state in msg.Result.
func (c *OpenSessionCommand) Execute(ctx context.Context, msg OpenSessionInput) error {
	if c.service == nil {
		return errMissingService
	}
	state, err := c.service.OpenSession(ctx, msg.Route)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	c.telemetry.Record(ctx, "revenue.command.open_session", map[string]any{
		"session_id": state.ID,
		"route":      state.Route,
	})
	return nil
}

// CloseSessionCommand releases a page session.
type CloseSessionCommand struct {
	service   sessionService
	telemetry Telemetry
}

// NewCloseSessionCommand creates the command.
func NewCloseSessionCommand(service sessionService, telemetry Telemetry) *CloseSessionCommand {
	return &CloseSessionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*CloseSessionCommand)(nil)

func (c *CloseSessionCommand) Execute(ctx context.Context, msg SessionInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := msg.validate(); err != nil {
		return err
	}
	if err := c.service.CloseSession(ctx, msg.SessionID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.close_session", map[string]any{"session_id": msg.SessionID})
	return nil
}

// SweepInput has no fields; it exists so the sweep runs through the same
// command bus as the other operations.
type SweepInput struct{}

type sweepService interface {
	SweepIdle(ctx context.Context) int
}

// SweepSessionsCommand closes idle sessions.
type SweepSessionsCommand struct {
	service   sweepService
	telemetry Telemetry
}

// NewSweepSessionsCommand creates the command.
func NewSweepSessionsCommand(service sweepService, telemetry Telemetry) *SweepSessionsCommand {
	return &SweepSessionsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SweepInput] = (*SweepSessionsCommand)(nil)

func (c *SweepSessionsCommand) Execute(ctx context.Context, _ SweepInput) error {
	if c.service == nil {
		return errMissingService
	}
	closed := c.service.SweepIdle(ctx)
	c.telemetry.Record(ctx, "revenue.command.sweep", map[string]any{"closed": closed})
	return nil
}
