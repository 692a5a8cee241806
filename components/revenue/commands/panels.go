package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

// SelectTabInput picks a tab of the forecast or the intelligence panel.
type SelectTabInput struct {
	SessionID string `json:"session_id"`
	Tab       string `json:"tab"`
}

// ToggleStageInput expands or collapses a funnel stage.
type ToggleStageInput struct {
	SessionID string `json:"session_id"`
	Stage     string `json:"stage"`
}

// StepCarouselInput moves the categories carousel.
type StepCarouselInput struct {
	SessionID string                    `json:"session_id"`
	Direction revenue.CarouselDirection `json:"direction"`
}

type panelService interface {
	SelectForecastTab(ctx context.Context, id, tab string) (revenue.SessionState, error)
	ToggleIntelligence(ctx context.Context, id string) (revenue.SessionState, error)
	SelectIntelligenceTab(ctx context.Context, id, tab string) (revenue.SessionState, error)
	ToggleFunnelStage(ctx context.Context, id, stage string) (revenue.SessionState, error)
	StepCarousel(ctx context.Context, id string, dir revenue.CarouselDirection) (revenue.SessionState, error)
}

// SelectForecastTabCommand switches between monthly and quarterly forecasts.
type SelectForecastTabCommand struct {
	service   panelService
	telemetry Telemetry
}

// NewSelectForecastTabCommand creates the command.
func NewSelectForecastTabCommand(service panelService, telemetry Telemetry) *SelectForecastTabCommand {
	return &SelectForecastTabCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectTabInput] = (*SelectForecastTabCommand)(nil)

func (c *SelectForecastTabCommand) Execute(ctx context.Context, msg SelectTabInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := (SessionInput{SessionID: msg.SessionID}).validate(); err != nil {
		return err
	}
	if _, err := c.service.SelectForecastTab(ctx, msg.SessionID, msg.Tab); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.forecast_tab", map[string]any{
		"session_id": msg.SessionID,
		"tab":        msg.Tab,
	})
	return nil
}

// ToggleIntelligenceCommand opens or closes the intelligence panel.
type ToggleIntelligenceCommand struct {
	service   panelService
	telemetry Telemetry
}

// NewToggleIntelligenceCommand creates the command.
func NewToggleIntelligenceCommand(service panelService, telemetry Telemetry) *ToggleIntelligenceCommand {
	return &ToggleIntelligenceCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*ToggleIntelligenceCommand)(nil)

func (c *ToggleIntelligenceCommand) Execute(ctx context.Context, msg SessionInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := msg.validate(); err != nil {
		return err
	}
	state, err := c.service.ToggleIntelligence(ctx, msg.SessionID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.intelligence", map[string]any{
		"session_id": msg.SessionID,
		"open":       state.PanelOpen,
	})
	return nil
}

// SelectIntelligenceTabCommand opens the panel on a tab.
type SelectIntelligenceTabCommand struct {
	service   panelService
	telemetry Telemetry
}

// NewSelectIntelligenceTabCommand creates the command.
func NewSelectIntelligenceTabCommand(service panelService, telemetry Telemetry) *SelectIntelligenceTabCommand {
	return &SelectIntelligenceTabCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectTabInput] = (*SelectIntelligenceTabCommand)(nil)

func (c *SelectIntelligenceTabCommand) Execute(ctx context.Context, msg SelectTabInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := (SessionInput{SessionID: msg.SessionID}).validate(); err != nil {
		return err
	}
	if _, err := c.service.SelectIntelligenceTab(ctx, msg.SessionID, msg.Tab); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.intelligence_tab", map[string]any{
		"session_id": msg.SessionID,
		"tab":        msg.Tab,
	})
	return nil
}

// ToggleFunnelStageCommand expands one funnel stage at a time.
type ToggleFunnelStageCommand struct {
	service   panelService
	telemetry Telemetry
}

// NewToggleFunnelStageCommand creates the command.
func NewToggleFunnelStageCommand(service panelService, telemetry Telemetry) *ToggleFunnelStageCommand {
	return &ToggleFunnelStageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleStageInput] = (*ToggleFunnelStageCommand)(nil)

func (c *ToggleFunnelStageCommand) Execute(ctx context.Context, msg ToggleStageInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := (SessionInput{SessionID: msg.SessionID}).validate(); err != nil {
		return err
	}
	state, err := c.service.ToggleFunnelStage(ctx, msg.SessionID, msg.Stage)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.funnel_stage", map[string]any{
		"session_id": msg.SessionID,
		"stage":      msg.Stage,
		"expanded":   state.ExpandedStage != "",
	})
	return nil
}

// StepCarouselCommand moves the categories carousel.
type StepCarouselCommand struct {
	service   panelService
	telemetry Telemetry
}

// NewStepCarouselCommand creates the command.
func NewStepCarouselCommand(service panelService, telemetry Telemetry) *StepCarouselCommand {
	return &StepCarouselCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[StepCarouselInput] = (*StepCarouselCommand)(nil)

func (c *StepCarouselCommand) Execute(ctx context.Context, msg StepCarouselInput) error {
	if c.service == nil {
		return errMissingService
	}
	if err := (SessionInput{SessionID: msg.SessionID}).validate(); err != nil {
		return err
	}
	state, err := c.service.StepCarousel(ctx, msg.SessionID, msg.Direction)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "revenue.command.carousel", map[string]any{
		"session_id": msg.SessionID,
		"index":      state.CarouselIndex,
	})
	return nil
}
