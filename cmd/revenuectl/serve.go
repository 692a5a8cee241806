package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/goliatone/go-users/pkg/types"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
	"github.com/goliatone/go-revenue-dashboard/components/revenue/gorouter"
	"github.com/goliatone/go-revenue-dashboard/components/revenue/httpapi"
	"github.com/goliatone/go-revenue-dashboard/pkg/activity"
	"github.com/goliatone/go-revenue-dashboard/pkg/activity/usersink"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	Addr          string        `env:"REVENUE_ADDR" default:":9876" help:"Listen address."`
	IdleTimeout   time.Duration `name:"idle-timeout" default:"30m" help:"Close page sessions idle for this long."`
	SweepInterval time.Duration `name:"sweep-interval" default:"1m" help:"How often idle sessions are swept."`
	NoAnimations  bool          `name:"no-animations" help:"Show the gap value without the count-up."`
	Activity      bool          `help:"Log UI activity records."`
}

func (cmd *serveCmd) Run(ctx context.Context, env *appEnv) error {
	ds, err := env.dataset(ctx)
	if err != nil {
		return err
	}

	broadcast := revenue.NewBroadcastHook()
	defer broadcast.Close()

	telemetry := revenue.NewSlogTelemetry(env.log)
	service, err := revenue.NewService(revenue.Options{
		Dataset:           ds,
		RefreshHook:       broadcast,
		Telemetry:         telemetry,
		ActivityHooks:     activity.Hooks{usersink.Hook{Sink: logSink{log: env.log}}},
		ActivityConfig:    activity.Config{Enabled: cmd.Activity},
		DisableAnimations: cmd.NoAnimations,
		IdleTimeout:       cmd.IdleTimeout,
	})
	if err != nil {
		return fmt.Errorf("revenuectl: build service: %w", err)
	}

	renderer, err := revenue.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("revenuectl: load templates: %w", err)
	}
	controller := revenue.NewController(revenue.ControllerOptions{
		Service:  service,
		Renderer: renderer,
	})
	handlers := httpapi.NewHandlers(service, controller, broadcast, telemetry)

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:   server.Router(),
		Handlers: handlers,
	}); err != nil {
		return fmt.Errorf("revenuectl: register routes: %w", err)
	}

	go service.RunSweeper(ctx, cmd.SweepInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(cmd.Addr)
	}()
	env.log.Info("revenue dashboard ready",
		"addr", cmd.Addr,
		"page", "/dashboard/receita",
		"api", revenue.DefaultAPIBase,
		"dataset", ds.Source,
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	env.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("revenuectl: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// logSink writes go-users activity records to the log.
type logSink struct {
	log *slog.Logger
}

func (s logSink) Log(ctx context.Context, record types.ActivityRecord) error {
	s.log.LogAttrs(ctx, slog.LevelInfo, "activity",
		slog.String("verb", record.Verb),
		slog.String("object_type", record.ObjectType),
		slog.String("object_id", record.ObjectID),
		slog.String("channel", record.Channel),
		slog.Any("data", record.Data),
	)
	return nil
}
