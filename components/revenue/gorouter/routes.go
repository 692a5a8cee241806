// Package gorouter mounts the revenue dashboard on a go-router router.
package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
	"github.com/goliatone/go-revenue-dashboard/components/revenue/commands"
	"github.com/goliatone/go-revenue-dashboard/components/revenue/httpapi"
	"github.com/goliatone/go-revenue-dashboard/components/revenue/queries"
)

// Config wires go-router with the revenue handlers.
type Config[T any] struct {
	Router   router.Router[T]
	Handlers *httpapi.Handlers
	Routes   RouteConfig
}

// RouteConfig customizes the paths used for dashboard endpoints. Page paths
// are absolute because sidebar links point at them; API paths are relative
// to APIBase.
type RouteConfig struct {
	Home      string
	Section   string
	APIBase   string
	Sessions  string
	Session   string
	Page      string
	View      string
	Table     string
	Command   string
	WebSocket string
}

// Routes is the part of a go-router router the dashboard mounts on.
type Routes interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo
}

// requestContext is the part of router.Context the handlers read and write.
type requestContext interface {
	Context() context.Context
	Param(name string, defaultValue ...string) string
	Body() []byte
	SetHeader(key, value string) router.Context
	Send(body []byte) error
	JSON(code int, v any) error
}

type contextHandler func(requestContext) error

func wrap(h contextHandler) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		return h(ctx)
	})
}

// Register mounts pages (HTML), session JSON, commands and the WebSocket
// event stream on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Handlers == nil {
		return errors.New("gorouter: handlers are required")
	}
	return mount(cfg.Router, cfg.Handlers, defaultRouteConfig(cfg.Routes))
}

func mount(r Routes, h *httpapi.Handlers, routes RouteConfig) error {
	api := strings.TrimRight(routes.APIBase, "/")
	if h.Controller != nil {
		r.Get(routes.Home, wrap(pageHandler(h, func(requestContext) string { return routes.Home })))
		r.Get(routes.Section, wrap(pageHandler(h, func(ctx requestContext) string {
			return strings.TrimRight(routes.Home, "/") + "/" + ctx.Param("section")
		})))
		r.Get(api+routes.View, wrap(viewHandler(h)))
	}
	r.Post(api+routes.Sessions, wrap(openHandler(h)))
	r.Get(api+routes.Session, wrap(stateHandler(h)))
	r.Delete(api+routes.Session, wrap(closeHandler(h)))
	r.Get(api+routes.Page, wrap(pagePayloadHandler(h)))
	r.Get(api+routes.Table, wrap(tableHandler(h)))
	r.Post(api+routes.Command, wrap(commandHandler(h)))
	if h.Broadcast != nil {
		registerWebSocket(r, h.Broadcast, api+routes.WebSocket)
	}
	return nil
}

// pageHandler opens a session per page load and renders it.
func pageHandler(h *httpapi.Handlers, route func(requestContext) string) contextHandler {
	return func(ctx requestContext) error {
		state, err := h.Open.OpenSession(ctx.Context(), route(ctx))
		if err != nil {
			if errors.Is(err, revenue.ErrUnknownRoute) {
				return respondError(ctx, http.StatusNotFound, err)
			}
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return renderView(ctx, h, state.ID)
	}
}

func viewHandler(h *httpapi.Handlers) contextHandler {
	return func(ctx requestContext) error {
		return renderView(ctx, h, ctx.Param("id"))
	}
}

func renderView(ctx requestContext, h *httpapi.Handlers, sessionID string) error {
	var buf bytes.Buffer
	if err := h.Controller.RenderTemplate(ctx.Context(), sessionID, &buf); err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(buf.Bytes())
}

type openRequest struct {
	Route string `json:"route"`
}

func openHandler(h *httpapi.Handlers) contextHandler {
	return func(ctx requestContext) error {
		var payload openRequest
		if body := ctx.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
		}
		state, err := h.Open.OpenSession(ctx.Context(), payload.Route)
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, state)
	}
}

func stateHandler(h *httpapi.Handlers) contextHandler {
	return func(ctx requestContext) error {
		return respondState(ctx, h, ctx.Param("id"))
	}
}

func respondState(ctx requestContext, h *httpapi.Handlers, sessionID string) error {
	state, err := h.State.Query(ctx.Context(), queries.SessionInput{SessionID: sessionID})
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, state)
}

func closeHandler(h *httpapi.Handlers) contextHandler {
	return func(ctx requestContext) error {
		id := ctx.Param("id")
		if err := h.Close.Execute(ctx.Context(), commands.SessionInput{SessionID: id}); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "closed"})
	}
}

func pagePayloadHandler(h *httpapi.Handlers) contextHandler {
	return func(ctx requestContext) error {
		page, err := h.Page.Query(ctx.Context(), queries.SessionInput{SessionID: ctx.Param("id")})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		payload, err := revenue.PagePayload(page)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}
}

func tableHandler(h *httpapi.Handlers) contextHandler {
	return func(ctx requestContext) error {
		view, err := h.Table.Query(ctx.Context(), queries.SessionInput{SessionID: ctx.Param("id")})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, view)
	}
}

func commandHandler(h *httpapi.Handlers) contextHandler {
	return func(ctx requestContext) error {
		id := ctx.Param("id")
		if err := h.Commands.Execute(ctx.Context(), ctx.Param("command"), id, ctx.Body()); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondState(ctx, h, id)
	}
}

// registerWebSocket streams every session event; pages filter on session_id.
func registerWebSocket(r Routes, hook *revenue.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondError(ctx requestContext, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Home == "" {
		routes.Home = "/dashboard"
	}
	if routes.Section == "" {
		routes.Section = strings.TrimRight(routes.Home, "/") + "/:section"
	}
	if routes.APIBase == "" {
		routes.APIBase = revenue.DefaultAPIBase
	}
	if routes.Sessions == "" {
		routes.Sessions = "/sessions"
	}
	if routes.Session == "" {
		routes.Session = "/sessions/:id"
	}
	if routes.Page == "" {
		routes.Page = "/sessions/:id/page"
	}
	if routes.View == "" {
		routes.View = "/sessions/:id/view"
	}
	if routes.Table == "" {
		routes.Table = "/sessions/:id/table"
	}
	if routes.Command == "" {
		routes.Command = "/sessions/:id/commands/:command"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
