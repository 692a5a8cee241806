package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
	"github.com/goliatone/go-revenue-dashboard/components/revenue/commands"
	"github.com/goliatone/go-revenue-dashboard/components/revenue/queries"
)

const maxPayload = 64 << 10

// Opener starts page sessions.
type Opener interface {
	OpenSession(ctx context.Context, route string) (revenue.SessionState, error)
}

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Commands   Executor
	Open       Opener
	Close      gocommand.Commander[commands.SessionInput]
	State      gocommand.Querier[queries.SessionInput, revenue.SessionState]
	Table      gocommand.Querier[queries.SessionInput, revenue.TableView]
	Page       gocommand.Querier[queries.SessionInput, revenue.PageView]
	Controller *revenue.Controller
	Broadcast  *revenue.BroadcastHook
}

// NewHandlers wires handlers over a service.
func NewHandlers(service *revenue.Service, controller *revenue.Controller, broadcast *revenue.BroadcastHook, telemetry commands.Telemetry) *Handlers {
	set := commands.NewSet(service, telemetry)
	return &Handlers{
		Commands:   NewCommandExecutor(set),
		Open:       set,
		Close:      set.Close,
		State:      queries.NewStateQuery(service),
		Table:      queries.NewTableQuery(service),
		Page:       queries.NewPageQuery(service),
		Controller: controller,
		Broadcast:  broadcast,
	}
}

// Mux routes the session API under the server root:
//
//	POST   /sessions                      open a session
//	GET    /sessions/{id}                 session state
//	DELETE /sessions/{id}                 close a session
//	GET    /sessions/{id}/page            page payload
//	GET    /sessions/{id}/view            rendered page HTML
//	GET    /sessions/{id}/table           derived table
//	POST   /sessions/{id}/commands/{name} run a command, returns the new state
//	GET    /ws, /events                   session event streams
func (h *Handlers) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", h.HandleOpenSession)
	mux.HandleFunc("GET /sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleState(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("DELETE /sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleCloseSession(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("GET /sessions/{id}/page", func(w http.ResponseWriter, r *http.Request) {
		h.HandlePage(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("GET /sessions/{id}/view", func(w http.ResponseWriter, r *http.Request) {
		h.HandleView(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("GET /sessions/{id}/table", func(w http.ResponseWriter, r *http.Request) {
		h.HandleTable(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST /sessions/{id}/commands/{name}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleCommand(w, r, r.PathValue("id"), r.PathValue("name"))
	})
	if h.Broadcast != nil {
		mux.HandleFunc("GET /ws", h.Broadcast.ServeWebSocket)
		mux.HandleFunc("GET /events", h.Broadcast.ServeSSE)
	}
	return mux
}

type openRequest struct {
	Route string `json:"route"`
}

func (h *Handlers) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	var payload openRequest
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := decode(body, &payload); err != nil {
		writeError(w, err)
		return
	}
	state, err := h.Open.OpenSession(r.Context(), payload.Route)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *Handlers) HandleCloseSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.Close.Execute(r.Context(), commands.SessionInput{SessionID: sessionID}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request, sessionID string) {
	state, err := h.State.Query(r.Context(), queries.SessionInput{SessionID: sessionID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleTable(w http.ResponseWriter, r *http.Request, sessionID string) {
	view, err := h.Table.Query(r.Context(), queries.SessionInput{SessionID: sessionID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request, sessionID string) {
	page, err := h.Page.Query(r.Context(), queries.SessionInput{SessionID: sessionID})
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := revenue.PagePayload(page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request, sessionID string) {
	if h.Controller == nil {
		http.Error(w, "view rendering not configured", http.StatusNotImplemented)
		return
	}
	var buf bytes.Buffer
	if err := h.Controller.RenderTemplate(r.Context(), sessionID, &buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandleCommand executes the named command and responds with the new state.
func (h *Handlers) HandleCommand(w http.ResponseWriter, r *http.Request, sessionID, name string) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Commands.Execute(r.Context(), name, sessionID, body); err != nil {
		writeError(w, err)
		return
	}
	h.HandleState(w, r, sessionID)
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxPayload))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return data, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}
