package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

type stateService interface {
	State(ctx context.Context, id string) (revenue.SessionState, error)
	Table(ctx context.Context, id string) (revenue.TableView, error)
}

// StateQuery returns the session snapshot.
type StateQuery struct {
	service stateService
}

// NewStateQuery builds the query.
func NewStateQuery(service stateService) *StateQuery {
	return &StateQuery{service: service}
}

var _ gocommand.Querier[SessionInput, revenue.SessionState] = (*StateQuery)(nil)

func (q *StateQuery) Query(ctx context.Context, input SessionInput) (revenue.SessionState, error) {
	return q.service.State(ctx, input.SessionID)
}

// TableQuery returns the derived performance table.
type TableQuery struct {
	service stateService
}

// NewTableQuery builds the query.
func NewTableQuery(service stateService) *TableQuery {
	return &TableQuery{service: service}
}

var _ gocommand.Querier[SessionInput, revenue.TableView] = (*TableQuery)(nil)

func (q *TableQuery) Query(ctx context.Context, input SessionInput) (revenue.TableView, error) {
	return q.service.Table(ctx, input.SessionID)
}
