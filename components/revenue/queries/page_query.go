// Package queries exposes read-only views of revenue sessions as go-command
// queriers.
package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

// SessionInput identifies a page session.
type SessionInput struct {
	SessionID string `json:"session_id"`
}

type pageService interface {
	Page(ctx context.Context, id string) (revenue.PageView, error)
}

// PageQuery resolves the full page of a session.
type PageQuery struct {
	service pageService
}

// NewPageQuery builds the query.
func NewPageQuery(service pageService) *PageQuery {
	return &PageQuery{service: service}
}

var _ gocommand.Querier[SessionInput, revenue.PageView] = (*PageQuery)(nil)

// Query resolves layout, shell and widget data.
func (q *PageQuery) Query(ctx context.Context, input SessionInput) (revenue.PageView, error) {
	return q.service.Page(ctx, input.SessionID)
}
