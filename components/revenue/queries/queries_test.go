package queries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

func openedService(t *testing.T) (*revenue.Service, string) {
	t.Helper()
	svc, err := revenue.NewService(revenue.Options{DisableAnimations: true})
	require.NoError(t, err)
	state, err := svc.OpenSession(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.CloseSession(context.Background(), state.ID) })
	return svc, state.ID
}

func TestStateAndTableQueries(t *testing.T) {
	svc, id := openedService(t)
	ctx := context.Background()
	_, err := svc.FilterTable(ctx, id, "150k+")
	require.NoError(t, err)

	state, err := NewStateQuery(svc).Query(ctx, SessionInput{SessionID: id})
	require.NoError(t, err)
	assert.Equal(t, id, state.ID)
	assert.Equal(t, "150k+", state.Table.Filter)

	view, err := NewTableQuery(svc).Query(ctx, SessionInput{SessionID: id})
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "180+", view.Rows[0].SalesCycle)

	_, err = NewStateQuery(svc).Query(ctx, SessionInput{SessionID: "missing"})
	require.ErrorIs(t, err, revenue.ErrSessionNotFound)
}

func TestPageQuery(t *testing.T) {
	svc, id := openedService(t)
	page, err := NewPageQuery(svc).Query(context.Background(), SessionInput{SessionID: id})
	require.NoError(t, err)
	assert.Equal(t, id, page.SessionID)
	assert.True(t, page.HasContent)
	assert.NotEmpty(t, page.Areas[revenue.AreaMain])
}
