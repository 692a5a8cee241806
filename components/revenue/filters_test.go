package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleFilters() *Filters {
	return NewFilters(MustDefaultDataset().Filters)
}

func TestFiltersStartAtDefaults(t *testing.T) {
	f := newSampleFilters()
	assert.Equal(t, "Últimos 30 dias", f.Pending()["date_range"])
	assert.Equal(t, "Todos segmentos", f.Applied()["segment"])
	assert.False(t, f.Dirty())
	assert.Zero(t, f.Active())
}

func TestFiltersSelectStagesUntilApply(t *testing.T) {
	f := newSampleFilters()
	require.NoError(t, f.Select("segment", "Enterprise"))
	assert.True(t, f.Dirty())
	assert.Equal(t, "Todos segmentos", f.Applied()["segment"])

	applied := f.Apply()
	assert.Equal(t, "Enterprise", applied["segment"])
	assert.False(t, f.Dirty())
	assert.Equal(t, 1, f.Active())
}

func TestFiltersRejectUnknownKeyAndOption(t *testing.T) {
	f := newSampleFilters()
	require.ErrorIs(t, f.Select("region", "LATAM"), ErrUnknownFilter)
	require.ErrorIs(t, f.Select("team", "Marketing"), ErrInvalidFilterOption)
	assert.False(t, f.Dirty())
}

func TestFiltersClearResetsBoth(t *testing.T) {
	f := newSampleFilters()
	require.NoError(t, f.Select("team", "Channel"))
	f.Apply()
	require.NoError(t, f.Select("source", "Eventos"))

	f.Clear()
	assert.Equal(t, "Todos times", f.Applied()["team"])
	assert.Equal(t, "Todos canais", f.Pending()["source"])
	assert.Zero(t, f.Active())
}

func TestFiltersCopiesAreDetached(t *testing.T) {
	f := newSampleFilters()
	pending := f.Pending()
	pending["segment"] = "SMB"
	assert.Equal(t, "Todos segmentos", f.Pending()["segment"])
}

func TestFiltersView(t *testing.T) {
	f := newSampleFilters()
	require.NoError(t, f.Select("date_range", "Hoje"))
	view := f.View()
	require.Len(t, view.Groups, 4)
	assert.Equal(t, "Hoje", view.Groups[0].Selected)
	assert.Equal(t, "Período", view.Groups[0].Label)
	assert.True(t, view.Dirty)
}
