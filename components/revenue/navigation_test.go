package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNavigation() Navigation {
	ds := MustDefaultDataset()
	return NewNavigation(ds.Shell, ds.Navigation)
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		current, path string
		want          bool
	}{
		{"/dashboard", "/dashboard", true},
		{"/dashboard/receita", "/dashboard", false},
		{"/dashboard/receita", "/dashboard/receita", true},
		{"/dashboard/receita/q3", "/dashboard/receita", true},
		{"/dashboard/receitas", "/dashboard/receita", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsActive(tc.current, tc.path, "/dashboard"), "%s vs %s", tc.current, tc.path)
	}
}

func TestNavigationResolve(t *testing.T) {
	nav := sampleNavigation()

	for _, path := range []string{"", "/dashboard", "/dashboard/"} {
		route, err := nav.Resolve(path)
		require.NoError(t, err)
		assert.Equal(t, "/dashboard/receita", route)
	}

	route, err := nav.Resolve("/dashboard/finance")
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/finance", route)

	_, err = nav.Resolve("/admin")
	require.ErrorIs(t, err, ErrUnknownRoute)
}

func TestNavigationItemsMarkActive(t *testing.T) {
	items := sampleNavigation().Items("/dashboard/receita")
	require.Len(t, items, 8)
	active := 0
	for _, item := range items {
		if item.Active {
			active++
			assert.Equal(t, "Receita", item.Name)
		}
	}
	assert.Equal(t, 1, active)
}

func TestNavigationTitleAndContent(t *testing.T) {
	nav := sampleNavigation()
	assert.True(t, nav.HasContent("/dashboard/receita"))
	assert.Equal(t, RevenueTitle, nav.Title("/dashboard/receita"))

	assert.False(t, nav.HasContent("/dashboard/people"))
	assert.Equal(t, "People", nav.Title("/dashboard/people"))
	assert.Equal(t, "Dashboard Arduus", nav.Title("/elsewhere"))
}
