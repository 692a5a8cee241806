package revenue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacadeOpensSessions(t *testing.T) {
	ds, err := LoadDataset("")
	require.NoError(t, err)

	svc, err := NewService(Options{Dataset: ds, DisableAnimations: true})
	require.NoError(t, err)

	var state SessionState
	state, err = svc.OpenSession(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/receita", state.Route)
	require.NoError(t, svc.CloseSession(context.Background(), state.ID))
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset("missing.yaml")
	require.Error(t, err)
}
