package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

func TestEmbeddedTemplatesRenderFromAnyDirectory(t *testing.T) {
	svc, err := revenue.NewService(revenue.Options{DisableAnimations: true})
	require.NoError(t, err)
	state, err := svc.OpenSession(context.Background(), "")
	require.NoError(t, err)

	renderer, err := revenue.NewTemplateRenderer()
	require.NoError(t, err)
	controller := revenue.NewController(revenue.ControllerOptions{Service: svc, Renderer: renderer})

	var out strings.Builder
	require.NoError(t, controller.RenderTemplate(context.Background(), state.ID, &out))
	assert.Contains(t, out.String(), revenue.RevenueTitle)
	assert.Contains(t, out.String(), state.ID)
}
