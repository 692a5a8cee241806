package revenue

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDatasetDecodes(t *testing.T) {
	ds, err := DefaultDataset()
	require.NoError(t, err)
	assert.Equal(t, DatasetVersion, ds.Version)
	assert.Len(t, ds.Navigation, 8)
	assert.Len(t, ds.Funnel.Stages, 7)
	assert.Equal(t, TerminalOutputVolume, ds.Funnel.TerminalOutput)
	assert.Len(t, ds.Performance, 6)
	assert.Len(t, ds.Categories, 5)
	assert.Len(t, ds.KPIs, 4)
	assert.Equal(t, "Ana Rocha", ds.Shell.User)
	assert.Equal(t, "/dashboard/receita", ds.Shell.Landing)
	assert.Equal(t, float64(138), ds.Funnel.Stages[6].Conversion)
	assert.Equal(t, "<1k", ds.Performance[0].ACV)
	require.NotNil(t, ds.Categories[0].Percentage)
	assert.Equal(t, float64(109), *ds.Categories[0].Percentage)
	assert.Nil(t, ds.Categories[2].Percentage)
}

func TestDecodeDatasetRejectsUnknownFields(t *testing.T) {
	_, err := DecodeDataset(strings.NewReader("version: \"1\"\nbogus: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse dataset")
}

func TestDecodeDatasetRejectsEmpty(t *testing.T) {
	_, err := DecodeDataset(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestDecodeDatasetValidates(t *testing.T) {
	cases := map[string]string{
		"no stages": `
plan: {plan: 1, closed: 0}
forecast: {target: 1}
`,
		"duplicate stage": `
plan: {plan: 1, closed: 0}
forecast: {target: 1}
funnel:
  stages:
    - {id: a, volume: 1}
    - {id: a, volume: 2}
`,
		"bad kpi kind": `
plan: {plan: 1, closed: 0}
forecast: {target: 1}
funnel: {stages: [{id: a, volume: 1}]}
kpis: [{title: X, kind: gauge}]
`,
		"filter default": `
plan: {plan: 1, closed: 0}
forecast: {target: 1}
funnel: {stages: [{id: a, volume: 1}]}
filters: [{key: k, label: K, default: z, options: [a, b]}]
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDataset(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestReadDatasetRecordsSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(path, sampleDataset, 0o600))
	ds, err := ReadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, path, ds.Source)
}
