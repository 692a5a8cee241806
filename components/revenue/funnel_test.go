package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectFunnelOutputVolumes(t *testing.T) {
	stages := MustDefaultDataset().Funnel.Stages
	geometry := ProjectFunnel(stages, TerminalOutputVolume)
	require.Len(t, geometry, len(stages))

	for i := 0; i < len(stages)-1; i++ {
		assert.Equal(t, stages[i+1].Volume, geometry[i].OutputVolume, "stage %s", stages[i].ID)
		assert.False(t, geometry[i].Terminal)
	}
	last := geometry[len(geometry)-1]
	assert.True(t, last.Terminal)
	assert.Equal(t, TerminalOutputVolume, last.OutputVolume)
	for _, s := range stages {
		if s.Volume == TerminalOutputVolume {
			t.Fatalf("sample data should not contain the sentinel as a volume")
		}
	}
}

func TestProjectFunnelHeights(t *testing.T) {
	geometry := ProjectFunnel(MustDefaultDataset().Funnel.Stages, TerminalOutputVolume)
	assert.Equal(t, float64(100), geometry[0].InputHeight)
	assert.InDelta(t, 130.0/150*100, geometry[0].OutputHeight, 1e-9)
	assert.InDelta(t, 40.0/150*100, geometry[6].InputHeight, 1e-9)
	assert.InDelta(t, 55.0/150*100, geometry[6].OutputHeight, 1e-9)
	assert.Equal(t, "polygon(0% 0.00%, 100% 6.67%, 100% 93.33%, 0% 100.00%)", geometry[0].ClipPath)
}

func TestProjectFunnelKeepsStoredConversions(t *testing.T) {
	stages := MustDefaultDataset().Funnel.Stages
	geometry := ProjectFunnel(stages, TerminalOutputVolume)
	for i, g := range geometry {
		assert.Equal(t, stages[i].Conversion, g.Stage.Conversion)
	}
	assert.Equal(t, float64(138), geometry[6].Stage.Conversion)
	assert.Equal(t, float64(138), geometry[6].RecomputedConversion)
	assert.Equal(t, ConversionHigh, geometry[6].Tier)
	assert.Equal(t, ConversionMid, geometry[5].Tier)
	assert.Equal(t, "R$ 1.075.000", geometry[0].AmountLabel)
	assert.Equal(t, "87%", geometry[0].ConversionLabel)
}

func TestConversionDrift(t *testing.T) {
	stages := []FunnelStage{
		{ID: "a", Volume: 100, Conversion: 50},
		{ID: "b", Volume: 50, Conversion: 10},
	}
	geometry := ProjectFunnel(stages, 20)
	assert.Equal(t, []string{"b"}, ConversionDrift(geometry))
	assert.Equal(t, float64(40), geometry[1].RecomputedConversion)
}

func TestProjectFunnelEmpty(t *testing.T) {
	out := ProjectFunnel(nil, TerminalOutputVolume)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestTierForConversion(t *testing.T) {
	assert.Equal(t, ConversionHigh, TierForConversion(70))
	assert.Equal(t, ConversionMid, TierForConversion(69))
	assert.Equal(t, ConversionMid, TierForConversion(40))
	assert.Equal(t, ConversionLow, TierForConversion(39.9))
}

func TestToggleStage(t *testing.T) {
	assert.Equal(t, "awareness", ToggleStage("", "awareness"))
	assert.Equal(t, "", ToggleStage("awareness", "awareness"))
	assert.Equal(t, "education", ToggleStage("awareness", "education"))
}
