package revenue

import (
	"fmt"
	"math"

	"github.com/goliatone/go-revenue-dashboard/pkg/format"
)

// ConversionTier groups stage conversions for colouring.
type ConversionTier string

const (
	ConversionHigh ConversionTier = "high"
	ConversionMid  ConversionTier = "mid"
	ConversionLow  ConversionTier = "low"
)

// TierForConversion: >=70 high, >=40 mid, else low.
func TierForConversion(conversion float64) ConversionTier {
	switch {
	case conversion >= 70:
		return ConversionHigh
	case conversion >= 40:
		return ConversionMid
	default:
		return ConversionLow
	}
}

// StageGeometry is the rendering projection of one funnel stage.
type StageGeometry struct {
	Stage                FunnelStage    `json:"stage"`
	Index                int            `json:"index"`
	InputHeight          float64        `json:"input_height"`
	OutputVolume         int            `json:"output_volume"`
	OutputHeight         float64        `json:"output_height"`
	Terminal             bool           `json:"terminal"`
	Tier                 ConversionTier `json:"tier"`
	RecomputedConversion float64        `json:"recomputed_conversion"`
	ClipPath             string         `json:"clip_path"`
	AmountLabel          string         `json:"amount_label"`
	VolumeLabel          string         `json:"volume_label"`
	ConversionLabel      string         `json:"conversion_label"`
}

// ProjectFunnel computes per-stage geometry. Heights are percentages of the
// largest volume; a stage's output is the next stage's volume, and the last
// stage outputs terminalOut. Stored conversions are kept as given;
// RecomputedConversion is reported alongside for comparison only.
func ProjectFunnel(stages []FunnelStage, terminalOut int) []StageGeometry {
	out := make([]StageGeometry, 0, len(stages))
	if len(stages) == 0 {
		return out
	}
	maxVolume := 0
	for _, s := range stages {
		if s.Volume > maxVolume {
			maxVolume = s.Volume
		}
	}
	for i, s := range stages {
		terminal := i == len(stages)-1
		output := terminalOut
		if !terminal {
			output = stages[i+1].Volume
		}
		g := StageGeometry{
			Stage:           s,
			Index:           i,
			OutputVolume:    output,
			Terminal:        terminal,
			Tier:            TierForConversion(s.Conversion),
			AmountLabel:     format.Currency(s.Amount),
			VolumeLabel:     format.Number(float64(s.Volume)),
			ConversionLabel: format.Percentage(s.Conversion),
		}
		if maxVolume > 0 {
			g.InputHeight = float64(s.Volume) / float64(maxVolume) * 100
			g.OutputHeight = float64(output) / float64(maxVolume) * 100
		}
		if s.Volume > 0 {
			g.RecomputedConversion = math.Round(float64(output) / float64(s.Volume) * 100)
		}
		g.ClipPath = clipPolygon(g.InputHeight, g.OutputHeight)
		out = append(out, g)
	}
	return out
}

// ConversionDrift lists stages whose stored conversion differs from the
// ratio of adjacent volumes.
func ConversionDrift(geometry []StageGeometry) []string {
	var ids []string
	for _, g := range geometry {
		if g.RecomputedConversion != g.Stage.Conversion {
			ids = append(ids, g.Stage.ID)
		}
	}
	return ids
}

func clipPolygon(in, out float64) string {
	return fmt.Sprintf("polygon(0%% %s%%, 100%% %s%%, 100%% %s%%, 0%% %s%%)",
		trimFloat(50-in/2), trimFloat(50-out/2), trimFloat(50+out/2), trimFloat(50+in/2))
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// ToggleStage returns the new expanded stage id: clicking the expanded stage
// collapses it, any other stage becomes expanded.
func ToggleStage(current, clicked string) string {
	if current == clicked {
		return ""
	}
	return clicked
}
